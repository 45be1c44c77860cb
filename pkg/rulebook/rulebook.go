// Package rulebook reads responder rule tables from HJSON files.
//
// A rule book is an object with an optional fallback and an ordered list
// of rules; list order is match priority:
//
//	{
//	  fallback: "Keep talking."
//	  rules: [
//	    {
//	      name: greeting
//	      triggers: ["hello", "hi"]
//	      responses: ["Hey!"]
//	    }
//	    { name: "help", triggers: ["help"], responses: ["Ask away."] }
//	  ]
//	}
//
// A quoteless value runs to the end of its line, so values on a one-line
// object must be quoted. Plain JSON is valid HJSON and loads the same way.
package rulebook

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hjson/hjson-go/v4"
	"github.com/nathfavour/blubot/pkg/responder"
)

// Book is the on-disk shape of a rule table.
type Book struct {
	Fallback string           `json:"fallback,omitempty"`
	Rules    []responder.Rule `json:"rules"`
}

// Parse decodes HJSON data into a Book. Fields are decoded generically
// and then mapped onto Book through encoding/json.
func Parse(data []byte) (Book, error) {
	var raw interface{}
	if err := hjson.Unmarshal(data, &raw); err != nil {
		return Book{}, fmt.Errorf("parse rule book: %w", err)
	}
	normalized, err := json.Marshal(raw)
	if err != nil {
		return Book{}, fmt.Errorf("parse rule book: %w", err)
	}

	var b Book
	if err := json.Unmarshal(normalized, &b); err != nil {
		return Book{}, fmt.Errorf("decode rule book: %w", err)
	}
	return b, nil
}

// Load reads and parses the rule book at path.
func Load(path string) (Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Book{}, fmt.Errorf("read rule book: %w", err)
	}
	b, err := Parse(data)
	if err != nil {
		return Book{}, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Default returns the built-in reference book.
func Default() Book {
	return Book{Fallback: responder.DefaultFallback, Rules: responder.DefaultRules()}
}

// Build validates the book and constructs a Responder. An empty fallback
// falls back to responder.DefaultFallback.
func (b Book) Build(opts ...responder.Option) (*responder.Responder, error) {
	table, err := responder.NewTable(b.Rules)
	if err != nil {
		return nil, err
	}
	fallback := b.Fallback
	if fallback == "" {
		fallback = responder.DefaultFallback
	}
	return responder.New(table, fallback, opts...)
}

// Open loads the book at path, or the built-in book when path is empty,
// and builds a Responder from it.
func Open(path string, opts ...responder.Option) (*responder.Responder, error) {
	b := Default()
	if path != "" {
		var err error
		if b, err = Load(path); err != nil {
			return nil, err
		}
	}
	r, err := b.Build(opts...)
	if err != nil {
		if path != "" {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return nil, err
	}
	return r, nil
}

// Encode renders b as HJSON.
func Encode(b Book) ([]byte, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}
	var generic interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, err
	}
	return hjson.Marshal(generic)
}
