// Package responder selects canned replies for free-text utterances by
// scanning an ordered table of substring rules.
//
// A Responder is a pure function of its input, its immutable Table and a
// random source. It performs no I/O and keeps no state between calls, so a
// single Responder may be shared by any number of goroutines.
package responder

import (
	"math/rand/v2"
	"strings"
)

// RandSource picks an index in [0, n). *rand.Rand from math/rand/v2
// satisfies it. Implementations passed to a shared Responder must be safe
// for concurrent use.
type RandSource interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Match describes how an utterance was answered.
type Match struct {
	Rule     string
	Index    int
	Trigger  string
	Fallback bool
	Reply    string
}

type Option func(*Responder)

// WithRand replaces the default random source.
func WithRand(src RandSource) Option {
	return func(r *Responder) {
		if src != nil {
			r.rand = src
		}
	}
}

type Responder struct {
	table    *Table
	fallback string
	rand     RandSource
}

func New(table *Table, fallback string, opts ...Option) (*Responder, error) {
	if fallback == "" {
		return nil, ErrEmptyFallback
	}
	if table == nil {
		table = &Table{}
	}
	r := &Responder{
		table:    table,
		fallback: fallback,
		rand:     globalRand{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// NewDefault builds a Responder over the reference rule set.
func NewDefault(opts ...Option) *Responder {
	table, err := NewTable(DefaultRules())
	if err != nil {
		panic("responder: invalid default rules: " + err.Error())
	}
	r, _ := New(table, DefaultFallback, opts...)
	return r
}

func (r *Responder) Table() *Table {
	return r.table
}

func (r *Responder) Fallback() string {
	return r.fallback
}

// Respond returns a reply for utterance. It never fails: input that hits
// no trigger, including empty input, yields the fallback.
func (r *Responder) Respond(utterance string) string {
	return r.Match(utterance).Reply
}

// Match performs the same selection as Respond and reports which rule
// produced the reply.
func (r *Responder) Match(utterance string) Match {
	msg := strings.ToLower(strings.TrimSpace(utterance))

	idx, trig := r.table.find(msg)
	if idx < 0 {
		return Match{Index: -1, Fallback: true, Reply: r.fallback}
	}

	rule := r.table.rules[idx]
	return Match{
		Rule:    rule.Name,
		Index:   idx,
		Trigger: trig,
		Reply:   rule.Responses[r.pick(len(rule.Responses))],
	}
}

func (r *Responder) pick(n int) int {
	if n == 1 {
		return 0
	}
	i := r.rand.IntN(n)
	if i < 0 || i >= n {
		// a misbehaving source must not break totality
		return 0
	}
	return i
}
