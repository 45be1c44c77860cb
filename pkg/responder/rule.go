package responder

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoResponses   = errors.New("rule has no responses")
	ErrNoTriggers    = errors.New("rule has no triggers")
	ErrEmptyTrigger  = errors.New("rule has an empty trigger")
	ErrEmptyFallback = errors.New("fallback response is empty")
)

// Rule pairs a set of trigger substrings with a pool of candidate replies.
type Rule struct {
	Name      string   `json:"name,omitempty"`
	Triggers  []string `json:"triggers"`
	Responses []string `json:"responses"`
}

// Table is an ordered, immutable set of rules. Array order is priority:
// the first rule whose triggers hit an utterance wins and later rules are
// never consulted.
type Table struct {
	rules []Rule
}

// NewTable validates rules and returns a Table holding a private copy of
// them. Triggers are lowercased and deduplicated within each rule.
func NewTable(rules []Rule) (*Table, error) {
	t := &Table{rules: make([]Rule, 0, len(rules))}
	for i, r := range rules {
		name := r.Name
		if name == "" {
			name = fmt.Sprintf("rule-%d", i+1)
		}

		if len(r.Triggers) == 0 {
			return nil, fmt.Errorf("rule %q (#%d): %w", name, i+1, ErrNoTriggers)
		}
		if len(r.Responses) == 0 {
			return nil, fmt.Errorf("rule %q (#%d): %w", name, i+1, ErrNoResponses)
		}

		seen := make(map[string]bool, len(r.Triggers))
		triggers := make([]string, 0, len(r.Triggers))
		for _, trig := range r.Triggers {
			if strings.TrimSpace(trig) == "" {
				return nil, fmt.Errorf("rule %q (#%d): %w", name, i+1, ErrEmptyTrigger)
			}
			trig = strings.ToLower(trig)
			if seen[trig] {
				continue
			}
			seen[trig] = true
			triggers = append(triggers, trig)
		}

		responses := make([]string, len(r.Responses))
		for j, resp := range r.Responses {
			if resp == "" {
				return nil, fmt.Errorf("rule %q (#%d) response %d: %w", name, i+1, j+1, ErrNoResponses)
			}
			responses[j] = resp
		}

		t.rules = append(t.rules, Rule{
			Name:      name,
			Triggers:  triggers,
			Responses: responses,
		})
	}
	return t, nil
}

// Len returns the number of rules.
func (t *Table) Len() int {
	return len(t.rules)
}

// Rules returns a copy of the rules in priority order.
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	for i, r := range t.rules {
		out[i] = Rule{
			Name:      r.Name,
			Triggers:  append([]string(nil), r.Triggers...),
			Responses: append([]string(nil), r.Responses...),
		}
	}
	return out
}

// find returns the index of the first rule with a trigger contained in msg
// and the trigger that hit, or -1.
func (t *Table) find(msg string) (int, string) {
	for i, r := range t.rules {
		for _, trig := range r.Triggers {
			if strings.Contains(msg, trig) {
				return i, trig
			}
		}
	}
	return -1, ""
}
