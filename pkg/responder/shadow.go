package responder

import (
	"fmt"
	"strings"
)

// Shadow records a trigger that can never fire because an earlier rule
// owns a trigger that is a substring of it.
type Shadow struct {
	Rule           string
	Index          int
	Trigger        string
	ByRule         string
	ByIndex        int
	ByTrigger      string
	FullyShadowed  bool // every trigger of Rule is shadowed
}

func (s Shadow) String() string {
	return fmt.Sprintf("rule %q trigger %q is shadowed by earlier rule %q trigger %q",
		s.Rule, s.Trigger, s.ByRule, s.ByTrigger)
}

// Shadows reports cross-rule shadowing in t. Overlap inside one rule is
// harmless since every trigger there selects the same responses.
func Shadows(t *Table) []Shadow {
	var out []Shadow
	for i, later := range t.rules {
		var found []Shadow
		for _, trig := range later.Triggers {
			if s, ok := shadowOf(t, i, trig); ok {
				found = append(found, s)
			}
		}
		full := len(found) == len(later.Triggers)
		for _, s := range found {
			s.FullyShadowed = full
			out = append(out, s)
		}
	}
	return out
}

func shadowOf(t *Table, idx int, trig string) (Shadow, bool) {
	for j := 0; j < idx; j++ {
		earlier := t.rules[j]
		for _, et := range earlier.Triggers {
			if strings.Contains(trig, et) {
				return Shadow{
					Rule:      t.rules[idx].Name,
					Index:     idx,
					Trigger:   trig,
					ByRule:    earlier.Name,
					ByIndex:   j,
					ByTrigger: et,
				}, true
			}
		}
	}
	return Shadow{}, false
}
