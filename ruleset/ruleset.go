// Package ruleset parses and manipulates string rewriting systems: ordered
// collections of (LHS, RHS) rules over a symset.Alphabet, plus the shape
// predicates the solvers use to reject rulesets their algorithm cannot
// handle.
package ruleset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/demi-w/srsdfa/symset"
)

// ErrEmptyRuleset is returned when a ruleset text has no rule lines at all.
var ErrEmptyRuleset = errors.New("ruleset: no rules found")

// ParseError reports a malformed rule line.
type ParseError struct {
	Line int
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ruleset: parse error on line %d: %q", e.Line, e.Text)
}

// Rule is a single left-hand-side to right-hand-side rewrite.
type Rule struct {
	LHS []symset.Symbol
	RHS []symset.Symbol
}

// Ruleset is an ordered collection of rules over a shared alphabet. Rule
// order is preserved from parsing and determines the traversal order of
// OneStepRewrites.
type Ruleset struct {
	Alphabet *symset.Alphabet
	Rules    []Rule

	minInput, maxInput int
}

// New builds a Ruleset from an alphabet and an explicit rule list, caching
// min/max LHS length.
func New(alphabet *symset.Alphabet, rules []Rule) *Ruleset {
	rs := &Ruleset{Alphabet: alphabet, Rules: rules}
	rs.recomputeCache()
	return rs
}

func (rs *Ruleset) recomputeCache() {
	if len(rs.Rules) == 0 {
		rs.minInput, rs.maxInput = 0, 0
		return
	}
	rs.minInput = len(rs.Rules[0].LHS)
	rs.maxInput = len(rs.Rules[0].LHS)
	for _, r := range rs.Rules[1:] {
		if l := len(r.LHS); l < rs.minInput {
			rs.minInput = l
		} else if l > rs.maxInput {
			rs.maxInput = l
		}
	}
}

// MinInput returns the shortest LHS length across all rules.
func (rs *Ruleset) MinInput() int { return rs.minInput }

// MaxInput returns the longest LHS length across all rules.
func (rs *Ruleset) MaxInput() int { return rs.maxInput }

// ParseRuleset parses the line-oriented text format described in spec §6:
// each line is a comment (from '#' to end of line, stripped), blank, or a
// rule "lhs - rhs" of whitespace-separated symbol names. The alphabet is
// the sorted union of every name that appears anywhere in the text.
func ParseRuleset(text string) (*Ruleset, error) {
	lines := strings.Split(text, "\n")

	type rawRule struct {
		lhs, rhs []string
		line     int
	}
	var raw []rawRule
	var names []string

	for i, line := range lines {
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		sepIdx := strings.Index(trimmed, "-")
		if sepIdx < 0 {
			return nil, &ParseError{Line: i + 1, Text: lines[i]}
		}
		lhsPart := strings.Fields(trimmed[:sepIdx])
		rhsPart := strings.Fields(trimmed[sepIdx+1:])
		names = append(names, lhsPart...)
		names = append(names, rhsPart...)
		raw = append(raw, rawRule{lhs: lhsPart, rhs: rhsPart, line: i + 1})
	}
	if len(raw) == 0 {
		return nil, ErrEmptyRuleset
	}

	alphabet, err := symset.NewSortedAlphabet(names)
	if err != nil {
		return nil, err
	}

	rules := make([]Rule, 0, len(raw))
	for _, r := range raw {
		lhs, err := alphabet.StringToSymbols(r.lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := alphabet.StringToSymbols(r.rhs)
		if err != nil {
			return nil, err
		}
		rules = append(rules, Rule{LHS: lhs, RHS: rhs})
	}

	return New(alphabet, rules), nil
}

// String renders the ruleset back into the line-oriented text format.
// Parsing the result reproduces an equal Ruleset (testable property 3).
func (rs *Ruleset) String() string {
	var b strings.Builder
	for i, r := range rs.Rules {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(rs.Alphabet.SymbolsToStrings(r.LHS))
		b.WriteString(" - ")
		b.WriteString(rs.Alphabet.SymbolsToStrings(r.RHS))
	}
	return b.String()
}

// Equal reports whether two rulesets have the same alphabet and the same
// rules in the same order.
func (rs *Ruleset) Equal(other *Ruleset) bool {
	if !rs.Alphabet.Equal(other.Alphabet) {
		return false
	}
	if len(rs.Rules) != len(other.Rules) {
		return false
	}
	for i := range rs.Rules {
		if !symEqual(rs.Rules[i].LHS, other.Rules[i].LHS) {
			return false
		}
		if !symEqual(rs.Rules[i].RHS, other.Rules[i].RHS) {
			return false
		}
	}
	return true
}

func symEqual(a, b []symset.Symbol) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// OneStepRewrites returns every string reachable from s by one leftmost-scan
// rule application: positions are scanned in increasing order, and within a
// position rules are tried in the order stored in the ruleset.
func (rs *Ruleset) OneStepRewrites(s []symset.Symbol) [][]symset.Symbol {
	var out [][]symset.Symbol
	for i := 0; i <= len(s); i++ {
		for _, r := range rs.Rules {
			l := len(r.LHS)
			if i+l > len(s) {
				continue
			}
			if !symEqual(s[i:i+l], r.LHS) {
				continue
			}
			out = append(out, spliceRule(s, i, l, r.RHS))
		}
	}
	return out
}

// ReverseOneStepRewrites returns every string that rewrites into s in one
// step, i.e. one-step rewrites under the rule set with LHS/RHS swapped.
func (rs *Ruleset) ReverseOneStepRewrites(s []symset.Symbol) [][]symset.Symbol {
	var out [][]symset.Symbol
	for i := 0; i <= len(s); i++ {
		for _, r := range rs.Rules {
			l := len(r.RHS)
			if i+l > len(s) {
				continue
			}
			if !symEqual(s[i:i+l], r.RHS) {
				continue
			}
			out = append(out, spliceRule(s, i, l, r.LHS))
		}
	}
	return out
}

func spliceRule(s []symset.Symbol, pos, matchLen int, replacement []symset.Symbol) []symset.Symbol {
	out := make([]symset.Symbol, 0, len(s)-matchLen+len(replacement))
	out = append(out, s[:pos]...)
	out = append(out, replacement...)
	out = append(out, s[pos+matchLen:]...)
	return out
}

// HasNonLengthPreservingRule reports whether any rule has |LHS| != |RHS|,
// returning the first such rule as a witness.
func (rs *Ruleset) HasNonLengthPreservingRule() (Rule, bool) {
	for _, r := range rs.Rules {
		if len(r.LHS) != len(r.RHS) {
			return r, true
		}
	}
	return Rule{}, false
}

// HasDefinitelyCyclicRule reports whether the ruleset contains a trivial
// two-cycle: a rule lhs -> rhs together with another rule rhs -> lhs.
func (rs *Ruleset) HasDefinitelyCyclicRule() (Rule, bool) {
	for i, r := range rs.Rules {
		for j, other := range rs.Rules {
			if i == j {
				continue
			}
			if symEqual(r.LHS, other.RHS) && symEqual(r.RHS, other.LHS) {
				return r, true
			}
		}
	}
	return Rule{}, false
}

// ExpandToAlphabet re-indexes every rule onto a superset alphabet, so a
// ruleset and a goal DFA defined over different (but compatible) alphabets
// can be made to share one. target must contain every name in rs.Alphabet.
func (rs *Ruleset) ExpandToAlphabet(target *symset.Alphabet) (*Ruleset, error) {
	if rs.Alphabet.Equal(target) {
		return rs, nil
	}
	translate := make([]symset.Symbol, rs.Alphabet.Len())
	for i := 0; i < rs.Alphabet.Len(); i++ {
		name := rs.Alphabet.Name(symset.Symbol(i))
		s, ok := target.Symbol(name)
		if !ok {
			return nil, fmt.Errorf("ruleset: target alphabet missing symbol %q", name)
		}
		translate[i] = s
	}
	newRules := make([]Rule, len(rs.Rules))
	for i, r := range rs.Rules {
		newRules[i] = Rule{LHS: translateAll(r.LHS, translate), RHS: translateAll(r.RHS, translate)}
	}
	return New(target, newRules), nil
}

func translateAll(s []symset.Symbol, translate []symset.Symbol) []symset.Symbol {
	out := make([]symset.Symbol, len(s))
	for i, sym := range s {
		out[i] = translate[sym]
	}
	return out
}
