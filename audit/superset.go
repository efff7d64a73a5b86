package audit

import (
	"github.com/demi-w/srsdfa/automaton"
	"github.com/demi-w/srsdfa/ruleset"
)

// IsSuperset builds the rule graph over a candidate DFA d — which need not
// be the final convergent output of a solver, unlike Certify's usual
// caller — and reports whether d is closed under rewriting: no rule-graph
// edge runs from a non-accepting state to an accepting one. This is the
// same necessary condition Certify's first check performs, exposed on its
// own so a caller (typically a regression test) can confirm that an
// under-converged DFA at k < k* is provably not a correct answer, without
// paying for the terminal-language cross-check Certify also does.
func IsSuperset(d *automaton.DFA, rules *ruleset.Ruleset) (bool, *WitnessEdge, error) {
	g, err := RuleGraph(d, rules)
	if err != nil {
		return false, nil, err
	}
	accepting := make(map[string]bool, d.NumStates())
	for s := 0; s < d.NumStates(); s++ {
		accepting[vertexID(s)] = d.Accepting[s]
	}
	for _, e := range g.Edges() {
		if !accepting[e.From] && accepting[e.To] {
			return false, &WitnessEdge{FromState: stateOf(e.From), ToState: stateOf(e.To)}, nil
		}
	}
	return true, nil, nil
}
