// Package audit implements the proof auditor (spec §4.8): given a candidate
// DFA and the SRS it was built for, it constructs the rule graph and a
// terminal-language cross-check, and either certifies the DFA correct or
// returns a witness edge proving it is not closed under rewriting.
package audit

import (
	"fmt"
	"strconv"

	"github.com/demi-w/srsdfa/automaton"
	"github.com/demi-w/srsdfa/ruleset"
	"github.com/demi-w/srsdfa/symset"
	"github.com/katalvlaran/lvlath/core"
)

// vertexID renders a DFA state index as an lvlath vertex ID.
func vertexID(state int) string {
	return "s" + strconv.Itoa(state)
}

// RuleGraph builds the rule-induced graph over d's states (spec §4.8): for
// every state s and every rule (lhs, rhs), an edge from the state reached
// by walking lhs from s to the state reached by walking rhs from s. Edges
// are then closed under common-symbol extension: if p -> r is an edge and
// both have a transition defined for symbol σ (always true, δ is total),
// δ(p,σ) -> δ(r,σ) is an edge too. The graph is directed, allows self-loops
// (a rule can map a state to itself) and tolerates repeated edges
// discovered from different rules by deduplicating them in a local edge
// set before any edge is added to the graph.
func RuleGraph(d *automaton.DFA, rules *ruleset.Ruleset) (*core.Graph, error) {
	if !d.Alphabet.Equal(rules.Alphabet) {
		return nil, fmt.Errorf("audit: DFA and ruleset must share an alphabet")
	}
	g := core.NewGraph(core.WithDirected(true), core.WithLoops())
	for s := 0; s < d.NumStates(); s++ {
		if err := g.AddVertex(vertexID(s)); err != nil {
			return nil, err
		}
	}

	type pair struct{ p, r int }
	edges := map[pair]bool{}
	addEdge := func(p, r int) bool {
		if edges[pair{p, r}] {
			return false
		}
		edges[pair{p, r}] = true
		return true
	}

	var queue []pair
	for s := 0; s < d.NumStates(); s++ {
		for _, rule := range rules.Rules {
			p := walkFrom(d, s, rule.LHS)
			r := walkFrom(d, s, rule.RHS)
			if addEdge(p, r) {
				queue = append(queue, pair{p, r})
			}
		}
	}

	// Common-symbol closure: breadth-first propagation of new edges.
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		for sym := 0; sym < d.Alphabet.Len(); sym++ {
			p2 := d.Step(e.p, symset.Symbol(sym))
			r2 := d.Step(e.r, symset.Symbol(sym))
			if addEdge(p2, r2) {
				queue = append(queue, pair{p2, r2})
			}
		}
	}

	for e := range edges {
		if _, err := g.AddEdge(vertexID(e.p), vertexID(e.r), 0); err != nil {
			return nil, fmt.Errorf("audit: building rule graph: %w", err)
		}
	}
	return g, nil
}

func walkFrom(d *automaton.DFA, state int, s []symset.Symbol) int {
	for _, sym := range s {
		state = d.Step(state, sym)
	}
	return state
}
