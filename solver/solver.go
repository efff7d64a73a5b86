package solver

import (
	"fmt"

	"github.com/demi-w/srsdfa/automaton"
	"github.com/demi-w/srsdfa/ruleset"
	"github.com/demi-w/srsdfa/symset"
)

// Solver is the contract shared by BFS, Subset, and Minkid (spec §9:
// "heterogeneous solver dispatch"). Orchestration picks one concrete
// implementation up front and calls through this interface; there is no
// dynamic dispatch inside any solver's own inner loop.
type Solver interface {
	// Run computes the ancestor-language DFA for the given signature
	// depth k, with no event subscribers attached.
	Run(k int) (*automaton.DFA, error)

	// RunWithEvents computes the same DFA as Run, but publishes DFA and
	// phase events to sink as it goes. sink may be nil, in which case
	// this behaves exactly like Run.
	RunWithEvents(k int, sink *EventSink) (*automaton.DFA, error)
}

// ensureSharedAlphabet returns a ruleset and goal DFA translated onto one
// common alphabet, expanding whichever of the two has the smaller alphabet.
// Every solver constructor calls this before doing anything else, since the
// BFS/Subset/Minkid algorithms all assume rules and goal share symbol
// indices.
func ensureSharedAlphabet(rules *ruleset.Ruleset, goal *automaton.DFA) (*ruleset.Ruleset, *automaton.DFA, error) {
	if rules.Alphabet.Equal(goal.Alphabet) {
		return rules, goal, nil
	}
	if rules.Alphabet.Subset(goal.Alphabet) {
		r, err := rules.ExpandToAlphabet(goal.Alphabet)
		if err != nil {
			return nil, nil, err
		}
		return r, goal, nil
	}
	if goal.Alphabet.Subset(rules.Alphabet) {
		g, err := goal.ExpandToAlphabet(rules.Alphabet)
		if err != nil {
			return nil, nil, err
		}
		return rules, g, nil
	}
	return nil, nil, fmt.Errorf("solver: ruleset and goal alphabets share no common superset")
}

// SolveString runs solver once at depth k and reports whether s belongs to
// the resulting DFA's language — a convenience wrapper over Run for callers
// that want a single membership answer rather than the DFA itself.
func SolveString(solver Solver, k int, s []symset.Symbol) (bool, error) {
	d, err := solver.Run(k)
	if err != nil {
		return false, err
	}
	return d.Contains(s), nil
}

// AnnotatedResult pairs a membership answer with the DFA that produced it,
// so a caller can inspect the construction (state count, accepting states
// reached) without re-running the solver.
type AnnotatedResult struct {
	Accepted bool
	DFA      *automaton.DFA
	Path     []int // state sequence visited while running s, including the start state
}

// SolveStringAnnotated runs solver once at depth k and returns both the
// membership answer and the state-by-state path taken through the
// resulting DFA, for diagnostics and the interactive visualizer.
func SolveStringAnnotated(solver Solver, k int, s []symset.Symbol) (AnnotatedResult, error) {
	d, err := solver.Run(k)
	if err != nil {
		return AnnotatedResult{}, err
	}
	path := make([]int, 0, len(s)+1)
	state := d.Start
	path = append(path, state)
	for _, sym := range s {
		state = d.Step(state, sym)
		path = append(path, state)
	}
	return AnnotatedResult{Accepted: d.Accepting[state], DFA: d, Path: path}, nil
}
