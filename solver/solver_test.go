package solver

import (
	"testing"

	"github.com/demi-w/srsdfa/automaton"
	"github.com/demi-w/srsdfa/ruleset"
	"github.com/demi-w/srsdfa/symset"
)

// buildOnePegGoal mirrors oracle_test.go's scenario-A goal: strings of
// length >= 1 with exactly one '1'.
func buildOnePegGoal(t *testing.T) *automaton.DFA {
	t.Helper()
	a, err := symset.NewAlphabet([]string{"0", "1"})
	if err != nil {
		t.Fatal(err)
	}
	d := automaton.New(a, 3, 0)
	zero, _ := a.Symbol("0")
	one, _ := a.Symbol("1")
	d.SetTransition(0, zero, 0)
	d.SetTransition(0, one, 1)
	d.SetTransition(1, zero, 1)
	d.SetTransition(1, one, 2)
	d.SetTransition(2, zero, 2)
	d.SetTransition(2, one, 2)
	d.SetAccepting(1, true)
	return d
}

func buildOnePegRules(t *testing.T) *ruleset.Ruleset {
	t.Helper()
	rs, err := ruleset.ParseRuleset("1 1 0 - 0 0 1\n0 1 1 - 1 0 0")
	if err != nil {
		t.Fatal(err)
	}
	return rs
}

func symbolsFor(t *testing.T, a *symset.Alphabet, s string) []symset.Symbol {
	t.Helper()
	toks := make([]string, len(s))
	for i, r := range s {
		toks[i] = string(r)
	}
	out, err := a.StringToSymbols(toks)
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestBFSSolverScenarioA(t *testing.T) {
	goal := buildOnePegGoal(t)
	rules := buildOnePegRules(t)
	solver, err := NewBFSSolver(rules, goal, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	d, err := solver.Run(5)
	if err != nil {
		t.Fatal(err)
	}
	if !d.Contains(symbolsFor(t, goal.Alphabet, "01110")) {
		t.Fatal("expected 01110 to be accepted")
	}
	if d.Contains(symbolsFor(t, goal.Alphabet, "0110")) {
		t.Fatal("expected 0110 to be rejected")
	}
}

func TestSubsetSolverAgreesWithBFS(t *testing.T) {
	goal := buildOnePegGoal(t)
	rules := buildOnePegRules(t)

	bfs, err := NewBFSSolver(rules, goal, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	bfsDFA, err := bfs.Run(4)
	if err != nil {
		t.Fatal(err)
	}

	subset, err := NewSubsetSolver(rules, goal, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	subsetDFA, err := subset.Run(4)
	if err != nil {
		t.Fatal(err)
	}

	equal, witness := bfsDFA.LanguageEqual(subsetDFA)
	if !equal {
		t.Fatalf("BFS and Subset disagree, witness=%v", witness)
	}
}

// TestMinkidSolverAgreesWithBFS exercises spec's testable property 1 for
// the Minkid/BFS pair: both must produce DFAs that accept the same
// language, not merely agree on the start state.
func TestMinkidSolverAgreesWithBFS(t *testing.T) {
	goal := buildOnePegGoal(t)
	rules := buildOnePegRules(t)

	bfs, err := NewBFSSolver(rules, goal, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	bfsDFA, err := bfs.Run(4)
	if err != nil {
		t.Fatal(err)
	}

	minkid, err := NewMinkidSolver(rules, goal, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	minkidDFA, err := minkid.Run(4)
	if err != nil {
		t.Fatal(err)
	}

	equal, witness := bfsDFA.LanguageEqual(minkidDFA)
	if !equal {
		t.Fatalf("BFS and Minkid disagree, witness=%v", witness)
	}
}

func TestSubsetSolverRejectsNonLengthPreserving(t *testing.T) {
	goal := buildOnePegGoal(t)
	rules, err := ruleset.ParseRuleset("1 1 - 1")
	if err != nil {
		t.Fatal(err)
	}
	_, err = NewSubsetSolver(rules, goal, DefaultConfig())
	if err == nil {
		t.Fatal("expected DomainError for non-length-preserving rule")
	}
	var domainErr *DomainError
	if de, ok := err.(*DomainError); ok {
		domainErr = de
	}
	if domainErr == nil {
		t.Fatalf("expected *DomainError, got %T: %v", err, err)
	}
	if domainErr.Kind != Deleting {
		t.Fatalf("expected Deleting, got %v", domainErr.Kind)
	}
}

func TestEventSinkEmitsDFAEvents(t *testing.T) {
	goal := buildOnePegGoal(t)
	rules := buildOnePegRules(t)
	solver, err := NewBFSSolver(rules, goal, Config{Workers: 4, EventBufferSize: 64})
	if err != nil {
		t.Fatal(err)
	}
	sink := newEventSink(64)
	if _, err := solver.RunWithEvents(3, sink); err != nil {
		t.Fatal(err)
	}
	sink.close()
	count := 0
	for range sink.DFAEvents {
		count++
	}
	if count == 0 {
		t.Fatal("expected at least one DFA event")
	}
}
