package orchestrate

import (
	"testing"

	"github.com/demi-w/srsdfa/automaton"
	"github.com/demi-w/srsdfa/ruleset"
	"github.com/demi-w/srsdfa/solver"
	"github.com/demi-w/srsdfa/symset"
)

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

func TestRunConvergesAndCertifies(t *testing.T) {
	goal := buildOnePegGoal(t)
	rules, err := ruleset.ParseRuleset("1 1 0 - 0 0 1\n0 1 1 - 1 0 0")
	if err != nil {
		t.Fatal(err)
	}
	bfs, err := solver.NewBFSSolver(rules, goal, solver.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig(5)
	result, err := Run(bfs, rules, goal, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if result.DFA == nil {
		t.Fatal("expected a convergent DFA")
	}
	if result.FinalK < 5 {
		t.Fatalf("expected FinalK >= 5, got %d", result.FinalK)
	}
	if result.Verdict == nil {
		t.Fatal("expected a certification verdict")
	}
	if !result.Verdict.Correct {
		t.Fatalf("expected convergent DFA to certify correct, witness=%v", result.Verdict.Witness)
	}
}

func TestRunWithoutVerifyReturnsFirstDepth(t *testing.T) {
	goal := buildOnePegGoal(t)
	rules, err := ruleset.ParseRuleset("1 1 0 - 0 0 1\n0 1 1 - 1 0 0")
	if err != nil {
		t.Fatal(err)
	}
	bfs, err := solver.NewBFSSolver(rules, goal, solver.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	result, err := Run(bfs, rules, goal, Config{StartK: 2})
	if err != nil {
		t.Fatal(err)
	}
	if result.FinalK != 2 {
		t.Fatalf("expected FinalK=2 with Verify disabled, got %d", result.FinalK)
	}
	if result.Iterations != 1 {
		t.Fatalf("expected exactly one solver run, got %d", result.Iterations)
	}
}
