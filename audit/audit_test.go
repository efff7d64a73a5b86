package audit

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

func TestCertifyScenarioFPassesForConvergentBFS(t *testing.T) {
	goal := buildOnePegGoal(t)
	rules, err := ruleset.ParseRuleset("1 1 0 - 0 0 1\n0 1 1 - 1 0 0")
	if err != nil {
		t.Fatal(err)
	}
	bfs, err := solver.NewBFSSolver(rules, goal, solver.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	d, err := bfs.Run(5)
	if err != nil {
		t.Fatal(err)
	}
	verdict, err := Certify(d, rules, goal)
	if err != nil {
		t.Fatal(err)
	}
	if !verdict.Correct {
		t.Fatalf("expected scenario A's k=5 BFS DFA to certify correct, witness=%v", verdict.Witness)
	}
	if len(verdict.Trail.Steps) == 0 {
		t.Fatal("expected a non-empty proof trail")
	}
}

func TestIsSupersetDistinguishesUnderConvergedDepth(t *testing.T) {
	goal := buildOnePegGoal(t)
	rules, err := ruleset.ParseRuleset("1 1 0 - 0 0 1\n0 1 1 - 1 0 0")
	if err != nil {
		t.Fatal(err)
	}
	bfs, err := solver.NewBFSSolver(rules, goal, solver.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	shallow, err := bfs.Run(1)
	if err != nil {
		t.Fatal(err)
	}
	if ok, witness, err := IsSuperset(shallow, rules); err != nil {
		t.Fatal(err)
	} else if ok {
		t.Fatal("expected k=1 BFS output to not be closed under rewriting")
	} else if witness == nil {
		t.Fatal("expected a witness edge for the under-converged depth")
	}

	converged, err := bfs.Run(5)
	if err != nil {
		t.Fatal(err)
	}
	if ok, witness, err := IsSuperset(converged, rules); err != nil {
		t.Fatal(err)
	} else if !ok {
		t.Fatalf("expected k=5 BFS output to be closed under rewriting, witness=%v", witness)
	}
}

func TestNoRuleDFARejectsMatchableString(t *testing.T) {
	rules, err := ruleset.ParseRuleset("1 1 0 - 0 0 1\n0 1 1 - 1 0 0")
	if err != nil {
		t.Fatal(err)
	}
	noRule := NoRuleDFA(rules, rules.Alphabet)
	one, _ := rules.Alphabet.Symbol("1")
	zero, _ := rules.Alphabet.Symbol("0")
	if noRule.Contains([]symset.Symbol{one, one, zero}) {
		t.Fatal("expected 110 to be rejected: it matches a rule LHS")
	}
	if !noRule.Contains([]symset.Symbol{zero, zero, zero}) {
		t.Fatal("expected 000 to be accepted: no rule applies")
	}
}
