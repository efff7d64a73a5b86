package oracle

import (
	"testing"

	"github.com/demi-w/srsdfa/automaton"
	"github.com/demi-w/srsdfa/ruleset"
	"github.com/demi-w/srsdfa/symset"
)

// buildOnePegGoal builds the goal DFA for scenario A: strings of length
// >= 1 with exactly one '1'.
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

func symbols(t *testing.T, a *symset.Alphabet, s string) []symset.Symbol {
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

func TestBatchOracleReachable(t *testing.T) {
	goal := buildOnePegGoal(t)
	rules := buildOnePegRules(t)
	o := NewBatchOracle(rules, goal)

	if !o.Reachable(symbols(t, goal.Alphabet, "01110")) {
		t.Fatal("expected 01110 to be reachable (scenario A)")
	}
	if o.Reachable(symbols(t, goal.Alphabet, "0110")) {
		t.Fatal("expected 0110 to be unreachable (scenario A)")
	}
}

func TestMemoOracleAgreesWithBatch(t *testing.T) {
	goal := buildOnePegGoal(t)
	rules := buildOnePegRules(t)
	batch := NewBatchOracle(rules, goal)
	memo := NewMemoOracle(rules, goal)

	cases := []string{"01110", "0110", "111", "0", "1"}
	for _, c := range cases {
		s := symbols(t, goal.Alphabet, c)
		want := batch.Reachable(s)
		got := memo.Reachable(s)
		if got != want {
			t.Fatalf("case %q: memo=%v batch=%v", c, got, want)
		}
		// repeated query must hit the memo and agree.
		if again := memo.Reachable(s); again != want {
			t.Fatalf("case %q: memoized repeat=%v want=%v", c, again, want)
		}
	}
}

func TestMemoOracleClear(t *testing.T) {
	goal := buildOnePegGoal(t)
	rules := buildOnePegRules(t)
	memo := NewMemoOracle(rules, goal)
	s := symbols(t, goal.Alphabet, "01110")
	memo.Reachable(s)
	memo.Clear()
	if len(memo.positive) != 0 || len(memo.negative) != 0 {
		t.Fatal("Clear did not empty memo tables")
	}
}
