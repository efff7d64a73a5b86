package automaton

import (
	"bytes"
	"testing"

	"github.com/demi-w/srsdfa/symset"
)

// buildExactlyOneOne builds the DFA over {0,1} accepting strings with
// exactly one '1' (scenario A's goal automaton).
func buildExactlyOneOne(t *testing.T) *DFA {
	t.Helper()
	a, err := symset.NewAlphabet([]string{"0", "1"})
	if err != nil {
		t.Fatal(err)
	}
	d := New(a, 3, 0)
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

func mustSymbols(t *testing.T, a *symset.Alphabet, s string) []symset.Symbol {
	t.Helper()
	toks := make([]string, len(s))
	for i, r := range s {
		toks[i] = string(r)
	}
	syms, err := a.StringToSymbols(toks)
	if err != nil {
		t.Fatal(err)
	}
	return syms
}

func TestContains(t *testing.T) {
	d := buildExactlyOneOne(t)
	if !d.Contains(mustSymbols(t, d.Alphabet, "01")) {
		t.Fatal("expected 01 to be accepted")
	}
	if d.Contains(mustSymbols(t, d.Alphabet, "011")) {
		t.Fatal("expected 011 to be rejected")
	}
	if d.Contains(mustSymbols(t, d.Alphabet, "")) {
		t.Fatal("expected empty string rejected")
	}
}

func TestMinimizeRedundantState(t *testing.T) {
	d := buildExactlyOneOne(t)
	extra := d.AddState()
	zero, _ := d.Alphabet.Symbol("0")
	one, _ := d.Alphabet.Symbol("1")
	d.SetTransition(extra, zero, extra)
	d.SetTransition(extra, one, extra)
	// extra is unreachable and should be dropped.
	min := d.Minimize()
	if min.NumStates() != 3 {
		t.Fatalf("minimized states = %d, want 3", min.NumStates())
	}
	eq, witness := d.LanguageEqual(min)
	if !eq {
		t.Fatalf("minimized DFA changed language, witness=%v", witness)
	}
}

func TestLanguageEqualWitness(t *testing.T) {
	d := buildExactlyOneOne(t)
	a, _ := symset.NewAlphabet([]string{"0", "1"})
	other := New(a, 1, 0)
	zero, _ := a.Symbol("0")
	one, _ := a.Symbol("1")
	other.SetTransition(0, zero, 0)
	other.SetTransition(0, one, 0)
	// other accepts nothing; d accepts "1". They must differ.
	eq, witness := d.LanguageEqual(other)
	if eq {
		t.Fatal("expected inequality")
	}
	if !d.Contains(witness) {
		t.Fatalf("witness %v not accepted by d", witness)
	}
}

func TestCompareOrdering(t *testing.T) {
	d := buildExactlyOneOne(t)
	eq, _ := d.LanguageEqual(d)
	if !eq {
		t.Fatal("self-equality failed")
	}
	if d.Compare(d) != Equal {
		t.Fatalf("Compare(self) = %v, want Equal", d.Compare(d))
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d := buildExactlyOneOne(t)
	var buf bytes.Buffer
	if err := d.SaveJSON(&buf); err != nil {
		t.Fatal(err)
	}
	back, err := LoadJSON(&buf)
	if err != nil {
		t.Fatal(err)
	}
	eq, witness := d.LanguageEqual(back)
	if !eq {
		t.Fatalf("json round trip changed language, witness=%v", witness)
	}
}

func TestJFLAPRoundTrip(t *testing.T) {
	d := buildExactlyOneOne(t)
	var buf bytes.Buffer
	if err := d.SaveJFLAP(&buf); err != nil {
		t.Fatal(err)
	}
	back, err := LoadJFLAP(&buf, d.Alphabet)
	if err != nil {
		t.Fatal(err)
	}
	eq, witness := d.LanguageEqual(back)
	if !eq {
		t.Fatalf("jflap round trip changed language, witness=%v", witness)
	}
}

func TestExpandToAlphabetPreservesLanguage(t *testing.T) {
	d := buildExactlyOneOne(t)
	bigger, err := symset.NewSortedAlphabet([]string{"0", "1", "2"})
	if err != nil {
		t.Fatal(err)
	}
	expanded, err := d.ExpandToAlphabet(bigger)
	if err != nil {
		t.Fatal(err)
	}
	old01 := mustSymbols(t, d.Alphabet, "01")
	new01, err := bigger.StringToSymbols([]string{"0", "1"})
	if err != nil {
		t.Fatal(err)
	}
	if d.Contains(old01) != expanded.Contains(new01) {
		t.Fatal("expansion changed acceptance over the original alphabet")
	}
	two, _ := bigger.Symbol("2")
	if expanded.Contains([]symset.Symbol{two}) {
		t.Fatal("expansion should reject strings containing the new symbol")
	}
}
