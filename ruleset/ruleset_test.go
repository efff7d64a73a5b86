package ruleset

import (
	"errors"
	"reflect"
	"testing"

	"github.com/demi-w/srsdfa/symset"
)

func TestParseRuleset(t *testing.T) {
	rs, err := ParseRuleset("1 1 0 - 0 0 1\n0 1 1 - 1 0 0")
	if err != nil {
		t.Fatal(err)
	}
	if rs.Alphabet.Len() != 2 {
		t.Fatalf("alphabet len = %d, want 2", rs.Alphabet.Len())
	}
	got, err := rs.Alphabet.StringToSymbols([]string{"1", "1", "0"})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, rs.Rules[0].LHS) {
		t.Fatalf("got %v, want %v", got, rs.Rules[0].LHS)
	}

	_, err = rs.Alphabet.StringToSymbols([]string{"x"})
	var unk *symset.UnknownSymbolError
	if !errors.As(err, &unk) {
		t.Fatalf("expected UnknownSymbolError, got %v", err)
	}
	if unk.Position != 0 {
		t.Fatalf("position = %d, want 0", unk.Position)
	}
}

func TestRoundTrip(t *testing.T) {
	text := "1 1 0 - 0 0 1\n0 1 1 - 1 0 0"
	rs, err := ParseRuleset(text)
	if err != nil {
		t.Fatal(err)
	}
	again, err := ParseRuleset(rs.String())
	if err != nil {
		t.Fatal(err)
	}
	if !rs.Equal(again) {
		t.Fatalf("round trip mismatch: %q -> %q", text, rs.String())
	}
}

func TestOneStepRewrites(t *testing.T) {
	rs, err := ParseRuleset("1 1 0 - 0 0 1\n0 1 1 - 1 0 0")
	if err != nil {
		t.Fatal(err)
	}
	s, err := rs.Alphabet.StringToSymbols([]string{"0", "1", "1", "1", "0"})
	if err != nil {
		t.Fatal(err)
	}
	out := rs.OneStepRewrites(s)
	if len(out) == 0 {
		t.Fatal("expected at least one rewrite")
	}
	for _, o := range out {
		back := rs.ReverseOneStepRewrites(o)
		found := false
		for _, b := range back {
			if symEqual(b, s) {
				found = true
			}
		}
		if !found {
			t.Fatalf("reverse rewrite of %v did not recover %v", o, s)
		}
	}
}

func TestShapePredicates(t *testing.T) {
	rs, err := ParseRuleset("1 1 - 1")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := rs.HasNonLengthPreservingRule(); !ok {
		t.Fatal("expected non-length-preserving rule")
	}

	rs2, err := ParseRuleset("1 0 - 0 1\n0 1 - 1 0")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := rs2.HasDefinitelyCyclicRule(); !ok {
		t.Fatal("expected cyclic rule")
	}
}

func TestExpandToAlphabet(t *testing.T) {
	rs, err := ParseRuleset("1 1 0 - 0 0 1")
	if err != nil {
		t.Fatal(err)
	}
	bigger, err := symset.NewSortedAlphabet([]string{"0", "1", "2"})
	if err != nil {
		t.Fatal(err)
	}
	expanded, err := rs.ExpandToAlphabet(bigger)
	if err != nil {
		t.Fatal(err)
	}
	if expanded.Alphabet.Len() != 3 {
		t.Fatalf("expanded alphabet len = %d", expanded.Alphabet.Len())
	}
	if expanded.MinInput() != rs.MinInput() {
		t.Fatalf("min input changed across expansion")
	}
}
