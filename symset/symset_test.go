package symset

import (
	"reflect"
	"testing"
)

func mustAlphabet(t *testing.T, names ...string) *Alphabet {
	t.Helper()
	a, err := NewAlphabet(names)
	if err != nil {
		t.Fatalf("NewAlphabet(%v): %v", names, err)
	}
	return a
}

func TestStringToSymbolsUnknown(t *testing.T) {
	a := mustAlphabet(t, "0", "1")
	got, err := a.StringToSymbols([]string{"1", "1", "0"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Symbol{1, 1, 0}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	_, err = a.StringToSymbols([]string{"x"})
	var unk *UnknownSymbolError
	if err == nil {
		t.Fatal("expected UnknownSymbolError")
	}
	if !asUnknown(err, &unk) {
		t.Fatalf("expected *UnknownSymbolError, got %T: %v", err, err)
	}
	if unk.Position != 0 || unk.Token != "x" {
		t.Fatalf("got %+v", unk)
	}
}

func asUnknown(err error, target **UnknownSymbolError) bool {
	if e, ok := err.(*UnknownSymbolError); ok {
		*target = e
		return true
	}
	return false
}

func TestBuildSigKOrderMatchesSigSetIndex(t *testing.T) {
	a := mustAlphabet(t, "0", "1")
	sigs := a.BuildSigK(3)
	for i, s := range sigs {
		if got := a.SigSetIndex(s); got != i {
			t.Fatalf("SigSetIndex(%v) = %d, want %d", s, got, i)
		}
	}
	// empty string first, then length-1 strings in alphabet order.
	if len(sigs[0]) != 0 {
		t.Fatalf("sigs[0] = %v, want empty", sigs[0])
	}
	want1 := []Symbol{0}
	want2 := []Symbol{1}
	if !reflect.DeepEqual(sigs[1], want1) || !reflect.DeepEqual(sigs[2], want2) {
		t.Fatalf("sigs[1:3] = %v, %v", sigs[1], sigs[2])
	}
}

func TestBuildSigKCount(t *testing.T) {
	a := mustAlphabet(t, "a", "b", "c")
	for k := 0; k <= 4; k++ {
		sigs := a.BuildSigK(k)
		want := 0
		pow := 1
		for i := 0; i <= k; i++ {
			want += pow
			pow *= 3
		}
		if len(sigs) != want {
			t.Fatalf("k=%d: got %d strings, want %d", k, len(sigs), want)
		}
	}
}

func TestSortedAlphabetOrder(t *testing.T) {
	a, err := NewSortedAlphabet([]string{"b", "a", "b", "c"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(a.Names(), want) {
		t.Fatalf("got %v, want %v", a.Names(), want)
	}
}
