// Package symset implements the alphabet and signature-set machinery that
// every other package in this module builds on: a Symbol is a small index
// into an ordered Alphabet, and a signature set S_k is the canonical
// enumeration of all alphabet strings of length 0..k, ordered by length
// then lexicographically under the alphabet's own order.
package symset

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Symbol is an index into an Alphabet. Alphabets used by this module never
// exceed 256 distinct symbols, matching every ruleset in the standard
// corpus and every example format this system reads.
type Symbol uint8

// Common symset errors.
var (
	// ErrEmptyAlphabet indicates an alphabet was constructed with no symbols.
	ErrEmptyAlphabet = errors.New("symset: alphabet must have at least one symbol")

	// ErrDuplicateSymbol indicates the same name appeared twice while
	// building an alphabet.
	ErrDuplicateSymbol = errors.New("symset: duplicate symbol name")

	// ErrAlphabetTooLarge indicates more than 256 distinct symbol names
	// were supplied; Symbol cannot index that many.
	ErrAlphabetTooLarge = errors.New("symset: alphabet exceeds 256 symbols")
)

// UnknownSymbolError reports that a token at Position was not found in the
// alphabet while parsing a symbol string.
type UnknownSymbolError struct {
	Token    string
	Position int
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("symset: unknown symbol %q at position %d", e.Token, e.Position)
}

// Alphabet is a finite ordered sequence of distinct symbol names. Index
// order is stable for the lifetime of the Alphabet and determines both
// Symbol values and the lexicographic order used by signature sets.
type Alphabet struct {
	names []string
	index map[string]Symbol
}

// NewAlphabet builds an Alphabet from an ordered list of distinct names.
// The order given is preserved; it is the alphabet's order for every
// lexicographic comparison downstream.
func NewAlphabet(names []string) (*Alphabet, error) {
	if len(names) == 0 {
		return nil, ErrEmptyAlphabet
	}
	if len(names) > 256 {
		return nil, ErrAlphabetTooLarge
	}
	idx := make(map[string]Symbol, len(names))
	for i, n := range names {
		if _, dup := idx[n]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSymbol, n)
		}
		idx[n] = Symbol(i)
	}
	cp := make([]string, len(names))
	copy(cp, names)
	return &Alphabet{names: cp, index: idx}, nil
}

// NewSortedAlphabet builds an Alphabet whose order is the sorted order of
// the (deduplicated) names given — the convention used when an alphabet is
// derived from a ruleset's text format (§6: "the alphabet is the sorted
// union of all names appearing anywhere").
func NewSortedAlphabet(names []string) (*Alphabet, error) {
	seen := make(map[string]bool, len(names))
	uniq := make([]string, 0, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			uniq = append(uniq, n)
		}
	}
	sort.Strings(uniq)
	return NewAlphabet(uniq)
}

// Len returns |Σ|.
func (a *Alphabet) Len() int { return len(a.names) }

// Name returns the symbol name at index s.
func (a *Alphabet) Name(s Symbol) string { return a.names[s] }

// Names returns the alphabet's names in index order. The returned slice
// must not be mutated.
func (a *Alphabet) Names() []string { return a.names }

// Symbol looks up the index of a name, reporting ok=false if absent.
func (a *Alphabet) Symbol(name string) (Symbol, bool) {
	s, ok := a.index[name]
	return s, ok
}

// Equal reports whether two alphabets have identical name lists in the
// same order.
func (a *Alphabet) Equal(b *Alphabet) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := range a.names {
		if a.names[i] != b.names[i] {
			return false
		}
	}
	return true
}

// Subset reports whether every name in a also appears (anywhere) in b.
func (a *Alphabet) Subset(b *Alphabet) bool {
	for _, n := range a.names {
		if _, ok := b.index[n]; !ok {
			return false
		}
	}
	return true
}

// StringToSymbols converts a sequence of symbol names into indices,
// failing with *UnknownSymbolError at the first unrecognized token.
func (a *Alphabet) StringToSymbols(tokens []string) ([]Symbol, error) {
	out := make([]Symbol, len(tokens))
	for i, t := range tokens {
		s, ok := a.index[t]
		if !ok {
			return nil, &UnknownSymbolError{Token: t, Position: i}
		}
		out[i] = s
	}
	return out, nil
}

// SymbolsToStrings renders a symbol sequence as space-separated names.
func (a *Alphabet) SymbolsToStrings(syms []Symbol) string {
	parts := make([]string, len(syms))
	for i, s := range syms {
		parts[i] = a.names[s]
	}
	return strings.Join(parts, " ")
}

// SigSetIndex returns the canonical index of s within S_∞: strings are
// ordered first by length, then lexicographically by symbol index within a
// length. The empty string is index 0.
func (a *Alphabet) SigSetIndex(s []Symbol) int {
	n := a.Len()
	idx := lengthOffset(n, len(s))
	rank := 0
	for _, sym := range s {
		rank = rank*n + int(sym)
	}
	return idx + rank
}

// lengthOffset returns sum_{i=0}^{length-1} n^i, the number of strings of
// length strictly less than `length` over an n-symbol alphabet.
func lengthOffset(n, length int) int {
	offset := 0
	pow := 1
	for i := 0; i < length; i++ {
		offset += pow
		pow *= n
	}
	return offset
}

// BuildSigK returns S_k: every alphabet string of length 0..k, grouped by
// length (ascending) and, within a length, in lexicographic order under
// the alphabet's own symbol order. Position i in the returned slice equals
// SigSetIndex of that string.
func (a *Alphabet) BuildSigK(k int) [][]Symbol {
	n := a.Len()
	total := lengthOffset(n, k+1)
	out := make([][]Symbol, 0, total)
	for length := 0; length <= k; length++ {
		out = appendStringsOfLength(out, n, length)
	}
	return out
}

func appendStringsOfLength(out [][]Symbol, n, length int) [][]Symbol {
	if length == 0 {
		return append(out, []Symbol{})
	}
	counters := make([]int, length)
	for {
		s := make([]Symbol, length)
		for i, c := range counters {
			s[i] = Symbol(c)
		}
		out = append(out, s)
		// increment counters like an odometer, least-significant (rightmost)
		// digit first, to produce lexicographic order with the leftmost
		// symbol as the most significant digit.
		pos := length - 1
		for pos >= 0 {
			counters[pos]++
			if counters[pos] < n {
				break
			}
			counters[pos] = 0
			pos--
		}
		if pos < 0 {
			break
		}
	}
	return out
}
