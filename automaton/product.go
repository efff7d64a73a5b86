package automaton

import (
	"fmt"

	"github.com/demi-w/srsdfa/symset"
)

// pairKey packs two state indices into one map key for the product BFS.
type pairKey struct{ a, b int }

// Product builds the synchronous product of a and b: states are reachable
// pairs (a-state, b-state), and a pair's accepting flag is
// combine(a.Accepting, b.Accepting). Both DFAs must share an alphabet;
// callers should ExpandToAlphabet first if they do not.
func Product(a, b *DFA, combine func(aAcc, bAcc bool) bool) (*DFA, error) {
	if !a.Alphabet.Equal(b.Alphabet) {
		return nil, fmt.Errorf("automaton: product requires matching alphabets")
	}
	out := New(a.Alphabet, 0, 0)
	seen := map[pairKey]int{}
	start := pairKey{a.Start, b.Start}
	seen[start] = out.AddState()
	out.Start = 0

	queue := []pairKey{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		idx := seen[p]
		out.SetAccepting(idx, combine(a.Accepting[p.a], b.Accepting[p.b]))
		for sym := 0; sym < a.Alphabet.Len(); sym++ {
			next := pairKey{a.Trans[p.a][sym], b.Trans[p.b][sym]}
			nidx, ok := seen[next]
			if !ok {
				nidx = out.AddState()
				seen[next] = nidx
				queue = append(queue, next)
			}
			out.SetTransition(idx, symset.Symbol(sym), nidx)
		}
	}
	return out, nil
}

// Intersect returns the DFA accepting strings both a and b accept.
func Intersect(a, b *DFA) (*DFA, error) {
	return Product(a, b, func(x, y bool) bool { return x && y })
}

// Union returns the DFA accepting strings either a or b accepts.
func Union(a, b *DFA) (*DFA, error) {
	return Product(a, b, func(x, y bool) bool { return x || y })
}

// Xor returns the DFA accepting strings accepted by exactly one of a, b.
func Xor(a, b *DFA) (*DFA, error) {
	return Product(a, b, func(x, y bool) bool { return x != y })
}

// Difference returns the DFA accepting strings a accepts but b does not.
func Difference(a, b *DFA) (*DFA, error) {
	return Product(a, b, func(x, y bool) bool { return x && !y })
}

// Complement returns the DFA accepting exactly the strings a rejects.
func Complement(a *DFA) *DFA {
	out := New(a.Alphabet, a.NumStates(), a.Start)
	for s := 0; s < a.NumStates(); s++ {
		copy(out.Trans[s], a.Trans[s])
		out.SetAccepting(s, !a.Accepting[s])
	}
	return out
}
