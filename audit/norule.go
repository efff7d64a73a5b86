package audit

import (
	"github.com/demi-w/srsdfa/automaton"
	"github.com/demi-w/srsdfa/ruleset"
	"github.com/demi-w/srsdfa/symset"
)

// NoRuleDFA builds the DFA accepting exactly the terminal strings of rules:
// those to which no rule's LHS applies at any position (spec §4.8). States
// are rolling buffers of the last (maxInput-1) symbols seen, enough to
// detect a future match whose prefix already lies in the buffer; an
// absorbing non-accepting state is entered, and never left, the instant any
// LHS match is found ending at the current position.
func NoRuleDFA(rules *ruleset.Ruleset, alphabet *symset.Alphabet) *automaton.DFA {
	maxLen := rules.MaxInput()
	bufCap := maxLen - 1
	if bufCap < 0 {
		bufCap = 0
	}

	type key = string
	index := map[key]int{}
	var buffers [][]symset.Symbol

	out := automaton.New(alphabet, 0, 0)

	internKey := func(buf []symset.Symbol) string {
		b := make([]byte, 0, len(buf)*2)
		for _, s := range buf {
			b = append(b, byte(s), 0)
		}
		return string(b)
	}

	intern := func(buf []symset.Symbol) int {
		k := internKey(buf)
		if idx, ok := index[k]; ok {
			return idx
		}
		idx := out.AddState()
		out.SetAccepting(idx, true)
		index[k] = idx
		buffers = append(buffers, buf)
		return idx
	}

	rootBuf := []symset.Symbol{}
	rootIdx := intern(rootBuf)
	out.Start = rootIdx

	errState := out.AddState()
	out.SetAccepting(errState, false)
	buffers = append(buffers, nil) // keep buffers indexed by state

	matchesAnyRule := func(buf []symset.Symbol) bool {
		for _, r := range rules.Rules {
			l := len(r.LHS)
			if l == 0 || l > len(buf) {
				continue
			}
			if symsEqualLocal(buf[len(buf)-l:], r.LHS) {
				return true
			}
		}
		return false
	}

	processed := map[int]bool{}
	frontier := []int{rootIdx}
	for len(frontier) > 0 {
		var next []int
		for _, idx := range frontier {
			if processed[idx] {
				continue
			}
			processed[idx] = true
			if idx == errState {
				for sym := 0; sym < alphabet.Len(); sym++ {
					out.SetTransition(errState, symset.Symbol(sym), errState)
				}
				continue
			}
			buf := buffers[idx]
			for sym := 0; sym < alphabet.Len(); sym++ {
				extended := append(append([]symset.Symbol{}, buf...), symset.Symbol(sym))
				if matchesAnyRule(extended) {
					out.SetTransition(idx, symset.Symbol(sym), errState)
					continue
				}
				trimmed := extended
				if len(trimmed) > bufCap {
					trimmed = trimmed[len(trimmed)-bufCap:]
				}
				childIdx := intern(trimmed)
				out.SetTransition(idx, symset.Symbol(sym), childIdx)
				next = append(next, childIdx)
			}
		}
		frontier = next
	}
	return out
}

func symsEqualLocal(a, b []symset.Symbol) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
