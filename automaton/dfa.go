// Package automaton implements the DFA type shared by every solver: a
// total transition table over a symset.Alphabet, with product construction,
// minimization, equality/partial-order comparison, shortest-path queries,
// and JSON/JFLAP serialization.
package automaton

import (
	"errors"
	"fmt"

	"github.com/demi-w/srsdfa/symset"
)

// ErrNoSuchState reports an out-of-range state index. No operation in this
// package returns it: state-indexed accessors do no bounds checking.
var ErrNoSuchState = errors.New("automaton: state index out of range")

// DFA is a deterministic finite automaton: states are dense integer
// indices 0..N-1, Start is the initial state, Trans[s][sym] is the total
// transition function, and Accepting[s] marks accepting states. A DFA is
// immutable after construction except through Minimize, which returns a
// new value rather than mutating in place.
type DFA struct {
	Alphabet  *symset.Alphabet
	Start     int
	Trans     [][]int
	Accepting []bool
}

// New constructs an empty DFA with n states (all non-accepting, all
// transitions zeroed to state 0) over the given alphabet. Callers fill in
// transitions and accepting flags via SetTransition / SetAccepting.
func New(alphabet *symset.Alphabet, n int, start int) *DFA {
	trans := make([][]int, n)
	for i := range trans {
		trans[i] = make([]int, alphabet.Len())
	}
	return &DFA{
		Alphabet:  alphabet,
		Start:     start,
		Trans:     trans,
		Accepting: make([]bool, n),
	}
}

// NumStates returns the number of states.
func (d *DFA) NumStates() int { return len(d.Trans) }

// AddState appends a new non-accepting state with all transitions pointing
// at itself, returning its index.
func (d *DFA) AddState() int {
	idx := len(d.Trans)
	row := make([]int, d.Alphabet.Len())
	for i := range row {
		row[i] = idx
	}
	d.Trans = append(d.Trans, row)
	d.Accepting = append(d.Accepting, false)
	return idx
}

// SetTransition sets δ(state, sym) = target.
func (d *DFA) SetTransition(state int, sym symset.Symbol, target int) {
	d.Trans[state][sym] = target
}

// Step returns δ(state, sym).
func (d *DFA) Step(state int, sym symset.Symbol) int {
	return d.Trans[state][int(sym)]
}

// Run walks the DFA from the start state over the given string, returning
// the final state reached.
func (d *DFA) Run(s []symset.Symbol) int {
	state := d.Start
	for _, sym := range s {
		state = d.Step(state, sym)
	}
	return state
}

// Contains reports whether s is accepted from the start state.
func (d *DFA) Contains(s []symset.Symbol) bool {
	return d.Accepting[d.Run(s)]
}

// ContainsFrom reports whether s is accepted starting from an arbitrary
// state (not necessarily the start state).
func (d *DFA) ContainsFrom(state int, s []symset.Symbol) bool {
	for _, sym := range s {
		state = d.Step(state, sym)
	}
	return d.Accepting[state]
}

// SetAccepting sets whether state is accepting.
func (d *DFA) SetAccepting(state int, accept bool) {
	d.Accepting[state] = accept
}

// ExpandToAlphabet re-indexes the DFA onto a superset alphabet. Existing
// symbols keep their transitions; newly introduced symbols are routed to a
// non-accepting absorbing error state (created if one does not already
// exist among the current states; reused otherwise) whose every
// transition, including on the old symbols, self-loops. This preserves the
// accepted language over the old alphabet's strings (testable property 5).
func (d *DFA) ExpandToAlphabet(target *symset.Alphabet) (*DFA, error) {
	if !d.Alphabet.Subset(target) {
		return nil, fmt.Errorf("automaton: target alphabet does not contain source alphabet")
	}
	if d.Alphabet.Equal(target) {
		return d, nil
	}

	translate := make([]symset.Symbol, d.Alphabet.Len())
	oldToNew := make(map[symset.Symbol]symset.Symbol, d.Alphabet.Len())
	for i := 0; i < d.Alphabet.Len(); i++ {
		name := d.Alphabet.Name(symset.Symbol(i))
		s, ok := target.Symbol(name)
		if !ok {
			return nil, fmt.Errorf("automaton: target alphabet missing symbol %q", name)
		}
		translate[i] = s
		oldToNew[symset.Symbol(i)] = s
	}

	// Find an existing absorbing error state: non-accepting, every old
	// transition a self-loop. If none exists, create one.
	errState := -1
	for s := 0; s < d.NumStates(); s++ {
		if d.Accepting[s] {
			continue
		}
		isAbsorbing := true
		for sym := 0; sym < d.Alphabet.Len(); sym++ {
			if d.Trans[s][sym] != s {
				isAbsorbing = false
				break
			}
		}
		if isAbsorbing {
			errState = s
			break
		}
	}

	out := New(target, 0, d.Start)
	for i := 0; i < d.NumStates(); i++ {
		out.AddState()
		out.SetAccepting(i, d.Accepting[i])
	}
	if errState == -1 {
		errState = out.AddState()
	}

	for s := 0; s < d.NumStates(); s++ {
		for sym := 0; sym < d.Alphabet.Len(); sym++ {
			out.Trans[s][translate[sym]] = d.Trans[s][sym]
		}
	}
	for sym := 0; sym < target.Len(); sym++ {
		name := target.Name(symset.Symbol(sym))
		if _, known := d.Alphabet.Symbol(name); known {
			continue
		}
		for s := 0; s < out.NumStates(); s++ {
			out.Trans[s][sym] = errState
		}
	}

	return out, nil
}
