// Package corpus provides the standard worked examples from the ancestor
// ruleset/goal corpus (spec §8): small, named (ruleset, goal) pairs with a
// known convergence depth k*, used both as regression fixtures and as
// demonstration input for the CLI.
package corpus

import (
	"github.com/demi-w/srsdfa/automaton"
	"github.com/demi-w/srsdfa/ruleset"
	"github.com/demi-w/srsdfa/symset"
)

// Example bundles a named ruleset/goal pair with the signature depth at
// which BFS is known to converge, for use as a regression fixture.
type Example struct {
	Name  string
	Rules *ruleset.Ruleset
	Goal  *automaton.DFA
	KStar int
}

func mustAlphabet(names []string) *symset.Alphabet {
	a, err := symset.NewAlphabet(names)
	if err != nil {
		panic(err)
	}
	return a
}

func rule(lhs, rhs []int) ruleset.Rule {
	l := make([]symset.Symbol, len(lhs))
	for i, v := range lhs {
		l[i] = symset.Symbol(v)
	}
	r := make([]symset.Symbol, len(rhs))
	for i, v := range rhs {
		r[i] = symset.Symbol(v)
	}
	return ruleset.Rule{LHS: l, RHS: r}
}

// pegGoal builds the "exactly one peg" goal automaton shared by the 1D-peg
// examples: state 0 on reading the marker symbol (index 1) advances to the
// accepting state 1, a second marker falls into the non-accepting trap
// state 2.
func pegGoal(alphabet *symset.Alphabet) *automaton.DFA {
	d := automaton.New(alphabet, 3, 0)
	d.SetTransition(0, 0, 0)
	d.SetTransition(0, 1, 1)
	d.SetTransition(1, 0, 1)
	d.SetTransition(1, 1, 2)
	d.SetTransition(2, 0, 2)
	d.SetTransition(2, 1, 2)
	d.SetAccepting(1, true)
	return d
}

// DefaultOnePeg is scenario A (spec §8): the binary 1D-peg-solitaire
// ruleset with two rules, converging at k*=5.
func DefaultOnePeg() Example {
	alphabet := mustAlphabet([]string{"0", "1"})
	rules := ruleset.New(alphabet, []ruleset.Rule{
		rule([]int{1, 1, 0}, []int{0, 0, 1}),
		rule([]int{0, 1, 1}, []int{1, 0, 0}),
	})
	return Example{Name: "default1dpeg", Rules: rules, Goal: pegGoal(alphabet), KStar: 5}
}

// ThreeRuleOnePeg is scenario B: the same goal with a third rule added,
// converging faster at k*=4.
func ThreeRuleOnePeg() Example {
	alphabet := mustAlphabet([]string{"0", "1"})
	rules := ruleset.New(alphabet, []ruleset.Rule{
		rule([]int{1, 1, 0}, []int{0, 0, 1}),
		rule([]int{0, 1, 1}, []int{1, 0, 0}),
		rule([]int{1, 0, 1}, []int{0, 1, 0}),
	})
	return Example{Name: "threerule1dpeg", Rules: rules, Goal: pegGoal(alphabet), KStar: 4}
}

// solverGoal builds the ternary-alphabet goal automaton shared by
// defaultsolver/threerulesolver: identical shape to pegGoal, widened to the
// three-symbol alphabet {0,1,2} those rulesets use.
func solverGoal(alphabet *symset.Alphabet) *automaton.DFA {
	d := automaton.New(alphabet, 3, 0)
	d.SetTransition(0, 0, 0)
	d.SetTransition(0, 1, 1)
	d.SetTransition(0, 2, 2)
	d.SetTransition(1, 0, 1)
	d.SetTransition(1, 1, 2)
	d.SetTransition(1, 2, 2)
	d.SetTransition(2, 0, 2)
	d.SetTransition(2, 1, 2)
	d.SetTransition(2, 2, 2)
	d.SetAccepting(1, true)
	return d
}

// DefaultSolver is the four-rule ternary-alphabet ruleset, converging at
// k*=6.
func DefaultSolver() Example {
	alphabet := mustAlphabet([]string{"0", "1", "2"})
	rules := ruleset.New(alphabet, []ruleset.Rule{
		rule([]int{1, 1, 0}, []int{0, 0, 1}),
		rule([]int{0, 1, 1}, []int{1, 0, 0}),
		rule([]int{2, 1, 0}, []int{0, 0, 2}),
		rule([]int{0, 1, 2}, []int{2, 0, 0}),
	})
	return Example{Name: "defaultsolver", Rules: rules, Goal: solverGoal(alphabet), KStar: 6}
}

// ThreeRuleSolver adds three more rules to DefaultSolver, converging at
// k*=5.
func ThreeRuleSolver() Example {
	alphabet := mustAlphabet([]string{"0", "1", "2"})
	rules := ruleset.New(alphabet, []ruleset.Rule{
		rule([]int{1, 1, 0}, []int{0, 0, 1}),
		rule([]int{0, 1, 1}, []int{1, 0, 0}),
		rule([]int{1, 0, 1}, []int{0, 1, 0}),
		rule([]int{2, 1, 0}, []int{0, 0, 2}),
		rule([]int{0, 1, 2}, []int{2, 0, 0}),
		rule([]int{2, 0, 1}, []int{0, 2, 0}),
		rule([]int{1, 0, 2}, []int{0, 2, 0}),
	})
	return Example{Name: "threerulesolver", Rules: rules, Goal: solverGoal(alphabet), KStar: 5}
}

// allZeroGoal builds a two-state goal automaton over alphabet accepting
// only the string of all-first-symbol characters (the all-"0" language):
// reading the first alphabet symbol stays at the accepting start state,
// reading any other symbol falls into the non-accepting trap.
func allZeroGoal(alphabet *symset.Alphabet) *automaton.DFA {
	d := automaton.New(alphabet, 2, 0)
	for sym := 0; sym < alphabet.Len(); sym++ {
		if sym == 0 {
			d.SetTransition(0, symset.Symbol(sym), 0)
		} else {
			d.SetTransition(0, symset.Symbol(sym), 1)
		}
		d.SetTransition(1, symset.Symbol(sym), 1)
	}
	d.SetAccepting(0, true)
	return d
}

// Flip is scenario D (spec §8): all eight length-3 rules that complement
// every symbol in a window (abc -> ¬a¬b¬c), with a goal accepting exactly
// the all-zero strings. Converges at k*=2.
func Flip() Example {
	alphabet := mustAlphabet([]string{"0", "1"})
	rules := make([]ruleset.Rule, 0, 8)
	for i := 0; i < 8; i++ {
		a, b, c := (i/4)%2, (i/2)%2, i%2
		rules = append(rules, rule([]int{a, b, c}, []int{1 - a, 1 - b, 1 - c}))
	}
	return Example{Name: "flip", Rules: ruleset.New(alphabet, rules), Goal: allZeroGoal(alphabet), KStar: 2}
}

// flipBaseRules returns the eight length-3 bit-complementing rules that
// Flip and FlipX3 both start from, over the binary alphabet.
func flipBaseRules() []ruleset.Rule {
	rules := make([]ruleset.Rule, 0, 8)
	for i := 0; i < 8; i++ {
		a, b, c := (i/4)%2, (i/2)%2, i%2
		rules = append(rules, rule([]int{a, b, c}, []int{1 - a, 1 - b, 1 - c}))
	}
	return rules
}

// blowUpToColumns re-expresses a set of rules over a binary alphabet of
// window length w (here w=3, matching flipBaseRules) as an equivalent
// ruleset over an alphabet of 2^w "column" symbols, each symbol standing
// for one full w-bit column of an implicit two-dimensional grid packed
// into a 1-D string. It produces two kinds of descendant rules per base
// rule:
//
//   - one horizontal rule per starting offset i, rewriting a single
//     w-wide window of the base rule into one column symbol (since the
//     base rule's window exactly spans one column when w equals its
//     length);
//   - for each row i of the column and each assignment of the other rows
//     (j != i) to arbitrary bit patterns, a vertical rule that holds row i
//     fixed to the base rule's rewrite while leaving every other row
//     unconstrained on both sides — "the same bit pattern survives
//     unchanged in all other rows".
//
// This mirrors the column-expansion construction used to build higher-
// dimensional examples (FlipX3) from a 1-D base ruleset (spec's
// supplemented corpus; original_source/src/builder.rs build_flipx3).
func blowUpToColumns(base []ruleset.Rule, w int) []ruleset.Rule {
	symbolNum := 1
	for i := 0; i < w; i++ {
		symbolNum *= 2
	}
	var out []ruleset.Rule
	for _, r := range base {
		windowLen := len(r.LHS)

		// Horizontal: the whole window collapses to a single column
		// symbol at each admissible offset.
		for i := 0; i <= windowLen-w; i++ {
			startIdx, endIdx := 0, 0
			for idx, sym := range r.LHS {
				startIdx += int(sym) * pow(2, windowLen-idx-1)
			}
			for idx, sym := range r.RHS {
				endIdx += int(sym) * pow(2, windowLen-idx-1)
			}
			startIdx *= pow(2, i)
			endIdx *= pow(2, i)
			out = append(out, rule([]int{startIdx}, []int{endIdx}))
		}

		// Vertical: fix row i to the base rule, let every other row
		// range freely over all bit patterns (unchanged on both sides).
		for i := 0; i < w; i++ {
			vertStarts := [][]int{make([]int, windowLen)}
			vertEnds := [][]int{make([]int, len(r.RHS))}
			for j := 0; j < w; j++ {
				cur := len(vertStarts)
				powNum := pow(2, j)
				if i == j {
					for s := 0; s < cur; s++ {
						for idx := range vertStarts[s] {
							vertStarts[s][idx] += int(r.LHS[idx]) * powNum
						}
						for idx := range vertEnds[s] {
							vertEnds[s][idx] += int(r.RHS[idx]) * powNum
						}
					}
				} else {
					for s := 0; s < cur; s++ {
						for bits := 1; bits < symbolNum; bits++ {
							newStart := append([]int(nil), vertStarts[s]...)
							newEnd := append([]int(nil), vertEnds[s]...)
							for l := 0; l < bits; l++ {
								if (bits>>uint(l))&1 == 1 {
									newStart[l] += powNum
									newEnd[l] += powNum
								}
							}
							vertStarts = append(vertStarts, newStart)
							vertEnds = append(vertEnds, newEnd)
						}
					}
				}
			}
			for idx := range vertStarts {
				out = append(out, rule(vertStarts[idx], vertEnds[idx]))
			}
		}
	}
	return out
}

func pow(base, exp int) int {
	r := 1
	for i := 0; i < exp; i++ {
		r *= base
	}
	return r
}

func columnAlphabet(w int) *symset.Alphabet {
	n := pow(2, w)
	names := make([]string, n)
	for i := 0; i < n; i++ {
		bits := make([]byte, w)
		for b := 0; b < w; b++ {
			if (i>>uint(w-b-1))&1 == 1 {
				bits[b] = '1'
			} else {
				bits[b] = '0'
			}
		}
		names[i] = string(bits)
	}
	return mustAlphabet(names)
}

// FlipX3 blows Flip's rules up to a column alphabet of width 3 (spec §8's
// higher-dimensional supplemented example); the all-zero-column goal is
// the same shape as allZeroGoal, widened to the 8-symbol alphabet.
// Converges at k*=2.
func FlipX3() Example {
	w := 3
	alphabet := columnAlphabet(w)
	rules := ruleset.New(alphabet, blowUpToColumns(flipBaseRules(), w))
	return Example{Name: "flipx3", Rules: rules, Goal: allZeroGoal(alphabet), KStar: 2}
}

// TwoByNSwap is scenario corresponding to a two-lane generalization of the
// 1D-peg rules: each of the two base peg rules is replicated across the
// eight combinations of an independent second-lane bit at each of the
// three window positions, added onto the marker/empty symbols, giving 16
// rules over the ternary alphabet used
// for a third "out of bounds" marker. The goal is DefaultOnePeg's goal
// automaton widened with a trap transition on the third symbol (in
// original_source/src/builder.rs this reuses the *already-solved*
// default1dpeg DFA loaded from disk rather than its three-state literal
// goal; this module has no such solved artifact to load, so the goal here
// is built directly from DefaultOnePeg's literal goal automaton extended
// with a trap — see DESIGN.md). Converges at k*=11.
func TwoByNSwap() Example {
	alphabet := mustAlphabet([]string{"0", "1", "2"})
	var rules []ruleset.Rule
	for i := 0; i < 8; i++ {
		big, mid, sml := (i/4)%2, (i/2)%2, i%2
		rules = append(rules,
			rule([]int{1 + big, 1 + mid, 0 + sml}, []int{0 + big, 0 + mid, 1 + sml}),
			rule([]int{0 + big, 1 + mid, 1 + sml}, []int{1 + big, 0 + mid, 0 + sml}),
		)
	}

	peg := pegGoal(mustAlphabet([]string{"0", "1"}))
	d := automaton.New(alphabet, peg.NumStates()+1, peg.Start)
	errState := peg.NumStates()
	for s := 0; s < peg.NumStates(); s++ {
		d.SetTransition(s, 0, peg.Trans[s][0])
		d.SetTransition(s, 1, peg.Trans[s][1])
		d.SetTransition(s, 2, errState)
		d.SetAccepting(s, peg.Accepting[s])
	}
	d.SetTransition(errState, 0, errState)
	d.SetTransition(errState, 1, errState)
	d.SetTransition(errState, 2, errState)

	return Example{Name: "2xnswap", Rules: ruleset.New(alphabet, rules), Goal: d, KStar: 11}
}

// All returns every standard example, in the order spec §8 presents them.
func All() []Example {
	return []Example{
		DefaultOnePeg(),
		ThreeRuleOnePeg(),
		DefaultSolver(),
		ThreeRuleSolver(),
		Flip(),
		FlipX3(),
		TwoByNSwap(),
	}
}
