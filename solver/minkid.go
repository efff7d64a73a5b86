package solver

import (
	"github.com/demi-w/srsdfa/automaton"
	"github.com/demi-w/srsdfa/ruleset"
	"github.com/demi-w/srsdfa/symset"
)

// MinkidSolver represents each DFA state's signature as a minimal antichain
// of SS-link-graph nodes rather than an explicit bitvector, amortizing
// across candidate states whose covered signature sets share ancestors
// (spec §4.6). Like Subset, it requires a length-preserving,
// non-trivially-cyclic ruleset.
//
// Preparation builds the SS link graph and, from it, goalMinkids: the
// antichain that would cover a candidate's signature if the goal language
// were accepted with no rewriting at all. Node expansion seeds every new
// candidate from that antichain (spec §4.6 step 1). What makes the result
// the *ancestor* language rather than a mere determinization of the goal
// language is the outer iteration's link insertion and minkid propagation
// (steps 2-4, see RunWithEvents): a rule-induced graph connects candidates
// whose representatives are one rewrite apart, SCC condensation turns that
// graph into a DAG, and each candidate's antichain is unioned with every
// candidate it rewrites to, to a fixpoint within each component.
type MinkidSolver struct {
	Rules  *ruleset.Ruleset
	Goal   *automaton.DFA
	Config Config
}

// NewMinkidSolver builds a MinkidSolver, validating the ruleset's shape.
func NewMinkidSolver(rules *ruleset.Ruleset, goal *automaton.DFA, cfg Config) (*MinkidSolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := checkLengthPreservingAndAcyclic(rules); err != nil {
		return nil, err
	}
	r, g, err := ensureSharedAlphabet(rules, goal)
	if err != nil {
		return nil, err
	}
	return &MinkidSolver{Rules: r, Goal: g, Config: cfg}, nil
}

type minkidState struct {
	rep        []symset.Symbol
	goalStates map[int]bool
	minkids    antichain
	index      int
}

// Run implements Solver.
func (s *MinkidSolver) Run(k int) (*automaton.DFA, error) {
	return s.RunWithEvents(k, nil)
}

// RunWithEvents implements Solver.
func (s *MinkidSolver) RunWithEvents(k int, sink *EventSink) (*automaton.DFA, error) {
	alphabetLen := s.Goal.Alphabet.Len()

	var ss *ssGraph
	var goalMinkids []antichain
	sink.timePhase(-1, "ss-graph", func() {
		ss = buildSSGraph(s.Rules, s.Goal.Alphabet, k)
		goalMinkids = ss.goalMinkids(s.Goal)
	})

	emptyNode := ss.nodeOf(nil)
	accepts := func(mk antichain) bool {
		for _, m := range mk {
			if ss.dominates(emptyNode, m) {
				return true
			}
		}
		return false
	}

	out := automaton.New(s.Goal.Alphabet, 0, 0)
	seen := map[string]int{}

	root := minkidState{
		rep:        nil,
		goalStates: map[int]bool{s.Goal.Start: true},
		minkids:    goalMinkids[s.Goal.Start],
	}
	rootIdx := out.AddState()
	out.Start = rootIdx
	out.SetAccepting(rootIdx, accepts(root.minkids))
	root.index = rootIdx
	seen[root.minkids.key()] = rootIdx

	frontier := []minkidState{root}
	iteration := 0
	for len(frontier) > 0 {
		var children []minkidState
		// childOf[parentStateIndex][symbol] = index into children.
		childOf := make(map[int][]int, len(frontier))

		sink.timePhase(iteration, "expand", func() {
			for _, p := range frontier {
				slots := make([]int, alphabetLen)
				for sym := 0; sym < alphabetLen; sym++ {
					childGoalStates := map[int]bool{}
					var mk antichain
					for gState := range p.goalStates {
						gNext := s.Goal.Step(gState, symset.Symbol(sym))
						childGoalStates[gNext] = true
						mk = ss.union(mk, goalMinkids[gNext])
					}
					rep := concat(p.rep, []symset.Symbol{symset.Symbol(sym)})
					children = append(children, minkidState{rep: rep, goalStates: childGoalStates, minkids: mk})
					slots[sym] = len(children) - 1
				}
				childOf[p.index] = slots
			}
		})

		// Link insertion (spec §4.6 step 2, specialized to full-length
		// matches discovered entirely within each child's concrete
		// representative — see DESIGN.md for the scope this leaves out).
		// An edge ci -> target records that ci's representative rewrites,
		// in one rule application, to target's: any descendant covered by
		// target's antichain is covered by ci's too, since the rewrite
		// composes with whatever rewriting sequence witnesses target's
		// coverage.
		raw := newIntgraph(len(children))
		sink.timePhase(iteration, "link", func() {
			for ci, c := range children {
				for _, rewritten := range s.Rules.OneStepRewrites(c.rep) {
					if len(rewritten) != len(c.rep) {
						continue
					}
					depth := len(c.rep) - 1
					state := out.Start
					for i := 0; i < depth; i++ {
						state = out.Step(state, rewritten[i])
					}
					slots, ok := childOf[state]
					if !ok {
						continue
					}
					target := slots[rewritten[depth]]
					if target != ci {
						raw.addEdge(ci, target)
					}
				}
			}
		})

		// Minkid propagation (spec §4.6 step 4): SCC-condense the link
		// graph, then union each node's antichain with every node it
		// depends on, in reverse topological order with an inner fixpoint
		// loop over each strongly connected component.
		sink.timePhase(iteration, "propagate", func() {
			scc := raw.tarjanSCC()
			cond := raw.condense(scc)
			order := cond.reverseTopoOrder()
			for _, comp := range order {
				for {
					changed := false
					for _, ci := range scc.members[comp] {
						for _, target := range raw.edges[ci] {
							before := children[ci].minkids.key()
							children[ci].minkids = ss.union(children[ci].minkids, children[target].minkids)
							if children[ci].minkids.key() != before {
								changed = true
							}
						}
					}
					if !changed {
						break
					}
				}
			}
		})

		var next []minkidState
		for _, p := range frontier {
			slots := childOf[p.index]
			for sym := 0; sym < alphabetLen; sym++ {
				c := children[slots[sym]]
				key := c.minkids.key()
				childIdx, known := seen[key]
				if !known {
					childIdx = out.AddState()
					out.SetAccepting(childIdx, accepts(c.minkids))
					seen[key] = childIdx
					c.index = childIdx
					next = append(next, c)
				} else {
					// Dedup per spec §4.6 step 5: a state reached by more
					// than one path accumulates every path's goal states.
					for i := range next {
						if next[i].index == childIdx {
							for g := range c.goalStates {
								next[i].goalStates[g] = true
							}
						}
					}
				}
				out.SetTransition(p.index, symset.Symbol(sym), childIdx)
			}
		}

		sink.emitDFA(DFAEvent{Iteration: iteration, DFA: out, Final: len(next) == 0})
		frontier = next
		iteration++
	}
	return out, nil
}
