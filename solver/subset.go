package solver

import (
	"github.com/demi-w/srsdfa/automaton"
	"github.com/demi-w/srsdfa/oracle"
	"github.com/demi-w/srsdfa/ruleset"
	"github.com/demi-w/srsdfa/symset"
)

// SubsetSolver reduces reachability-oracle calls by batching uniqueness
// decisions over a rule-induced link graph (spec §4.5): known bits of a
// candidate's signature are implanted from its parent, remaining bits are
// propagated from related candidates reachable by a single rule
// application, and only what the link graph leaves undetermined is sent to
// the oracle. Requires a length-preserving, non-trivially-cyclic ruleset;
// rejected otherwise with a *DomainError at construction time.
type SubsetSolver struct {
	Rules  *ruleset.Ruleset
	Goal   *automaton.DFA
	Config Config
}

// NewSubsetSolver builds a SubsetSolver, validating the ruleset's shape
// per spec §4.2/§4.5.
func NewSubsetSolver(rules *ruleset.Ruleset, goal *automaton.DFA, cfg Config) (*SubsetSolver, error) {
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
	return &SubsetSolver{Rules: r, Goal: g, Config: cfg}, nil
}

// subsetState tracks the signature of one candidate DFA state together with
// which bits have already been resolved (by implantation or link-graph
// propagation), so unresolved bits can be singled out for the oracle.
type subsetState struct {
	rep    []symset.Symbol
	sig    []bool
	solved []bool
	index  int
}

// Run implements Solver.
func (s *SubsetSolver) Run(k int) (*automaton.DFA, error) {
	return s.RunWithEvents(k, nil)
}

// RunWithEvents implements Solver.
//
// Each outer iteration expands the frontier one symbol at a time (spec
// §4.5 steps 1-6):
//
//  1. Implantation. Every bit whose suffix has length < k is copied
//     straight from the (already fully solved) parent: sig(parent)[idx(σ·tail)]
//     equals sig(child)[idx(tail)], since both record reachability of the
//     same concrete string (parent's representative)·σ·tail.
//  2. Rule-graph construction. For each newly introduced child with
//     representative r, every one-step rewrite of r (applying any rule at
//     any position — the representative is fully concrete, so this finds
//     every rewrite reachable without touching the not-yet-decided
//     suffix) lands on another same-length string r'. Walking r' through
//     the transitions already assigned to every shallower depth identifies
//     exactly which sibling candidate it names. A directed edge records
//     that the child depends on that sibling: whichever length-k bits are
//     already known true there are true here too, because the one-step
//     rewrite r ⇒ r' composes with any witness r'·x ⇒* goal into
//     r·x ⇒ r'·x ⇒* goal.
//  3. SCC condensation (via intgraph, shared with Minkid's SS link graph)
//     turns that possibly-cyclic dependency graph into a DAG.
//  4. Propagation runs over the condensation in reverse topological order,
//     iterating to a fixpoint within each component, copying known-true
//     length-k bits along every edge. Implantation fills only bits shorter
//     than k, so no length-k bit of any child is known when this step runs
//     and it copies nothing; every length-k bit is left to step 5.
//  5. Whatever remains unresolved after propagation — including every
//     bit that is actually false, since a one-step rewrite only licenses
//     propagating *true* answers soundly — is resolved by a batched
//     reachability-oracle call across the whole frontier level.
//  6. Deduplication folds candidates with equal signatures into one state.
func (s *SubsetSolver) RunWithEvents(k int, sink *EventSink) (*automaton.DFA, error) {
	alphabetLen := s.Goal.Alphabet.Len()
	sigK := s.Goal.Alphabet.BuildSigK(k)
	newLenStart := lengthKOffset(alphabetLen, k)

	batch := oracle.NewBatchOracle(s.Rules, s.Goal)
	pool := newPool(s.Config.Workers, batch.Reachable)
	defer pool.close()

	out := automaton.New(s.Goal.Alphabet, 0, 0)
	seen := map[string]int{}

	rootSig := pool.computeBatch(sigK)
	rootSolved := make([]bool, len(sigK))
	for i := range rootSolved {
		rootSolved[i] = true
	}
	root := subsetState{rep: nil, sig: rootSig, solved: rootSolved}
	rootIdx := out.AddState()
	out.Start = rootIdx
	out.SetAccepting(rootIdx, root.sig[0])
	root.index = rootIdx
	seen[sigKey(root.sig)] = rootIdx

	frontier := []subsetState{root}
	iteration := 0
	for len(frontier) > 0 {
		var children []subsetState
		// childOf[parentStateIndex][symbol] = index into children.
		childOf := make(map[int][]int, len(frontier))

		sink.timePhase(iteration, "implant", func() {
			for _, p := range frontier {
				slots := make([]int, alphabetLen)
				for sym := 0; sym < alphabetLen; sym++ {
					sig := make([]bool, len(sigK))
					solved := make([]bool, len(sigK))
					for i, suffix := range sigK {
						if len(suffix) >= k {
							continue
						}
						parentSuffix := concat([]symset.Symbol{symset.Symbol(sym)}, suffix)
						parentPos := s.Goal.Alphabet.SigSetIndex(parentSuffix)
						sig[i] = p.sig[parentPos]
						solved[i] = true
					}
					rep := concat(p.rep, []symset.Symbol{symset.Symbol(sym)})
					children = append(children, subsetState{rep: rep, sig: sig, solved: solved})
					slots[sym] = len(children) - 1
				}
				childOf[p.index] = slots
			}
		})

		raw := newIntgraph(len(children))
		sink.timePhase(iteration, "link-graph", func() {
			for ci, c := range children {
				for _, rewritten := range s.Rules.OneStepRewrites(c.rep) {
					if len(rewritten) != len(c.rep) {
						continue // guarded by length-preserving precondition
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

		sink.timePhase(iteration, "propagate", func() {
			scc := raw.tarjanSCC()
			cond := raw.condense(scc)
			order := cond.reverseTopoOrder()
			for _, comp := range order {
				for {
					changed := false
					for _, ci := range scc.members[comp] {
						for _, target := range raw.edges[ci] {
							tgt := children[target]
							src := children[ci]
							for idx := newLenStart; idx < len(sigK); idx++ {
								if !src.solved[idx] && tgt.solved[idx] && tgt.sig[idx] {
									src.sig[idx] = true
									src.solved[idx] = true
									changed = true
								}
							}
						}
					}
					if !changed {
						break
					}
				}
			}
		})

		sink.timePhase(iteration, "resolve", func() {
			var pendingReps [][]symset.Symbol
			var pendingChild, pendingBit []int
			for ci, c := range children {
				for idx := newLenStart; idx < len(sigK); idx++ {
					if c.solved[idx] {
						continue
					}
					pendingReps = append(pendingReps, concat(c.rep, sigK[idx]))
					pendingChild = append(pendingChild, ci)
					pendingBit = append(pendingBit, idx)
				}
			}
			results := pool.computeBatch(pendingReps)
			for j, r := range results {
				children[pendingChild[j]].sig[pendingBit[j]] = r
				children[pendingChild[j]].solved[pendingBit[j]] = true
			}
		})

		var next []subsetState
		for _, p := range frontier {
			slots := childOf[p.index]
			for sym := 0; sym < alphabetLen; sym++ {
				c := children[slots[sym]]
				key := sigKey(c.sig)
				childIdx, known := seen[key]
				if !known {
					childIdx = out.AddState()
					out.SetAccepting(childIdx, c.sig[0])
					seen[key] = childIdx
					c.index = childIdx
					next = append(next, c)
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

// lengthKOffset returns the position in a length-ordered signature set
// where strings of length exactly k begin.
func lengthKOffset(alphabetLen, k int) int {
	offset := 0
	pow := 1
	for i := 0; i < k; i++ {
		offset += pow
		pow *= alphabetLen
	}
	return offset
}
