package solver

import (
	"time"

	"github.com/demi-w/srsdfa/automaton"
	"github.com/demi-w/srsdfa/oracle"
	"github.com/demi-w/srsdfa/ruleset"
	"github.com/demi-w/srsdfa/symset"
)

// BFSSolver is the semantic reference construction (spec §4.4): candidate
// DFA states are discovered by breadth-first expansion of representative
// strings, each state's signature computed directly from the reachability
// oracle with no propagation. Unlike Subset and Minkid, BFS places no
// shape restriction on the ruleset (spec §9 Open Question: BFS does not
// reject non-length-preserving rules, only risks non-termination if the
// oracle itself never terminates).
type BFSSolver struct {
	Rules  *ruleset.Ruleset
	Goal   *automaton.DFA
	Config Config
}

// NewBFSSolver builds a BFSSolver over rules and goal, expanding whichever
// alphabet is smaller so both share one.
func NewBFSSolver(rules *ruleset.Ruleset, goal *automaton.DFA, cfg Config) (*BFSSolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r, g, err := ensureSharedAlphabet(rules, goal)
	if err != nil {
		return nil, err
	}
	return &BFSSolver{Rules: r, Goal: g, Config: cfg}, nil
}

// Run implements Solver.
func (s *BFSSolver) Run(k int) (*automaton.DFA, error) {
	return s.RunWithEvents(k, nil)
}

// RunWithEvents implements Solver.
func (s *BFSSolver) RunWithEvents(k int, sink *EventSink) (*automaton.DFA, error) {
	sigK := s.Goal.Alphabet.BuildSigK(k)
	batch := oracle.NewBatchOracle(s.Rules, s.Goal)
	pool := newPool(s.Config.Workers, batch.Reachable)
	defer pool.close()

	type candidate struct {
		rep   []symset.Symbol
		index int
	}

	signatureOf := func(rep []symset.Symbol) []bool {
		suffixed := make([][]symset.Symbol, len(sigK))
		for i, suffix := range sigK {
			suffixed[i] = concat(rep, suffix)
		}
		return pool.computeBatch(suffixed)
	}

	out := automaton.New(s.Goal.Alphabet, 0, 0)
	seen := map[string]int{}
	rootSig := signatureOf(nil)
	rootIdx := out.AddState()
	out.Start = rootIdx
	out.SetAccepting(rootIdx, rootSig[0])
	seen[sigKey(rootSig)] = rootIdx

	frontier := []candidate{{rep: nil, index: rootIdx}}
	iteration := 0
	for len(frontier) > 0 {
		start := time.Now()
		var next []candidate
		for _, c := range frontier {
			for sym := 0; sym < s.Goal.Alphabet.Len(); sym++ {
				childRep := concat(c.rep, []symset.Symbol{symset.Symbol(sym)})
				childSig := signatureOf(childRep)
				key := sigKey(childSig)
				idx, known := seen[key]
				if !known {
					idx = out.AddState()
					out.SetAccepting(idx, childSig[0])
					seen[key] = idx
					next = append(next, candidate{rep: childRep, index: idx})
				}
				out.SetTransition(c.index, symset.Symbol(sym), idx)
			}
		}
		sink.emitPhase(PhaseEvent{Iteration: iteration, Phase: "expand", Duration: time.Since(start)})
		sink.emitDFA(DFAEvent{Iteration: iteration, DFA: out, Final: len(next) == 0})
		frontier = next
		iteration++
	}
	return out, nil
}

func concat(a, b []symset.Symbol) []symset.Symbol {
	out := make([]symset.Symbol, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

func sigKey(sig []bool) string {
	buf := make([]byte, len(sig))
	for i, b := range sig {
		if b {
			buf[i] = 1
		}
	}
	return string(buf)
}
