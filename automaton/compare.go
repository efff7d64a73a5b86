package automaton

import "github.com/demi-w/srsdfa/symset"

// Ordering is the result of a pointwise subset comparison between two
// DFAs (spec §9: "the subset order used by the auditor").
type Ordering int

const (
	Equal Ordering = iota
	Less           // receiver's language is a strict subset of other's
	Greater        // receiver's language is a strict superset of other's
	Incomparable
)

func (o Ordering) String() string {
	switch o {
	case Equal:
		return "Equal"
	case Less:
		return "Less"
	case Greater:
		return "Greater"
	default:
		return "Incomparable"
	}
}

type pairState struct{ a, b int }

// LanguageEqual decides language equality between d and other by a
// parallel walk from the pair of start states, and returns a shortest
// witnessing string when they differ (nil when equal).
func (d *DFA) LanguageEqual(other *DFA) (bool, []symset.Symbol) {
	if !d.Alphabet.Equal(other.Alphabet) {
		panic("automaton: LanguageEqual requires matching alphabets")
	}
	type item struct {
		p    pairState
		path []symset.Symbol
	}
	visited := map[pairState]bool{}
	start := pairState{d.Start, other.Start}
	queue := []item{{start, nil}}
	visited[start] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if d.Accepting[cur.p.a] != other.Accepting[cur.p.b] {
			return false, cur.path
		}
		for sym := 0; sym < d.Alphabet.Len(); sym++ {
			next := pairState{d.Trans[cur.p.a][sym], other.Trans[cur.p.b][sym]}
			if visited[next] {
				continue
			}
			visited[next] = true
			path := make([]symset.Symbol, len(cur.path)+1)
			copy(path, cur.path)
			path[len(cur.path)] = symset.Symbol(sym)
			queue = append(queue, item{next, path})
		}
	}
	return true, nil
}

// Compare performs the pointwise accepting-state comparison of spec §9: it
// walks d and other in parallel and classifies the relationship as Equal,
// Less (d ⊆ other), Greater (d ⊇ other), or Incomparable (both directions
// disagree somewhere).
func (d *DFA) Compare(other *DFA) Ordering {
	if !d.Alphabet.Equal(other.Alphabet) {
		panic("automaton: Compare requires matching alphabets")
	}
	dHasExtra, otherHasExtra := false, false
	visited := map[pairState]bool{}
	start := pairState{d.Start, other.Start}
	queue := []pairState{start}
	visited[start] = true
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		da, oa := d.Accepting[p.a], other.Accepting[p.b]
		if da && !oa {
			dHasExtra = true
		}
		if oa && !da {
			otherHasExtra = true
		}
		for sym := 0; sym < d.Alphabet.Len(); sym++ {
			next := pairState{d.Trans[p.a][sym], other.Trans[p.b][sym]}
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	switch {
	case !dHasExtra && !otherHasExtra:
		return Equal
	case !dHasExtra && otherHasExtra:
		return Less
	case dHasExtra && !otherHasExtra:
		return Greater
	default:
		return Incomparable
	}
}

// GreaterOrEqual reports whether d's language is a superset of or equal to
// other's — the comparison the proof-audit regression table checks
// (spec §8, property 2: "bad_dfa >= final_dfa").
func (d *DFA) GreaterOrEqual(other *DFA) bool {
	switch d.Compare(other) {
	case Equal, Greater:
		return true
	default:
		return false
	}
}

// pathStep is a BFS backpointer: the predecessor state and the symbol that
// reached the current state from it.
type pathStep struct {
	from int
	sym  symset.Symbol
}

// ShortestPathToState returns the shortest string that drives the DFA from
// its start state to target, found by BFS with backpointers. Returns
// ok=false if target is unreachable.
func (d *DFA) ShortestPathToState(target int) ([]symset.Symbol, bool) {
	if target == d.Start {
		return []symset.Symbol{}, true
	}
	parent := map[int]pathStep{}
	visited := map[int]bool{d.Start: true}
	queue := []int{d.Start}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for sym := 0; sym < d.Alphabet.Len(); sym++ {
			next := d.Trans[s][sym]
			if visited[next] {
				continue
			}
			visited[next] = true
			parent[next] = pathStep{from: s, sym: symset.Symbol(sym)}
			if next == target {
				return reconstructPath(parent, target), true
			}
			queue = append(queue, next)
		}
	}
	return nil, false
}

func reconstructPath(parent map[int]pathStep, target int) []symset.Symbol {
	var rev []symset.Symbol
	cur := target
	for {
		step, ok := parent[cur]
		if !ok {
			break
		}
		rev = append(rev, step.sym)
		cur = step.from
	}
	out := make([]symset.Symbol, len(rev))
	for i, s := range rev {
		out[len(rev)-1-i] = s
	}
	return out
}

// ShortestPathToPair finds the shortest string that, starting a parallel
// walk from (d.Start, other.Start), reaches a pair (a, b) satisfying pred.
func ShortestPathToPair(d, other *DFA, pred func(a, b int) bool) ([]symset.Symbol, bool) {
	start := pairState{d.Start, other.Start}
	if pred(start.a, start.b) {
		return []symset.Symbol{}, true
	}
	type step struct {
		from pairState
		sym  symset.Symbol
	}
	parent := map[pairState]step{}
	visited := map[pairState]bool{start: true}
	queue := []pairState{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for sym := 0; sym < d.Alphabet.Len(); sym++ {
			next := pairState{d.Trans[p.a][sym], other.Trans[p.b][sym]}
			if visited[next] {
				continue
			}
			visited[next] = true
			parent[next] = step{from: p, sym: symset.Symbol(sym)}
			if pred(next.a, next.b) {
				var rev []symset.Symbol
				cur := next
				for {
					st, ok := parent[cur]
					if !ok {
						break
					}
					rev = append(rev, st.sym)
					cur = st.from
				}
				out := make([]symset.Symbol, len(rev))
				for i, s := range rev {
					out[len(rev)-1-i] = s
				}
				return out, true
			}
			queue = append(queue, next)
		}
	}
	return nil, false
}
