package solver

import (
	"github.com/demi-w/srsdfa/automaton"
	"github.com/demi-w/srsdfa/ruleset"
	"github.com/demi-w/srsdfa/symset"
)

// ssGraph is the SS link graph of spec §4.6: nodes are signature-set
// strings (indices 0..len(sigK)-1, matching symset.Alphabet.SigSetIndex),
// with an edge u -> v whenever one rule application rewrites u into v.
// Since Minkid requires a length-preserving ruleset (shared with Subset,
// checked at construction), a one-step rewrite of a string of length <= k
// always stays within S_k, so every edge's endpoints are themselves nodes
// of this graph. ssGraph additionally holds the SCC condensation used for
// ancestor/descendant queries.
type ssGraph struct {
	alphabet *symset.Alphabet
	sigK     [][]symset.Symbol
	raw      *intgraph
	scc      *sccResult
	cond     *intgraph
	reverse  []int // reverseTopoOrder of cond: a node's successors all precede it
}

func buildSSGraph(rules *ruleset.Ruleset, alphabet *symset.Alphabet, k int) *ssGraph {
	sigK := alphabet.BuildSigK(k)
	raw := newIntgraph(len(sigK))
	for i, s := range sigK {
		for _, next := range rules.OneStepRewrites(s) {
			if len(next) > k {
				continue // cannot happen for length-preserving rules, guarded anyway
			}
			j := alphabet.SigSetIndex(next)
			raw.addEdge(i, j)
		}
	}
	scc := raw.tarjanSCC()
	cond := raw.condense(scc)
	return &ssGraph{
		alphabet: alphabet,
		sigK:     sigK,
		raw:      raw,
		scc:      scc,
		cond:     cond,
		reverse:  cond.reverseTopoOrder(),
	}
}

// nodeOf returns the condensation node id containing string s.
func (g *ssGraph) nodeOf(s []symset.Symbol) int {
	return g.scc.component[g.alphabet.SigSetIndex(s)]
}

// dominates reports whether a can reach b by following zero or more SS
// link-graph edges (condensation-level), i.e. whether b is a (possibly
// non-strict) descendant of a. A naive per-call DFS is acceptable at the
// scales this system targets (spec §9: "a naive implementation (DFS per
// check) is acceptable... note the algorithmic complexity ceiling").
func (g *ssGraph) dominates(a, b int) bool {
	if a == b {
		return true
	}
	visited := make([]bool, len(g.cond.edges))
	var stack []int
	stack = append(stack, a)
	visited[a] = true
	for len(stack) > 0 {
		n := len(stack) - 1
		cur := stack[n]
		stack = stack[:n]
		if cur == b {
			return true
		}
		for _, next := range g.cond.edges[cur] {
			if !visited[next] {
				visited[next] = true
				stack = append(stack, next)
			}
		}
	}
	return false
}

// antichain is a set of condensation-node ids, no member dominating
// another, representing (via downward closure under the SS link graph)
// the set of signature-set strings a DFA state's Minkid set covers.
type antichain []int

// add inserts x into A, maintaining the antichain invariant (spec §4.6,
// §9 "Antichain data structure"):
//   - if some a in A dominates x, x is already covered; A is unchanged.
//   - if x dominates some a in A, x generalizes a; that a is dropped.
//   - otherwise x is incomparable to every member and is simply added.
func (g *ssGraph) add(a antichain, x int) antichain {
	for _, m := range a {
		if g.dominates(m, x) {
			return a
		}
	}
	out := make(antichain, 0, len(a)+1)
	for _, m := range a {
		if !g.dominates(x, m) {
			out = append(out, m)
		}
	}
	out = append(out, x)
	return out
}

// union folds every member of b into a.
func (g *ssGraph) union(a, b antichain) antichain {
	for _, x := range b {
		a = g.add(a, x)
	}
	return a
}

// equal reports whether two antichains cover the same set (order-
// independent, duplicate-free by construction).
func (a antichain) equal(b antichain) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[int]bool, len(a))
	for _, m := range a {
		seen[m] = true
	}
	for _, m := range b {
		if !seen[m] {
			return false
		}
	}
	return true
}

func (a antichain) key() string {
	buf := make([]byte, 0, len(a)*5)
	sorted := append(antichain(nil), a...)
	sortInts(sorted)
	for _, v := range sorted {
		buf = appendInt(buf, v)
		buf = append(buf, ',')
	}
	return string(buf)
}

func appendInt(buf []byte, v int) []byte {
	if v == 0 {
		return append(buf, '0')
	}
	start := len(buf)
	for v > 0 {
		buf = append(buf, byte('0'+v%10))
		v /= 10
	}
	for i, j := start, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}

// goalMinkids computes, for every state of the goal automaton, the minimal
// antichain of SS nodes whose descendants are exactly the signature-set
// strings that drive the goal DFA from that state to acceptance (spec
// §4.6 "Preparation"). Processed in reverse topological order over the
// condensation so that, for a node x, every node reachable from x has
// already contributed to earlier antichains before x itself is considered.
func (g *ssGraph) goalMinkids(goal *automaton.DFA) []antichain {
	result := make([]antichain, goal.NumStates())
	for _, x := range g.reverse {
		members := g.scc.members[x]
		for gState := 0; gState < goal.NumStates(); gState++ {
			acceptReaching := false
			for _, idx := range members {
				if goal.ContainsFrom(gState, g.sigK[idx]) {
					acceptReaching = true
					break
				}
			}
			if acceptReaching {
				result[gState] = g.add(result[gState], x)
			}
		}
	}
	return result
}
