package solver

// intgraph is a small directed-graph toolkit over dense integer node ids,
// used by Subset and Minkid to condense the rule-induced link graph into
// strongly connected components before reverse-topological propagation
// (spec §4.5 step 3, §4.6, §9: "condensation of cyclic graphs"). Neither
// lvlath/core nor lvlath/algorithms expose SCC or topological-sort
// primitives (see DESIGN.md), so this is hand-rolled over plain
// adjacency lists.
type intgraph struct {
	n     int
	edges [][]int // adjacency list, edges[u] = destinations of u's out-edges
}

func newIntgraph(n int) *intgraph {
	return &intgraph{n: n, edges: make([][]int, n)}
}

func (g *intgraph) addEdge(u, v int) {
	for _, existing := range g.edges[u] {
		if existing == v {
			return
		}
	}
	g.edges[u] = append(g.edges[u], v)
}

// sccResult maps every node to its component id (0-indexed, in no
// particular order) and lists the members of each component.
type sccResult struct {
	component []int
	members   [][]int
}

// tarjanSCC computes strongly connected components via Tarjan's algorithm,
// run iteratively (an explicit stack) so it does not blow the goroutine
// stack on the link graphs this system builds, which can have thousands of
// nodes at moderate k.
func (g *intgraph) tarjanSCC() *sccResult {
	const unvisited = -1
	index := make([]int, g.n)
	lowlink := make([]int, g.n)
	onStack := make([]bool, g.n)
	for i := range index {
		index[i] = unvisited
	}
	var stack []int
	var result sccResult
	result.component = make([]int, g.n)
	for i := range result.component {
		result.component[i] = unvisited
	}
	nextIndex := 0

	type frame struct {
		node    int
		edgePos int
	}

	for start := 0; start < g.n; start++ {
		if index[start] != unvisited {
			continue
		}
		var call []frame
		call = append(call, frame{node: start})
		index[start] = nextIndex
		lowlink[start] = nextIndex
		nextIndex++
		stack = append(stack, start)
		onStack[start] = true

		for len(call) > 0 {
			top := &call[len(call)-1]
			v := top.node
			if top.edgePos < len(g.edges[v]) {
				w := g.edges[v][top.edgePos]
				top.edgePos++
				if index[w] == unvisited {
					index[w] = nextIndex
					lowlink[w] = nextIndex
					nextIndex++
					stack = append(stack, w)
					onStack[w] = true
					call = append(call, frame{node: w})
				} else if onStack[w] {
					if index[w] < lowlink[v] {
						lowlink[v] = index[w]
					}
				}
				continue
			}
			call = call[:len(call)-1]
			if len(call) > 0 {
				parent := &call[len(call)-1]
				if lowlink[v] < lowlink[parent.node] {
					lowlink[parent.node] = lowlink[v]
				}
			}
			if lowlink[v] == index[v] {
				var members []int
				for {
					n := len(stack) - 1
					w := stack[n]
					stack = stack[:n]
					onStack[w] = false
					result.component[w] = len(result.members)
					members = append(members, w)
					if w == v {
						break
					}
				}
				result.members = append(result.members, members)
			}
		}
	}
	return &result
}

// condense builds the condensation graph: one node per SCC, with an edge
// c1 -> c2 whenever some original edge crosses from a member of c1 to a
// member of c2 (c1 != c2).
func (g *intgraph) condense(scc *sccResult) *intgraph {
	cg := newIntgraph(len(scc.members))
	for u, outs := range g.edges {
		cu := scc.component[u]
		for _, v := range outs {
			cv := scc.component[v]
			if cu != cv {
				cg.addEdge(cu, cv)
			}
		}
	}
	return cg
}

// reverseTopoOrder returns a topological order of g's nodes such that every
// edge u->v has u appearing after v (i.e. the order to visit nodes so that
// all of a node's successors are processed first). g must be a DAG (call
// on a condensation, never a raw cyclic link graph).
func (g *intgraph) reverseTopoOrder() []int {
	indeg := make([]int, g.n)
	for _, outs := range g.edges {
		for _, v := range outs {
			indeg[v]++
		}
	}
	// Kahn's algorithm over the reverse graph: start from sinks (no
	// out-edges in g, i.e. indegree 0 in the transpose) and peel inward.
	outdeg := make([]int, g.n)
	rev := make([][]int, g.n)
	for u, outs := range g.edges {
		outdeg[u] = len(outs)
		for _, v := range outs {
			rev[v] = append(rev[v], u)
		}
	}
	var queue []int
	for n := 0; n < g.n; n++ {
		if outdeg[n] == 0 {
			queue = append(queue, n)
		}
	}
	order := make([]int, 0, g.n)
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)
		for _, u := range rev[n] {
			outdeg[u]--
			if outdeg[u] == 0 {
				queue = append(queue, u)
			}
		}
	}
	return order
}
