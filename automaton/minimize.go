package automaton

import "github.com/demi-w/srsdfa/symset"

// Minimize returns a new DFA with the minimum number of states accepting
// the same language, obtained by partition refinement: states start
// partitioned by accepting flag, then repeatedly split whenever two states
// in the same block transition to different blocks on some symbol. The
// process converges when a refinement pass produces no new blocks, which
// happens at the canonical (Myhill-Nerode) partition; unreachable states
// are dropped first.
func (d *DFA) Minimize() *DFA {
	reachable := d.reachableStates()

	partition := make([]int, d.NumStates())
	for _, s := range reachable {
		if d.Accepting[s] {
			partition[s] = 1
		}
	}
	numBlocks := 2

	for {
		signature := make(map[string]int, len(reachable))
		next := make([]int, d.NumStates())
		nextBlocks := 0
		changed := false

		for _, s := range reachable {
			key := signatureKey(partition[s], d.Trans[s], partition)
			id, ok := signature[key]
			if !ok {
				id = nextBlocks
				signature[key] = id
				nextBlocks++
			}
			next[s] = id
			if id != partition[s] {
				changed = true
			}
		}
		partition = next
		if nextBlocks == numBlocks && !changed {
			break
		}
		numBlocks = nextBlocks
	}

	out := New(d.Alphabet, numBlocks, partition[d.Start])
	blockSeen := make([]bool, numBlocks)
	for _, s := range reachable {
		b := partition[s]
		if blockSeen[b] {
			continue
		}
		blockSeen[b] = true
		out.SetAccepting(b, d.Accepting[s])
		for sym := 0; sym < d.Alphabet.Len(); sym++ {
			out.SetTransition(b, symset.Symbol(sym), partition[d.Trans[s][sym]])
		}
	}
	return out
}

func signatureKey(block int, trans []int, partition []int) string {
	buf := make([]byte, 0, 4+4*len(trans))
	buf = appendInt(buf, block)
	for _, t := range trans {
		buf = append(buf, ',')
		buf = appendInt(buf, partition[t])
	}
	return string(buf)
}

func appendInt(buf []byte, v int) []byte {
	if v == 0 {
		return append(buf, '0')
	}
	neg := v < 0
	if neg {
		v = -v
	}
	start := len(buf)
	for v > 0 {
		buf = append(buf, byte('0'+v%10))
		v /= 10
	}
	if neg {
		buf = append(buf, '-')
	}
	// reverse the digits just appended
	for i, j := start, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf
}

func (d *DFA) reachableStates() []int {
	visited := make([]bool, d.NumStates())
	visited[d.Start] = true
	queue := []int{d.Start}
	order := []int{d.Start}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for sym := 0; sym < d.Alphabet.Len(); sym++ {
			next := d.Trans[s][sym]
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
				order = append(order, next)
			}
		}
	}
	return order
}
