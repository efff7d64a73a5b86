// Package oracle implements the reachability oracle shared by every
// solver: given a string and a goal automaton, decide whether the string
// rewrites in zero or more steps into a string the goal accepts.
package oracle

import (
	"strings"

	"github.com/demi-w/srsdfa/automaton"
	"github.com/demi-w/srsdfa/ruleset"
	"github.com/demi-w/srsdfa/symset"
)

// Oracle decides reachability of a string into the goal automaton's
// language under repeated rule application.
type Oracle interface {
	Reachable(s []symset.Symbol) bool
}

// BatchOracle performs a fresh breadth-first search over the rewrite graph
// on every call, with no memoization. It holds no mutable state once
// constructed, so a single BatchOracle may be shared by every goroutine in
// a worker pool (spec §5: "absent (BFS in batch mode: no memo)").
type BatchOracle struct {
	Rules *ruleset.Ruleset
	Goal  *automaton.DFA
}

// NewBatchOracle builds a BatchOracle over the given ruleset and goal DFA,
// which must already share one alphabet.
func NewBatchOracle(rules *ruleset.Ruleset, goal *automaton.DFA) *BatchOracle {
	return &BatchOracle{Rules: rules, Goal: goal}
}

// Reachable performs an exhaustive breadth-first search of the rewrite
// graph starting at s, returning true as soon as some reachable string is
// accepted by Goal.
func (o *BatchOracle) Reachable(s []symset.Symbol) bool {
	if o.Goal.Contains(s) {
		return true
	}
	visited := map[string]bool{key(s): true}
	queue := [][]symset.Symbol{s}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range o.Rules.OneStepRewrites(cur) {
			k := key(next)
			if visited[k] {
				continue
			}
			visited[k] = true
			if o.Goal.Contains(next) {
				return true
			}
			queue = append(queue, next)
		}
	}
	return false
}

// MemoOracle wraps a BatchOracle with positive and negative memoization
// local to one solver invocation (spec §4.3). Positive answers are cached
// along the actual backpointer chain that proved reachability; negative
// answers are cached for every string visited by an exhausted search,
// which is sound because the full forward-rewrite closure of any visited
// string is itself a subset of the search's (already exhausted) visited
// set. Not safe for concurrent use — construct one per sequential solver
// iteration and call Clear between outer iterations (spec §9 Open
// Question: "clear between iterations" is this module's resolved policy,
// documented in DESIGN.md).
type MemoOracle struct {
	Rules *ruleset.Ruleset
	Goal  *automaton.DFA

	positive map[string]bool
	negative map[string]bool
}

// NewMemoOracle builds a MemoOracle over the given ruleset and goal DFA.
func NewMemoOracle(rules *ruleset.Ruleset, goal *automaton.DFA) *MemoOracle {
	return &MemoOracle{
		Rules:    rules,
		Goal:     goal,
		positive: make(map[string]bool),
		negative: make(map[string]bool),
	}
}

// Clear drops both memo tables. Call between outer solver iterations.
func (o *MemoOracle) Clear() {
	o.positive = make(map[string]bool)
	o.negative = make(map[string]bool)
}

// Reachable decides reachability of s, consulting and updating the memo
// tables.
func (o *MemoOracle) Reachable(s []symset.Symbol) bool {
	sk := key(s)
	if o.positive[sk] {
		return true
	}
	if o.negative[sk] {
		return false
	}
	if o.Goal.Contains(s) {
		o.positive[sk] = true
		return true
	}

	visited := map[string]memoNode{sk: {hasParent: false}}
	order := []string{sk}
	queue := [][]symset.Symbol{s}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curKey := key(cur)
		if o.positive[curKey] {
			o.markChain(visited, curKey)
			return true
		}
		for _, next := range o.Rules.OneStepRewrites(cur) {
			nk := key(next)
			if _, ok := visited[nk]; ok {
				continue
			}
			visited[nk] = memoNode{parent: curKey, hasParent: true}
			order = append(order, nk)
			if o.Goal.Contains(next) {
				o.markChain(visited, nk)
				return true
			}
			queue = append(queue, next)
		}
	}

	for _, k := range order {
		o.negative[k] = true
	}
	return false
}

// memoNode is a backpointer entry recorded while exploring the rewrite
// graph from a queried string.
type memoNode struct {
	parent    string
	hasParent bool
}

// markChain walks backpointers from leaf up to the root, marking every
// string on the chain as positively reachable.
func (o *MemoOracle) markChain(visited map[string]memoNode, leaf string) {
	cur := leaf
	for {
		n := visited[cur]
		o.positive[cur] = true
		if !n.hasParent {
			break
		}
		cur = n.parent
	}
}

func key(s []symset.Symbol) string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for _, sym := range s {
		b.WriteByte(byte(sym))
		b.WriteByte(0)
	}
	return b.String()
}
