package solver

import (
	"time"

	"github.com/demi-w/srsdfa/automaton"
)

// DFAEvent is a partial-DFA snapshot published after each outer iteration
// (spec §5, §9). Final is set on the last snapshot emitted before the
// solver terminates.
type DFAEvent struct {
	Iteration int
	DFA       *automaton.DFA
	Final     bool
}

// PhaseEvent reports the wall-clock duration of one phase of one outer
// iteration. The set of phase labels is a property of the solver variant
// (spec §9): BFS reports a single "expand" phase per iteration; Subset
// reports "implant", "link-graph", "propagate" and "resolve"; Minkid
// reports "expand", "link" and "propagate", plus one "ss-graph" phase with
// Iteration -1 before its first iteration.
type PhaseEvent struct {
	Iteration int
	Phase     string
	Duration  time.Duration
}

// EventSink is a single-producer/single-consumer pair of event streams a
// solver publishes to. Sends are non-blocking: a full channel drops the
// event rather than stall the solver (spec §5: "a slow subscriber must not
// block the solver"; §9: "drop-on-overflow").
type EventSink struct {
	DFAEvents   chan DFAEvent
	PhaseEvents chan PhaseEvent
}

// newEventSink allocates buffered channels of the given capacity. A
// capacity of 0 still permits unbuffered delivery to an already-waiting
// receiver, but nothing attached means every send immediately drops.
func newEventSink(bufferSize int) *EventSink {
	return &EventSink{
		DFAEvents:   make(chan DFAEvent, bufferSize),
		PhaseEvents: make(chan PhaseEvent, bufferSize),
	}
}

// close closes both streams. Call once, after the solver has emitted its
// final DFAEvent.
func (s *EventSink) close() {
	close(s.DFAEvents)
	close(s.PhaseEvents)
}

func (s *EventSink) emitDFA(ev DFAEvent) {
	if s == nil {
		return
	}
	select {
	case s.DFAEvents <- ev:
	default:
	}
}

func (s *EventSink) emitPhase(ev PhaseEvent) {
	if s == nil {
		return
	}
	select {
	case s.PhaseEvents <- ev:
	default:
	}
}

// timePhase runs fn, then emits a PhaseEvent reporting how long it took.
func (s *EventSink) timePhase(iteration int, phase string, fn func()) {
	start := time.Now()
	fn()
	s.emitPhase(PhaseEvent{Iteration: iteration, Phase: phase, Duration: time.Since(start)})
}
