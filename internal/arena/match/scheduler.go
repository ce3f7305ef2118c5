package match

import (
	"container/heap"
	"time"
)

type eventKind uint8

const (
	evWarmupOver eventKind = iota + 1
	evMatchOver
	evProblemArrival
	evDebuffExpiry
	evBuffExpiry
	evBotAct
)

// scheduledEvent is an armed timer as inspectable state: target time, the
// generation stamps captured at arm time, and the subject. A fired event whose
// stamps no longer match current state is a no-op.
type scheduledEvent struct {
	at       time.Time
	kind     eventKind
	playerID string

	matchGen  uint64
	playerGen uint64

	seq uint64 // stable order for equal target times
}

type eventHeap []scheduledEvent

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].at.Equal(h[j].at) {
		return h[i].seq < h[j].seq
	}
	return h[i].at.Before(h[j].at)
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x interface{}) {
	*h = append(*h, x.(scheduledEvent))
}

func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	ev := old[n-1]
	*h = old[:n-1]
	return ev
}

// scheduler owns the room's pending timed events. It belongs to the actor
// goroutine and is never locked.
type scheduler struct {
	events eventHeap
	seq    uint64
}

func (s *scheduler) arm(ev scheduledEvent) {
	s.seq++
	ev.seq = s.seq
	heap.Push(&s.events, ev)
}

// nextAt reports when the loop timer should fire next.
func (s *scheduler) nextAt() (time.Time, bool) {
	if len(s.events) == 0 {
		return time.Time{}, false
	}
	return s.events[0].at, true
}

// popDue removes and returns the earliest event not after now.
func (s *scheduler) popDue(now time.Time) (scheduledEvent, bool) {
	if len(s.events) == 0 || s.events[0].at.After(now) {
		return scheduledEvent{}, false
	}
	return heap.Pop(&s.events).(scheduledEvent), true
}

// reset drops every pending event; used on room teardown. Cancellation during
// play is cooperative through generation stamps instead.
func (s *scheduler) reset() {
	s.events = s.events[:0]
}
