package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("pops in time order", func(t *testing.T) {
		var s scheduler
		s.arm(scheduledEvent{at: base.Add(30 * time.Second), kind: evMatchOver})
		s.arm(scheduledEvent{at: base.Add(10 * time.Second), kind: evWarmupOver})
		s.arm(scheduledEvent{at: base.Add(20 * time.Second), kind: evProblemArrival})

		at, ok := s.nextAt()
		require.True(t, ok)
		assert.Equal(t, base.Add(10*time.Second), at)

		ev, ok := s.popDue(base.Add(25 * time.Second))
		require.True(t, ok)
		assert.Equal(t, evWarmupOver, ev.kind)

		ev, ok = s.popDue(base.Add(25 * time.Second))
		require.True(t, ok)
		assert.Equal(t, evProblemArrival, ev.kind)

		_, ok = s.popDue(base.Add(25 * time.Second))
		assert.False(t, ok, "the match-over event is not due yet")
	})

	t.Run("equal times pop in arm order", func(t *testing.T) {
		var s scheduler
		s.arm(scheduledEvent{at: base, kind: evDebuffExpiry})
		s.arm(scheduledEvent{at: base, kind: evBuffExpiry})

		ev, _ := s.popDue(base)
		assert.Equal(t, evDebuffExpiry, ev.kind)
		ev, _ = s.popDue(base)
		assert.Equal(t, evBuffExpiry, ev.kind)
	})

	t.Run("reset drops everything", func(t *testing.T) {
		var s scheduler
		s.arm(scheduledEvent{at: base, kind: evMatchOver})
		s.reset()

		_, ok := s.nextAt()
		assert.False(t, ok)
	})
}

func TestStaleEventFiring(t *testing.T) {
	t.Run("events from an older match generation are ignored", func(t *testing.T) {
		tr, alice, _ := startedPair(t)
		stack := alice.StackSize()

		tr.r.fire(scheduledEvent{
			kind:      evProblemArrival,
			playerID:  alice.ID,
			matchGen:  tr.r.matchGen - 1,
			playerGen: alice.gen,
		})
		assert.Equal(t, stack, alice.StackSize())
	})

	t.Run("events stamped with an older player generation are ignored", func(t *testing.T) {
		tr, alice, _ := startedPair(t)
		stack := alice.StackSize()

		tr.r.fire(scheduledEvent{
			kind:      evProblemArrival,
			playerID:  alice.ID,
			matchGen:  tr.r.matchGen,
			playerGen: alice.arrivalGen - 1,
		})
		assert.Equal(t, stack, alice.StackSize())
	})

	t.Run("retiming arrivals leaves the player's other timers alive", func(t *testing.T) {
		tr, alice, bob := startedPair(t)
		tr.r.applyAttack(bob, alice, AttackDDoS)
		require.NotNil(t, alice.Debuff)

		tr.r.rearmArrival(alice)
		tr.clock.Advance(13 * time.Second)
		tr.r.fire(scheduledEvent{
			kind:      evDebuffExpiry,
			playerID:  alice.ID,
			matchGen:  tr.r.matchGen,
			playerGen: alice.gen,
		})
		assert.Nil(t, alice.Debuff)
	})

	t.Run("events for a departed player are ignored", func(t *testing.T) {
		tr, _, _ := startedPair(t)

		tr.r.fire(scheduledEvent{
			kind:     evProblemArrival,
			playerID: "gone",
			matchGen: tr.r.matchGen,
		})
		assert.Equal(t, PhaseWarmup, tr.r.phase)
	})
}
