package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("run allows one per two seconds", func(t *testing.T) {
		l := newLimiter()

		_, ok := l.allow(throttleRun, base)
		assert.True(t, ok)

		retry, ok := l.allow(throttleRun, base.Add(500*time.Millisecond))
		assert.False(t, ok)
		assert.Equal(t, 1500*time.Millisecond, retry)

		_, ok = l.allow(throttleRun, base.Add(2*time.Second))
		assert.True(t, ok)
	})

	t.Run("chat allows two per second", func(t *testing.T) {
		l := newLimiter()

		_, ok := l.allow(throttleChat, base)
		assert.True(t, ok)
		_, ok = l.allow(throttleChat, base.Add(100*time.Millisecond))
		assert.True(t, ok)
		_, ok = l.allow(throttleChat, base.Add(200*time.Millisecond))
		assert.False(t, ok)

		_, ok = l.allow(throttleChat, base.Add(time.Second))
		assert.True(t, ok)
	})

	t.Run("code updates allow ten per second", func(t *testing.T) {
		l := newLimiter()

		for i := 0; i < 10; i++ {
			_, ok := l.allow(throttleCodeUpdate, base.Add(time.Duration(i)*50*time.Millisecond))
			assert.True(t, ok, "update %d", i)
		}
		_, ok := l.allow(throttleCodeUpdate, base.Add(600*time.Millisecond))
		assert.False(t, ok)
	})

	t.Run("kinds are throttled independently", func(t *testing.T) {
		l := newLimiter()

		_, ok := l.allow(throttleRun, base)
		assert.True(t, ok)
		_, ok = l.allow(throttleSubmit, base)
		assert.True(t, ok)
		_, ok = l.allow(throttleChat, base)
		assert.True(t, ok)
	})
}

func TestLimiterPerConnection(t *testing.T) {
	tr, _, _ := startedPair(t)
	tr.emit.reset()

	// alice exhausts the run window; bob is untouched
	tr.r.step(envelope{connID: "c1", cmd: RunCode{Code: "a"}})
	tr.r.step(envelope{connID: "c1", cmd: RunCode{Code: "a"}})
	tr.r.step(envelope{connID: "c2", cmd: RunCode{Code: "b"}})

	assert.Len(t, tr.emit.byKind("c1", "error"), 1)
	assert.Empty(t, tr.emit.byKind("c2", "error"))
}
