package match

import (
	"testing"
	"time"

	"github.com/codeclash-games/codeclash/internal/arena/problems"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShop(t *testing.T) {
	t.Run("rejects a purchase the player cannot afford", func(t *testing.T) {
		tr, alice, _ := startedPair(t)
		alice.Score = 4

		tr.r.step(envelope{connID: "c1", cmd: SpendPoints{Item: ItemHint}})
		notice, ok := lastError(tr.emit, "c1")
		require.True(t, ok)
		assert.Equal(t, CodeBadRequest, notice.Code)
		assert.Equal(t, 4, alice.Score, "a rejected purchase deducts nothing")
	})

	t.Run("rejects unknown items", func(t *testing.T) {
		tr, alice, _ := startedPair(t)
		alice.Score = 100

		tr.r.step(envelope{connID: "c1", cmd: SpendPoints{Item: "goldenKeyboard"}})
		notice, ok := lastError(tr.emit, "c1")
		require.True(t, ok)
		assert.Equal(t, CodeBadRequest, notice.Code)
		assert.Equal(t, 100, alice.Score)
	})

	t.Run("shop is closed outside a match", func(t *testing.T) {
		tr := newTestRoom(t, DefaultSettings())
		alice := tr.join(t, "alice", "c1")
		alice.Score = 100

		tr.r.step(envelope{connID: "c1", cmd: SpendPoints{Item: ItemHint}})
		notice, ok := lastError(tr.emit, "c1")
		require.True(t, ok)
		assert.Equal(t, CodeForbidden, notice.Code)
	})

	t.Run("clearDebuff removes the active debuff and starts the grace period", func(t *testing.T) {
		tr, alice, bob := startedPair(t)
		bob.Score = 50
		tr.r.applyAttack(alice, bob, AttackDDoS)
		require.NotNil(t, bob.Debuff)

		tr.r.step(envelope{connID: "c2", cmd: SpendPoints{Item: ItemClearDebuff}})

		assert.Nil(t, bob.Debuff)
		assert.Equal(t, 35, bob.Score)
		assert.Equal(t, StatusCoding, bob.Status)

		tr.r.applyAttack(alice, bob, AttackVimLock)
		assert.Nil(t, bob.Debuff, "purchase grants the same grace as natural expiry")
	})

	t.Run("clearDebuff without a debuff is rejected", func(t *testing.T) {
		tr, alice, _ := startedPair(t)
		alice.Score = 50

		tr.r.step(envelope{connID: "c1", cmd: SpendPoints{Item: ItemClearDebuff}})
		notice, ok := lastError(tr.emit, "c1")
		require.True(t, ok)
		assert.Equal(t, CodeBadRequest, notice.Code)
		assert.Equal(t, 50, alice.Score)
	})

	t.Run("memoryDefrag strips garbage from the stack", func(t *testing.T) {
		tr, alice, _ := startedPair(t)
		alice.Score = 50
		garbage := tr.r.config.Bank.SampleGarbage()
		alice.Queue = append(alice.Queue, garbage.Summary(), garbage.Summary())
		regular := alice.StackSize() - 2

		tr.r.step(envelope{connID: "c1", cmd: SpendPoints{Item: ItemMemoryDefrag}})

		assert.Equal(t, regular, alice.StackSize())
		for _, q := range alice.Queue {
			assert.False(t, q.Garbage)
		}
		assert.Equal(t, 40, alice.Score)
	})

	t.Run("memoryDefrag with a clean stack is rejected", func(t *testing.T) {
		tr, alice, _ := startedPair(t)
		alice.Score = 50

		tr.r.step(envelope{connID: "c1", cmd: SpendPoints{Item: ItemMemoryDefrag}})
		notice, ok := lastError(tr.emit, "c1")
		require.True(t, ok)
		assert.Equal(t, CodeBadRequest, notice.Code)
		assert.Equal(t, 50, alice.Score)
	})

	t.Run("skipProblem swaps the problem and leaves the stack alone", func(t *testing.T) {
		tr, alice, _ := startedPair(t)
		alice.Score = 50
		before := alice.Current.ID
		stack := alice.StackSize()
		queued := append([]problems.Summary{}, alice.Queue...)

		tr.r.step(envelope{connID: "c1", cmd: SpendPoints{Item: ItemSkipProblem}})

		assert.NotEqual(t, before, alice.Current.ID)
		assert.Equal(t, stack, alice.StackSize())
		assert.Equal(t, queued, alice.Queue)
		assert.Equal(t, 30, alice.Score)
		assert.Equal(t, 0, alice.Streak)
	})

	t.Run("rateLimiter buff slows arrivals and respects its cooldown", func(t *testing.T) {
		tr, alice, _ := startedPair(t)
		alice.Score = 100

		tr.r.step(envelope{connID: "c1", cmd: SpendPoints{Item: ItemRateLimiter}})
		require.NotNil(t, alice.Buff)
		assert.Equal(t, buffRateLimiter, alice.Buff.Kind)
		assert.Equal(t, 75, alice.Score)
		assert.Equal(t, 2*warmupArrivalInterval, tr.r.arrivalInterval(alice))

		// buff expires after 30s, cooldown holds until 60s
		tr.advanceAndFire(31 * time.Second)
		require.Nil(t, alice.Buff)

		tr.r.step(envelope{connID: "c1", cmd: SpendPoints{Item: ItemRateLimiter}})
		notice, ok := lastError(tr.emit, "c1")
		require.True(t, ok)
		assert.Equal(t, CodeBadRequest, notice.Code)
		assert.Equal(t, 75, alice.Score)

		tr.clock.Advance(30 * time.Second)
		tr.r.step(envelope{connID: "c1", cmd: SpendPoints{Item: ItemRateLimiter}})
		require.NotNil(t, alice.Buff)
		assert.Equal(t, 50, alice.Score)
	})

	t.Run("a second buff cannot be stacked", func(t *testing.T) {
		tr, alice, _ := startedPair(t)
		alice.Score = 100

		tr.r.step(envelope{connID: "c1", cmd: SpendPoints{Item: ItemRateLimiter}})
		require.NotNil(t, alice.Buff)

		tr.r.step(envelope{connID: "c1", cmd: SpendPoints{Item: ItemRateLimiter}})
		notice, ok := lastError(tr.emit, "c1")
		require.True(t, ok)
		assert.Equal(t, CodeBadRequest, notice.Code)
		assert.Equal(t, 75, alice.Score)
	})

	t.Run("hint reveals progressively and charges per hint", func(t *testing.T) {
		tr, alice, _ := startedPair(t)
		alice.Score = 50
		require.NotEmpty(t, alice.Current.Hints)

		tr.r.step(envelope{connID: "c1", cmd: SpendPoints{Item: ItemHint}})

		assert.Equal(t, 1, alice.RevealedHints)
		assert.Equal(t, 45, alice.Score)

		revealed := tr.emit.byKind("c1", "hint-revealed")
		require.Len(t, revealed, 1)
		hint := revealed[0].(HintRevealed)
		assert.Equal(t, alice.Current.Hints[0], hint.Text)
		assert.Equal(t, 0, hint.Index)
	})

	t.Run("hint is rejected once every hint is out", func(t *testing.T) {
		tr, alice, _ := startedPair(t)
		alice.Score = 50
		alice.RevealedHints = len(alice.Current.Hints)

		tr.r.step(envelope{connID: "c1", cmd: SpendPoints{Item: ItemHint}})
		notice, ok := lastError(tr.emit, "c1")
		require.True(t, ok)
		assert.Equal(t, CodeBadRequest, notice.Code)
		assert.Equal(t, 50, alice.Score)
	})
}
