package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddBots(t *testing.T) {
	t.Run("host fills seats with named bots", func(t *testing.T) {
		tr := newTestRoom(t, DefaultSettings())
		tr.join(t, "alice", "c1")
		tr.addBots(t, "c1", 3)

		require.Len(t, tr.r.players, 4)
		seen := map[string]bool{}
		for _, p := range tr.r.players[1:] {
			assert.Equal(t, RoleBot, p.Role)
			assert.True(t, p.Connected(), "bots always count as connected")
			assert.False(t, seen[p.Username], "bot names must be unique")
			seen[p.Username] = true
		}
	})

	t.Run("rejected when seats run out", func(t *testing.T) {
		settings := DefaultSettings()
		settings.MaxPlayers = 3
		tr := newTestRoom(t, settings)
		tr.join(t, "alice", "c1")

		tr.r.step(envelope{connID: "c1", cmd: AddBots{Count: 3}})
		notice, ok := lastError(tr.emit, "c1")
		require.True(t, ok)
		assert.Equal(t, CodeBadRequest, notice.Code)
		assert.Len(t, tr.r.players, 1)
	})

	t.Run("only the host may add bots", func(t *testing.T) {
		tr := newTestRoom(t, DefaultSettings())
		tr.join(t, "alice", "c1")
		tr.join(t, "bob", "c2")

		tr.r.step(envelope{connID: "c2", cmd: AddBots{Count: 1}})
		notice, ok := lastError(tr.emit, "c2")
		require.True(t, ok)
		assert.Equal(t, CodeForbidden, notice.Code)
	})

	t.Run("locked once the match starts", func(t *testing.T) {
		tr, _, _ := startedPair(t)

		tr.r.step(envelope{connID: "c1", cmd: AddBots{Count: 1}})
		notice, ok := lastError(tr.emit, "c1")
		require.True(t, ok)
		assert.Equal(t, CodeForbidden, notice.Code)
	})
}

func TestBotAct(t *testing.T) {
	t.Run("a bot submit flows through the same scoring path", func(t *testing.T) {
		tr := newTestRoom(t, DefaultSettings())
		tr.join(t, "alice", "c1")
		tr.addBots(t, "c1", 1)
		tr.start(t, "c1")

		var bot *Player
		for _, p := range tr.r.players {
			if p.IsBot() {
				bot = p
			}
		}
		require.NotNil(t, bot)
		require.NotNil(t, bot.Current)

		before := bot.Current.ID
		tr.r.fireBotAct(bot)

		// pass or fail, the bot stays in the match and keeps a problem
		require.NotNil(t, bot.Current)
		if bot.Score > 0 {
			assert.NotEqual(t, before, bot.Current.ID)
			assert.Equal(t, 1, bot.Streak)
		} else {
			assert.Equal(t, 0, bot.Streak)
		}
	})

	t.Run("eliminated bots stop acting", func(t *testing.T) {
		tr := newTestRoom(t, DefaultSettings())
		tr.join(t, "alice", "c1")
		tr.addBots(t, "c1", 2)
		tr.start(t, "c1")

		var bot *Player
		for _, p := range tr.r.players {
			if p.IsBot() {
				bot = p
				break
			}
		}
		require.NotNil(t, bot)
		tr.r.eliminate(bot)
		score := bot.Score

		tr.r.fireBotAct(bot)
		assert.Equal(t, score, bot.Score)
	})
}
