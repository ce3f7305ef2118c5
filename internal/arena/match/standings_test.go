package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStandings(t *testing.T) {
	t.Run("orders by score descending", func(t *testing.T) {
		tr := newTestRoom(t, DefaultSettings())
		alice := tr.join(t, "alice", "c1")
		bob := tr.join(t, "bob", "c2")
		carol := tr.join(t, "carol", "c3")
		tr.start(t, "c1")

		alice.Score = 10
		bob.Score = 30
		carol.Score = 20

		standings := tr.r.computeStandings()
		require.Len(t, standings, 3)
		assert.Equal(t, []string{"bob", "carol", "alice"}, names(standings))
		assert.Equal(t, 1, standings[0].Rank)
		assert.Equal(t, 3, standings[2].Rank)
	})

	t.Run("ties favor survivors over the eliminated", func(t *testing.T) {
		tr, alice, bob := startedPair(t)
		tr.join(t, "carol", "c3")
		alice.Score = 20
		bob.Score = 20
		bob.Status = StatusEliminated
		bob.eliminatedAt = tr.clock.Now()

		standings := tr.r.computeStandings()
		assert.Equal(t, "alice", standings[0].Username)
		assert.Equal(t, "bob", standings[1].Username)
	})

	t.Run("ties among the eliminated favor whoever lasted longer", func(t *testing.T) {
		tr, alice, bob := startedPair(t)
		tr.join(t, "carol", "c3")
		now := tr.clock.Now()

		alice.Score = 20
		alice.Status = StatusEliminated
		alice.eliminatedAt = now.Add(time.Minute)
		bob.Score = 20
		bob.Status = StatusEliminated
		bob.eliminatedAt = now

		standings := tr.r.computeStandings()
		assert.Equal(t, "alice", standings[0].Username)
	})

	t.Run("full ties break toward the earlier joiner", func(t *testing.T) {
		tr, alice, bob := startedPair(t)
		alice.Score = 20
		bob.Score = 20

		standings := tr.r.computeStandings()
		assert.Equal(t, "alice", standings[0].Username)
		assert.Equal(t, "bob", standings[1].Username)
	})

	t.Run("spectators never appear", func(t *testing.T) {
		tr, _, _ := startedPair(t)
		_, err := tr.r.handleJoin("watcher")
		require.NoError(t, err)

		standings := tr.r.computeStandings()
		assert.Len(t, standings, 2)
	})

	t.Run("bots are ranked like anyone else", func(t *testing.T) {
		tr := newTestRoom(t, DefaultSettings())
		tr.join(t, "alice", "c1")
		tr.addBots(t, "c1", 1)
		tr.start(t, "c1")

		standings := tr.r.computeStandings()
		require.Len(t, standings, 2)
		roles := map[Role]bool{}
		for _, s := range standings {
			roles[s.Role] = true
		}
		assert.True(t, roles[RoleBot])
		assert.True(t, roles[RolePlayer])
	})
}

func names(standings []StandingEntry) []string {
	out := make([]string, len(standings))
	for i, s := range standings {
		out[i] = s.Username
	}
	return out
}
