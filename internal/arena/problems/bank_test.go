package problems

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProblems() []ProblemFull {
	return []ProblemFull{
		{ID: "e1", Title: "Easy One", Difficulty: DifficultyEasy},
		{ID: "e2", Title: "Easy Two", Difficulty: DifficultyEasy},
		{ID: "m1", Title: "Medium One", Difficulty: DifficultyMedium},
		{ID: "h1", Title: "Hard One", Difficulty: DifficultyHard},
		{ID: "g1", Title: "Garbage One", Difficulty: DifficultyEasy, ProblemType: TypeGarbage},
	}
}

func TestNewBank(t *testing.T) {
	t.Run("indexes regular and garbage pools separately", func(t *testing.T) {
		b, err := NewBank(testProblems())
		require.NoError(t, err)
		assert.Equal(t, 4, b.Len(), "garbage does not count toward the regular pool")

		p, ok := b.Get("m1")
		require.True(t, ok)
		assert.Equal(t, "Medium One", p.Title)

		g, ok := b.Get("g1")
		require.True(t, ok)
		assert.True(t, g.IsGarbage())
	})

	t.Run("rejects duplicates and missing ids", func(t *testing.T) {
		_, err := NewBank([]ProblemFull{
			{ID: "x", Difficulty: DifficultyEasy},
			{ID: "x", Difficulty: DifficultyEasy},
		})
		assert.Error(t, err)

		_, err = NewBank([]ProblemFull{{Title: "nameless", Difficulty: DifficultyEasy}})
		assert.Error(t, err)
	})

	t.Run("rejects unknown difficulties", func(t *testing.T) {
		_, err := NewBank([]ProblemFull{{ID: "x", Difficulty: "nightmare"}})
		assert.Error(t, err)
	})

	t.Run("requires at least one problem of each pool", func(t *testing.T) {
		_, err := NewBank([]ProblemFull{{ID: "g", Difficulty: DifficultyEasy, ProblemType: TypeGarbage}})
		assert.Error(t, err, "no regular problems")

		_, err = NewBank([]ProblemFull{{ID: "e", Difficulty: DifficultyEasy}})
		assert.Error(t, err, "no garbage problems")
	})
}

func TestSampleByDifficulty(t *testing.T) {
	b, err := NewBank(testProblems())
	require.NoError(t, err)

	t.Run("never deals a seen problem while unseen ones remain", func(t *testing.T) {
		seen := map[string]struct{}{}
		isSeen := func(id string) bool { _, ok := seen[id]; return ok }

		for i := 0; i < 4; i++ {
			p, ok := b.SampleByDifficulty(Weights{Easy: 1, Medium: 1, Hard: 1}, isSeen)
			require.True(t, ok)
			_, dup := seen[p.ID]
			require.False(t, dup, "dealt %s twice", p.ID)
			seen[p.ID] = struct{}{}
		}

		_, ok := b.SampleByDifficulty(Weights{Easy: 1, Medium: 1, Hard: 1}, isSeen)
		assert.False(t, ok, "pool exhausted")
	})

	t.Run("an exhausted tier spills into its neighbours", func(t *testing.T) {
		isSeen := func(id string) bool { return id == "e1" || id == "e2" }

		for i := 0; i < 20; i++ {
			p, ok := b.SampleByDifficulty(Weights{Easy: 100, Medium: 0, Hard: 0}, isSeen)
			require.True(t, ok)
			assert.NotEqual(t, DifficultyEasy, p.Difficulty)
		}
	})

	t.Run("a hundred percent weight stays in one tier", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			p, ok := b.SampleByDifficulty(Weights{Easy: 1, Medium: 0, Hard: 0}, nil)
			require.True(t, ok)
			assert.Equal(t, DifficultyEasy, p.Difficulty)
		}
	})

	t.Run("garbage never comes out of the regular sampler", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			p, ok := b.SampleByDifficulty(Weights{Easy: 1, Medium: 1, Hard: 1}, nil)
			require.True(t, ok)
			assert.False(t, p.IsGarbage())
		}
	})
}

func TestSampleGarbage(t *testing.T) {
	b, err := NewBank(testProblems())
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		g := b.SampleGarbage()
		assert.True(t, g.IsGarbage())
	}
}

func TestLoadFile(t *testing.T) {
	t.Run("loads a well-formed bank file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "problems.json")
		raw := `[
			{"id": "p1", "title": "One", "difficulty": "easy", "prompt": "do it"},
			{"id": "g1", "title": "Junk", "difficulty": "easy", "problemType": "garbage", "prompt": "clean it"}
		]`
		require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

		b, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, 1, b.Len())
	})

	t.Run("fails on a missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "absent.json"))
		assert.Error(t, err)
	})
}

func TestDefaultBank(t *testing.T) {
	b := DefaultBank()
	assert.Greater(t, b.Len(), 0)
	assert.True(t, b.SampleGarbage().IsGarbage())
}
