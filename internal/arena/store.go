package arena

import (
	"fmt"

	"github.com/codeclash-games/codeclash/internal/arena/match"
	matchDb "github.com/codeclash-games/codeclash/internal/database/match/database"
	"github.com/codeclash-games/codeclash/internal/database/match/model"
)

// boltMatchStore adapts the bolt-backed match database to the session's
// persistence gateway.
type boltMatchStore struct {
	db *matchDb.DB
}

var _ match.MatchStore = (*boltMatchStore)(nil)

func (s *boltMatchStore) SaveMatch(result match.Result) error {
	record := model.NewRecord(result.MatchID, result.RoomCode)
	record.StartAt = result.StartAt
	record.EndAt = result.EndAt
	// the record schema owns its own end-reason vocabulary
	record.EndReason = model.EndReasonTimeExpired
	if result.EndReason == match.EndReasonLastAlive {
		record.EndReason = model.EndReasonLastAlive
	}
	record.Settings = model.Settings{
		MatchDurationSec:  result.Settings.MatchDurationSec,
		StackLimit:        result.Settings.StackLimit,
		StartingQueued:    result.Settings.StartingQueued,
		DifficultyProfile: string(result.Settings.DifficultyProfile),
		AttackIntensity:   string(result.Settings.AttackIntensity),
	}
	for _, entry := range result.Standings {
		record.Standings = append(record.Standings, model.Standing{
			Rank:     entry.Rank,
			PlayerID: entry.PlayerID,
			Username: entry.Username,
			Role:     string(entry.Role),
			Score:    entry.Score,
		})
	}

	if err := s.db.Add(record); err != nil {
		return fmt.Errorf("matchdb add: %w", err)
	}
	return nil
}
