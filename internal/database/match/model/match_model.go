package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	EndReasonLastAlive   = "lastAlive"
	EndReasonTimeExpired = "timeExpired"
)

func NewRecord(matchID string, roomCode int64) Record {
	return Record{
		ID:        uuid.New(),
		MatchID:   matchID,
		RoomCode:  roomCode,
		CreatedAt: time.Now(),
	}
}

// Record is one finished match, written exactly once at the terminal transition.
type Record struct {
	ID        uuid.UUID  `json:"id"`
	MatchID   string     `json:"matchId"`
	RoomCode  int64      `json:"roomCode"`
	StartAt   time.Time  `json:"startAt"`
	EndAt     time.Time  `json:"endAt"`
	EndReason string     `json:"endReason"`
	Settings  Settings   `json:"settings"`
	Standings []Standing `json:"standings"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Settings is the effective settings snapshot the match was played with.
type Settings struct {
	MatchDurationSec  int    `json:"matchDurationSec"`
	StackLimit        int    `json:"stackLimit"`
	StartingQueued    int    `json:"startingQueued"`
	DifficultyProfile string `json:"difficultyProfile"`
	AttackIntensity   string `json:"attackIntensity"`
}

type Standing struct {
	Rank     int    `json:"rank"`
	PlayerID string `json:"playerId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Score    int    `json:"score"`
}
