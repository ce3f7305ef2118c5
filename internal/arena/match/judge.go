package match

import (
	"context"
	"fmt"
	"time"

	"github.com/codeclash-games/codeclash/internal/arena/problems"
)

var ErrJudgeUnavailable = fmt.Errorf("judge unavailable")

type TestResult struct {
	Index  int    `json:"index"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

type Verdict struct {
	Passed    bool
	Tests     []TestResult
	RuntimeMs int
}

// Judge is the remote code-execution service. Any failure is treated as a
// failed submission for scoring and surfaced to the caller only; the session
// never retries.
type Judge interface {
	Judge(ctx context.Context, problem problems.ProblemFull, code string) (Verdict, error)
}

// MatchStore is the persistence gateway, called exactly once per match at the
// terminal transition.
type MatchStore interface {
	SaveMatch(result Result) error
}

// Result is everything the gateway needs to durably record a finished match.
type Result struct {
	MatchID   string
	RoomCode  int64
	StartAt   time.Time
	EndAt     time.Time
	EndReason string
	Settings  Settings
	Standings []StandingEntry
}
