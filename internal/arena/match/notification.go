package match

import (
	"time"

	"github.com/codeclash-games/codeclash/internal/arena/problems"
)

// Emitter delivers notifications to connections. The session is the only
// component that talks to it; sub-systems hand their outbound traffic back to
// the session.
type Emitter interface {
	Send(connID string, n Notification)
}

// Notification is the closed set of outbound messages.
type Notification interface {
	Kind() string
}

type PlayerPublic struct {
	ID        string        `json:"id"`
	Username  string        `json:"username"`
	Role      Role          `json:"role"`
	IsHost    bool          `json:"isHost"`
	Status    Status        `json:"status"`
	Score     int           `json:"score"`
	Streak    int           `json:"streak"`
	Targeting TargetingMode `json:"targetingMode"`
	StackSize int           `json:"stackSize"`
	Debuff    *Effect       `json:"debuff,omitempty"`
	Buff      *Effect       `json:"buff,omitempty"`
	JoinOrder int           `json:"joinOrder"`
	Connected bool          `json:"connected"`
}

type MatchPublic struct {
	MatchID   string    `json:"matchId,omitempty"`
	Phase     Phase     `json:"phase"`
	StartAt   time.Time `json:"startAt,omitempty"`
	EndAt     time.Time `json:"endAt,omitempty"`
	EndReason string    `json:"endReason,omitempty"`
	Settings  Settings  `json:"settings"`
}

type ChatEntry struct {
	PlayerID string    `json:"playerId"`
	Username string    `json:"username"`
	Text     string    `json:"text"`
	At       time.Time `json:"at"`
}

type EventEntry struct {
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

type StandingEntry struct {
	Rank     int    `json:"rank"`
	PlayerID string `json:"playerId"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Score    int    `json:"score"`
}

// RoomSnapshot is the full resync payload sent on join/resume.
type RoomSnapshot struct {
	RoomCode int64                 `json:"roomCode"`
	You      string                `json:"you"`
	Match    MatchPublic           `json:"match"`
	Players  []PlayerPublic        `json:"players"`
	Chat     []ChatEntry           `json:"chat"`
	Events   []EventEntry          `json:"events"`
	Current  *problems.ProblemFull `json:"currentProblem,omitempty"`
	Queue    []problems.Summary    `json:"queue,omitempty"`
}

type SettingsChanged struct {
	Settings Settings `json:"settings"`
}

type MatchStarted struct {
	Match   MatchPublic           `json:"match"`
	Current *problems.ProblemFull `json:"currentProblem,omitempty"`
	Queue   []problems.Summary    `json:"queue,omitempty"`
}

type MatchPhaseChanged struct {
	Phase Phase `json:"phase"`
}

type PlayerUpdated struct {
	Player PlayerPublic `json:"player"`
}

type JudgeResult struct {
	ProblemID string                `json:"problemId"`
	Submit    bool                  `json:"submit"`
	Passed    bool                  `json:"passed"`
	Tests     []TestResult          `json:"tests,omitempty"`
	RuntimeMs int                   `json:"runtimeMs,omitempty"`
	Next      *problems.ProblemFull `json:"nextProblem,omitempty"`
}

type StackSizeChanged struct {
	PlayerID  string             `json:"playerId"`
	StackSize int                `json:"stackSize"`
	Queue     []problems.Summary `json:"queue,omitempty"`
}

type ChatAppended struct {
	Entry ChatEntry `json:"entry"`
}

type AttackReceived struct {
	AttackerID string    `json:"attackerId"`
	AttackKind string    `json:"kind"`
	ExpiresAt  time.Time `json:"expiresAt,omitempty"`
}

type EventAppended struct {
	Entry EventEntry `json:"entry"`
}

type SpectateStateChanged struct {
	PlayerID    string `json:"playerId"`
	Watching    string `json:"watching,omitempty"`
	Code        string `json:"code,omitempty"`
	CodeVersion int    `json:"codeVersion,omitempty"`
}

type CodeUpdateRelayed struct {
	PlayerID string `json:"playerId"`
	Code     string `json:"code"`
	Version  int    `json:"version"`
}

type HintRevealed struct {
	ProblemID string `json:"problemId"`
	Index     int    `json:"index"`
	Text      string `json:"text"`
}

type MatchEnded struct {
	MatchID   string          `json:"matchId"`
	EndReason string          `json:"endReason"`
	Standings []StandingEntry `json:"standings"`
}

type ErrorNotice struct {
	Code         ErrorCode `json:"code"`
	Reason       string    `json:"reason"`
	RetryAfterMs int64     `json:"retryAfterMs,omitempty"`
}

func (RoomSnapshot) Kind() string         { return "room-snapshot" }
func (SettingsChanged) Kind() string      { return "settings-changed" }
func (MatchStarted) Kind() string         { return "match-started" }
func (MatchPhaseChanged) Kind() string    { return "match-phase-changed" }
func (PlayerUpdated) Kind() string        { return "player-updated" }
func (JudgeResult) Kind() string          { return "judge-result" }
func (StackSizeChanged) Kind() string     { return "stack-size-changed" }
func (ChatAppended) Kind() string         { return "chat-appended" }
func (AttackReceived) Kind() string       { return "attack-received" }
func (EventAppended) Kind() string        { return "event-log-appended" }
func (SpectateStateChanged) Kind() string { return "spectate-state-changed" }
func (CodeUpdateRelayed) Kind() string    { return "code-update-relayed" }
func (HintRevealed) Kind() string         { return "hint-revealed" }
func (MatchEnded) Kind() string           { return "match-ended" }
func (ErrorNotice) Kind() string          { return "error" }
