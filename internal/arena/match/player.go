package match

import (
	"time"

	"github.com/codeclash-games/codeclash/internal/arena/problems"
)

type Role string

const (
	RolePlayer    Role = "player"
	RoleBot       Role = "bot"
	RoleSpectator Role = "spectator"
)

type Status string

const (
	StatusLobby       Status = "lobby"
	StatusCoding      Status = "coding"
	StatusUnderAttack Status = "underAttack"
	StatusError       Status = "error"
	StatusEliminated  Status = "eliminated"
)

type TargetingMode string

const (
	TargetRandom    TargetingMode = "random"
	TargetAttackers TargetingMode = "attackers"
	TargetTopScore  TargetingMode = "topScore"
	TargetNearDeath TargetingMode = "nearDeath"
)

func validTargetingMode(m TargetingMode) bool {
	switch m {
	case TargetRandom, TargetAttackers, TargetTopScore, TargetNearDeath:
		return true
	}
	return false
}

// Effect is a single timed modifier; a player carries at most one debuff and one
// buff at a time.
type Effect struct {
	Kind      string    `json:"kind"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type attackStamp struct {
	attackerID string
	at         time.Time
}

func NewPlayer(id, token, username string, role Role, joinOrder int) *Player {
	return &Player{
		ID:        id,
		Token:     token,
		Username:  username,
		Role:      role,
		Status:    StatusLobby,
		Targeting: TargetRandom,
		JoinOrder: joinOrder,
		seen:      map[string]struct{}{},
	}
}

// Player is one participant. All fields are owned by the session actor; nothing
// outside the actor goroutine may touch them.
type Player struct {
	ID        string
	Token     string
	Username  string
	Role      Role
	IsHost    bool
	Status    Status
	Score     int
	Streak    int
	Targeting TargetingMode
	Debuff    *Effect
	Buff      *Effect
	ConnID    string // always empty for bots
	JoinOrder int

	// match-transient
	Current       *problems.ProblemFull
	Queue         []problems.Summary
	Code          string
	CodeVersion   int
	RevealedHints int
	SpectatingID  string

	seen            map[string]struct{}
	recentAttackers []attackStamp
	lastDebuffEnd   time.Time
	eliminatedAt    time.Time
	buffReadyAt     time.Time

	// gen invalidates this player's scheduled events when bumped; arrivalGen
	// does the same for arrival timers alone, so cadence changes can retire
	// an in-flight arrival without killing the other timers
	gen        uint64
	arrivalGen uint64
}

func (p *Player) IsBot() bool {
	return p.Role == RoleBot
}

// Connected reports whether the participant can currently act; bots never carry
// a connection and always count as connected.
func (p *Player) Connected() bool {
	return p.IsBot() || p.ConnID != ""
}

func (p *Player) Alive() bool {
	return p.Role != RoleSpectator && p.Status != StatusEliminated
}

// InPlay reports whether the player is actively holding problems.
func (p *Player) InPlay() bool {
	return p.Status == StatusCoding || p.Status == StatusUnderAttack || p.Status == StatusError
}

func (p *Player) StackSize() int {
	return len(p.Queue)
}

func (p *Player) markSeen(id string) {
	p.seen[id] = struct{}{}
}

func (p *Player) hasSeen(id string) bool {
	_, ok := p.seen[id]
	return ok
}

// attackedBy records an incoming attack for the attackers targeting mode.
func (p *Player) attackedBy(attackerID string, now time.Time) {
	const retain = 20 * time.Second

	kept := p.recentAttackers[:0]
	for _, st := range p.recentAttackers {
		if now.Sub(st.at) <= retain {
			kept = append(kept, st)
		}
	}
	p.recentAttackers = append(kept, attackStamp{attackerID: attackerID, at: now})
}

func (p *Player) recentAttackerIDs(now time.Time) []string {
	const retain = 20 * time.Second

	var ids []string
	for _, st := range p.recentAttackers {
		if now.Sub(st.at) <= retain {
			ids = append(ids, st.attackerID)
		}
	}
	return ids
}

// resetTransient clears everything scoped to a single match.
func (p *Player) resetTransient() {
	p.Status = StatusLobby
	p.Score = 0
	p.Streak = 0
	p.Debuff = nil
	p.Buff = nil
	p.Current = nil
	p.Queue = nil
	p.Code = ""
	p.CodeVersion = 0
	p.RevealedHints = 0
	p.SpectatingID = ""
	p.seen = map[string]struct{}{}
	p.recentAttackers = nil
	p.lastDebuffEnd = time.Time{}
	p.eliminatedAt = time.Time{}
	p.buffReadyAt = time.Time{}
	p.gen++
	p.arrivalGen++
}
