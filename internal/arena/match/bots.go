package match

import (
	"time"

	"github.com/valyala/fastrand"
)

const (
	botSolveMin = 15 * time.Second
	botSolveVar = 30 // seconds of jitter on top of the minimum

	botSuccessPercent = 80
)

// armBotAct schedules the bot's next move after a randomized solve time.
func (r *Session) armBotAct(p *Player) {
	delay := botSolveMin + time.Duration(fastrand.Uint32n(botSolveVar))*time.Second
	r.sched.arm(scheduledEvent{
		at:        r.now().Add(delay),
		kind:      evBotAct,
		playerID:  p.ID,
		matchGen:  r.matchGen,
		playerGen: p.gen,
	})
}

// fireBotAct submits the bot's current problem through the same scoring path a
// human submit takes. Bots never buy items and never leave random targeting;
// both are enforced elsewhere.
func (r *Session) fireBotAct(p *Player) {
	if !r.gameplayPhase() || !p.InPlay() || p.Current == nil {
		return
	}

	passed := fastrand.Uint32n(100) < botSuccessPercent
	r.applySubmitVerdict(p, *p.Current, passed)

	if p.Status != StatusEliminated {
		r.armBotAct(p)
	}
}
