package match

import (
	"fmt"
	"time"

	"github.com/codeclash-games/codeclash/internal/arena/problems"
	"github.com/codeclash-games/codeclash/internal/arena/resource"
)

const (
	warmupArrivalInterval = 90 * time.Second
	mainArrivalInterval   = 60 * time.Second
)

// sampleFor draws the next regular problem for a player, honoring their seen
// history. When the unseen pool runs dry the history is cleared and a fresh
// cycle begins with repeats allowed.
func (r *Session) sampleFor(p *Player) problems.ProblemFull {
	weights := r.matchSettings.DifficultyProfile.Weights()

	next, ok := r.config.Bank.SampleByDifficulty(weights, p.hasSeen)
	if !ok {
		p.seen = map[string]struct{}{}
		next, _ = r.config.Bank.SampleByDifficulty(weights, p.hasSeen)
	}

	p.markSeen(next.ID)
	return next
}

// arrivalInterval is the base cadence for the current phase, adjusted by the
// rate-limiter buff (half as often) and the memory-leak debuff (twice as
// often).
func (r *Session) arrivalInterval(p *Player) time.Duration {
	interval := mainArrivalInterval
	if r.phase == PhaseWarmup {
		interval = warmupArrivalInterval
	}

	if p.Buff != nil && p.Buff.Kind == buffRateLimiter {
		interval *= 2
	}
	if p.Debuff != nil && p.Debuff.Kind == string(AttackMemoryLeak) {
		interval /= 2
	}
	return interval
}

func (r *Session) armArrival(p *Player) {
	r.sched.arm(scheduledEvent{
		at:        r.now().Add(r.arrivalInterval(p)),
		kind:      evProblemArrival,
		playerID:  p.ID,
		matchGen:  r.matchGen,
		playerGen: p.arrivalGen,
	})
}

// rearmArrival retires the pending arrival timer and starts a fresh one at the
// player's current cadence. Called whenever a buff or debuff changes the
// interval mid-flight.
func (r *Session) rearmArrival(p *Player) {
	p.arrivalGen++
	if r.gameplayPhase() && p.InPlay() {
		r.armArrival(p)
	}
}

// fireProblemArrival appends a fresh problem to the player's stack, or
// eliminates them when the stack would overflow. The timer rearms itself only
// while the player stays in play.
func (r *Session) fireProblemArrival(p *Player) {
	if !r.gameplayPhase() || !p.InPlay() {
		return
	}

	next := r.sampleFor(p)
	if !r.pushProblem(p, next.Summary()) {
		return // eliminated; no rearm
	}

	r.armArrival(p)
}

// pushProblem grows the player's stack, eliminating on overflow. It reports
// whether the player survived the push.
func (r *Session) pushProblem(p *Player, s problems.Summary) bool {
	if p.StackSize()+1 > r.matchSettings.StackLimit {
		r.eliminate(p)
		return false
	}

	p.Queue = append(p.Queue, s)
	r.broadcast(StackSizeChanged{PlayerID: p.ID, StackSize: p.StackSize(), Queue: p.Queue})
	return true
}

// advanceProblem moves the player onto their next problem after a solve or a
// skip: the head of the stack if any, a fresh sample otherwise.
func (r *Session) advanceProblem(p *Player) problems.ProblemFull {
	var next problems.ProblemFull
	if len(p.Queue) > 0 {
		head := p.Queue[0]
		p.Queue = p.Queue[1:]

		if full, ok := r.config.Bank.Get(head.ID); ok {
			next = full
		} else {
			next = r.sampleFor(p)
		}
		r.broadcast(StackSizeChanged{PlayerID: p.ID, StackSize: p.StackSize(), Queue: p.Queue})
	} else {
		next = r.sampleFor(p)
	}

	p.Current = &next
	p.Code = ""
	p.RevealedHints = 0
	return next
}

// eliminate takes a player out of the match: stack overflow is the only path
// here. Their timers die with the generation bump and they can neither attack
// nor be targeted afterwards.
func (r *Session) eliminate(p *Player) {
	if p.Status == StatusEliminated {
		return
	}

	p.Status = StatusEliminated
	p.eliminatedAt = r.now()
	p.gen++
	p.arrivalGen++
	p.Debuff = nil
	p.Buff = nil

	r.appendEvent(fmt.Sprintf(resource.TextEliminatedMsg, p.Username))
	r.broadcast(PlayerUpdated{Player: r.public(p)})

	r.checkLastAlive()
}

// checkLastAlive ends the match when exactly one participant remains out of at
// least two starters. endMatch's phase guard keeps the terminal transition
// single-shot even when several conditions trip in one step.
func (r *Session) checkLastAlive() {
	if !r.gameplayPhase() || r.startersCount < 2 {
		return
	}
	if r.aliveCount() == 1 {
		r.endMatch(EndReasonLastAlive)
	}
}
