package match

import (
	"fmt"
	"time"

	"github.com/codeclash-games/codeclash/internal/arena/resource"
	"github.com/valyala/fastrand"
)

type AttackKind string

const (
	AttackDDoS        AttackKind = "ddos"
	AttackVimLock     AttackKind = "vimLock"
	AttackFlashbang   AttackKind = "flashbang"
	AttackMemoryLeak  AttackKind = "memoryLeak"
	AttackGarbageDrop AttackKind = "garbageDrop"
)

// base durations; garbageDrop is instant and has none
var attackDurations = map[AttackKind]time.Duration{
	AttackDDoS:        12 * time.Second,
	AttackVimLock:     12 * time.Second,
	AttackFlashbang:   25 * time.Second,
	AttackMemoryLeak:  30 * time.Second,
	AttackGarbageDrop: 0,
}

var attackKinds = []AttackKind{
	AttackDDoS, AttackVimLock, AttackFlashbang, AttackMemoryLeak, AttackGarbageDrop,
}

// debuffGracePeriod shields a player who just shook off a debuff.
const debuffGracePeriod = 5 * time.Second

// launchAttackFrom fires one attack on behalf of a scoring player. Kind choice
// is uniform; the victim comes from the attacker's targeting mode. With no
// eligible victim the trigger is a no-op.
func (r *Session) launchAttackFrom(attacker *Player) {
	victim := r.pickTarget(attacker)
	if victim == nil {
		return
	}

	kind := attackKinds[fastrand.Uint32n(uint32(len(attackKinds)))]
	r.applyAttack(attacker, victim, kind)
}

func (r *Session) applyAttack(attacker, victim *Player, kind AttackKind) {
	now := r.now()

	if kind == AttackGarbageDrop {
		garbage := r.config.Bank.SampleGarbage()
		victim.attackedBy(attacker.ID, now)
		r.appendEvent(fmt.Sprintf(resource.TextGarbageDroppedMsg, attacker.Username, victim.Username))
		r.emitTo(victim, AttackReceived{AttackerID: attacker.ID, AttackKind: string(kind)})
		r.pushProblem(victim, garbage.Summary())
		return
	}

	// grace period after a completed debuff; dropped silently, no retry
	if now.Sub(victim.lastDebuffEnd) < debuffGracePeriod {
		return
	}
	// no stacking, no queueing, no extension
	if victim.Debuff != nil {
		return
	}

	duration := time.Duration(float64(attackDurations[kind]) * r.matchSettings.AttackIntensity.DurationFactor())
	victim.Debuff = &Effect{Kind: string(kind), ExpiresAt: now.Add(duration)}
	victim.attackedBy(attacker.ID, now)
	r.refreshStatus(victim)

	r.sched.arm(scheduledEvent{
		at:        victim.Debuff.ExpiresAt,
		kind:      evDebuffExpiry,
		playerID:  victim.ID,
		matchGen:  r.matchGen,
		playerGen: victim.gen,
	})

	if kind == AttackMemoryLeak {
		r.rearmArrival(victim)
	}

	r.appendEvent(fmt.Sprintf(resource.TextAttackLandedMsg, attacker.Username, victim.Username, resource.AttackLabels[string(kind)]))
	r.emitTo(victim, AttackReceived{AttackerID: attacker.ID, AttackKind: string(kind), ExpiresAt: victim.Debuff.ExpiresAt})
	r.broadcast(PlayerUpdated{Player: r.public(victim)})
}

func (r *Session) fireDebuffExpiry(p *Player) {
	if p.Debuff == nil || p.Debuff.ExpiresAt.After(r.now()) {
		// cleared early or replaced by a newer debuff with its own timer
		return
	}

	wasLeak := p.Debuff.Kind == string(AttackMemoryLeak)
	p.Debuff = nil
	p.lastDebuffEnd = r.now()
	if wasLeak {
		r.rearmArrival(p)
	}
	r.refreshStatus(p)
	r.broadcast(PlayerUpdated{Player: r.public(p)})
}

func (r *Session) fireBuffExpiry(p *Player) {
	if p.Buff == nil || p.Buff.ExpiresAt.After(r.now()) {
		return
	}

	p.Buff = nil
	r.rearmArrival(p)
	r.broadcast(PlayerUpdated{Player: r.public(p)})
}

// eligibleTargets are the opponents an attacker may hit: connected, alive,
// non-spectator, never self.
func (r *Session) eligibleTargets(attacker *Player) []*Player {
	var out []*Player
	for _, p := range r.players {
		if p.ID == attacker.ID || !p.Alive() || !p.Connected() {
			continue
		}
		out = append(out, p)
	}
	return out
}

// pickTarget resolves the attacker's targeting mode to a single victim, or nil
// when nobody is eligible. Bots always target at random.
func (r *Session) pickTarget(attacker *Player) *Player {
	pool := r.eligibleTargets(attacker)
	if len(pool) == 0 {
		return nil
	}

	mode := attacker.Targeting
	if attacker.IsBot() {
		mode = TargetRandom
	}

	switch mode {
	case TargetAttackers:
		recent := attacker.recentAttackerIDs(r.now())
		var revenge []*Player
		for _, p := range pool {
			for _, id := range recent {
				if p.ID == id {
					revenge = append(revenge, p)
					break
				}
			}
		}
		if len(revenge) > 0 {
			return revenge[fastrand.Uint32n(uint32(len(revenge)))]
		}
		return pool[fastrand.Uint32n(uint32(len(pool)))]

	case TargetTopScore:
		best := pool[0]
		for _, p := range pool[1:] {
			if p.Score > best.Score || (p.Score == best.Score && p.JoinOrder < best.JoinOrder) {
				best = p
			}
		}
		return best

	case TargetNearDeath:
		best := pool[0]
		bestRatio := float64(best.StackSize()) / float64(r.matchSettings.StackLimit)
		for _, p := range pool[1:] {
			ratio := float64(p.StackSize()) / float64(r.matchSettings.StackLimit)
			if ratio > bestRatio || (ratio == bestRatio && p.JoinOrder < best.JoinOrder) {
				best, bestRatio = p, ratio
			}
		}
		return best

	default:
		return pool[fastrand.Uint32n(uint32(len(pool)))]
	}
}
