package match

import (
	"fmt"
	"time"

	"github.com/codeclash-games/codeclash/internal/arena/resource"
)

type ShopItem string

const (
	ItemClearDebuff  ShopItem = "clearDebuff"
	ItemMemoryDefrag ShopItem = "memoryDefrag"
	ItemSkipProblem  ShopItem = "skipProblem"
	ItemRateLimiter  ShopItem = "rateLimiter"
	ItemHint         ShopItem = "hint"
)

const buffRateLimiter = "rateLimiter"

const (
	rateLimiterBuffDuration = 30 * time.Second
	rateLimiterCooldown     = 60 * time.Second
)

var shopPrices = map[ShopItem]int{
	ItemClearDebuff:  15,
	ItemMemoryDefrag: 10,
	ItemSkipProblem:  20,
	ItemRateLimiter:  25,
	ItemHint:         5,
}

// handleSpend validates an item purchase end to end before touching anything,
// so a rejected purchase has no side effects at all.
func (r *Session) handleSpend(connID string, cmd SpendPoints) error {
	p := r.playerByConn(connID)
	if p == nil {
		return notFound("no player bound to this connection")
	}
	if !r.gameplayPhase() {
		return forbidden("the shop is closed outside a match")
	}
	if !p.InPlay() {
		return forbidden("you are out of this match")
	}

	price, ok := shopPrices[cmd.Item]
	if !ok {
		return badRequest("unknown shop item %q", cmd.Item)
	}
	if p.Score < price {
		return badRequest("not enough points for %s", resource.ShopLabels[string(cmd.Item)])
	}

	now := r.now()
	switch cmd.Item {
	case ItemClearDebuff:
		if p.Debuff == nil {
			return badRequest("no active debuff to clear")
		}
		wasLeak := p.Debuff.Kind == string(AttackMemoryLeak)
		p.Debuff = nil
		p.lastDebuffEnd = now
		if wasLeak {
			r.rearmArrival(p)
		}
		r.refreshStatus(p)

	case ItemMemoryDefrag:
		kept := p.Queue[:0]
		var removed int
		for _, q := range p.Queue {
			if q.Garbage {
				removed++
				continue
			}
			kept = append(kept, q)
		}
		if removed == 0 {
			return badRequest("no garbage in your stack")
		}
		p.Queue = kept
		r.broadcast(StackSizeChanged{PlayerID: p.ID, StackSize: p.StackSize(), Queue: p.Queue})

	case ItemSkipProblem:
		if p.Current == nil {
			return notFound("no current problem")
		}
		// the skipped problem is discarded outright; the stack is untouched
		next := r.sampleFor(p)
		p.Current = &next
		p.Code = ""
		p.RevealedHints = 0

	case ItemRateLimiter:
		if p.Buff != nil {
			return badRequest("a buff is already active")
		}
		if now.Before(p.buffReadyAt) {
			return badRequest("rate limiter on cooldown for %ds", int(p.buffReadyAt.Sub(now).Seconds())+1)
		}
		p.Buff = &Effect{Kind: buffRateLimiter, ExpiresAt: now.Add(rateLimiterBuffDuration)}
		p.buffReadyAt = now.Add(rateLimiterCooldown)
		r.sched.arm(scheduledEvent{
			at:        p.Buff.ExpiresAt,
			kind:      evBuffExpiry,
			playerID:  p.ID,
			matchGen:  r.matchGen,
			playerGen: p.gen,
		})
		r.rearmArrival(p)
		r.appendEvent(fmt.Sprintf(resource.TextBuffPurchasedMsg, p.Username, resource.ShopLabels[string(cmd.Item)]))

	case ItemHint:
		if p.Current == nil {
			return notFound("no current problem")
		}
		if p.RevealedHints >= len(p.Current.Hints) {
			return badRequest("all hints already revealed")
		}
		hint := p.Current.Hints[p.RevealedHints]
		p.RevealedHints++
		p.Score -= price
		r.emitTo(p, HintRevealed{ProblemID: p.Current.ID, Index: p.RevealedHints - 1, Text: hint})
		r.broadcast(PlayerUpdated{Player: r.public(p)})
		return nil
	}

	p.Score -= price
	r.broadcast(PlayerUpdated{Player: r.public(p)})
	// skip hands the player their replacement problem privately
	if cmd.Item == ItemSkipProblem {
		r.emitTo(p, r.snapshotFor(p))
	}
	return nil
}
