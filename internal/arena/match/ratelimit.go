package match

import (
	"time"
)

type throttleKind uint8

const (
	throttleRun throttleKind = iota
	throttleSubmit
	throttleCodeUpdate
	throttleSpectate
	throttleChat
)

// payload caps enforced alongside the rate table
const (
	maxChatLen     = 200
	maxCodePayload = 50 << 10
)

type throttleRule struct {
	max int
	per time.Duration
}

// fixed per-connection windows, per command kind
var throttleRules = map[throttleKind]throttleRule{
	throttleRun:        {max: 1, per: 2 * time.Second},
	throttleSubmit:     {max: 1, per: 3 * time.Second},
	throttleCodeUpdate: {max: 10, per: time.Second},
	throttleSpectate:   {max: 1, per: time.Second},
	throttleChat:       {max: 2, per: time.Second},
}

type throttleWindow struct {
	start time.Time
	count int
}

func newLimiter() *limiter {
	return &limiter{windows: map[throttleKind]*throttleWindow{}}
}

// limiter throttles one connection. An over-limit command is rejected outright,
// never queued or delayed.
type limiter struct {
	windows map[throttleKind]*throttleWindow
}

// allow consumes one slot for the kind, or reports how long until the window
// opens again.
func (l *limiter) allow(kind throttleKind, now time.Time) (time.Duration, bool) {
	rule, ok := throttleRules[kind]
	if !ok {
		return 0, true
	}

	w := l.windows[kind]
	if w == nil || now.Sub(w.start) >= rule.per {
		l.windows[kind] = &throttleWindow{start: now, count: 1}
		return 0, true
	}

	if w.count >= rule.max {
		return rule.per - now.Sub(w.start), false
	}

	w.count++
	return 0, true
}
