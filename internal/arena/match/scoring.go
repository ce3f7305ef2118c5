package match

import (
	"context"
	"errors"
	"fmt"

	"github.com/codeclash-games/codeclash/internal/arena/problems"
	"github.com/codeclash-games/codeclash/internal/arena/resource"
	"github.com/codeclash-games/codeclash/internal/logging"
)

var difficultyPoints = map[problems.Difficulty]int{
	problems.DifficultyEasy:   5,
	problems.DifficultyMedium: 10,
	problems.DifficultyHard:   20,
}

// handleCode validates a run or submit and hands the judging off to a
// goroutine; the verdict re-enters the loop as an internal event so the actor
// never blocks on the remote call.
func (r *Session) handleCode(connID, code string, submit bool) error {
	p := r.playerByConn(connID)
	if p == nil {
		return notFound("no player bound to this connection")
	}
	if !r.gameplayPhase() {
		return forbidden("no match running")
	}
	if !p.InPlay() {
		return forbidden("you are out of this match")
	}
	if p.Current == nil {
		return notFound("no current problem")
	}
	if len(code) == 0 || len(code) > maxCodePayload {
		return badRequest("code payload must be 1-%d bytes", maxCodePayload)
	}

	kind := throttleRun
	if submit {
		kind = throttleSubmit
	}
	if retry, ok := r.limiterFor(connID).allow(kind, r.now()); !ok {
		return rateLimited(retry)
	}

	p.Code = code
	r.startJudge(p, *p.Current, code, submit)
	return nil
}

func (r *Session) startJudge(p *Player, problem problems.ProblemFull, code string, submit bool) {
	ev := judgeDone{
		playerID:  p.ID,
		problemID: problem.ID,
		submit:    submit,
		matchGen:  r.matchGen,
		playerGen: p.gen,
	}

	ctx := r.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	go func() {
		verdict, err := r.config.Judge.Judge(ctx, problem, code)
		ev.verdict = verdict
		ev.err = err
		r.post(envelope{cmd: ev})
	}()
}

// handleJudgeDone lands an asynchronous verdict back in the actor. Anything
// stamped with an older generation, or aimed at a problem the player has moved
// past, is stale and dropped.
func (r *Session) handleJudgeDone(ev judgeDone) {
	p := r.playerByID(ev.playerID)
	if p == nil || ev.matchGen != r.matchGen || ev.playerGen != p.gen {
		return
	}
	if !r.gameplayPhase() || !p.InPlay() {
		return
	}
	if p.Current == nil || p.Current.ID != ev.problemID {
		return
	}

	if ev.err != nil {
		logging.DefaultLogger().Named("match.judge").Errorf("judge %s: %v", ev.problemID, ev.err)
		code := CodeJudgeUnavailable
		if !errors.Is(ev.err, ErrJudgeUnavailable) {
			code = CodeInternal
		}
		p.Status = StatusError
		if ev.submit {
			// a failed attempt for scoring purposes
			p.Streak = 0
		}
		r.broadcast(PlayerUpdated{Player: r.public(p)})
		r.emitTo(p, ErrorNotice{Code: code, Reason: "could not judge your code"})
		return
	}

	if p.Status == StatusError {
		r.refreshStatus(p)
	}

	result := JudgeResult{
		ProblemID: ev.problemID,
		Submit:    ev.submit,
		Passed:    ev.verdict.Passed,
		Tests:     ev.verdict.Tests,
		RuntimeMs: ev.verdict.RuntimeMs,
	}

	if !ev.submit {
		// run feedback only: no score, streak or attack effect
		r.emitTo(p, result)
		return
	}

	problem := *p.Current
	r.applySubmitVerdict(p, problem, ev.verdict.Passed)
	if ev.verdict.Passed {
		result.Next = p.Current
	}
	r.emitTo(p, result)
}

// applySubmitVerdict turns a judged submit into score, streak and attack
// effects. Garbage passes are inert; any failure resets the streak, garbage
// included.
func (r *Session) applySubmitVerdict(p *Player, problem problems.ProblemFull, passed bool) {
	if !passed {
		p.Streak = 0
		r.appendEvent(fmt.Sprintf(resource.TextPlayerFailedMsg, p.Username))
		r.broadcast(PlayerUpdated{Player: r.public(p)})
		return
	}

	if !problem.IsGarbage() {
		points := difficultyPoints[problem.Difficulty]
		p.Score += points
		p.Streak++
		r.appendEvent(fmt.Sprintf(resource.TextPlayerSolvedMsg, p.Username, problem.Title, points))
	}

	r.advanceProblem(p)
	r.broadcast(PlayerUpdated{Player: r.public(p)})

	if !problem.IsGarbage() {
		r.launchAttackFrom(p)
	}
}
