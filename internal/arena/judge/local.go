package judge

import (
	"context"
	"strings"
	"time"

	"github.com/codeclash-games/codeclash/internal/arena/match"
	"github.com/codeclash-games/codeclash/internal/arena/problems"
	"github.com/valyala/fastrand"
)

// Local is a development stand-in for the remote execution service: it accepts
// any non-trivial submission after a short simulated grading delay. Real
// judging lives behind the same interface elsewhere.
type Local struct{}

var _ match.Judge = Local{}

func (Local) Judge(ctx context.Context, problem problems.ProblemFull, code string) (match.Verdict, error) {
	delay := 50 + fastrand.Uint32n(250)
	select {
	case <-ctx.Done():
		return match.Verdict{}, ctx.Err()
	case <-time.After(time.Duration(delay) * time.Millisecond):
	}

	passed := len(strings.TrimSpace(code)) >= 8 && !strings.Contains(code, "TODO")

	verdict := match.Verdict{Passed: passed, RuntimeMs: int(delay)}
	for i := range problem.Tests {
		verdict.Tests = append(verdict.Tests, match.TestResult{Index: i, Passed: passed})
	}
	if len(problem.Tests) == 0 {
		verdict.Tests = []match.TestResult{{Index: 0, Passed: passed}}
	}
	return verdict, nil
}
