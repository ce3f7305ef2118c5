package match

import (
	"fmt"
	"time"
)

type ErrorCode string

const (
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeForbidden        ErrorCode = "FORBIDDEN"
	CodeRateLimited      ErrorCode = "RATE_LIMITED"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeJudgeUnavailable ErrorCode = "JUDGE_UNAVAILABLE"
	CodeInternal         ErrorCode = "INTERNAL_ERROR"
)

// Rejection is the single error shape a command can fail with. A rejected
// command never mutates state; the originating connection gets one error
// notification and nobody else sees anything.
type Rejection struct {
	Code       ErrorCode
	Reason     string
	RetryAfter time.Duration
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Code, r.Reason)
}

func badRequest(format string, args ...interface{}) *Rejection {
	return &Rejection{Code: CodeBadRequest, Reason: fmt.Sprintf(format, args...)}
}

func forbidden(format string, args ...interface{}) *Rejection {
	return &Rejection{Code: CodeForbidden, Reason: fmt.Sprintf(format, args...)}
}

func rateLimited(retryAfter time.Duration) *Rejection {
	return &Rejection{Code: CodeRateLimited, Reason: "slow down", RetryAfter: retryAfter}
}

func notFound(format string, args ...interface{}) *Rejection {
	return &Rejection{Code: CodeNotFound, Reason: fmt.Sprintf(format, args...)}
}
