package match

import (
	"fmt"
	"time"

	"github.com/codeclash-games/codeclash/internal/arena/problems"
)

type DifficultyProfile string

const (
	ProfileCasual   DifficultyProfile = "casual"
	ProfileModerate DifficultyProfile = "moderate"
	ProfileHardcore DifficultyProfile = "hardcore"
)

func (p DifficultyProfile) Weights() problems.Weights {
	switch p {
	case ProfileCasual:
		return problems.Weights{Easy: 70, Medium: 25, Hard: 5}
	case ProfileHardcore:
		return problems.Weights{Easy: 15, Medium: 45, Hard: 40}
	default:
		return problems.Weights{Easy: 40, Medium: 40, Hard: 20}
	}
}

type AttackIntensity string

const (
	IntensityLow    AttackIntensity = "low"
	IntensityNormal AttackIntensity = "normal"
	IntensityHigh   AttackIntensity = "high"
)

// DurationFactor stretches timed debuffs on high-intensity rooms.
func (a AttackIntensity) DurationFactor() float64 {
	if a == IntensityHigh {
		return 1.3
	}
	return 1
}

type Settings struct {
	MatchDurationSec  int               `json:"matchDurationSec"`
	StackLimit        int               `json:"stackLimit"`
	StartingQueued    int               `json:"startingQueued"`
	DifficultyProfile DifficultyProfile `json:"difficultyProfile"`
	AttackIntensity   AttackIntensity   `json:"attackIntensity"`
	MaxPlayers        int               `json:"maxPlayers"`
}

func DefaultSettings() Settings {
	return Settings{
		MatchDurationSec:  600,
		StackLimit:        10,
		StartingQueued:    3,
		DifficultyProfile: ProfileModerate,
		AttackIntensity:   IntensityNormal,
		MaxPlayers:        8,
	}
}

func (s Settings) Validate() error {
	if s.MatchDurationSec < 60 || s.MatchDurationSec > 3600 {
		return fmt.Errorf("match duration %ds out of range", s.MatchDurationSec)
	}
	if s.StackLimit < 3 || s.StackLimit > 50 {
		return fmt.Errorf("stack limit %d out of range", s.StackLimit)
	}
	if s.StartingQueued < 0 || s.StartingQueued >= s.StackLimit {
		return fmt.Errorf("starting queue %d out of range", s.StartingQueued)
	}
	switch s.DifficultyProfile {
	case ProfileCasual, ProfileModerate, ProfileHardcore:
	default:
		return fmt.Errorf("unknown difficulty profile %q", s.DifficultyProfile)
	}
	switch s.AttackIntensity {
	case IntensityLow, IntensityNormal, IntensityHigh:
	default:
		return fmt.Errorf("unknown attack intensity %q", s.AttackIntensity)
	}
	if s.MaxPlayers < 2 || s.MaxPlayers > 32 {
		return fmt.Errorf("max players %d out of range", s.MaxPlayers)
	}
	return nil
}

func (s Settings) MatchDuration() time.Duration {
	return time.Duration(s.MatchDurationSec) * time.Second
}

// WarmupDuration is always the first 10% of the match.
func (s Settings) WarmupDuration() time.Duration {
	return s.MatchDuration() / 10
}
