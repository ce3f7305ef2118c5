package problems

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/valyala/fastrand"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

const (
	// problemType discriminators carried by the bank file
	TypeCode    = "code"
	TypeGarbage = "garbage"
)

// Weights is a sampling weight triple for the regular problem pool.
type Weights struct {
	Easy   int
	Medium int
	Hard   int
}

type TestCase struct {
	Input    string `json:"input"`
	Expected string `json:"expected"`
}

type ProblemFull struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Difficulty  Difficulty `json:"difficulty"`
	ProblemType string     `json:"problemType"`
	Prompt      string     `json:"prompt"`
	Hints       []string   `json:"hints"`
	Tests       []TestCase `json:"tests"`
}

func (p ProblemFull) IsGarbage() bool {
	return p.ProblemType == TypeGarbage
}

func (p ProblemFull) Summary() Summary {
	return Summary{ID: p.ID, Title: p.Title, Difficulty: p.Difficulty, Garbage: p.IsGarbage()}
}

type Summary struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Difficulty Difficulty `json:"difficulty"`
	Garbage    bool       `json:"garbage"`
}

// Bank is the process-wide problem pool, loaded once at startup and read-only
// afterwards.
type Bank struct {
	byDifficulty map[Difficulty][]ProblemFull
	garbage      []ProblemFull
	byID         map[string]ProblemFull
	size         int
}

func NewBank(list []ProblemFull) (*Bank, error) {
	b := &Bank{
		byDifficulty: map[Difficulty][]ProblemFull{},
		byID:         map[string]ProblemFull{},
	}

	for _, p := range list {
		if p.ID == "" {
			return nil, fmt.Errorf("problem without id: %q", p.Title)
		}
		if _, ok := b.byID[p.ID]; ok {
			return nil, fmt.Errorf("duplicate problem id: %s", p.ID)
		}
		if p.ProblemType == "" {
			p.ProblemType = TypeCode
		}

		b.byID[p.ID] = p
		if p.IsGarbage() {
			b.garbage = append(b.garbage, p)
			continue
		}

		switch p.Difficulty {
		case DifficultyEasy, DifficultyMedium, DifficultyHard:
		default:
			return nil, fmt.Errorf("problem %s: unknown difficulty %q", p.ID, p.Difficulty)
		}

		b.byDifficulty[p.Difficulty] = append(b.byDifficulty[p.Difficulty], p)
		b.size++
	}

	if b.size == 0 {
		return nil, fmt.Errorf("bank has no regular problems")
	}
	if len(b.garbage) == 0 {
		return nil, fmt.Errorf("bank has no garbage problems")
	}

	return b, nil
}

func LoadFile(path string) (*Bank, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read problems file: %w", err)
	}

	var list []ProblemFull
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("unmarshal problems file: %w", err)
	}

	return NewBank(list)
}

func (b *Bank) Get(id string) (ProblemFull, bool) {
	p, ok := b.byID[id]
	return p, ok
}

func (b *Bank) Len() int {
	return b.size
}

// SampleByDifficulty draws a regular problem: difficulty first by weight, then a
// uniform pick among problems the seen filter has not excluded. It reports false
// when every regular problem is already seen; the caller owns the seen set and
// decides when to start a fresh cycle.
func (b *Bank) SampleByDifficulty(w Weights, seen func(id string) bool) (ProblemFull, bool) {
	if seen == nil {
		seen = func(string) bool { return false }
	}

	order := b.difficultyOrder(w)
	for _, d := range order {
		var unseen []ProblemFull
		for _, p := range b.byDifficulty[d] {
			if !seen(p.ID) {
				unseen = append(unseen, p)
			}
		}
		if len(unseen) == 0 {
			continue
		}
		return unseen[fastrand.Uint32n(uint32(len(unseen)))], true
	}

	return ProblemFull{}, false
}

// SampleGarbage draws from the garbage pool, which sits outside history tracking
// and is always selectable.
func (b *Bank) SampleGarbage() ProblemFull {
	return b.garbage[fastrand.Uint32n(uint32(len(b.garbage)))]
}

// difficultyOrder rolls the weighted difficulty once, then appends the rest as
// fallbacks so an exhausted tier spills into its neighbours.
func (b *Bank) difficultyOrder(w Weights) []Difficulty {
	total := w.Easy + w.Medium + w.Hard
	if total <= 0 {
		total, w = 3, Weights{Easy: 1, Medium: 1, Hard: 1}
	}

	roll := int(fastrand.Uint32n(uint32(total)))
	var first Difficulty
	switch {
	case roll < w.Easy:
		first = DifficultyEasy
	case roll < w.Easy+w.Medium:
		first = DifficultyMedium
	default:
		first = DifficultyHard
	}

	order := []Difficulty{first}
	for _, d := range []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		if d != first {
			order = append(order, d)
		}
	}

	return order
}
