package sentiment

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/learnify/backend/pkg/logger"
)

type Mood string

const (
	MoodConfused Mood = "Confused"
	MoodNeutral  Mood = "Neutral"
	MoodExcited  Mood = "Excited"
)

// Result pairs the rounded polarity with its mood label.
type Result struct {
	Polarity float64 `json:"polarity"`
	Mood     Mood    `json:"mood"`
}

// Provider computes a raw polarity in [-1, 1] for a piece of text.
type Provider interface {
	Polarity(ctx context.Context, text string) (float64, error)
}

type Scorer struct {
	provider Provider
}

func NewScorer(provider Provider) *Scorer {
	return &Scorer{provider: provider}
}

// Score computes the sentiment result for text. Provider failures degrade
// to a neutral 0.0 polarity and never propagate.
func (s *Scorer) Score(ctx context.Context, text string) Result {
	polarity, err := s.provider.Polarity(ctx, text)
	if err != nil {
		logger.Warn("Sentiment provider failed, defaulting to neutral", zap.Error(err))
		polarity = 0.0
	}

	polarity = Round(clamp(polarity))

	return Result{
		Polarity: polarity,
		Mood:     MoodFor(polarity),
	}
}

// MoodFor is the single thresholding rule used everywhere: polarity >= 0.4
// is Excited, polarity <= -0.2 is Confused, anything between is Neutral.
// The three bands partition [-1, 1] with no gaps or overlap.
func MoodFor(polarity float64) Mood {
	if polarity >= 0.4 {
		return MoodExcited
	}
	if polarity <= -0.2 {
		return MoodConfused
	}
	return MoodNeutral
}

// Round truncates polarity to 2 decimal places for storage and display.
func Round(polarity float64) float64 {
	return math.Round(polarity*100) / 100
}

func clamp(polarity float64) float64 {
	if polarity > 1.0 {
		return 1.0
	}
	if polarity < -1.0 {
		return -1.0
	}
	return polarity
}
