package scoring

import (
	"strings"
	"time"
)

// ScoringConfig holds configurable scoring constants.
type ScoringConfig struct {
	BaseScore        int                // points per correct answer, default 100
	MaxTimeBonus     int                // per correct answer when answering instantly, default 50
	TargetPerAnswer  time.Duration      // pace at which the time bonus reaches 0, default 15s
	LevelMultipliers map[string]float64 // keyed by lower-case level name
}

// DefaultScoringConfig returns production defaults.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		BaseScore:       100,
		MaxTimeBonus:    50,
		TargetPerAnswer: 15 * time.Second,
		LevelMultipliers: map[string]float64{
			"easy":   1.0,
			"medium": 1.5,
			"hard":   2.0,
		},
	}
}

// Engine computes server-side session scores.
type Engine struct {
	config ScoringConfig
}

// NewEngine creates a scoring engine with the provided config.
func NewEngine(config ScoringConfig) *Engine {
	return &Engine{config: config}
}

// Multiplier returns the factor for level; unknown levels score as 1.
func (e *Engine) Multiplier(level string) float64 {
	if m, ok := e.config.LevelMultipliers[strings.ToLower(strings.TrimSpace(level))]; ok && m > 0 {
		return m
	}
	return 1.0
}

// SessionPoints scores a finished session from its tallies.
// Formula: (base + time_bonus) * correct * level_multiplier
//   - time_bonus: max when the average answer is instant, decays linearly
//     to 0 at TargetPerAnswer
func (e *Engine) SessionPoints(correct, answered int, elapsed time.Duration, level string) int {
	if correct <= 0 {
		return 0
	}

	perAnswer := e.config.BaseScore
	if answered > 0 && e.config.TargetPerAnswer > 0 {
		avg := elapsed / time.Duration(answered)
		ratio := 1.0 - float64(avg)/float64(e.config.TargetPerAnswer)
		if ratio > 1.0 {
			ratio = 1.0
		}
		if ratio < 0.0 {
			ratio = 0.0
		}
		perAnswer += int(float64(e.config.MaxTimeBonus) * ratio)
	}

	return int(float64(perAnswer*correct) * e.Multiplier(level))
}
