package question

import (
	"context"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/wikiquiz/internal/question/external"
)

type factFetcher interface {
	Fetch(ctx context.Context, category string) ([]external.Fact, error)
}

// SourceAdapter turns knowledge-source facts into pool-ready questions.
// It never fails: a broken source degrades to an empty batch, and the
// failure is visible through logs and the source metrics.
type SourceAdapter struct {
	fetcher     factFetcher
	distractors DistractorGenerator
	shuffle     func(n int, swap func(i, j int))
	logger      zerolog.Logger
}

func NewSourceAdapter(fetcher factFetcher, distractors DistractorGenerator, logger zerolog.Logger) *SourceAdapter {
	return &SourceAdapter{
		fetcher:     fetcher,
		distractors: distractors,
		shuffle:     rand.Shuffle,
		logger:      logger.With().Str("component", "question_source").Logger(),
	}
}

// Fetch returns fresh questions for category, possibly none.
func (a *SourceAdapter) Fetch(ctx context.Context, category Category) []Question {
	label := string(category)
	facts, err := a.fetcher.Fetch(ctx, label)
	if err != nil {
		sourceFetchTotal.WithLabelValues(label, outcomeError).Inc()
		sourceConsecutiveFailures.WithLabelValues(label).Inc()
		a.logger.Error().Err(err).Str("category", label).Msg("knowledge source fetch failed")
		return []Question{}
	}
	if len(facts) == 0 {
		sourceFetchTotal.WithLabelValues(label, outcomeEmpty).Inc()
		sourceConsecutiveFailures.WithLabelValues(label).Inc()
		a.logger.Warn().Str("category", label).Msg("knowledge source returned no facts")
		return []Question{}
	}
	sourceFetchTotal.WithLabelValues(label, outcomeOK).Inc()
	sourceConsecutiveFailures.WithLabelValues(label).Set(0)

	out := make([]Question, 0, len(facts))
	for _, fact := range facts {
		out = append(out, a.build(ctx, category, fact))
	}
	a.logger.Debug().Str("category", label).Int("count", len(out)).Msg("built questions from source")
	return out
}

func (a *SourceAdapter) build(ctx context.Context, category Category, fact external.Fact) Question {
	options := make([]string, 0, DistractorCount+1)
	options = append(options, fact.Answer)
	for _, d := range a.distractors.Generate(ctx, fact.Answer, category) {
		if d != fact.Answer {
			options = append(options, d)
		}
	}
	a.shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	return Question{
		ID:            uuid.New(),
		Statement:     category.Statement(),
		CorrectAnswer: fact.Answer,
		Image:         fact.Image,
		Category:      category,
		Options:       options,
	}
}
