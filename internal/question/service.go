package question

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/gokatarajesh/wikiquiz/internal/db/queries"
	"github.com/gokatarajesh/wikiquiz/internal/db/repository"
)

// questionStore is the persistence surface used by Service.
type questionStore interface {
	Exists(ctx context.Context, category string) (bool, error)
	Count(ctx context.Context, category string) (int64, error)
	InsertBatch(ctx context.Context, batch []queries.InsertQuestionsParams) (int64, error)
	Sample(ctx context.Context, category string, n int) ([]queries.Question, error)
	DeleteBatch(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
	DeleteCategory(ctx context.Context, category string) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// Source produces fresh questions for a category. It returns an empty slice
// rather than an error when nothing could be built.
type Source interface {
	Fetch(ctx context.Context, category Category) []Question
}

type replenishLocker interface {
	Acquire(ctx context.Context, category Category) (release func(), acquired bool, err error)
}

// Service hands out single-use questions and refills the pool on demand.
type Service struct {
	store  questionStore
	source Source
	lock   replenishLocker
	flight singleflight.Group
	logger zerolog.Logger
}

func NewService(store questionStore, source Source, lock replenishLocker, logger zerolog.Logger) *Service {
	if lock == nil {
		lock = (*ReplenishLock)(nil)
	}
	return &Service{
		store:  store,
		source: source,
		lock:   lock,
		logger: logger.With().Str("component", "question_service").Logger(),
	}
}

// GetQuestions returns up to n random questions of category and removes them
// from the pool. An empty category is refilled from the source first; the
// result is never padded.
func (s *Service) GetQuestions(ctx context.Context, category Category, n int) ([]Question, error) {
	if !category.Valid() {
		return nil, ErrUnknownCategory
	}
	if n <= 0 {
		return []Question{}, nil
	}

	exists, err := s.store.Exists(ctx, string(category))
	if err != nil {
		return nil, fmt.Errorf("check pool: %w", err)
	}
	if !exists {
		if _, err := s.refill(ctx, category, 1); err != nil {
			return nil, err
		}
	}

	rows, err := s.store.Sample(ctx, string(category), n)
	if err != nil {
		return nil, fmt.Errorf("sample pool: %w", err)
	}
	if len(rows) == 0 {
		return []Question{}, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, repository.FromPGUUID(row.ID))
	}
	won, err := s.store.DeleteBatch(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("consume questions: %w", err)
	}
	owned := make(map[uuid.UUID]struct{}, len(won))
	for _, id := range won {
		owned[id] = struct{}{}
	}

	out := make([]Question, 0, len(won))
	for _, row := range rows {
		if _, ok := owned[repository.FromPGUUID(row.ID)]; ok {
			out = append(out, fromRow(row))
		}
	}
	if lost := len(rows) - len(out); lost > 0 {
		s.logger.Debug().Str("category", string(category)).Int("lost", lost).Msg("questions taken by a concurrent request")
	}
	questionsServedTotal.WithLabelValues(string(category)).Add(float64(len(out)))
	return out, nil
}

// GetSingleQuestion returns one question, or ok=false when none is available.
func (s *Service) GetSingleQuestion(ctx context.Context, category Category) (Question, bool, error) {
	qs, err := s.GetQuestions(ctx, category, 1)
	if err != nil || len(qs) == 0 {
		return Question{}, false, err
	}
	return qs[0], true, nil
}

// Replenish tops up category from the source when it holds fewer than
// threshold questions, returning how many were inserted.
func (s *Service) Replenish(ctx context.Context, category Category, threshold int) (int, error) {
	if !category.Valid() {
		return 0, ErrUnknownCategory
	}
	if threshold < 1 {
		threshold = 1
	}
	return s.refill(ctx, category, int64(threshold))
}

// refill runs at most once per category and threshold within the process,
// and at most once per category across processes sharing the lock.
func (s *Service) refill(ctx context.Context, category Category, threshold int64) (int, error) {
	key := fmt.Sprintf("%s:%d", category, threshold)
	v, err, _ := s.flight.Do(key, func() (interface{}, error) {
		release, acquired, err := s.lock.Acquire(ctx, category)
		if err != nil {
			s.logger.Warn().Err(err).Str("category", string(category)).Msg("replenish lock unavailable, refilling unlocked")
			release, acquired = func() {}, true
		}
		if !acquired {
			s.logger.Debug().Str("category", string(category)).Msg("replenish already in progress elsewhere")
			return 0, nil
		}
		defer release()

		count, err := s.store.Count(ctx, string(category))
		if err != nil {
			return 0, fmt.Errorf("count pool: %w", err)
		}
		if count >= threshold {
			return 0, nil
		}

		drafts := s.source.Fetch(ctx, category)
		if len(drafts) == 0 {
			return 0, nil
		}
		batch := make([]queries.InsertQuestionsParams, 0, len(drafts))
		for _, q := range drafts {
			batch = append(batch, toInsertParams(q))
		}
		inserted, err := s.store.InsertBatch(ctx, batch)
		if err != nil {
			return 0, fmt.Errorf("store questions: %w", err)
		}
		questionsReplenishedTotal.WithLabelValues(string(category)).Add(float64(inserted))
		s.logger.Info().Str("category", string(category)).Int64("inserted", inserted).Msg("question pool replenished")
		return int(inserted), nil
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

// PurgeAll empties the pool. Intended for operators and tests.
func (s *Service) PurgeAll(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("purge pool: %w", err)
	}
	s.logger.Info().Int64("deleted", n).Msg("question pool purged")
	return n, nil
}

// PurgeCategory empties one category of the pool.
func (s *Service) PurgeCategory(ctx context.Context, category Category) (int64, error) {
	if !category.Valid() {
		return 0, ErrUnknownCategory
	}
	n, err := s.store.DeleteCategory(ctx, string(category))
	if err != nil {
		return 0, fmt.Errorf("purge category: %w", err)
	}
	s.logger.Info().Str("category", string(category)).Int64("deleted", n).Msg("question category purged")
	return n, nil
}

func fromRow(row queries.Question) Question {
	cat, _ := ParseCategory(row.Category)
	return Question{
		ID:            repository.FromPGUUID(row.ID),
		Statement:     row.Statement,
		CorrectAnswer: row.Answer,
		Image:         row.Image,
		Category:      cat,
		Options:       append([]string(nil), row.Options...),
	}
}

func toInsertParams(q Question) queries.InsertQuestionsParams {
	id := q.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return queries.InsertQuestionsParams{
		ID:        repository.PGUUID(id),
		Statement: q.Statement,
		Answer:    q.CorrectAnswer,
		Image:     q.Image,
		Category:  string(q.Category),
		Options:   q.Options,
	}
}
