package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/gokatarajesh/wikiquiz/internal/db/queries"
)

type questionStore interface {
	QuestionCategoryExists(ctx context.Context, category string) (bool, error)
	CountQuestionsByCategory(ctx context.Context, category string) (int64, error)
	InsertQuestions(ctx context.Context, arg []queries.InsertQuestionsParams) (int64, error)
	SampleQuestions(ctx context.Context, arg queries.SampleQuestionsParams) ([]queries.Question, error)
	DeleteQuestion(ctx context.Context, id pgtype.UUID) (int64, error)
	DeleteQuestions(ctx context.Context, ids []pgtype.UUID) ([]pgtype.UUID, error)
	DeleteQuestionsByCategory(ctx context.Context, category string) (int64, error)
	DeleteAllQuestions(ctx context.Context) (int64, error)
}

// QuestionRepository is the persistent per-category question pool.
type QuestionRepository struct {
	store questionStore
}

func NewQuestionRepository(store questionStore) *QuestionRepository {
	return &QuestionRepository{store: store}
}

// Exists reports whether at least one question is stored for category.
func (r *QuestionRepository) Exists(ctx context.Context, category string) (bool, error) {
	ok, err := r.store.QuestionCategoryExists(ctx, category)
	if err != nil {
		return false, classify("question exists", err)
	}
	return ok, nil
}

// Count returns the number of stored questions for category.
func (r *QuestionRepository) Count(ctx context.Context, category string) (int64, error) {
	n, err := r.store.CountQuestionsByCategory(ctx, category)
	if err != nil {
		return 0, classify("count questions", err)
	}
	return n, nil
}

// InsertBatch stores drafts in one round trip. An empty batch is a no-op.
func (r *QuestionRepository) InsertBatch(ctx context.Context, params []queries.InsertQuestionsParams) (int64, error) {
	if len(params) == 0 {
		return 0, nil
	}
	n, err := r.store.InsertQuestions(ctx, params)
	if err != nil {
		return 0, classify("insert questions", err)
	}
	return n, nil
}

// Sample picks up to n random questions of category without removing them.
func (r *QuestionRepository) Sample(ctx context.Context, category string, n int) ([]queries.Question, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := r.store.SampleQuestions(ctx, queries.SampleQuestionsParams{
		Category: category,
		Limit:    int32(n),
	})
	if err != nil {
		return nil, classify("sample questions", err)
	}
	return rows, nil
}

// Delete removes a single question. Deleting a missing id returns ErrNotFound.
func (r *QuestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.store.DeleteQuestion(ctx, PGUUID(id))
	if err != nil {
		return classify("delete question", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteBatch removes ids and returns the subset that this call deleted.
func (r *QuestionRepository) DeleteBatch(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	pgIDs := make([]pgtype.UUID, len(ids))
	for i, id := range ids {
		pgIDs[i] = PGUUID(id)
	}
	deleted, err := r.store.DeleteQuestions(ctx, pgIDs)
	if err != nil {
		return nil, classify("delete questions", err)
	}
	out := make([]uuid.UUID, len(deleted))
	for i, id := range deleted {
		out[i] = FromPGUUID(id)
	}
	return out, nil
}

// DeleteCategory empties one category's pool.
func (r *QuestionRepository) DeleteCategory(ctx context.Context, category string) (int64, error) {
	n, err := r.store.DeleteQuestionsByCategory(ctx, category)
	if err != nil {
		return 0, classify("delete category", err)
	}
	return n, nil
}

// DeleteAll empties the whole pool.
func (r *QuestionRepository) DeleteAll(ctx context.Context) (int64, error) {
	n, err := r.store.DeleteAllQuestions(ctx)
	if err != nil {
		return 0, classify("delete all questions", err)
	}
	return n, nil
}
