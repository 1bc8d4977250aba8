package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gokatarajesh/wikiquiz/internal/db/queries"
)

type mockQuestionStore struct {
	mock.Mock
}

func (m *mockQuestionStore) QuestionCategoryExists(ctx context.Context, category string) (bool, error) {
	args := m.Called(ctx, category)
	return args.Bool(0), args.Error(1)
}

func (m *mockQuestionStore) CountQuestionsByCategory(ctx context.Context, category string) (int64, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockQuestionStore) InsertQuestions(ctx context.Context, arg []queries.InsertQuestionsParams) (int64, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockQuestionStore) SampleQuestions(ctx context.Context, arg queries.SampleQuestionsParams) ([]queries.Question, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).([]queries.Question), args.Error(1)
}

func (m *mockQuestionStore) DeleteQuestion(ctx context.Context, id pgtype.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockQuestionStore) DeleteQuestions(ctx context.Context, ids []pgtype.UUID) ([]pgtype.UUID, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]pgtype.UUID), args.Error(1)
}

func (m *mockQuestionStore) DeleteQuestionsByCategory(ctx context.Context, category string) (int64, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockQuestionStore) DeleteAllQuestions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestQuestionRepository_Exists(t *testing.T) {
	store := new(mockQuestionStore)
	repo := NewQuestionRepository(store)

	store.On("QuestionCategoryExists", mock.Anything, "Places").Return(true, nil)
	store.On("QuestionCategoryExists", mock.Anything, "Art").Return(false, nil)

	ok, err := repo.Exists(context.Background(), "Places")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(context.Background(), "Art")
	assert.NoError(t, err)
	assert.False(t, ok)
	store.AssertExpectations(t)
}

func TestQuestionRepository_DriverErrorIsUnavailable(t *testing.T) {
	store := new(mockQuestionStore)
	repo := NewQuestionRepository(store)

	store.On("QuestionCategoryExists", mock.Anything, "Places").Return(false, errors.New("dial tcp: connection refused"))

	_, err := repo.Exists(context.Background(), "Places")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestQuestionRepository_InsertBatchSkipsEmpty(t *testing.T) {
	store := new(mockQuestionStore)
	repo := NewQuestionRepository(store)

	n, err := repo.InsertBatch(context.Background(), nil)
	assert.NoError(t, err)
	assert.Zero(t, n)
	store.AssertNotCalled(t, "InsertQuestions", mock.Anything, mock.Anything)

	params := []queries.InsertQuestionsParams{{
		ID:        uuidFromByte(1),
		Statement: "¿Qué lugar es este?",
		Answer:    "Paris",
		Category:  "Places",
		Options:   []string{"Paris", "Berlin", "Madrid", "Rome"},
	}}
	store.On("InsertQuestions", mock.Anything, params).Return(int64(1), nil)

	n, err = repo.InsertBatch(context.Background(), params)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)
	store.AssertExpectations(t)
}

func TestQuestionRepository_Sample(t *testing.T) {
	store := new(mockQuestionStore)
	repo := NewQuestionRepository(store)

	rows := []queries.Question{{ID: uuidFromByte(1), Category: "Places"}}
	store.On("SampleQuestions", mock.Anything, queries.SampleQuestionsParams{Category: "Places", Limit: 5}).Return(rows, nil)

	got, err := repo.Sample(context.Background(), "Places", 5)
	assert.NoError(t, err)
	assert.Equal(t, rows, got)

	got, err = repo.Sample(context.Background(), "Places", 0)
	assert.NoError(t, err)
	assert.Empty(t, got)
	store.AssertNumberOfCalls(t, "SampleQuestions", 1)
}

func TestQuestionRepository_DeleteMissingIsNotFound(t *testing.T) {
	store := new(mockQuestionStore)
	repo := NewQuestionRepository(store)

	store.On("DeleteQuestion", mock.Anything, uuidFromByte(9)).Return(int64(0), nil)

	err := repo.Delete(context.Background(), plainUUID(9))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQuestionRepository_DeleteBatchReturnsWonIDs(t *testing.T) {
	store := new(mockQuestionStore)
	repo := NewQuestionRepository(store)

	store.On("DeleteQuestions", mock.Anything, []pgtype.UUID{uuidFromByte(1), uuidFromByte(2)}).
		Return([]pgtype.UUID{uuidFromByte(2)}, nil)

	got, err := repo.DeleteBatch(context.Background(), []uuid.UUID{plainUUID(1), plainUUID(2)})
	assert.NoError(t, err)
	assert.Equal(t, []uuid.UUID{plainUUID(2)}, got)
	store.AssertExpectations(t)
}

func TestQuestionRepository_DeleteAll(t *testing.T) {
	store := new(mockQuestionStore)
	repo := NewQuestionRepository(store)

	store.On("DeleteAllQuestions", mock.Anything).Return(int64(12), nil)
	store.On("DeleteQuestionsByCategory", mock.Anything, "Flags").Return(int64(3), nil)

	n, err := repo.DeleteAll(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(12), n)

	n, err = repo.DeleteCategory(context.Background(), "Flags")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
	store.AssertExpectations(t)
}
