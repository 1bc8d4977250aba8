package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gokatarajesh/wikiquiz/internal/db/queries"
)

type mockSessionStore struct {
	mock.Mock
}

func (m *mockSessionStore) CreateGameSession(ctx context.Context, arg queries.CreateGameSessionParams) (queries.GameSession, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(queries.GameSession), args.Error(1)
}

func (m *mockSessionStore) GetGameSession(ctx context.Context, id pgtype.UUID) (queries.GameSession, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(queries.GameSession), args.Error(1)
}

func (m *mockSessionStore) GetLatestActiveGameSession(ctx context.Context, userID string) (queries.GameSession, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(queries.GameSession), args.Error(1)
}

func (m *mockSessionStore) IncrementGameSessionTally(ctx context.Context, arg queries.IncrementGameSessionTallyParams) (queries.GameSession, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(queries.GameSession), args.Error(1)
}

func (m *mockSessionStore) CompleteGameSession(ctx context.Context, arg queries.CompleteGameSessionParams) (queries.GameSession, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(queries.GameSession), args.Error(1)
}

func (m *mockSessionStore) ListEndedGameSessions(ctx context.Context, userID string) ([]queries.GameSession, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]queries.GameSession), args.Error(1)
}

func TestSessionRepository_Create(t *testing.T) {
	store := new(mockSessionStore)
	repo := NewSessionRepository(store)

	params := queries.CreateGameSessionParams{
		ID:        uuidFromByte(1),
		UserID:    "u1",
		CreatedAt: pgtype.Timestamptz{Time: time.Unix(1700000000, 0), Valid: true},
	}
	expect := queries.GameSession{ID: params.ID, UserID: "u1", CreatedAt: params.CreatedAt}
	store.On("CreateGameSession", mock.Anything, params).Return(expect, nil)

	got, err := repo.Create(context.Background(), params)
	assert.NoError(t, err)
	assert.Equal(t, expect, got)
	store.AssertExpectations(t)
}

func TestSessionRepository_NoRowsIsNotFound(t *testing.T) {
	store := new(mockSessionStore)
	repo := NewSessionRepository(store)

	store.On("GetLatestActiveGameSession", mock.Anything, "ghost").Return(queries.GameSession{}, pgx.ErrNoRows)
	store.On("IncrementGameSessionTally", mock.Anything, queries.IncrementGameSessionTallyParams{ID: uuidFromByte(2), Correct: true}).
		Return(queries.GameSession{}, pgx.ErrNoRows)

	_, err := repo.LatestActive(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.IncrementTally(context.Background(), plainUUID(2), true)
	assert.ErrorIs(t, err, ErrNotFound)
	store.AssertExpectations(t)
}

func TestSessionRepository_CompleteAndList(t *testing.T) {
	store := new(mockSessionStore)
	repo := NewSessionRepository(store)

	params := queries.CompleteGameSessionParams{
		ID:             uuidFromByte(3),
		Correct:        7,
		Wrong:          3,
		TotalQuestions: 10,
		Answered:       10,
		IsCompleted:    true,
	}
	ended := queries.GameSession{ID: params.ID, UserID: "u1", Correct: 7, Wrong: 3, IsCompleted: true}
	store.On("CompleteGameSession", mock.Anything, params).Return(ended, nil)
	store.On("ListEndedGameSessions", mock.Anything, "u1").Return([]queries.GameSession{ended}, nil)

	got, err := repo.Complete(context.Background(), params)
	assert.NoError(t, err)
	assert.Equal(t, ended, got)

	list, err := repo.ListEnded(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	store.AssertExpectations(t)
}
