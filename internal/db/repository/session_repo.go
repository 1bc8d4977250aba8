package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/gokatarajesh/wikiquiz/internal/db/queries"
)

type sessionStore interface {
	CreateGameSession(ctx context.Context, arg queries.CreateGameSessionParams) (queries.GameSession, error)
	GetGameSession(ctx context.Context, id pgtype.UUID) (queries.GameSession, error)
	GetLatestActiveGameSession(ctx context.Context, userID string) (queries.GameSession, error)
	IncrementGameSessionTally(ctx context.Context, arg queries.IncrementGameSessionTallyParams) (queries.GameSession, error)
	CompleteGameSession(ctx context.Context, arg queries.CompleteGameSessionParams) (queries.GameSession, error)
	ListEndedGameSessions(ctx context.Context, userID string) ([]queries.GameSession, error)
}

// SessionRepository persists game sessions. Rows are never deleted.
type SessionRepository struct {
	store sessionStore
}

func NewSessionRepository(store sessionStore) *SessionRepository {
	return &SessionRepository{store: store}
}

// Create inserts a fresh session row.
func (r *SessionRepository) Create(ctx context.Context, params queries.CreateGameSessionParams) (queries.GameSession, error) {
	s, err := r.store.CreateGameSession(ctx, params)
	if err != nil {
		return queries.GameSession{}, classify("create session", err)
	}
	return s, nil
}

// Get loads a session by id.
func (r *SessionRepository) Get(ctx context.Context, id uuid.UUID) (queries.GameSession, error) {
	s, err := r.store.GetGameSession(ctx, PGUUID(id))
	if err != nil {
		return queries.GameSession{}, classify("get session", err)
	}
	return s, nil
}

// LatestActive returns the most recently created session of userID that has not ended.
func (r *SessionRepository) LatestActive(ctx context.Context, userID string) (queries.GameSession, error) {
	s, err := r.store.GetLatestActiveGameSession(ctx, userID)
	if err != nil {
		return queries.GameSession{}, classify("latest active session", err)
	}
	return s, nil
}

// IncrementTally adds one correct or wrong answer. ErrNotFound means the
// session is missing, already ended, or its tally is full.
func (r *SessionRepository) IncrementTally(ctx context.Context, id uuid.UUID, correct bool) (queries.GameSession, error) {
	s, err := r.store.IncrementGameSessionTally(ctx, queries.IncrementGameSessionTallyParams{
		ID:      PGUUID(id),
		Correct: correct,
	})
	if err != nil {
		return queries.GameSession{}, classify("increment tally", err)
	}
	return s, nil
}

// Complete finalizes an active session. ErrNotFound means it was already ended.
func (r *SessionRepository) Complete(ctx context.Context, params queries.CompleteGameSessionParams) (queries.GameSession, error) {
	s, err := r.store.CompleteGameSession(ctx, params)
	if err != nil {
		return queries.GameSession{}, classify("complete session", err)
	}
	return s, nil
}

// ListEnded returns the ended sessions of userID, oldest first.
func (r *SessionRepository) ListEnded(ctx context.Context, userID string) ([]queries.GameSession, error) {
	rows, err := r.store.ListEndedGameSessions(ctx, userID)
	if err != nil {
		return nil, classify("list ended sessions", err)
	}
	return rows, nil
}
