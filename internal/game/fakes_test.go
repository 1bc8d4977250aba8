package game

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gokatarajesh/wikiquiz/internal/db/queries"
	"github.com/gokatarajesh/wikiquiz/internal/db/repository"
)

// memSessions mirrors the guarded SQL updates of the session queries.
type memSessions struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]queries.GameSession
	failErr error
}

func newMemSessions() *memSessions {
	return &memSessions{rows: map[uuid.UUID]queries.GameSession{}}
}

func (m *memSessions) Create(_ context.Context, p queries.CreateGameSessionParams) (queries.GameSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return queries.GameSession{}, m.failErr
	}
	row := queries.GameSession{
		ID:             p.ID,
		UserID:         p.UserID,
		Username:       p.Username,
		CreatedAt:      p.CreatedAt,
		Category:       p.Category,
		Level:          p.Level,
		TotalQuestions: p.TotalQuestions,
	}
	m.rows[repository.FromPGUUID(p.ID)] = row
	return row, nil
}

func (m *memSessions) Get(_ context.Context, id uuid.UUID) (queries.GameSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return queries.GameSession{}, m.failErr
	}
	row, ok := m.rows[id]
	if !ok {
		return queries.GameSession{}, repository.ErrNotFound
	}
	return row, nil
}

func (m *memSessions) LatestActive(_ context.Context, userID string) (queries.GameSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return queries.GameSession{}, m.failErr
	}
	var (
		best  queries.GameSession
		found bool
	)
	for _, row := range m.rows {
		if row.UserID != userID || row.EndedAt.Valid {
			continue
		}
		if !found || row.CreatedAt.Time.After(best.CreatedAt.Time) {
			best, found = row, true
		}
	}
	if !found {
		return queries.GameSession{}, repository.ErrNotFound
	}
	return best, nil
}

func (m *memSessions) IncrementTally(_ context.Context, id uuid.UUID, correct bool) (queries.GameSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok || row.EndedAt.Valid {
		return queries.GameSession{}, repository.ErrNotFound
	}
	if row.TotalQuestions > 0 && row.Correct+row.Wrong >= row.TotalQuestions {
		return queries.GameSession{}, repository.ErrNotFound
	}
	if correct {
		row.Correct++
	} else {
		row.Wrong++
	}
	m.rows[id] = row
	return row, nil
}

func (m *memSessions) Complete(_ context.Context, p queries.CompleteGameSessionParams) (queries.GameSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := repository.FromPGUUID(p.ID)
	row, ok := m.rows[id]
	if !ok || row.EndedAt.Valid {
		return queries.GameSession{}, repository.ErrNotFound
	}
	row.Correct = p.Correct
	row.Wrong = p.Wrong
	row.DurationSeconds = p.DurationSeconds
	row.EndedAt = p.EndedAt
	row.IsCompleted = p.IsCompleted
	row.Category = p.Category
	row.Level = p.Level
	row.TotalQuestions = p.TotalQuestions
	row.Answered = p.Answered
	row.Points = p.Points
	m.rows[id] = row
	return row, nil
}

func (m *memSessions) ListEnded(_ context.Context, userID string) ([]queries.GameSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	var out []queries.GameSession
	for _, row := range m.rows {
		if row.UserID == userID && row.EndedAt.Valid {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Time.Before(out[j].CreatedAt.Time) })
	return out, nil
}

// fakeClock advances only when told to.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

