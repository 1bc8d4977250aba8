package question

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/gokatarajesh/wikiquiz/internal/db/queries"
	"github.com/gokatarajesh/wikiquiz/internal/db/repository"
	"github.com/gokatarajesh/wikiquiz/internal/question/external"
)

// memStore is an in-memory questionStore keeping insertion order.
type memStore struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]queries.Question
	order   []uuid.UUID
	failErr error
}

func newMemStore() *memStore {
	return &memStore{rows: map[uuid.UUID]queries.Question{}}
}

func (m *memStore) Exists(ctx context.Context, category string) (bool, error) {
	n, err := m.Count(ctx, category)
	return n > 0, err
}

func (m *memStore) Count(_ context.Context, category string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return 0, m.failErr
	}
	var n int64
	for _, row := range m.rows {
		if row.Category == category {
			n++
		}
	}
	return n, nil
}

func (m *memStore) InsertBatch(_ context.Context, batch []queries.InsertQuestionsParams) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return 0, m.failErr
	}
	for _, p := range batch {
		id := repository.FromPGUUID(p.ID)
		m.rows[id] = queries.Question{
			ID:        p.ID,
			Statement: p.Statement,
			Answer:    p.Answer,
			Image:     p.Image,
			Category:  p.Category,
			Options:   p.Options,
		}
		m.order = append(m.order, id)
	}
	return int64(len(batch)), nil
}

func (m *memStore) Sample(_ context.Context, category string, n int) ([]queries.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	var out []queries.Question
	for _, id := range m.order {
		row, ok := m.rows[id]
		if !ok || row.Category != category {
			continue
		}
		out = append(out, row)
		if len(out) == n {
			break
		}
	}
	return out, nil
}

func (m *memStore) DeleteBatch(_ context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	var won []uuid.UUID
	for _, id := range ids {
		if _, ok := m.rows[id]; ok {
			delete(m.rows, id)
			won = append(won, id)
		}
	}
	return won, nil
}

func (m *memStore) DeleteCategory(_ context.Context, category string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, row := range m.rows {
		if row.Category == category {
			delete(m.rows, id)
			n++
		}
	}
	return n, nil
}

func (m *memStore) DeleteAll(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.rows))
	m.rows = map[uuid.UUID]queries.Question{}
	m.order = nil
	return n, nil
}

func (m *memStore) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

// stubFetcher serves canned facts, or err when set.
type stubFetcher struct {
	mu    sync.Mutex
	facts map[string][]external.Fact
	err   error
	calls int
}

func (s *stubFetcher) Fetch(_ context.Context, category string) ([]external.Fact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.facts[category], nil
}

func (s *stubFetcher) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *stubFetcher) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

var errSourceDown = errors.New("dial tcp: connection refused")

func placeFacts() []external.Fact {
	return []external.Fact{
		{Answer: "París", Image: "http://img/paris.jpg"},
		{Answer: "Lima", Image: "http://img/lima.jpg"},
		{Answer: "Berlín", Image: "http://img/berlin.jpg"},
	}
}

func testPools() map[Category][]string {
	pools := map[Category][]string{}
	for _, c := range Categories {
		pools[c] = []string{"A " + string(c), "B " + string(c), "C " + string(c), "D " + string(c), "E " + string(c)}
	}
	pools[CategoryPlaces] = []string{"París", "Madrid", "Roma", "Lisboa", "Viena", "Lima", "Berlín"}
	return pools
}
