package question

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/wikiquiz/internal/question/external"
)

func assertOptionInvariants(t *testing.T, q Question) {
	t.Helper()
	require.Len(t, q.Options, DistractorCount+1)
	count := 0
	seen := map[string]bool{}
	for _, o := range q.Options {
		if o == q.CorrectAnswer {
			count++
		}
		assert.False(t, seen[o], "duplicate option %q", o)
		seen[o] = true
	}
	assert.Equal(t, 1, count, "correct answer must appear exactly once")
}

func TestSourceAdapterBuildsQuestions(t *testing.T) {
	fetcher := &stubFetcher{facts: map[string][]external.Fact{"Places": placeFacts()}}
	adapter := NewSourceAdapter(fetcher, NewCuratedPool(testPools(), zerolog.Nop()), zerolog.Nop())

	qs := adapter.Fetch(context.Background(), CategoryPlaces)
	require.Len(t, qs, 3)
	for i, q := range qs {
		assert.Equal(t, "¿Qué lugar es este?", q.Statement)
		assert.Equal(t, placeFacts()[i].Answer, q.CorrectAnswer)
		assert.Equal(t, placeFacts()[i].Image, q.Image)
		assert.Equal(t, CategoryPlaces, q.Category)
		assert.NotEqual(t, q.ID.String(), "00000000-0000-0000-0000-000000000000")
		assertOptionInvariants(t, q)
	}
}

func TestSourceAdapterDegradesOnError(t *testing.T) {
	fetcher := &stubFetcher{err: errSourceDown}
	adapter := NewSourceAdapter(fetcher, NewCuratedPool(testPools(), zerolog.Nop()), zerolog.Nop())

	sourceConsecutiveFailures.WithLabelValues("Singers").Set(0)
	before := testutil.ToFloat64(sourceFetchTotal.WithLabelValues("Singers", outcomeError))
	qs := adapter.Fetch(context.Background(), CategorySingers)
	qs2 := adapter.Fetch(context.Background(), CategorySingers)

	assert.NotNil(t, qs)
	assert.Empty(t, qs)
	assert.Empty(t, qs2)
	assert.Equal(t, before+2, testutil.ToFloat64(sourceFetchTotal.WithLabelValues("Singers", outcomeError)))
	assert.Equal(t, float64(2), testutil.ToFloat64(sourceConsecutiveFailures.WithLabelValues("Singers")))

	fetcher.fail(nil)
	fetcher.facts = map[string][]external.Fact{"Singers": {{Answer: "Shakira", Image: "http://img/s.jpg"}}}
	require.Len(t, adapter.Fetch(context.Background(), CategorySingers), 1)
	assert.Equal(t, float64(0), testutil.ToFloat64(sourceConsecutiveFailures.WithLabelValues("Singers")))
}

func TestSourceAdapterEmptyResult(t *testing.T) {
	adapter := NewSourceAdapter(&stubFetcher{}, NewCuratedPool(testPools(), zerolog.Nop()), zerolog.Nop())
	qs := adapter.Fetch(context.Background(), CategoryPhilosophers)
	assert.NotNil(t, qs)
	assert.Empty(t, qs)
}

func TestSourceAdapterShortDistractors(t *testing.T) {
	fetcher := &stubFetcher{facts: map[string][]external.Fact{"Flags": {{Answer: "España", Image: "http://img/es.svg"}}}}
	pool := NewCuratedPool(map[Category][]string{CategoryFlags: {"España", "Francia"}}, zerolog.Nop())
	adapter := NewSourceAdapter(fetcher, pool, zerolog.Nop())

	qs := adapter.Fetch(context.Background(), CategoryFlags)
	require.Len(t, qs, 1)
	assert.ElementsMatch(t, []string{"España", "Francia"}, qs[0].Options)
}
