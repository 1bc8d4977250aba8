package question

import (
	"context"
	_ "embed"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// DistractorCount is the number of wrong options attached to each question.
const DistractorCount = 3

// maxDrawsPerEntry bounds sampling so a small or degenerate pool cannot spin.
const maxDrawsPerEntry = 64

//go:embed pools.yaml
var defaultPools []byte

// DistractorGenerator yields wrong answers for a correct one. Implementations
// never return the correct answer or duplicates, and may return fewer than
// DistractorCount entries when they run out of candidates.
type DistractorGenerator interface {
	Generate(ctx context.Context, correct string, category Category) []string
}

// CuratedPool draws distractors uniformly from a per-category candidate list.
type CuratedPool struct {
	pools  map[Category][]string
	intn   func(n int) int
	logger zerolog.Logger
}

var _ DistractorGenerator = (*CuratedPool)(nil)

func NewCuratedPool(pools map[Category][]string, logger zerolog.Logger) *CuratedPool {
	return &CuratedPool{
		pools:  pools,
		intn:   rand.IntN,
		logger: logger.With().Str("component", "distractor_pool").Logger(),
	}
}

// LoadCuratedPool reads pools from path, or from the built-in set when path is empty.
func LoadCuratedPool(path string, logger zerolog.Logger) (*CuratedPool, error) {
	data := defaultPools
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read distractor pools: %w", err)
		}
		data = raw
	}
	pools, err := ParsePools(data)
	if err != nil {
		return nil, err
	}
	return NewCuratedPool(pools, logger), nil
}

// ParsePools decodes a YAML mapping of category name to candidate answers.
func ParsePools(data []byte) (map[Category][]string, error) {
	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode distractor pools: %w", err)
	}
	pools := make(map[Category][]string, len(raw))
	for name, entries := range raw {
		cat, ok := ParseCategory(name)
		if !ok {
			return nil, fmt.Errorf("distractor pools: %w: %q", ErrUnknownCategory, name)
		}
		pools[cat] = append(pools[cat], entries...)
	}
	return pools, nil
}

func (p *CuratedPool) Generate(_ context.Context, correct string, category Category) []string {
	pool := p.pools[category]
	if len(pool) == 0 {
		p.logger.Error().Str("category", string(category)).Msg("no distractor pool for category")
		return []string{}
	}

	picked := make([]string, 0, DistractorCount)
	seen := make(map[string]struct{}, DistractorCount)
	maxDraws := maxDrawsPerEntry * len(pool)
	for draws := 0; len(picked) < DistractorCount && draws < maxDraws; draws++ {
		candidate := pool[p.intn(len(pool))]
		if candidate == correct || candidate == "" {
			continue
		}
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}
		picked = append(picked, candidate)
	}

	if len(picked) < DistractorCount {
		p.logger.Warn().
			Str("category", string(category)).
			Int("found", len(picked)).
			Msg("distractor pool exhausted")
	}
	return picked
}
