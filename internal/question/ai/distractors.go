package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/wikiquiz/internal/question"
)

// Config holds connection details for the remote distractor service.
type Config struct {
	URL     string
	Key     string
	Timeout time.Duration
}

// DistractorGenerator asks a remote model for plausible wrong answers and
// falls back to another generator whenever the call is unusable.
type DistractorGenerator struct {
	httpClient *http.Client
	config     Config
	fallback   question.DistractorGenerator
	logger     zerolog.Logger
	endpoint   string
}

var _ question.DistractorGenerator = (*DistractorGenerator)(nil)

func NewDistractorGenerator(cfg Config, fallback question.DistractorGenerator, logger zerolog.Logger) *DistractorGenerator {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 6 * time.Second
	}
	return &DistractorGenerator{
		httpClient: &http.Client{Timeout: timeout},
		config:     cfg,
		fallback:   fallback,
		logger:     logger.With().Str("component", "ai_distractors").Logger(),
		endpoint:   strings.TrimSuffix(cfg.URL, "/") + "/distractors",
	}
}

func (g *DistractorGenerator) Generate(ctx context.Context, correct string, category question.Category) []string {
	out, err := g.request(ctx, correct, category)
	if err == nil {
		return out
	}
	g.logger.Warn().Err(err).Str("category", string(category)).Msg("remote distractors unavailable, using fallback")
	if g.fallback == nil {
		return []string{}
	}
	return g.fallback.Generate(ctx, correct, category)
}

func (g *DistractorGenerator) request(ctx context.Context, correct string, category question.Category) ([]string, error) {
	if g.config.URL == "" {
		return nil, fmt.Errorf("distractor endpoint not configured")
	}

	body, err := json.Marshal(distractorRequest{
		Answer:   correct,
		Category: string(category),
		Count:    question.DistractorCount,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if g.config.Key != "" {
		httpReq.Header.Set("Authorization", "Bearer "+g.config.Key)
	}

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("distractor service returned status %d", resp.StatusCode)
	}

	var payload distractorResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode distractor payload: %w", err)
	}
	return normalize(payload.Distractors, correct)
}

// normalize keeps distinct, non-empty entries that differ from correct and
// requires a full set.
func normalize(raw []string, correct string) ([]string, error) {
	out := make([]string, 0, question.DistractorCount)
	seen := map[string]struct{}{}
	for _, d := range raw {
		d = strings.TrimSpace(d)
		if d == "" || strings.EqualFold(d, correct) {
			continue
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
		if len(out) == question.DistractorCount {
			return out, nil
		}
	}
	return nil, fmt.Errorf("distractor service returned %d usable entries", len(out))
}

type distractorRequest struct {
	Answer   string `json:"answer"`
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type distractorResponse struct {
	Distractors []string `json:"distractors"`
}
