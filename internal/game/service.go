package game

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/wikiquiz/internal/db/queries"
	"github.com/gokatarajesh/wikiquiz/internal/db/repository"
	"github.com/gokatarajesh/wikiquiz/internal/game/scoring"
)

type sessionStore interface {
	Create(ctx context.Context, params queries.CreateGameSessionParams) (queries.GameSession, error)
	Get(ctx context.Context, id uuid.UUID) (queries.GameSession, error)
	LatestActive(ctx context.Context, userID string) (queries.GameSession, error)
	IncrementTally(ctx context.Context, id uuid.UUID, correct bool) (queries.GameSession, error)
	Complete(ctx context.Context, params queries.CompleteGameSessionParams) (queries.GameSession, error)
	ListEnded(ctx context.Context, userID string) ([]queries.GameSession, error)
}

type Options struct {
	Mode   ScoringMode
	Engine *scoring.Engine
	Now    func() time.Time
}

// Service manages the lifecycle and tallies of game sessions.
type Service struct {
	store  sessionStore
	mode   ScoringMode
	engine *scoring.Engine
	now    func() time.Time
	logger zerolog.Logger
}

func NewService(store sessionStore, opts Options, logger zerolog.Logger) *Service {
	if opts.Mode == "" {
		opts.Mode = ScoringClient
	}
	if opts.Engine == nil {
		opts.Engine = scoring.NewEngine(scoring.DefaultScoringConfig())
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		store:  store,
		mode:   opts.Mode,
		engine: opts.Engine,
		now:    opts.Now,
		logger: logger.With().Str("component", "game_service").Logger(),
	}
}

// Start opens a new active session. Every call creates a new record.
func (s *Service) Start(ctx context.Context, params StartParams) (Session, error) {
	params.UserID = strings.TrimSpace(params.UserID)
	if params.UserID == "" {
		return Session{}, &ValidationError{Field: "userId", Message: "userId is required"}
	}
	if params.TotalQuestions < 0 {
		return Session{}, &ValidationError{Field: "totalQuestions", Message: "totalQuestions must not be negative"}
	}
	if params.TotalQuestions > math.MaxInt32 {
		return Session{}, &ValidationError{Field: "totalQuestions", Message: "totalQuestions is out of range"}
	}

	row, err := s.store.Create(ctx, queries.CreateGameSessionParams{
		ID:             repository.PGUUID(uuid.New()),
		UserID:         params.UserID,
		Username:       params.Username,
		CreatedAt:      timestamptz(s.now()),
		Category:       params.Category,
		Level:          params.Level,
		TotalQuestions: int32(params.TotalQuestions),
	})
	if err != nil {
		return Session{}, fmt.Errorf("start session: %w", err)
	}
	sess := fromRow(row)
	s.logger.Debug().Str("user_id", sess.UserID).Str("session_id", sess.ID.String()).Msg("session started")
	return sess, nil
}

// RecordAnswer bumps the correct or wrong tally of an active session.
func (s *Service) RecordAnswer(ctx context.Context, ref Ref, correct bool) (Session, error) {
	sess, err := s.resolveActive(ctx, ref)
	if err != nil {
		return Session{}, err
	}

	row, err := s.store.IncrementTally(ctx, sess.ID, correct)
	if errors.Is(err, repository.ErrNotFound) {
		// the guarded update matched nothing: re-read to report why
		current, getErr := s.load(ctx, Ref{UserID: ref.UserID, SessionID: sess.ID})
		if getErr != nil {
			return Session{}, getErr
		}
		if !current.Active() {
			return Session{}, ErrSessionEnded
		}
		return Session{}, ErrTallyExhausted
	}
	if err != nil {
		return Session{}, fmt.Errorf("record answer: %w", err)
	}
	return fromRow(row), nil
}

// End closes the session exactly once and stores its final values.
func (s *Service) End(ctx context.Context, ref Ref, params EndParams) (Session, error) {
	if err := validateEnd(params); err != nil {
		return Session{}, err
	}
	sess, err := s.resolveActive(ctx, ref)
	if err != nil {
		return Session{}, err
	}

	now := s.now()
	elapsed := now.Sub(sess.CreatedAt)
	if elapsed < 0 {
		elapsed = 0
	}

	final := finalValues{
		Category:       firstNonEmpty(params.Category, sess.Category),
		Level:          firstNonEmpty(params.Level, sess.Level),
		TotalQuestions: params.TotalQuestions,
	}
	if final.TotalQuestions == 0 {
		final.TotalQuestions = sess.TotalQuestions
	}
	switch s.mode {
	case ScoringServer:
		final.Correct = sess.Correct
		final.Wrong = sess.Wrong
		final.Answered = sess.Correct + sess.Wrong
		final.Points = s.engine.SessionPoints(final.Correct, final.Answered, elapsed, final.Level)
	default:
		final.Correct = params.Correct
		final.Wrong = params.Wrong
		final.Answered = params.Answered
		final.Points = params.Points
	}
	if final.TotalQuestions > 0 && final.Answered > final.TotalQuestions {
		return Session{}, &ValidationError{Field: "answered", Message: "answered must not exceed totalQuestions"}
	}
	if final.TotalQuestions > 0 && final.Correct+final.Wrong > final.TotalQuestions {
		return Session{}, &ValidationError{Field: "correct", Message: "correct + wrong must not exceed totalQuestions"}
	}

	row, err := s.store.Complete(ctx, queries.CompleteGameSessionParams{
		ID:              repository.PGUUID(sess.ID),
		Correct:         int32(final.Correct),
		Wrong:           int32(final.Wrong),
		DurationSeconds: int32(elapsed / time.Second),
		EndedAt:         timestamptz(now),
		IsCompleted:     final.completed(),
		Category:        final.Category,
		Level:           final.Level,
		TotalQuestions:  int32(final.TotalQuestions),
		Answered:        int32(final.Answered),
		Points:          int32(final.Points),
	})
	if errors.Is(err, repository.ErrNotFound) {
		return Session{}, ErrSessionEnded
	}
	if err != nil {
		return Session{}, fmt.Errorf("end session: %w", err)
	}

	ended := fromRow(row)
	s.logger.Info().
		Str("user_id", ended.UserID).
		Str("session_id", ended.ID.String()).
		Str("scoring", string(s.mode)).
		Int("duration", ended.Duration).
		Bool("completed", ended.IsCompleted).
		Msg("session ended")
	return ended, nil
}

// Statistics lists the user's ended sessions, oldest first.
func (s *Service) Statistics(ctx context.Context, userID string) ([]Statistic, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, &ValidationError{Field: "userId", Message: "userId is required"}
	}
	rows, err := s.store.ListEnded(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list statistics: %w", err)
	}
	out := make([]Statistic, 0, len(rows))
	for _, row := range rows {
		sess := fromRow(row)
		out = append(out, Statistic{
			Correct:        sess.Correct,
			Wrong:          sess.Wrong,
			Duration:       sess.Duration,
			CreatedAt:      sess.CreatedAt,
			Category:       sess.Category,
			Level:          sess.Level,
			TotalQuestions: sess.TotalQuestions,
			Answered:       sess.Answered,
			Points:         sess.Points,
		})
	}
	return out, nil
}

// Get returns a session of any state owned by ref.UserID.
func (s *Service) Get(ctx context.Context, ref Ref) (Session, error) {
	if strings.TrimSpace(ref.UserID) == "" {
		return Session{}, &ValidationError{Field: "userId", Message: "userId is required"}
	}
	if ref.SessionID == uuid.Nil {
		return Session{}, &ValidationError{Field: "sessionId", Message: "sessionId is required"}
	}
	return s.load(ctx, ref)
}

func (s *Service) load(ctx context.Context, ref Ref) (Session, error) {
	row, err := s.store.Get(ctx, ref.SessionID)
	if errors.Is(err, repository.ErrNotFound) {
		return Session{}, ErrSessionNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("load session: %w", err)
	}
	sess := fromRow(row)
	if sess.UserID != ref.UserID {
		return Session{}, ErrSessionNotFound
	}
	return sess, nil
}

// resolveActive finds the session ref points at and requires it to be active.
func (s *Service) resolveActive(ctx context.Context, ref Ref) (Session, error) {
	ref.UserID = strings.TrimSpace(ref.UserID)
	if ref.UserID == "" {
		return Session{}, &ValidationError{Field: "userId", Message: "userId is required"}
	}

	if ref.SessionID != uuid.Nil {
		sess, err := s.load(ctx, ref)
		if err != nil {
			return Session{}, err
		}
		if !sess.Active() {
			return Session{}, ErrSessionEnded
		}
		return sess, nil
	}

	row, err := s.store.LatestActive(ctx, ref.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return Session{}, ErrNoActiveSession
	}
	if err != nil {
		return Session{}, fmt.Errorf("find active session: %w", err)
	}
	return fromRow(row), nil
}

type finalValues struct {
	Correct        int
	Wrong          int
	Category       string
	Level          string
	TotalQuestions int
	Answered       int
	Points         int
}

// completed treats an unknown total (zero) as a finished game.
func (f finalValues) completed() bool {
	return f.TotalQuestions == 0 || f.Answered == f.TotalQuestions
}

func validateEnd(p EndParams) error {
	fields := []struct {
		name  string
		value int
	}{
		{"correct", p.Correct},
		{"wrong", p.Wrong},
		{"totalQuestions", p.TotalQuestions},
		{"answered", p.Answered},
		{"points", p.Points},
	}
	for _, f := range fields {
		if f.value < 0 {
			return &ValidationError{Field: f.name, Message: f.name + " must not be negative"}
		}
		if f.value > math.MaxInt32 {
			return &ValidationError{Field: f.name, Message: f.name + " is out of range"}
		}
	}
	return nil
}

func fromRow(row queries.GameSession) Session {
	sess := Session{
		ID:             repository.FromPGUUID(row.ID),
		UserID:         row.UserID,
		Username:       row.Username,
		Correct:        int(row.Correct),
		Wrong:          int(row.Wrong),
		Duration:       int(row.DurationSeconds),
		CreatedAt:      row.CreatedAt.Time,
		IsCompleted:    row.IsCompleted,
		Category:       row.Category,
		Level:          row.Level,
		TotalQuestions: int(row.TotalQuestions),
		Answered:       int(row.Answered),
		Points:         int(row.Points),
	}
	if row.EndedAt.Valid {
		ended := row.EndedAt.Time
		sess.EndedAt = &ended
	}
	return sess
}

func timestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t.UTC(), Valid: true}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
