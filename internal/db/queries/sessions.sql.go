package queries

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const gameSessionColumns = `id, user_id, username, correct, wrong, duration_seconds, created_at, ended_at,
    is_completed, category, level, total_questions, answered, points`

func scanGameSession(row interface{ Scan(dest ...interface{}) error }) (GameSession, error) {
	var i GameSession
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Username,
		&i.Correct,
		&i.Wrong,
		&i.DurationSeconds,
		&i.CreatedAt,
		&i.EndedAt,
		&i.IsCompleted,
		&i.Category,
		&i.Level,
		&i.TotalQuestions,
		&i.Answered,
		&i.Points,
	)
	return i, err
}

const createGameSession = `-- name: CreateGameSession :one
INSERT INTO game_sessions (id, user_id, username, created_at, category, level, total_questions)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + gameSessionColumns

type CreateGameSessionParams struct {
	ID             pgtype.UUID        `json:"id"`
	UserID         string             `json:"user_id"`
	Username       string             `json:"username"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
	Category       string             `json:"category"`
	Level          string             `json:"level"`
	TotalQuestions int32              `json:"total_questions"`
}

func (q *Queries) CreateGameSession(ctx context.Context, arg CreateGameSessionParams) (GameSession, error) {
	row := q.db.QueryRow(ctx, createGameSession,
		arg.ID,
		arg.UserID,
		arg.Username,
		arg.CreatedAt,
		arg.Category,
		arg.Level,
		arg.TotalQuestions,
	)
	return scanGameSession(row)
}

const getGameSession = `-- name: GetGameSession :one
SELECT ` + gameSessionColumns + `
FROM game_sessions
WHERE id = $1
`

func (q *Queries) GetGameSession(ctx context.Context, id pgtype.UUID) (GameSession, error) {
	return scanGameSession(q.db.QueryRow(ctx, getGameSession, id))
}

const getLatestActiveGameSession = `-- name: GetLatestActiveGameSession :one
SELECT ` + gameSessionColumns + `
FROM game_sessions
WHERE user_id = $1 AND ended_at IS NULL
ORDER BY created_at DESC, id DESC
LIMIT 1
`

func (q *Queries) GetLatestActiveGameSession(ctx context.Context, userID string) (GameSession, error) {
	return scanGameSession(q.db.QueryRow(ctx, getLatestActiveGameSession, userID))
}

const incrementGameSessionTally = `-- name: IncrementGameSessionTally :one
UPDATE game_sessions
SET correct = correct + CASE WHEN $2::boolean THEN 1 ELSE 0 END,
    wrong   = wrong   + CASE WHEN $2::boolean THEN 0 ELSE 1 END
WHERE id = $1
  AND ended_at IS NULL
  AND (total_questions = 0 OR correct + wrong < total_questions)
RETURNING ` + gameSessionColumns

type IncrementGameSessionTallyParams struct {
	ID      pgtype.UUID `json:"id"`
	Correct bool        `json:"correct"`
}

// IncrementGameSessionTally bumps one counter in a single statement so
// concurrent submissions cannot lose updates.
func (q *Queries) IncrementGameSessionTally(ctx context.Context, arg IncrementGameSessionTallyParams) (GameSession, error) {
	return scanGameSession(q.db.QueryRow(ctx, incrementGameSessionTally, arg.ID, arg.Correct))
}

const completeGameSession = `-- name: CompleteGameSession :one
UPDATE game_sessions
SET correct = $2,
    wrong = $3,
    duration_seconds = $4,
    ended_at = $5,
    is_completed = $6,
    category = $7,
    level = $8,
    total_questions = $9,
    answered = $10,
    points = $11
WHERE id = $1 AND ended_at IS NULL
RETURNING ` + gameSessionColumns

type CompleteGameSessionParams struct {
	ID              pgtype.UUID        `json:"id"`
	Correct         int32              `json:"correct"`
	Wrong           int32              `json:"wrong"`
	DurationSeconds int32              `json:"duration_seconds"`
	EndedAt         pgtype.Timestamptz `json:"ended_at"`
	IsCompleted     bool               `json:"is_completed"`
	Category        string             `json:"category"`
	Level           string             `json:"level"`
	TotalQuestions  int32              `json:"total_questions"`
	Answered        int32              `json:"answered"`
	Points          int32              `json:"points"`
}

func (q *Queries) CompleteGameSession(ctx context.Context, arg CompleteGameSessionParams) (GameSession, error) {
	row := q.db.QueryRow(ctx, completeGameSession,
		arg.ID,
		arg.Correct,
		arg.Wrong,
		arg.DurationSeconds,
		arg.EndedAt,
		arg.IsCompleted,
		arg.Category,
		arg.Level,
		arg.TotalQuestions,
		arg.Answered,
		arg.Points,
	)
	return scanGameSession(row)
}

const listEndedGameSessions = `-- name: ListEndedGameSessions :many
SELECT ` + gameSessionColumns + `
FROM game_sessions
WHERE user_id = $1 AND ended_at IS NOT NULL
ORDER BY created_at ASC, id ASC
`

func (q *Queries) ListEndedGameSessions(ctx context.Context, userID string) ([]GameSession, error) {
	rows, err := q.db.Query(ctx, listEndedGameSessions, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GameSession
	for rows.Next() {
		i, err := scanGameSession(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
