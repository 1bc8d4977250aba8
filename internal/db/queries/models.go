package queries

import "github.com/jackc/pgx/v5/pgtype"

type Question struct {
	ID        pgtype.UUID        `json:"id"`
	Statement string             `json:"statement"`
	Answer    string             `json:"answer"`
	Image     string             `json:"image"`
	Category  string             `json:"category"`
	Options   []string           `json:"options"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

type GameSession struct {
	ID              pgtype.UUID        `json:"id"`
	UserID          string             `json:"user_id"`
	Username        string             `json:"username"`
	Correct         int32              `json:"correct"`
	Wrong           int32              `json:"wrong"`
	DurationSeconds int32              `json:"duration_seconds"`
	CreatedAt       pgtype.Timestamptz `json:"created_at"`
	EndedAt         pgtype.Timestamptz `json:"ended_at"`
	IsCompleted     bool               `json:"is_completed"`
	Category        string             `json:"category"`
	Level           string             `json:"level"`
	TotalQuestions  int32              `json:"total_questions"`
	Answered        int32              `json:"answered"`
	Points          int32              `json:"points"`
}
