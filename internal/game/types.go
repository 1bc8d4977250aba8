package game

import (
	"time"

	"github.com/google/uuid"
)

// Session is one play-through of a user. A session is active until EndedAt
// is set; IsCompleted only records whether every question was answered.
type Session struct {
	ID             uuid.UUID  `json:"sessionId"`
	UserID         string     `json:"userId"`
	Username       string     `json:"username,omitempty"`
	Correct        int        `json:"correct"`
	Wrong          int        `json:"wrong"`
	Duration       int        `json:"duration"`
	CreatedAt      time.Time  `json:"createdAt"`
	EndedAt        *time.Time `json:"endedAt,omitempty"`
	IsCompleted    bool       `json:"isCompleted"`
	Category       string     `json:"category"`
	Level          string     `json:"level"`
	TotalQuestions int        `json:"totalQuestions"`
	Answered       int        `json:"answered"`
	Points         int        `json:"points"`
}

func (s Session) Active() bool {
	return s.EndedAt == nil
}

// Statistic is the history projection of an ended session.
type Statistic struct {
	Correct        int       `json:"correct"`
	Wrong          int       `json:"wrong"`
	Duration       int       `json:"duration"`
	CreatedAt      time.Time `json:"createdAt"`
	Category       string    `json:"category"`
	Level          string    `json:"level"`
	TotalQuestions int       `json:"totalQuestions"`
	Answered       int       `json:"answered"`
	Points         int       `json:"points"`
}

// Ref addresses a session. A zero SessionID selects the user's most
// recently created active session.
type Ref struct {
	UserID    string
	SessionID uuid.UUID
}

type StartParams struct {
	UserID         string
	Username       string
	Category       string
	Level          string
	TotalQuestions int
}

// EndParams carries the final values reported by the client. Empty meta
// fields keep what was recorded at start.
type EndParams struct {
	Correct        int
	Wrong          int
	Category       string
	Level          string
	TotalQuestions int
	Answered       int
	Points         int
}

// ScoringMode selects who is authoritative over final tallies.
type ScoringMode string

const (
	// ScoringClient stores the values reported at end.
	ScoringClient ScoringMode = "client"
	// ScoringServer stores the tallies accumulated by RecordAnswer and
	// computes points server-side.
	ScoringServer ScoringMode = "server"
)

func ParseScoringMode(raw string) (ScoringMode, bool) {
	switch ScoringMode(raw) {
	case ScoringClient, "":
		return ScoringClient, true
	case ScoringServer:
		return ScoringServer, true
	}
	return "", false
}
