package challenge

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeDaily  Type = "daily"
	TypeWeekly Type = "weekly"
	TypeStreak Type = "streak"
	TypeGoal   Type = "goal"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Requirements is stored as jsonb on the challenges table.
type Requirements struct {
	Target    float64 `json:"target"`
	Metric    string  `json:"metric,omitempty"`
	Timeframe string  `json:"timeframe,omitempty"`
}

type Challenge struct {
	ID           uuid.UUID    `json:"id" db:"id"`
	Title        string       `json:"title" db:"title"`
	Description  string       `json:"description" db:"description"`
	Type         Type         `json:"type" db:"type"`
	Difficulty   Difficulty   `json:"difficulty" db:"difficulty"`
	Points       int          `json:"points" db:"points"`
	BadgeID      *uuid.UUID   `json:"badge_id,omitempty" db:"badge_id"`
	Requirements Requirements `json:"requirements" db:"requirements"`
	StartDate    time.Time    `json:"start_date" db:"start_date"`
	EndDate      time.Time    `json:"end_date" db:"end_date"`
	IsActive     bool         `json:"is_active" db:"is_active"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
}

// Progress is the jsonb progress column of challenge_participants.
type Progress struct {
	Current float64 `json:"current"`
}

// Participant is one user's join record for one challenge. At most one row
// exists per (challenge_id, user_id); the table carries a unique constraint
// on the pair.
type Participant struct {
	ID                uuid.UUID  `json:"id" db:"id"`
	ChallengeID       uuid.UUID  `json:"challenge_id" db:"challenge_id"`
	UserID            uuid.UUID  `json:"user_id" db:"user_id"`
	Progress          Progress   `json:"progress" db:"progress"`
	Completed         bool       `json:"completed" db:"completed"`
	CompletionDate    *time.Time `json:"completion_date" db:"completion_date"`
	StreakCount       float64    `json:"streak_count" db:"streak_count"`
	LastProgressDate  *time.Time `json:"last_progress_date" db:"last_progress_date"`
	StreakExpiresAt   *time.Time `json:"streak_expires_at" db:"streak_expires_at"`
	StreakWarningSent bool       `json:"streak_warning_sent" db:"streak_warning_sent"`
	JoinedAt          time.Time  `json:"joined_at" db:"joined_at"`
}

// WithStats is the read-side projection served to clients: the challenge row
// plus aggregates derived fresh from the participant rows on every read.
type WithStats struct {
	Challenge
	ParticipantsCount int          `json:"participants_count"`
	CompletionRate    float64      `json:"completion_rate"`
	UserProgress      *Participant `json:"user_progress"`
}

type UpdateProgressRequest struct {
	NewProgress float64 `json:"new_progress"`
}

type CreateChallengeRequest struct {
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Type         Type         `json:"type"`
	Difficulty   Difficulty   `json:"difficulty"`
	Points       int          `json:"points"`
	BadgeID      *uuid.UUID   `json:"badge_id"`
	Requirements Requirements `json:"requirements"`
	StartDate    time.Time    `json:"start_date"`
	EndDate      time.Time    `json:"end_date"`
	IsActive     bool         `json:"is_active"`
}
