package reward

import (
	"time"

	"github.com/google/uuid"
)

type Badge struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	Icon        string     `json:"icon" db:"icon"`
	Color       string     `json:"color" db:"color"`
	EarnedAt    *time.Time `json:"earned_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// UserRewards holds one row per user; badges are stored as a jsonb array of
// earned Badge snapshots, mirroring the challenge engine's write shape.
type UserRewards struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Points    int       `json:"points" db:"points"`
	Badges    []Badge   `json:"badges" db:"badges"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type CreateBadgeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}
