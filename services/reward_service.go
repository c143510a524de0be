package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"greenLeanAPI/internal/types/challenge"
	"greenLeanAPI/internal/types/reward"
)

type RewardService struct {
	db *pgxpool.Pool
}

func NewRewardService(db *pgxpool.Pool) *RewardService {
	return &RewardService{db: db}
}

// GetUserRewards returns the user's rewards row, creating an empty one on
// first read so the client always has something to render.
func (s *RewardService) GetUserRewards(ctx context.Context, userID uuid.UUID) (*reward.UserRewards, error) {
	query := `
	SELECT id, user_id, points, badges, updated_at
	FROM user_rewards
	WHERE user_id = $1
	`

	r := &reward.UserRewards{}
	err := s.db.QueryRow(ctx, query, userID).Scan(&r.ID, &r.UserID, &r.Points, &r.Badges, &r.UpdatedAt)
	if err == nil {
		return r, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to get user rewards: %w", err)
	}

	insert := `
	INSERT INTO user_rewards (id, user_id, points, badges, updated_at)
	VALUES ($1, $2, 0, '[]'::jsonb, $3)
	RETURNING id, user_id, points, badges, updated_at
	`
	err = s.db.QueryRow(ctx, insert, uuid.New(), userID, time.Now()).
		Scan(&r.ID, &r.UserID, &r.Points, &r.Badges, &r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user rewards: %w", err)
	}
	return r, nil
}

// GrantChallengeRewards credits the challenge's points and, when the
// challenge carries a badge, appends a snapshot of it to the user's earned
// badges. Called once per completion transition.
func (s *RewardService) GrantChallengeRewards(ctx context.Context, userID uuid.UUID, ch *challenge.Challenge) error {
	rewards, err := s.GetUserRewards(ctx, userID)
	if err != nil {
		return err
	}

	badges := rewards.Badges
	if ch.BadgeID != nil && !hasBadge(badges, *ch.BadgeID) {
		badge, err := s.GetBadge(ctx, *ch.BadgeID)
		if err != nil {
			return err
		}
		earnedAt := time.Now()
		badge.EarnedAt = &earnedAt
		badges = append(badges, *badge)
	}

	_, err = s.db.Exec(ctx,
		`UPDATE user_rewards SET points = points + $1, badges = $2, updated_at = $3 WHERE user_id = $4`,
		ch.Points, badges, time.Now(), userID,
	)
	if err != nil {
		return fmt.Errorf("failed to grant rewards: %w", err)
	}
	return nil
}

func (s *RewardService) GetBadge(ctx context.Context, badgeID uuid.UUID) (*reward.Badge, error) {
	query := `SELECT id, name, description, icon, color, created_at FROM badges WHERE id = $1`

	b := &reward.Badge{}
	err := s.db.QueryRow(ctx, query, badgeID).Scan(&b.ID, &b.Name, &b.Description, &b.Icon, &b.Color, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("badge not found")
		}
		return nil, fmt.Errorf("failed to get badge: %w", err)
	}
	return b, nil
}

func (s *RewardService) ListBadges(ctx context.Context) ([]*reward.Badge, error) {
	query := `SELECT id, name, description, icon, color, created_at FROM badges ORDER BY created_at`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list badges: %w", err)
	}
	defer rows.Close()

	badges := []*reward.Badge{}
	for rows.Next() {
		b := &reward.Badge{}
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.Icon, &b.Color, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan badge: %w", err)
		}
		badges = append(badges, b)
	}
	return badges, rows.Err()
}

func hasBadge(badges []reward.Badge, id uuid.UUID) bool {
	for _, b := range badges {
		if b.ID == id {
			return true
		}
	}
	return false
}
