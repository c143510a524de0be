package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"greenLeanAPI/internal/types/challenge"
	"greenLeanAPI/internal/types/reward"
	"greenLeanAPI/internal/types/settings"
	"greenLeanAPI/internal/types/stats"
)

type AdminService struct {
	db *pgxpool.Pool
}

func NewAdminService(db *pgxpool.Pool) *AdminService {
	return &AdminService{db: db}
}

// GetAnalytics runs the back-office overview counts in one round trip each.
// These are point-in-time reads; no caching.
func (s *AdminService) GetAnalytics(ctx context.Context) (*stats.AdminAnalytics, error) {
	a := &stats.AdminAnalytics{}

	counts := []struct {
		query string
		dest  any
	}{
		{`SELECT COUNT(*) FROM users`, &a.TotalUsers},
		{`SELECT COUNT(*) FROM users WHERE is_pro`, &a.ProUsers},
		{`SELECT COUNT(*) FROM challenges WHERE is_active AND end_date > NOW()`, &a.ActiveChallenges},
		{`SELECT COUNT(*) FROM challenge_participants`, &a.TotalParticipants},
		{`SELECT COUNT(*) FROM challenge_participants WHERE completed`, &a.ChallengesCompleted},
		{`SELECT COUNT(*) FROM nutrition_logs WHERE log_date = CURRENT_DATE`, &a.NutritionLogsToday},
		{`SELECT COUNT(*) FROM workout_logs WHERE workout_date = CURRENT_DATE`, &a.WorkoutLogsToday},
		{`SELECT COUNT(*) FROM subscriptions WHERE status IN ('active', 'trialing')`, &a.ActiveSubscriptions},
		{`SELECT COUNT(*) FROM users WHERE created_at > NOW() - INTERVAL '30 days'`, &a.NewUsersLast30Days},
	}
	for _, c := range counts {
		if err := s.db.QueryRow(ctx, c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("failed to load admin analytics: %w", err)
		}
	}

	if a.TotalParticipants > 0 {
		a.AvgCompletionRate = float64(a.ChallengesCompleted) / float64(a.TotalParticipants) * 100
	}

	return a, nil
}

func (s *AdminService) CreateChallenge(ctx context.Context, req *challenge.CreateChallengeRequest) (*challenge.Challenge, error) {
	ch := &challenge.Challenge{
		ID:           uuid.New(),
		Title:        req.Title,
		Description:  req.Description,
		Type:         req.Type,
		Difficulty:   req.Difficulty,
		Points:       req.Points,
		BadgeID:      req.BadgeID,
		Requirements: req.Requirements,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		IsActive:     req.IsActive,
		CreatedAt:    time.Now(),
	}

	query := `
	INSERT INTO challenges (id, title, description, type, difficulty, points, badge_id, requirements, start_date, end_date, is_active, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.db.Exec(ctx, query,
		ch.ID, ch.Title, ch.Description, ch.Type, ch.Difficulty, ch.Points,
		ch.BadgeID, ch.Requirements, ch.StartDate, ch.EndDate, ch.IsActive, ch.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create challenge: %w", err)
	}
	return ch, nil
}

func (s *AdminService) UpdateChallenge(ctx context.Context, challengeID uuid.UUID, req *challenge.CreateChallengeRequest) error {
	query := `
	UPDATE challenges
	SET title = $1, description = $2, type = $3, difficulty = $4, points = $5,
	    badge_id = $6, requirements = $7, start_date = $8, end_date = $9, is_active = $10
	WHERE id = $11
	`
	result, err := s.db.Exec(ctx, query,
		req.Title, req.Description, req.Type, req.Difficulty, req.Points,
		req.BadgeID, req.Requirements, req.StartDate, req.EndDate, req.IsActive,
		challengeID,
	)
	if err != nil {
		return fmt.Errorf("failed to update challenge: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrChallengeNotFound
	}
	return nil
}

// DeactivateChallenge hides a challenge from listings. Participant rows stay;
// removal would erase earned history.
func (s *AdminService) DeactivateChallenge(ctx context.Context, challengeID uuid.UUID) error {
	result, err := s.db.Exec(ctx, `UPDATE challenges SET is_active = false WHERE id = $1`, challengeID)
	if err != nil {
		return fmt.Errorf("failed to deactivate challenge: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrChallengeNotFound
	}
	return nil
}

func (s *AdminService) CreateBadge(ctx context.Context, req *reward.CreateBadgeRequest) (*reward.Badge, error) {
	b := &reward.Badge{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
		CreatedAt:   time.Now(),
	}

	query := `
	INSERT INTO badges (id, name, description, icon, color, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.Exec(ctx, query, b.ID, b.Name, b.Description, b.Icon, b.Color, b.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create badge: %w", err)
	}
	return b, nil
}

func (s *AdminService) DeleteBadge(ctx context.Context, badgeID uuid.UUID) error {
	result, err := s.db.Exec(ctx, `DELETE FROM badges WHERE id = $1`, badgeID)
	if err != nil {
		return fmt.Errorf("failed to delete badge: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("badge not found")
	}
	return nil
}

// GetSettings returns the single platform settings row, seeding defaults on
// first read.
func (s *AdminService) GetSettings(ctx context.Context) (*settings.PlatformSettings, error) {
	p := &settings.PlatformSettings{}
	err := s.db.QueryRow(ctx, `
	SELECT id, platform_name, theme_color, theme_mode, logo_url, admin_2fa_required,
	       account_lockout_attempts, session_timeout_minutes, maintenance_mode,
	       maintenance_message, email_notifications_enabled, notification_frequency, updated_at
	FROM platform_settings
	LIMIT 1
	`).Scan(
		&p.ID, &p.PlatformName, &p.ThemeColor, &p.ThemeMode, &p.LogoURL, &p.Admin2FARequired,
		&p.AccountLockoutAttempts, &p.SessionTimeoutMinutes, &p.MaintenanceMode,
		&p.MaintenanceMessage, &p.EmailNotificationsEnabled, &p.NotificationFrequency, &p.UpdatedAt,
	)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	err = s.db.QueryRow(ctx, `
	INSERT INTO platform_settings (id, platform_name, theme_color, theme_mode, admin_2fa_required,
	       account_lockout_attempts, session_timeout_minutes, maintenance_mode,
	       email_notifications_enabled, notification_frequency, updated_at)
	VALUES ($1, 'GreenLean', '#22c55e', 'light', false, 5, 60, false, true, 'daily', $2)
	RETURNING id, platform_name, theme_color, theme_mode, logo_url, admin_2fa_required,
	       account_lockout_attempts, session_timeout_minutes, maintenance_mode,
	       maintenance_message, email_notifications_enabled, notification_frequency, updated_at
	`, uuid.New(), time.Now()).Scan(
		&p.ID, &p.PlatformName, &p.ThemeColor, &p.ThemeMode, &p.LogoURL, &p.Admin2FARequired,
		&p.AccountLockoutAttempts, &p.SessionTimeoutMinutes, &p.MaintenanceMode,
		&p.MaintenanceMessage, &p.EmailNotificationsEnabled, &p.NotificationFrequency, &p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to seed settings: %w", err)
	}
	return p, nil
}

func (s *AdminService) UpdateSettings(ctx context.Context, req *settings.UpdateSettingsRequest) (*settings.PlatformSettings, error) {
	current, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	updates := []string{}
	args := []any{current.ID}
	argCount := 2

	set := func(column string, value any) {
		updates = append(updates, fmt.Sprintf("%s = $%d", column, argCount))
		args = append(args, value)
		argCount++
	}

	if req.PlatformName != nil {
		set("platform_name", *req.PlatformName)
	}
	if req.ThemeColor != nil {
		set("theme_color", *req.ThemeColor)
	}
	if req.ThemeMode != nil {
		set("theme_mode", *req.ThemeMode)
	}
	if req.MaintenanceMode != nil {
		set("maintenance_mode", *req.MaintenanceMode)
	}
	if req.MaintenanceMessage != nil {
		set("maintenance_message", *req.MaintenanceMessage)
	}
	if req.EmailNotificationsEnabled != nil {
		set("email_notifications_enabled", *req.EmailNotificationsEnabled)
	}
	if req.NotificationFrequency != nil {
		set("notification_frequency", *req.NotificationFrequency)
	}

	if len(updates) == 0 {
		return current, nil
	}

	query := fmt.Sprintf(`UPDATE platform_settings SET %s, updated_at = NOW() WHERE id = $1`,
		strings.Join(updates, ", "))
	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	return s.GetSettings(ctx)
}
