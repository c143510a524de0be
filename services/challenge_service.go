package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"greenLeanAPI/internal/progression"
	"greenLeanAPI/internal/types/challenge"
)

var (
	// ErrNotAParticipant is returned when progress is submitted for a
	// challenge the user never joined.
	ErrNotAParticipant = errors.New("not a challenge participant")

	// ErrAlreadyJoined is returned when a join hits the unique
	// (challenge_id, user_id) constraint.
	ErrAlreadyJoined = errors.New("already joined this challenge")

	// ErrProgressLocked is returned when the eligibility window for the
	// challenge type has not reopened since the last accepted update.
	ErrProgressLocked = errors.New("progress already logged for this period")

	// ErrConcurrentUpdate is returned when the guarded write loses a race:
	// another update landed between our read and our write. The caller
	// should re-fetch and retry.
	ErrConcurrentUpdate = errors.New("participant was updated concurrently")

	ErrChallengeNotFound = errors.New("challenge not found")
)

type ChallengeService struct {
	db            *pgxpool.Pool
	rewardService *RewardService
	notifService  *NotificationService

	// now is swappable so the temporal window logic is deterministic in
	// tests.
	now func() time.Time
}

func NewChallengeService(db *pgxpool.Pool, rewardService *RewardService, notifService *NotificationService) *ChallengeService {
	return &ChallengeService{
		db:            db,
		rewardService: rewardService,
		notifService:  notifService,
		now:           time.Now,
	}
}

const participantColumns = `
	id, challenge_id, user_id, progress, completed, completion_date,
	streak_count, last_progress_date, streak_expires_at, streak_warning_sent, joined_at`

func scanParticipant(row pgx.Row) (*challenge.Participant, error) {
	p := &challenge.Participant{}
	err := row.Scan(
		&p.ID,
		&p.ChallengeID,
		&p.UserID,
		&p.Progress,
		&p.Completed,
		&p.CompletionDate,
		&p.StreakCount,
		&p.LastProgressDate,
		&p.StreakExpiresAt,
		&p.StreakWarningSent,
		&p.JoinedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ChallengeService) GetChallenge(ctx context.Context, challengeID uuid.UUID) (*challenge.Challenge, error) {
	query := `
	SELECT id, title, description, type, difficulty, points, badge_id, requirements,
	       start_date, end_date, is_active, created_at
	FROM challenges
	WHERE id = $1
	`

	ch := &challenge.Challenge{}
	err := s.db.QueryRow(ctx, query, challengeID).Scan(
		&ch.ID,
		&ch.Title,
		&ch.Description,
		&ch.Type,
		&ch.Difficulty,
		&ch.Points,
		&ch.BadgeID,
		&ch.Requirements,
		&ch.StartDate,
		&ch.EndDate,
		&ch.IsActive,
		&ch.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrChallengeNotFound
		}
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}

	return ch, nil
}

// Join creates the participant row for (challenge, user) with zero progress
// and the type's initial expiration deadline.
func (s *ChallengeService) Join(ctx context.Context, userID, challengeID uuid.UUID) (*challenge.Participant, error) {
	ch, err := s.GetChallenge(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	query := `
	INSERT INTO challenge_participants
		(id, challenge_id, user_id, progress, completed, streak_count, streak_expires_at, streak_warning_sent, joined_at)
	VALUES ($1, $2, $3, $4, false, 0, $5, false, $6)
	RETURNING ` + participantColumns

	p, err := scanParticipant(s.db.QueryRow(
		ctx,
		query,
		uuid.New(),
		challengeID,
		userID,
		challenge.Progress{Current: 0},
		progression.NextExpiration(ch.Type, now),
		now,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrAlreadyJoined
		}
		return nil, fmt.Errorf("failed to join challenge: %w", err)
	}

	return p, nil
}

// Quit deletes the participant row. Quitting a challenge that was never
// joined is a no-op, not an error.
func (s *ChallengeService) Quit(ctx context.Context, userID, challengeID uuid.UUID) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM challenge_participants WHERE challenge_id = $1 AND user_id = $2`,
		challengeID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to quit challenge: %w", err)
	}
	return nil
}

// GetParticipant returns the user's participation record, or nil when the
// user has not joined the challenge.
func (s *ChallengeService) GetParticipant(ctx context.Context, userID, challengeID uuid.UUID) (*challenge.Participant, error) {
	query := `SELECT ` + participantColumns + `
	FROM challenge_participants
	WHERE challenge_id = $1 AND user_id = $2`

	p, err := scanParticipant(s.db.QueryRow(ctx, query, challengeID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return p, nil
}

// UpdateProgress records a new absolute progress value for the user.
//
// The write is guarded: the UPDATE only matches when last_progress_date still
// holds the value we read, so two near-simultaneous submissions cannot both
// land inside one eligibility window. The loser gets ErrConcurrentUpdate.
func (s *ChallengeService) UpdateProgress(ctx context.Context, userID, challengeID uuid.UUID, newProgress float64) (*challenge.Participant, bool, error) {
	ch, err := s.GetChallenge(ctx, challengeID)
	if err != nil {
		return nil, false, err
	}

	query := `SELECT ` + participantColumns + `
	FROM challenge_participants
	WHERE challenge_id = $1 AND user_id = $2`

	prev, err := scanParticipant(s.db.QueryRow(ctx, query, challengeID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, ErrNotAParticipant
		}
		return nil, false, fmt.Errorf("failed to get participant: %w", err)
	}

	now := s.now()
	if !progression.CanUpdate(ch.Type, prev.LastProgressDate, now) {
		return nil, false, ErrProgressLocked
	}

	upd, completing := progression.Apply(*prev, *ch, newProgress, now)

	updateQuery := `
	UPDATE challenge_participants
	SET progress = $1,
	    completed = $2,
	    completion_date = $3,
	    streak_count = $4,
	    last_progress_date = $5,
	    streak_expires_at = $6,
	    streak_warning_sent = $7
	WHERE challenge_id = $8 AND user_id = $9
	  AND last_progress_date IS NOT DISTINCT FROM $10
	RETURNING ` + participantColumns

	updated, err := scanParticipant(s.db.QueryRow(
		ctx,
		updateQuery,
		upd.Progress,
		upd.Completed,
		upd.CompletionDate,
		upd.StreakCount,
		upd.LastProgressDate,
		upd.StreakExpiresAt,
		upd.StreakWarningSent,
		challengeID,
		userID,
		prev.LastProgressDate,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, ErrConcurrentUpdate
		}
		return nil, false, fmt.Errorf("failed to update progress: %w", err)
	}

	if completing {
		s.grantCompletionRewards(ctx, userID, ch)
	}

	return updated, completing, nil
}

// grantCompletionRewards is best-effort: the progress write already
// succeeded, so reward or push failures are logged rather than surfaced.
func (s *ChallengeService) grantCompletionRewards(ctx context.Context, userID uuid.UUID, ch *challenge.Challenge) {
	if err := s.rewardService.GrantChallengeRewards(ctx, userID, ch); err != nil {
		log.Printf("Failed to grant rewards for challenge %s to user %s: %v", ch.ID, userID, err)
	}

	if s.notifService != nil {
		title := "Challenge complete!"
		body := fmt.Sprintf("You finished %q and earned %d points.", ch.Title, ch.Points)
		if err := s.notifService.PushToUser(ctx, userID, title, body, map[string]any{
			"type":         "challenge_completed",
			"challenge_id": ch.ID.String(),
		}); err != nil {
			log.Printf("Failed to send completion push to user %s: %v", userID, err)
		}
	}
}

// ListChallenges returns every challenge with aggregates derived fresh from
// the participant rows. When userID is non-nil the caller's own participation
// is attached per challenge.
func (s *ChallengeService) ListChallenges(ctx context.Context, userID *uuid.UUID) ([]*challenge.WithStats, error) {
	query := `
	SELECT c.id, c.title, c.description, c.type, c.difficulty, c.points, c.badge_id,
	       c.requirements, c.start_date, c.end_date, c.is_active, c.created_at,
	       COUNT(p.id) AS participants_count,
	       COUNT(p.id) FILTER (WHERE p.completed) AS completed_count
	FROM challenges c
	LEFT JOIN challenge_participants p ON p.challenge_id = c.id
	WHERE c.is_active = true
	GROUP BY c.id
	ORDER BY c.created_at DESC
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list challenges: %w", err)
	}
	defer rows.Close()

	result := []*challenge.WithStats{}
	byID := make(map[uuid.UUID]*challenge.WithStats)

	for rows.Next() {
		cs := &challenge.WithStats{}
		var completedCount int
		err := rows.Scan(
			&cs.ID,
			&cs.Title,
			&cs.Description,
			&cs.Type,
			&cs.Difficulty,
			&cs.Points,
			&cs.BadgeID,
			&cs.Requirements,
			&cs.StartDate,
			&cs.EndDate,
			&cs.IsActive,
			&cs.CreatedAt,
			&cs.ParticipantsCount,
			&completedCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan challenge: %w", err)
		}
		cs.CompletionRate = completionRate(completedCount, cs.ParticipantsCount)
		result = append(result, cs)
		byID[cs.ID] = cs
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read challenges: %w", err)
	}

	if userID != nil {
		if err := s.attachUserProgress(ctx, *userID, byID); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (s *ChallengeService) attachUserProgress(ctx context.Context, userID uuid.UUID, byID map[uuid.UUID]*challenge.WithStats) error {
	query := `SELECT ` + participantColumns + `
	FROM challenge_participants
	WHERE user_id = $1`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to load user progress: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return fmt.Errorf("failed to scan user progress: %w", err)
		}
		if cs, ok := byID[p.ChallengeID]; ok {
			cs.UserProgress = p
		}
	}
	return rows.Err()
}

// completionRate is (completed / total) * 100, with an explicit zero for
// empty challenges so an unjoined challenge never divides by zero.
func completionRate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}
