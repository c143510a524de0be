package workers

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Pusher is the slice of the notification service the worker needs.
type Pusher interface {
	PushToUser(ctx context.Context, userID uuid.UUID, title, body string, data map[string]any) error
}

const warningLead = 3 * time.Hour

// StartStreakWorker runs the streak maintenance sweep on a fixed interval:
// warn participants whose window is about to close, then reset the ones that
// let it lapse.
func StartStreakWorker(db *pgxpool.Pool, pusher Pusher, interval time.Duration) {
	ticker := time.NewTicker(interval)

	go func() {
		for range ticker.C {
			sweepStreaks(db, pusher)
		}
	}()
}

func sweepStreaks(db *pgxpool.Pool, pusher Pusher) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	warnExpiringStreaks(ctx, db, pusher)
	resetLapsedStreaks(ctx, db)
}

// warnExpiringStreaks pushes a reminder to participants whose progress window
// closes within the lead time. streak_warning_sent keeps each window to one
// warning; it flips back to false on the next progress update.
func warnExpiringStreaks(ctx context.Context, db *pgxpool.Pool, pusher Pusher) {
	query := `
	SELECT p.id, p.user_id, c.title
	FROM challenge_participants p
	JOIN challenges c ON c.id = p.challenge_id
	WHERE p.completed = false
	  AND p.streak_warning_sent = false
	  AND p.streak_expires_at IS NOT NULL
	  AND p.streak_expires_at > NOW()
	  AND p.streak_expires_at < $1
	`

	rows, err := db.Query(ctx, query, time.Now().Add(warningLead))
	if err != nil {
		log.Printf("Streak worker: failed to query expiring streaks: %v", err)
		return
	}
	defer rows.Close()

	type warning struct {
		participantID uuid.UUID
		userID        uuid.UUID
		title         string
	}
	warnings := []warning{}
	for rows.Next() {
		var w warning
		if err := rows.Scan(&w.participantID, &w.userID, &w.title); err != nil {
			log.Printf("Streak worker: failed to scan expiring streak: %v", err)
			return
		}
		warnings = append(warnings, w)
	}
	if err := rows.Err(); err != nil {
		log.Printf("Streak worker: failed to read expiring streaks: %v", err)
		return
	}

	for _, w := range warnings {
		if pusher != nil {
			err := pusher.PushToUser(ctx, w.userID, "Don't lose your streak!",
				"Your progress window for \""+w.title+"\" closes soon.",
				map[string]any{"type": "streak_warning"})
			if err != nil {
				log.Printf("Streak worker: failed to warn user %s: %v", w.userID, err)
				continue
			}
		}

		_, err := db.Exec(ctx,
			`UPDATE challenge_participants SET streak_warning_sent = true WHERE id = $1`,
			w.participantID)
		if err != nil {
			log.Printf("Streak worker: failed to mark warning sent for %s: %v", w.participantID, err)
		}
	}

	if len(warnings) > 0 {
		log.Printf("Streak worker: warned %d participants", len(warnings))
	}
}

// resetLapsedStreaks zeroes out uncompleted participants whose window has
// passed. Completed rows are never touched.
func resetLapsedStreaks(ctx context.Context, db *pgxpool.Pool) {
	query := `
	UPDATE challenge_participants
	SET progress = '{"current": 0}'::jsonb,
	    streak_count = 0,
	    streak_expires_at = NULL,
	    streak_warning_sent = false
	WHERE completed = false
	  AND streak_expires_at IS NOT NULL
	  AND streak_expires_at < NOW()
	`

	result, err := db.Exec(ctx, query)
	if err != nil {
		log.Printf("Streak worker: failed to reset lapsed streaks: %v", err)
		return
	}
	if result.RowsAffected() > 0 {
		log.Printf("Streak worker: reset %d lapsed streaks", result.RowsAffected())
	}
}
