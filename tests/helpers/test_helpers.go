package helpers

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"greenLeanAPI/internal/types/challenge"
)

// SetupTestDB connects to the test database, skipping the test when no
// database is configured so the suite stays runnable offline.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	godotenv.Load("../../.env")

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL or DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	return pool
}

// CleanupTestDB removes rows created through the test helpers.
func CleanupTestDB(t *testing.T, pool *pgxpool.Pool) {
	ctx := context.Background()
	if _, err := pool.Exec(ctx, "DELETE FROM users WHERE email LIKE 'test%@example.com'"); err != nil {
		t.Logf("Warning: failed to cleanup test users: %v", err)
	}
	if _, err := pool.Exec(ctx, "DELETE FROM challenges WHERE title LIKE 'Test %'"); err != nil {
		t.Logf("Warning: failed to cleanup test challenges: %v", err)
	}
	pool.Close()
}

// CreateTestUser inserts a user row directly and returns its id.
func CreateTestUser(t *testing.T, pool *pgxpool.Pool, clerkID string) uuid.UUID {
	ctx := context.Background()
	id := uuid.New()

	_, err := pool.Exec(ctx, `
	INSERT INTO users (id, clerk_id, email, username, full_name, image_url, unit_system, created_at, updated_at)
	VALUES ($1, $2, $3, $4, 'Test User', '', 'metric', NOW(), NOW())
	`, id, clerkID, "test+"+clerkID+"@example.com", "testuser_"+clerkID)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return id
}

// CreateTestChallenge inserts an active challenge of the given type and
// target, open for the next 30 days.
func CreateTestChallenge(t *testing.T, pool *pgxpool.Pool, challengeType challenge.Type, target float64) uuid.UUID {
	ctx := context.Background()
	id := uuid.New()

	_, err := pool.Exec(ctx, `
	INSERT INTO challenges (id, title, description, type, difficulty, points, requirements, start_date, end_date, is_active, created_at)
	VALUES ($1, $2, 'integration fixture', $3, 'beginner', 50, $4, NOW(), $5, true, NOW())
	`, id, "Test "+string(challengeType)+" "+id.String()[:8], challengeType,
		challenge.Requirements{Target: target}, time.Now().AddDate(0, 0, 30))
	if err != nil {
		t.Fatalf("Failed to create test challenge: %v", err)
	}
	return id
}

// BackdateProgress shifts a participant's last progress timestamp into the
// past so window checks can be exercised without waiting a day.
func BackdateProgress(t *testing.T, pool *pgxpool.Pool, challengeID, userID uuid.UUID, by time.Duration) {
	ctx := context.Background()
	_, err := pool.Exec(ctx, `
	UPDATE challenge_participants
	SET last_progress_date = last_progress_date - make_interval(hours => $1)
	WHERE challenge_id = $2 AND user_id = $3
	`, int(by.Hours()), challengeID, userID)
	if err != nil {
		t.Fatalf("Failed to backdate progress: %v", err)
	}
}
