package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"greenLeanAPI/internal/types/user"
)

var ErrUserNotFound = errors.New("user not found")

type UserService struct {
	db *pgxpool.Pool
}

func NewUserService(db *pgxpool.Pool) *UserService {
	return &UserService{db: db}
}

func (s *UserService) CreateUser(ctx context.Context, req *user.CreateUserRequest) (*user.User, error) {
	u := &user.User{
		ID:         uuid.New(),
		ClerkID:    req.ClerkID,
		Email:      req.Email,
		Username:   req.Username,
		FullName:   req.FullName,
		ImageURL:   req.ImageURL,
		UnitSystem: "metric",
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	query := `
	INSERT INTO users (id, clerk_id, email, username, full_name, image_url, unit_system, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING id, clerk_id, email, username, full_name, image_url, email_verified, is_admin, is_pro, unit_system, created_at, updated_at
	`

	err := s.db.QueryRow(
		ctx,
		query,
		u.ID,
		u.ClerkID,
		u.Email,
		u.Username,
		u.FullName,
		u.ImageURL,
		u.UnitSystem,
		u.CreatedAt,
		u.UpdatedAt,
	).Scan(
		&u.ID,
		&u.ClerkID,
		&u.Email,
		&u.Username,
		&u.FullName,
		&u.ImageURL,
		&u.EmailVerified,
		&u.IsAdmin,
		&u.IsPro,
		&u.UnitSystem,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

func (s *UserService) GetUserByClerkID(ctx context.Context, clerkID string) (*user.User, error) {
	query := `
	SELECT id, clerk_id, email, username, full_name, image_url, email_verified, is_admin, is_pro, unit_system, created_at, updated_at
	FROM users
	WHERE clerk_id = $1
	`

	u := &user.User{}
	err := s.db.QueryRow(ctx, query, clerkID).Scan(
		&u.ID,
		&u.ClerkID,
		&u.Email,
		&u.Username,
		&u.FullName,
		&u.ImageURL,
		&u.EmailVerified,
		&u.IsAdmin,
		&u.IsPro,
		&u.UnitSystem,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// IDByClerkID resolves the internal user id for an authenticated Clerk
// subject. Most services key on the internal uuid, not the Clerk id.
func (s *UserService) IDByClerkID(ctx context.Context, clerkID string) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, ErrUserNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	return id, nil
}

func (s *UserService) UpdateProfileByClerkID(ctx context.Context, clerkID string, req *user.UpdateProfileRequest) (*user.User, error) {
	query := `
	UPDATE users
	SET username = COALESCE(NULLIF($1, ''), username),
	    full_name = COALESCE(NULLIF($2, ''), full_name),
	    image_url = COALESCE(NULLIF($3, ''), image_url),
	    unit_system = COALESCE(NULLIF($4, ''), unit_system),
	    updated_at = $5
	WHERE clerk_id = $6
	RETURNING id, clerk_id, email, username, full_name, image_url, email_verified, is_admin, is_pro, unit_system, created_at, updated_at
	`

	u := &user.User{}
	err := s.db.QueryRow(ctx, query, req.Username, req.FullName, req.ImageURL, req.UnitSystem, time.Now(), clerkID).Scan(
		&u.ID,
		&u.ClerkID,
		&u.Email,
		&u.Username,
		&u.FullName,
		&u.ImageURL,
		&u.EmailVerified,
		&u.IsAdmin,
		&u.IsPro,
		&u.UnitSystem,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return u, nil
}

func (s *UserService) DeleteUserByClerkID(ctx context.Context, clerkID string) error {
	result, err := s.db.Exec(ctx, `DELETE FROM users WHERE clerk_id = $1`, clerkID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *UserService) UpdateEmailVerification(ctx context.Context, clerkID string, verified bool) error {
	_, err := s.db.Exec(ctx,
		`UPDATE users SET email_verified = $1, updated_at = $2 WHERE clerk_id = $3`,
		verified, time.Now(), clerkID,
	)
	if err != nil {
		return fmt.Errorf("failed to update email verification: %w", err)
	}
	return nil
}

// SetProStatus flips the denormalized is_pro flag; the subscriptions table
// stays the source of truth.
func (s *UserService) SetProStatus(ctx context.Context, userID uuid.UUID, isPro bool) error {
	_, err := s.db.Exec(ctx,
		`UPDATE users SET is_pro = $1, updated_at = $2 WHERE id = $3`,
		isPro, time.Now(), userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update pro status: %w", err)
	}
	return nil
}

func (s *UserService) IsAdmin(ctx context.Context, clerkID string) (bool, error) {
	var isAdmin bool
	err := s.db.QueryRow(ctx, `SELECT is_admin FROM users WHERE clerk_id = $1`, clerkID).Scan(&isAdmin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrUserNotFound
		}
		return false, fmt.Errorf("failed to check admin flag: %w", err)
	}
	return isAdmin, nil
}
