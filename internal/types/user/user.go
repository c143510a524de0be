package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID `json:"id" db:"id"`
	ClerkID       string    `json:"clerk_id" db:"clerk_id"`
	Email         string    `json:"email" db:"email"`
	Username      string    `json:"username" db:"username"`
	FullName      string    `json:"full_name" db:"full_name"`
	ImageURL      string    `json:"image_url" db:"image_url"`
	EmailVerified bool      `json:"email_verified" db:"email_verified"`
	IsAdmin       bool      `json:"is_admin" db:"is_admin"`
	IsPro         bool      `json:"is_pro" db:"is_pro"`
	UnitSystem    string    `json:"unit_system" db:"unit_system"` // "metric" or "imperial"
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

type CreateUserRequest struct {
	ClerkID  string `json:"clerk_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	ImageURL string `json:"image_url"`
}

type UpdateProfileRequest struct {
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	ImageURL   string `json:"image_url"`
	UnitSystem string `json:"unit_system"`
}
