package settings

import (
	"time"

	"github.com/google/uuid"
)

// PlatformSettings is a single-row table edited from the admin back-office.
type PlatformSettings struct {
	ID                        uuid.UUID  `json:"id" db:"id"`
	PlatformName              string     `json:"platform_name" db:"platform_name"`
	ThemeColor                string     `json:"theme_color" db:"theme_color"`
	ThemeMode                 string     `json:"theme_mode" db:"theme_mode"`
	LogoURL                   *string    `json:"logo_url" db:"logo_url"`
	Admin2FARequired          bool       `json:"admin_2fa_required" db:"admin_2fa_required"`
	AccountLockoutAttempts    int        `json:"account_lockout_attempts" db:"account_lockout_attempts"`
	SessionTimeoutMinutes     int        `json:"session_timeout_minutes" db:"session_timeout_minutes"`
	MaintenanceMode           bool       `json:"maintenance_mode" db:"maintenance_mode"`
	MaintenanceMessage        *string    `json:"maintenance_message" db:"maintenance_message"`
	EmailNotificationsEnabled bool       `json:"email_notifications_enabled" db:"email_notifications_enabled"`
	NotificationFrequency     string     `json:"notification_frequency" db:"notification_frequency"`
	UpdatedAt                 time.Time  `json:"updated_at" db:"updated_at"`
}

type UpdateSettingsRequest struct {
	PlatformName              *string `json:"platform_name"`
	ThemeColor                *string `json:"theme_color"`
	ThemeMode                 *string `json:"theme_mode"`
	MaintenanceMode           *bool   `json:"maintenance_mode"`
	MaintenanceMessage        *string `json:"maintenance_message"`
	EmailNotificationsEnabled *bool   `json:"email_notifications_enabled"`
	NotificationFrequency     *string `json:"notification_frequency"`
}
