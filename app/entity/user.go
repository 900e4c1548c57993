package entity

import (
	"database/sql"
	"time"
)

const (
	RoleUser      = "user"
	RolePublisher = "publisher"
	RoleAdmin     = "admin"
)

type User struct {
	ID                     uint64
	Name                   string
	Email                  string
	PasswordHash           string
	Role                   string
	IsVerified             bool
	ResetPasswordTokenHash sql.NullString
	ResetPasswordExpiresAt sql.NullTime
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// VerificationToken links the SHA-256 digest of a one-time token to the
// user/email pair it verifies. The raw token is never persisted. Rows past
// ExpiresAt are treated as non-existent by lookups and reaped periodically.
type VerificationToken struct {
	ID        uint64
	UserID    uint64
	Email     string
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}
