package model

import "time"

// Roles recognised by the API.  EDITOR accounts may mutate the
// catalog; VIEWER accounts (the default) are read only.
const (
	RoleEditor = "EDITOR"
	RoleViewer = "VIEWER"
)

// User represents an API account as stored in the `users` table.
// Domain entities use UUID keys; accounts are infrastructure and
// keep a plain serial key.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – unique, lower-cased email address.
//  PasswordHash – bcrypt hash of the password.
//  Role         – EDITOR or VIEWER.
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RefreshToken models a row in the `refresh_tokens` table.  Only the
// SHA-256 hash of the token is persisted; the raw value goes back to
// the client once and is never stored.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the raw token.
//  ExpiresAt – expiration timestamp.
//  RevokedAt – when the token was revoked (nil while active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64
	UserID    uint64
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}
