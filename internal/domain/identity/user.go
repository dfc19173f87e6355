package identity

import (
	"strings"
	"time"

	"github.com/inmogest/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role restricts what back-office operations a user may perform
type Role string

const (
	// RoleAdmin manages users and configuration besides the daily work
	RoleAdmin Role = "admin"
	// RoleGestor performs the daily billing and reporting work
	RoleGestor Role = "gestor"
)

// IsValid checks if the role is a valid Role
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleGestor
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

const bcryptCost = 12

// User is a back-office account. Accounts lock themselves after repeated
// failed logins and unlock by timeout.
type User struct {
	shared.BaseAggregateRoot
	Username       string     `json:"username"`
	DisplayName    string     `json:"display_name"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"`
	Role           Role       `json:"role"`
	Active         bool       `json:"active"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
	FailedAttempts int        `json:"failed_attempts"`
	LockedUntil    *time.Time `json:"locked_until,omitempty"`
}

// NewUser creates a new active user with a hashed password
func NewUser(username, password, displayName string, role Role) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "username is required")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("INVALID_INPUT", "password must be at least 8 characters")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "invalid role: "+role.String())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "failed to hash password")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		DisplayName:       strings.TrimSpace(displayName),
		PasswordHash:      string(hash),
		Role:              role,
		Active:            true,
	}, nil
}

// VerifyPassword checks the password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword replaces the stored hash after validating the new password
func (u *User) ChangePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_INPUT", "password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "failed to hash password")
	}
	u.PasswordHash = string(hash)
	return nil
}

// IsLocked reports whether the account is locked right now
func (u *User) IsLocked() bool {
	return u.LockedUntil != nil && time.Now().Before(*u.LockedUntil)
}

// CanLogin reports whether the account accepts login attempts
func (u *User) CanLogin() bool {
	return u.Active && !u.IsLocked()
}

// RecordLogin resets the failure counter and stamps the login time
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.FailedAttempts = 0
	u.LockedUntil = nil
}

// RecordLoginFailure bumps the failure counter and locks the account once
// the limit is reached. Returns true when this failure locked the account.
func (u *User) RecordLoginFailure(maxAttempts int, lockDuration time.Duration) bool {
	u.FailedAttempts++
	if u.FailedAttempts >= maxAttempts {
		until := time.Now().Add(lockDuration)
		u.LockedUntil = &until
		u.FailedAttempts = 0
		return true
	}
	return false
}

// SetEmail sets the user's contact email
func (u *User) SetEmail(email string) {
	u.Email = strings.ToLower(strings.TrimSpace(email))
}

// Deactivate disables the account without deleting its history
func (u *User) Deactivate() {
	u.Active = false
}

// Activate re-enables the account and clears any lock
func (u *User) Activate() {
	u.Active = true
	u.FailedAttempts = 0
	u.LockedUntil = nil
}
