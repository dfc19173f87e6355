package models

import (
	"time"

	"github.com/inmogest/backend/internal/domain/identity"
)

// UserModel is the GORM model for back-office user accounts
type UserModel struct {
	AggregateModel
	Username       string     `gorm:"type:varchar(50);uniqueIndex;not null"`
	DisplayName    string     `gorm:"type:varchar(200)"`
	Email          string     `gorm:"type:varchar(255)"`
	PasswordHash   string     `gorm:"type:varchar(100);not null"`
	Role           string     `gorm:"type:varchar(20);not null"`
	Active         bool       `gorm:"not null;default:true;index"`
	LastLoginAt    *time.Time
	FailedAttempts int        `gorm:"not null;default:0"`
	LockedUntil    *time.Time
}

// TableName specifies the table name for UserModel
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts UserModel to domain User
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Username:          m.Username,
		DisplayName:       m.DisplayName,
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		Role:              identity.Role(m.Role),
		Active:            m.Active,
		LastLoginAt:       m.LastLoginAt,
		FailedAttempts:    m.FailedAttempts,
		LockedUntil:       m.LockedUntil,
	}
}

// UserModelFromDomain converts domain User to UserModel
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Username:       u.Username,
		DisplayName:    u.DisplayName,
		Email:          u.Email,
		PasswordHash:   u.PasswordHash,
		Role:           u.Role.String(),
		Active:         u.Active,
		LastLoginAt:    u.LastLoginAt,
		FailedAttempts: u.FailedAttempts,
		LockedUntil:    u.LockedUntil,
	}
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	return m
}
