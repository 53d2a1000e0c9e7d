package models

import (
	"time"

	"github.com/google/uuid"
)

// Роли учётных записей платформы.
const (
	RoleClient  = "client"
	RoleCleaner = "cleaner"
	RoleAdmin   = "admin"
)

// ValidRoles список валидных ролей
var ValidRoles = map[string]struct{}{
	RoleClient:  {},
	RoleCleaner: {},
	RoleAdmin:   {},
}

// User описывает учётную запись платформы.
// OID связывает учётную запись с профилем клиента или клинера.
type User struct {
	OID          string     `db:"oid" json:"oid"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Role         string     `db:"role" json:"role"`
	LastLoginAt  *time.Time `db:"last_login_at" json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Session представляет сохранённую сессию пользователя.
type Session struct {
	ID           uuid.UUID `db:"id" json:"id"`
	UserOID      string    `db:"user_oid" json:"user_oid"`
	RefreshToken string    `db:"refresh_token" json:"refresh_token"`
	ExpiresAt    time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
