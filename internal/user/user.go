package user

import (
	"errors"
	"time"

	"github.com/gigante-rh/talent-intake/internal/access"
)

var (
	ErrEmailTaken = errors.New("email already registered")
	ErrNotFound   = errors.New("user not found")
)

// Identity is one row of the users table, the login credential store.
type Identity struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-" gorm:"column:password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Identity) TableName() string {
	return "users"
}

// Account is a dashboard user as the admin screens see it: the identity,
// its access record and its grants.
type Account struct {
	UserID    int64       `json:"user_id"`
	Email     string      `json:"email"`
	Role      access.Role `json:"role"`
	IsActive  bool        `json:"is_active"`
	Cities    []string    `json:"cities"`
	Stores    []string    `json:"stores"`
	CreatedAt time.Time   `json:"created_at"`
}

// CreatedAccount is returned from account creation. The generated password
// is surfaced exactly once so the admin can hand it to the new user.
type CreatedAccount struct {
	Account           Account  `json:"account"`
	GeneratedPassword string   `json:"generated_password,omitempty"`
	Warnings          []string `json:"warnings,omitempty"`
}
