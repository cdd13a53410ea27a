package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a user role
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleProblemManager Role = "problem_manager"
	RoleUser           Role = "user"
)

// Users represents an account
type Users struct {
	ID              uuid.UUID `db:"id" json:"id"`
	UserName        string    `db:"user_name" json:"username"`
	Email           string    `db:"email" json:"email"`
	PasswordHash    *string   `db:"password_hash" json:"-"`
	FullName        string    `db:"full_name" json:"fullname"`
	Role            Role      `db:"role" json:"role"`
	AvatarURL       string    `db:"avatar_url" json:"avatarUrl"`
	IsEmailVerified bool      `db:"is_email_verified" json:"isEmailVerified"`
	AuthProvider    string    `db:"auth_provider" json:"-"`
	GoogleID        *string   `db:"google_id" json:"-"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
}

// CanManageProblems reports whether the user may create or edit problems
func (u *Users) CanManageProblems() bool {
	return u.Role == RoleAdmin || u.Role == RoleProblemManager
}
