package user

import (
	"time"

	"github.com/google/uuid"
)

// User is the doctor account that owns prescriptions and library entries.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	CRM       string    `json:"crm"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Patch describes a partial profile update. Nil fields are left untouched.
type Patch struct {
	Name  *string `json:"name"`
	CRM   *string `json:"crm"`
	Email *string `json:"email"`
}

// Empty reports whether the patch would change nothing.
func (p Patch) Empty() bool {
	return p.Name == nil && p.CRM == nil && p.Email == nil
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the signed token and the authenticated user.
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
