package models

import (
	"time"
)

// User represents a registered account.
type User struct {
	ID             int64      `json:"id" db:"id"`
	Email          string     `json:"email" db:"email"`
	HashedPassword string     `json:"-" db:"hashed_password"`
	FirstName      string     `json:"first_name,omitempty" db:"first_name"`
	LastName       string     `json:"last_name,omitempty" db:"last_name"`
	DisplayName    string     `json:"display_name,omitempty" db:"display_name"`
	Bio            string     `json:"bio,omitempty" db:"bio"`
	Timezone       string     `json:"timezone" db:"timezone"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// RegisterRequest is the payload for account registration.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=100"`
}

// LoginRequest is the payload for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Token is the JWT issued to a client.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// AuthResponse carries the user and token returned by register/login.
type AuthResponse struct {
	User    *User  `json:"user"`
	Token   Token  `json:"token"`
	Message string `json:"message"`
}

// ProfileUpdate carries the optional profile fields a user may change.
// Only non-nil fields are applied.
type ProfileUpdate struct {
	Email       *string `json:"email,omitempty" binding:"omitempty,email"`
	FirstName   *string `json:"first_name,omitempty" binding:"omitempty,max=50"`
	LastName    *string `json:"last_name,omitempty" binding:"omitempty,max=50"`
	DisplayName *string `json:"display_name,omitempty" binding:"omitempty,max=100"`
	Bio         *string `json:"bio,omitempty" binding:"omitempty,max=500"`
	Timezone    *string `json:"timezone,omitempty" binding:"omitempty,max=50"`
}
