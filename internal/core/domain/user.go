package domain

import (
	"errors"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")

// UnifiedUser is the canonical identity record held by the master store.
// The federation layer reads it and touches LastLoginAt; it never creates
// or deletes records.
type UnifiedUser struct {
	ID                   string    `json:"id"`
	Email                string    `json:"email"`
	PasswordHash         string    `json:"-"`
	FullName             string    `json:"full_name"`
	CreatedAt            time.Time `json:"created_at"`
	LastLoginAt          time.Time `json:"last_login_at"`
	HasFreelancerProfile bool      `json:"has_freelancer_profile"`
	HasLearningProfile   bool      `json:"has_learning_profile"`
}

// UserSummary is the denormalized view returned alongside a freshly issued
// token so clients don't need a second round trip after login.
type UserSummary struct {
	ID                   string   `json:"id"`
	Email                string   `json:"email"`
	FullName             string   `json:"full_name"`
	Platforms            []string `json:"platforms"`
	HasFreelancerProfile bool     `json:"has_freelancer_profile"`
	HasLearningProfile   bool     `json:"has_learning_profile"`
}
