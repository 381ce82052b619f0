// Package domain holds DTOs for the admin session endpoints
package domain

import "time"

// LoginInput is the static credential pair
type LoginInput struct {
	Username string `json:"username" validate:"required,min=1,max=100" example:"admin"`
	Password string `json:"password" validate:"required,min=1,max=200" example:"admin123"`
}

// LoginResult carries the minted session token
type LoginResult struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}
