// Package domain holds DTOs for push token registration
package domain

import "time"

// RegisterInput registers a device token for new ticket notifications
type RegisterInput struct {
	Token     string `json:"token" validate:"required,min=8,max=4096" example:"fcm-device-token"`
	Platform  string `json:"platform,omitempty" validate:"omitempty,max=50" example:"web"`
	UserAgent string `json:"user_agent,omitempty" validate:"omitempty,max=500"`
}

// Registration is a stored device token
type Registration struct {
	Token     string    `json:"token"`
	Platform  string    `json:"platform,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	LastSeen  time.Time `json:"last_seen"`
}
