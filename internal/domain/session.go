package domain

import "time"

// Session is what a successful login hands back to the client.
type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expires_at"`
}
