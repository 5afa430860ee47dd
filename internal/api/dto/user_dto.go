package dto

import "github.com/spec-kit/bloglist/internal/domain"

// LoginRequest payload for POST /api/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// NewLoginResponse maps a session to the response body.
func NewLoginResponse(s *domain.Session) LoginResponse {
	return LoginResponse{Token: s.Token, Username: s.Username, Name: s.Name}
}

// CreateUserRequest payload for POST /api/users.
type CreateUserRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}
