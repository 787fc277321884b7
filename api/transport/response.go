package transport

import "github.com/pulsemark/clientcore/domain"

// AuthResponse is the body returned by the login and register
// endpoints.
type AuthResponse struct {
	Token string          `json:"token"`
	User  domain.Identity `json:"user"`
}

// ErrorResponse is the error body returned by the backend. Some
// endpoints use "error", others "message"; both are tolerated.
type ErrorResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}
