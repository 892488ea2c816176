package domain

import "time"

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthMethod identifies how a request was authenticated.
type AuthMethod string

const (
	// AuthMethodJWT indicates a session JWT issued by the login endpoint.
	AuthMethodJWT AuthMethod = "jwt"
	// AuthMethodAPIToken indicates a personal API token.
	AuthMethodAPIToken AuthMethod = "api_token"
)
