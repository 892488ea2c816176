package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coursedeck/coursedeck/internal/command"
	"github.com/coursedeck/coursedeck/internal/domain"
	"github.com/coursedeck/coursedeck/internal/validate"
)

// AuthLoginRequest is the JSON login form; Login is a username or email.
type AuthLoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthLoginResponse carries the issued session token.
type AuthLoginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      domain.User `json:"user"`
}

// AuthLogin handles POST /v1/auth/login.
type AuthLogin struct {
	LoginCmd *command.LoginUser
}

func (c AuthLogin) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	var reqBody AuthLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		logger.ErrorContext(ctx, "unable to parse request body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := validate.Check(reqBody); err != nil {
		if fields, ok := validate.AsFieldErrors(err); ok {
			writeValidationFailure(w, fields)
			return
		}
		logger.ErrorContext(ctx, "unable to validate request body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	result, err := c.LoginCmd.Execute(ctx, command.LoginUserRequest{
		Login:    reqBody.Login,
		Password: reqBody.Password,
	})
	if errors.Is(err, domain.ErrInvalidCredentials) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		logger.ErrorContext(ctx, "unable to log user in", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(AuthLoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      result.User,
	}); err != nil {
		logger.ErrorContext(ctx, "unable to write response", "error", err)
	}
}
