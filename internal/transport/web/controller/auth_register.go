package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/coursedeck/coursedeck/internal/command"
	"github.com/coursedeck/coursedeck/internal/domain"
	"github.com/coursedeck/coursedeck/internal/validate"
)

// AuthRegisterRequest is the JSON registration form.
type AuthRegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// AuthRegister handles POST /v1/auth/register.
type AuthRegister struct {
	RegisterCmd *command.RegisterUser
}

func (c AuthRegister) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	var reqBody AuthRegisterRequest
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

	user, err := c.RegisterCmd.Execute(ctx, command.RegisterUserRequest{
		Username: reqBody.Username,
		Email:    reqBody.Email,
		Password: reqBody.Password,
	})
	if errors.Is(err, domain.ErrUserExists) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		logger.ErrorContext(ctx, "unable to register user", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(user); err != nil {
		logger.ErrorContext(ctx, "unable to write response", "error", err)
	}
}

// writeValidationFailure renders a 422 with one message per failed field.
func writeValidationFailure(w http.ResponseWriter, fields validate.FieldErrors) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error":  "validation failed",
		"fields": fields,
	})
}
