package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/coursedeck/coursedeck/internal/datasources"
	"github.com/coursedeck/coursedeck/internal/domain"
)

// AuthMe handles GET /v1/auth/me for the authenticated user.
type AuthMe struct {
	UserGetter datasources.UserByIDGetter
}

func (c AuthMe) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	userID := domain.UserIDFromContext(ctx)
	if userID == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	user, err := c.UserGetter.GetUserByID(ctx, userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		// The token was valid but the account is gone.
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if err != nil {
		logger.ErrorContext(ctx, "unable to fetch current user", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(user); err != nil {
		logger.ErrorContext(ctx, "unable to write response", "error", err)
	}
}
