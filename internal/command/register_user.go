package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/coursedeck/coursedeck/internal/datasources"
	"github.com/coursedeck/coursedeck/internal/domain"
)

// RegisterUserRequest carries a validated registration form.
type RegisterUserRequest struct {
	Username string
	Email    string
	Password string
}

// RegisterUser creates a new account with a bcrypt password hash.
type RegisterUser struct {
	UserCreator datasources.UserCreator
}

func NewRegisterUser(userCreator datasources.UserCreator) *RegisterUser {
	return &RegisterUser{UserCreator: userCreator}
}

func (c *RegisterUser) Execute(ctx context.Context, req RegisterUserRequest) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hashing password: %w", err)
	}

	user := domain.User{
		ID:           uuid.New().String(),
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := c.UserCreator.CreateUser(ctx, user); err != nil {
		// domain.ErrUserExists passes through for a 409 at the edge.
		return domain.User{}, err
	}

	return user, nil
}
