package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/coursedeck/coursedeck/internal/datasources"
	"github.com/coursedeck/coursedeck/internal/domain"
)

// SessionConfig holds the parameters for issued session JWTs. The same
// issuer/audience/secret are used by the validating middleware.
type SessionConfig struct {
	Secret   []byte
	Issuer   string
	Audience string
	TTL      time.Duration
}

// LoginUserRequest carries a login form: Login is a username or email.
type LoginUserRequest struct {
	Login    string
	Password string
}

// LoginUserResponse is a freshly issued session token and its subject.
type LoginUserResponse struct {
	Token     string
	ExpiresAt time.Time
	User      domain.User
}

// LoginUser checks credentials and issues an HS256 session JWT.
type LoginUser struct {
	UserGetter datasources.UserByLoginGetter
	Session    SessionConfig

	// Now is injectable so tests can pin token expiry.
	Now func() time.Time
}

func NewLoginUser(userGetter datasources.UserByLoginGetter, session SessionConfig) *LoginUser {
	return &LoginUser{
		UserGetter: userGetter,
		Session:    session,
		Now:        time.Now,
	}
}

func (c *LoginUser) Execute(ctx context.Context, req LoginUserRequest) (LoginUserResponse, error) {
	user, err := c.UserGetter.GetUserByLogin(ctx, req.Login)
	if errors.Is(err, domain.ErrUserNotFound) {
		// Same error as a bad password, so responses don't reveal
		// which accounts exist.
		return LoginUserResponse{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return LoginUserResponse{}, fmt.Errorf("resolving login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return LoginUserResponse{}, domain.ErrInvalidCredentials
	}

	now := c.Now()
	expiresAt := now.Add(c.Session.TTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   user.ID,
		Issuer:    c.Session.Issuer,
		Audience:  jwt.ClaimStrings{c.Session.Audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})

	signed, err := token.SignedString(c.Session.Secret)
	if err != nil {
		return LoginUserResponse{}, fmt.Errorf("signing session token: %w", err)
	}

	return LoginUserResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}
