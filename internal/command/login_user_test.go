package command

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/coursedeck/coursedeck/internal/domain"
)

type fakeUserGetter struct {
	users map[string]domain.User
}

func (f *fakeUserGetter) GetUserByLogin(_ context.Context, login string) (domain.User, error) {
	user, ok := f.users[login]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return user, nil
}

func testSessionConfig() SessionConfig {
	return SessionConfig{
		Secret:   []byte("test-secret"),
		Issuer:   "coursedeck-test",
		Audience: "coursedeck-api",
		TTL:      time.Hour,
	}
}

func TestLoginUser_Execute(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	user := domain.User{
		ID:           "user-1",
		Username:     "dana",
		Email:        "dana@example.com",
		PasswordHash: string(hash),
	}
	getter := &fakeUserGetter{users: map[string]domain.User{
		"dana":             user,
		"dana@example.com": user,
	}}

	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	cmd := NewLoginUser(getter, testSessionConfig())
	cmd.Now = func() time.Time { return now }

	cases := []struct {
		name     string
		login    string
		password string
		wantErr  error
	}{
		{name: "username_login", login: "dana", password: "hunter22"},
		{name: "email_login", login: "dana@example.com", password: "hunter22"},
		{name: "wrong_password", login: "dana", password: "nope", wantErr: domain.ErrInvalidCredentials},
		{name: "unknown_account", login: "nobody", password: "hunter22", wantErr: domain.ErrInvalidCredentials},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := cmd.Execute(context.Background(), LoginUserRequest{
				Login:    tc.login,
				Password: tc.password,
			})

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, now.Add(time.Hour), result.ExpiresAt)
			assert.Equal(t, "user-1", result.User.ID)

			claims := &jwt.RegisteredClaims{}
			parsed, err := jwt.ParseWithClaims(result.Token, claims, func(*jwt.Token) (interface{}, error) {
				return []byte("test-secret"), nil
			}, jwt.WithTimeFunc(func() time.Time { return now }))
			require.NoError(t, err)
			assert.True(t, parsed.Valid)
			assert.Equal(t, "user-1", claims.Subject)
			assert.Equal(t, "coursedeck-test", claims.Issuer)
		})
	}
}
