package datasources

import (
	"context"

	"github.com/coursedeck/coursedeck/internal/domain"
)

// UserRepository combines all account operations.
type UserRepository interface {
	UserCreator
	UserByLoginGetter
	UserByIDGetter
	FilterPrefsGetter
	FilterPrefsSetter
}

type UserCreator interface {
	// CreateUser returns domain.ErrUserExists when the username or email
	// is already taken.
	CreateUser(ctx context.Context, user domain.User) error
}

// UserByLoginGetter resolves a user by username or email, whichever the
// login form supplied.
type UserByLoginGetter interface {
	GetUserByLogin(ctx context.Context, login string) (domain.User, error)
}

type UserByIDGetter interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)
}

type FilterPrefsGetter interface {
	// GetFilterPrefs returns a zero CourseFilters when the user has no
	// saved preferences.
	GetFilterPrefs(ctx context.Context, userID string) (domain.CourseFilters, error)
}

type FilterPrefsSetter interface {
	SetFilterPrefs(ctx context.Context, userID string, filters domain.CourseFilters) error
}
