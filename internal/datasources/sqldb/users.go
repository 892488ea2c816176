package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/coursedeck/coursedeck/internal/domain"
)

func (r *Repository) CreateUser(ctx context.Context, user domain.User) error {
	ib := r.flavor.NewInsertBuilder()
	ib.InsertInto("users")
	ib.Cols("id", "username", "email", "password_hash", "created_at")
	ib.Values(user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt)

	query, args := ib.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("inserting user: %w", err)
	}

	return nil
}

func (r *Repository) GetUserByLogin(ctx context.Context, login string) (domain.User, error) {
	sb := r.flavor.NewSelectBuilder()
	sb.Select("id, username, email, password_hash, created_at")
	sb.From("users")
	sb.Where(sb.Or(
		sb.Equal("username", login),
		sb.Equal("email", login),
	))

	query, args := sb.Build()
	return r.getUser(ctx, query, args)
}

func (r *Repository) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	sb := r.flavor.NewSelectBuilder()
	sb.Select("id, username, email, password_hash, created_at")
	sb.From("users")
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	return r.getUser(ctx, query, args)
}

func (r *Repository) getUser(ctx context.Context, query string, args []interface{}) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, query, args...)

	var user domain.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("scanning user: %w", err)
	}

	return user, nil
}

func (r *Repository) GetFilterPrefs(ctx context.Context, userID string) (domain.CourseFilters, error) {
	sb := r.flavor.NewSelectBuilder()
	sb.Select("category, search, price_min, price_max, min_rating")
	sb.From("user_filter_prefs")
	sb.Where(sb.Equal("user_id", userID))

	query, args := sb.Build()
	row := r.db.QueryRowContext(ctx, query, args...)

	var filters domain.CourseFilters
	err := row.Scan(
		&filters.Category,
		&filters.TitleSearch,
		&filters.PriceMin,
		&filters.PriceMax,
		&filters.MinRating,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CourseFilters{}, nil
	}
	if err != nil {
		return domain.CourseFilters{}, fmt.Errorf("scanning filter prefs: %w", err)
	}

	return filters, nil
}

func (r *Repository) SetFilterPrefs(
	ctx context.Context, userID string, filters domain.CourseFilters,
) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	del := r.flavor.NewDeleteBuilder()
	del.DeleteFrom("user_filter_prefs")
	del.Where(del.Equal("user_id", userID))

	query, args := del.Build()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clearing filter prefs: %w", err)
	}

	ib := r.flavor.NewInsertBuilder()
	ib.InsertInto("user_filter_prefs")
	ib.Cols("user_id", "category", "search", "price_min", "price_max", "min_rating", "updated_at")
	ib.Values(
		userID,
		filters.Category,
		filters.TitleSearch,
		filters.PriceMin,
		filters.PriceMax,
		filters.MinRating,
		time.Now().UTC(),
	)

	query, args = ib.Build()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting filter prefs: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
