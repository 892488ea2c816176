package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/coursedeck/coursedeck/internal/domain"
)

const tokenColumns = "id, user_id, token_hash, prefix, name, created_at, last_used_at, expires_at, revoked_at"

func (r *Repository) CreateAPIToken(
	ctx context.Context,
	id, userID, tokenHash, tokenPrefix string,
	name *string,
	expiresAt *time.Time,
) error {
	ib := r.flavor.NewInsertBuilder()
	ib.InsertInto("api_tokens")
	ib.Cols("id", "user_id", "token_hash", "prefix", "name", "created_at", "expires_at")
	ib.Values(id, userID, tokenHash, tokenPrefix, name, time.Now().UTC(), expiresAt)

	query, args := ib.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting API token: %w", err)
	}

	return nil
}

func (r *Repository) GetAPITokenByHash(ctx context.Context, tokenHash string) (domain.APIToken, error) {
	sb := r.flavor.NewSelectBuilder()
	sb.Select(tokenColumns)
	sb.From("api_tokens")
	sb.Where(sb.Equal("token_hash", tokenHash))

	query, args := sb.Build()
	row := r.db.QueryRowContext(ctx, query, args...)

	token, err := scanAPIToken(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.APIToken{}, fmt.Errorf("api token not found")
	}
	if err != nil {
		return domain.APIToken{}, err
	}
	return token, nil
}

func (r *Repository) UpdateAPITokenLastUsed(ctx context.Context, tokenID string) error {
	ub := r.flavor.NewUpdateBuilder()
	ub.Update("api_tokens")
	ub.Set(ub.Assign("last_used_at", time.Now().UTC()))
	ub.Where(ub.Equal("id", tokenID))

	query, args := ub.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("updating token last used: %w", err)
	}

	return nil
}

func (r *Repository) ListUserAPITokens(ctx context.Context, userID string) ([]domain.APIToken, error) {
	sb := r.flavor.NewSelectBuilder()
	sb.Select(tokenColumns)
	sb.From("api_tokens")
	sb.Where(
		sb.Equal("user_id", userID),
		sb.IsNull("revoked_at"),
	)
	sb.OrderBy("created_at DESC")

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running tokens query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tokens := []domain.APIToken{}
	for rows.Next() {
		token, err := scanAPIToken(rows)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return tokens, nil
}

func (r *Repository) CountUserActiveAPITokens(ctx context.Context, userID string) (int64, error) {
	sb := r.flavor.NewSelectBuilder()
	sb.Select("COUNT(*)")
	sb.From("api_tokens")
	sb.Where(
		sb.Equal("user_id", userID),
		sb.IsNull("revoked_at"),
	)

	query, args := sb.Build()
	row := r.db.QueryRowContext(ctx, query, args...)

	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting active tokens: %w", err)
	}
	return count, nil
}

func (r *Repository) RevokeAPIToken(ctx context.Context, tokenID, userID string) error {
	ub := r.flavor.NewUpdateBuilder()
	ub.Update("api_tokens")
	ub.Set(ub.Assign("revoked_at", time.Now().UTC()))
	ub.Where(
		ub.Equal("id", tokenID),
		ub.Equal("user_id", userID),
		ub.IsNull("revoked_at"),
	)

	query, args := ub.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}

	return nil
}

func scanAPIToken(row rowScanner) (domain.APIToken, error) {
	var token domain.APIToken
	var name sql.NullString
	var lastUsedAt, expiresAt, revokedAt sql.NullTime

	if err := row.Scan(
		&token.ID,
		&token.UserID,
		&token.TokenHash,
		&token.Prefix,
		&name,
		&token.CreatedAt,
		&lastUsedAt,
		&expiresAt,
		&revokedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.APIToken{}, err
		}
		return domain.APIToken{}, fmt.Errorf("scanning API token: %w", err)
	}

	if name.Valid {
		token.Name = &name.String
	}
	if lastUsedAt.Valid {
		token.LastUsedAt = &lastUsedAt.Time
	}
	if expiresAt.Valid {
		token.ExpiresAt = &expiresAt.Time
	}
	if revokedAt.Valid {
		token.RevokedAt = &revokedAt.Time
	}

	return token, nil
}
