package sqldb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/coursedeck/coursedeck/internal/domain"
)

func (r *Repository) ListCourseReviews(ctx context.Context, courseID int64) ([]domain.Review, error) {
	sb := r.flavor.NewSelectBuilder()
	sb.Select("id, course_id, user_id, rating, comment, created_at")
	sb.From("reviews")
	sb.Where(sb.Equal("course_id", courseID))
	sb.OrderBy("created_at DESC")

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running reviews query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	reviews := []domain.Review{}
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(
			&review.ID,
			&review.CourseID,
			&review.UserID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return reviews, nil
}

func (r *Repository) CreateReview(ctx context.Context, review domain.Review) (domain.Review, error) {
	review.CreatedAt = time.Now().UTC()

	ib := r.flavor.NewInsertBuilder()
	ib.InsertInto("reviews")
	ib.Cols("course_id", "user_id", "rating", "comment", "created_at")
	ib.Values(review.CourseID, review.UserID, review.Rating, review.Comment, review.CreatedAt)

	query, args := ib.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Review{}, domain.ErrDuplicateReview
		}
		return domain.Review{}, fmt.Errorf("inserting review: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.Review{}, fmt.Errorf("reading inserted review id: %w", err)
	}
	review.ID = id

	return review, nil
}

// isUniqueViolation matches unique-constraint errors across both supported
// drivers without importing their error types.
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate entry")
}
