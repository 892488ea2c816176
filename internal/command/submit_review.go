package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/coursedeck/coursedeck/internal/datasources"
	"github.com/coursedeck/coursedeck/internal/domain"
)

// SubmitReviewRequest carries a validated review form.
type SubmitReviewRequest struct {
	CourseID int64
	UserID   string
	Rating   float64
	Comment  string
}

// SubmitReview stores a review after confirming the course exists. The
// stored review feeds the effective rating used by related-course ranking.
type SubmitReview struct {
	CourseFetcher datasources.CourseFetcher
	ReviewCreator datasources.ReviewCreator
}

func NewSubmitReview(
	courseFetcher datasources.CourseFetcher,
	reviewCreator datasources.ReviewCreator,
) *SubmitReview {
	return &SubmitReview{
		CourseFetcher: courseFetcher,
		ReviewCreator: reviewCreator,
	}
}

func (c *SubmitReview) Execute(ctx context.Context, req SubmitReviewRequest) (domain.Review, error) {
	if _, err := c.CourseFetcher.FetchCourseByID(ctx, req.CourseID); err != nil {
		return domain.Review{}, err
	}

	review, err := c.ReviewCreator.CreateReview(ctx, domain.Review{
		CourseID: req.CourseID,
		UserID:   req.UserID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateReview) {
			return domain.Review{}, err
		}
		return domain.Review{}, fmt.Errorf("creating review: %w", err)
	}

	return review, nil
}
