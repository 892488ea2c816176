package command

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/coursedeck/coursedeck/internal/datasources"
	"github.com/coursedeck/coursedeck/internal/domain"
)

// relatedCandidatePoolSize bounds how many candidates the pre-filter pulls
// from the store before ranking.
const relatedCandidatePoolSize = 50

// reviewFetchConcurrency bounds the parallel per-candidate review fetches.
const reviewFetchConcurrency = 8

// RelatedCoursesRequest asks for courses related to a target course.
type RelatedCoursesRequest struct {
	CourseID int64
	Limit    int
}

// RelatedCourses resolves a target course, gathers its candidate pool and
// per-candidate reviews, and ranks the pool with the pure scorer in domain.
// All I/O happens here; the ranking itself is side-effect free.
type RelatedCourses struct {
	CourseFetcher     datasources.CourseFetcher
	CandidateLister   datasources.RelatedCandidateLister
	ReviewLister      datasources.CourseReviewLister
	InstructorFetcher datasources.InstructorFetcher

	// Now is injectable so tests can pin the recency bonus.
	Now func() time.Time
}

func NewRelatedCourses(
	courseFetcher datasources.CourseFetcher,
	candidateLister datasources.RelatedCandidateLister,
	reviewLister datasources.CourseReviewLister,
	instructorFetcher datasources.InstructorFetcher,
) *RelatedCourses {
	return &RelatedCourses{
		CourseFetcher:     courseFetcher,
		CandidateLister:   candidateLister,
		ReviewLister:      reviewLister,
		InstructorFetcher: instructorFetcher,
		Now:               time.Now,
	}
}

func (c *RelatedCourses) Execute(ctx context.Context, req RelatedCoursesRequest) (domain.RankResult, error) {
	target, err := c.CourseFetcher.FetchCourseByID(ctx, req.CourseID)
	if err != nil {
		// domain.ErrCourseNotFound passes through to the caller untouched.
		return domain.RankResult{}, err
	}

	pool, err := c.CandidateLister.ListRelatedCandidates(ctx, target, relatedCandidatePoolSize)
	if err != nil {
		return domain.RankResult{}, fmt.Errorf("listing related candidates: %w", err)
	}

	reviewsByCourseID, err := c.fetchCandidateReviews(ctx, pool)
	if err != nil {
		return domain.RankResult{}, err
	}

	instructorsByID, err := c.fetchCandidateInstructors(ctx, pool)
	if err != nil {
		return domain.RankResult{}, err
	}

	return domain.RankRelatedCourses(
		target,
		pool,
		reviewsByCourseID,
		instructorsByID,
		req.Limit,
		c.Now(),
	), nil
}

// fetchCandidateReviews fans out one review fetch per candidate. The result
// map is fully populated before ranking begins; the ranker never does I/O.
func (c *RelatedCourses) fetchCandidateReviews(
	ctx context.Context, pool []domain.Course,
) (map[int64][]domain.Review, error) {
	reviewsByCourseID := make(map[int64][]domain.Review, len(pool))
	var mu sync.Mutex

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(reviewFetchConcurrency)

	for _, course := range pool {
		grp.Go(func() error {
			reviews, err := c.ReviewLister.ListCourseReviews(grpCtx, course.ID)
			if err != nil {
				return fmt.Errorf("listing reviews for course %d: %w", course.ID, err)
			}

			mu.Lock()
			reviewsByCourseID[course.ID] = reviews
			mu.Unlock()
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, err
	}

	return reviewsByCourseID, nil
}

func (c *RelatedCourses) fetchCandidateInstructors(
	ctx context.Context, pool []domain.Course,
) (map[int64]domain.Instructor, error) {
	ids := make([]int64, 0, len(pool))
	seen := make(map[int64]bool, len(pool))
	for _, course := range pool {
		if course.InstructorID == nil || seen[*course.InstructorID] {
			continue
		}
		seen[*course.InstructorID] = true
		ids = append(ids, *course.InstructorID)
	}

	instructors, err := c.InstructorFetcher.FetchInstructorsByID(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("fetching candidate instructors: %w", err)
	}

	return instructors, nil
}
