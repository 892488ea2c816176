package datasources

import (
	"context"

	"github.com/coursedeck/coursedeck/internal/domain"
)

// CatalogRepository combines everything the catalog endpoints need.
type CatalogRepository interface {
	CourseLister
	CourseCounter
	CourseFetcher
	RelatedCandidateLister
	LessonFetcher
	CourseLessonLister
	CourseReviewLister
	ReviewCreator
	InstructorFetcher
	InstructorCourseLister
}

type CourseLister interface {
	ListCourseIDs(
		ctx context.Context,
		filters domain.CourseFilters,
		options domain.CourseListOptions,
	) ([]int64, error)
}

type CourseCounter interface {
	TotalMatchingCourses(ctx context.Context, filters domain.CourseFilters) (int64, error)
}

type CourseFetcher interface {
	// FetchCoursesByID returns courses in the order of the given ids,
	// silently skipping ids that don't resolve.
	FetchCoursesByID(ctx context.Context, ids []int64) ([]domain.Course, error)

	// FetchCourseByID returns domain.ErrCourseNotFound when the id
	// doesn't resolve.
	FetchCourseByID(ctx context.Context, id int64) (domain.Course, error)
}

// RelatedCandidateLister supplies the pre-filtered candidate pool for
// related-course ranking: courses other than the target that share its
// category or at least one of its normalized tags.
type RelatedCandidateLister interface {
	ListRelatedCandidates(ctx context.Context, target domain.Course, limit int) ([]domain.Course, error)
}

type LessonFetcher interface {
	// FetchLessonByID returns domain.ErrLessonNotFound when the id
	// doesn't resolve.
	FetchLessonByID(ctx context.Context, id int64) (domain.Lesson, error)
}

type CourseLessonLister interface {
	ListCourseLessons(ctx context.Context, courseID int64) ([]domain.Lesson, error)
}

type CourseReviewLister interface {
	ListCourseReviews(ctx context.Context, courseID int64) ([]domain.Review, error)
}

type ReviewCreator interface {
	CreateReview(ctx context.Context, review domain.Review) (domain.Review, error)
}

type InstructorFetcher interface {
	// FetchInstructorsByID returns a map keyed by instructor id; missing
	// ids are simply absent from the map.
	FetchInstructorsByID(ctx context.Context, ids []int64) (map[int64]domain.Instructor, error)

	// FetchInstructorByID returns domain.ErrInstructorNotFound when the
	// id doesn't resolve.
	FetchInstructorByID(ctx context.Context, id int64) (domain.Instructor, error)
}

type InstructorCourseLister interface {
	ListInstructorCourseIDs(ctx context.Context, instructorID int64) ([]int64, error)
}
