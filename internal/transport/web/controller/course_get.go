package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/coursedeck/coursedeck/internal/datasources"
	"github.com/coursedeck/coursedeck/internal/domain"
)

type CourseGet struct {
	Fetcher interface {
		datasources.CourseFetcher
		datasources.CourseLessonLister
		datasources.CourseReviewLister
		datasources.InstructorFetcher
	}
	CacheMaxAge time.Duration
}

// CourseDetailResponse is a course page: the course plus its lessons,
// reviews, and instructor.
type CourseDetailResponse struct {
	Course     domain.Course      `json:"course"`
	Lessons    []domain.Lesson    `json:"lessons"`
	Reviews    []domain.Review    `json:"reviews"`
	Instructor *domain.Instructor `json:"instructor,omitempty"`
}

func (c CourseGet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["course_id"], 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	course, err := c.Fetcher.FetchCourseByID(r.Context(), id)
	if errors.Is(err, domain.ErrCourseNotFound) {
		writeNotFound(w, "Course not found")
		return
	}
	if err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to fetch course", "error", err)

		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	lessons, err := c.Fetcher.ListCourseLessons(r.Context(), id)
	if err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to fetch course lessons", "error", err)

		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	reviews, err := c.Fetcher.ListCourseReviews(r.Context(), id)
	if err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to fetch course reviews", "error", err)

		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	response := CourseDetailResponse{
		Course:  course,
		Lessons: lessons,
		Reviews: reviews,
	}

	if course.InstructorID != nil {
		instructor, err := c.Fetcher.FetchInstructorByID(r.Context(), *course.InstructorID)
		if err != nil && !errors.Is(err, domain.ErrInstructorNotFound) {
			ctx := r.Context()
			logger := domain.LoggerFromContext(ctx)
			logger.ErrorContext(ctx, "unable to fetch course instructor", "error", err)

			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if err == nil {
			response.Instructor = &instructor
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if domain.UserIDFromContext(r.Context()) == "" {
		w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(c.CacheMaxAge.Seconds())))
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to write course to response", "error", err)
	}
}

func writeNotFound(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   message,
	})
}
