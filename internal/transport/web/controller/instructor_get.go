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

type InstructorGet struct {
	Fetcher interface {
		datasources.InstructorFetcher
		datasources.InstructorCourseLister
		datasources.CourseFetcher
	}
	CacheMaxAge time.Duration
}

// InstructorDetailResponse is an instructor profile with their courses.
type InstructorDetailResponse struct {
	Instructor domain.Instructor `json:"instructor"`
	Courses    []domain.Course   `json:"courses"`
}

func (c InstructorGet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["instructor_id"], 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	instructor, err := c.Fetcher.FetchInstructorByID(r.Context(), id)
	if errors.Is(err, domain.ErrInstructorNotFound) {
		writeNotFound(w, "Instructor not found")
		return
	}
	if err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to fetch instructor", "error", err)

		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	courseIDs, err := c.Fetcher.ListInstructorCourseIDs(r.Context(), id)
	if err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to fetch instructor course IDs", "error", err)

		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	courses, err := c.Fetcher.FetchCoursesByID(r.Context(), courseIDs)
	if err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to fetch instructor courses", "error", err)

		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if domain.UserIDFromContext(r.Context()) == "" {
		w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(c.CacheMaxAge.Seconds())))
	}

	if err := json.NewEncoder(w).Encode(InstructorDetailResponse{
		Instructor: instructor,
		Courses:    courses,
	}); err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to write instructor to response", "error", err)
	}
}
