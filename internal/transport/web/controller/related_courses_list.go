package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/coursedeck/coursedeck/internal/command"
	"github.com/coursedeck/coursedeck/internal/domain"
)

// RelatedCoursesList serves the ranked related-courses list for a course.
type RelatedCoursesList struct {
	RelatedCmd   *command.RelatedCourses
	DefaultLimit int
}

// RelatedCoursesResponse is the envelope the catalog UI consumes.
type RelatedCoursesResponse struct {
	Success bool                   `json:"success"`
	Data    []domain.RelatedCourse `json:"data"`
	Meta    RelatedCoursesMeta     `json:"meta"`
}

type RelatedCoursesMeta struct {
	Total   int                `json:"total"`
	BasedOn domain.RankBasedOn `json:"basedOn"`
}

func (c RelatedCoursesList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["course_id"], 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	limit := c.DefaultLimit
	if q := r.URL.Query(); q.Has("limit") {
		parsed, err := strconv.ParseInt(q.Get("limit"), 10, 32)
		if err != nil || parsed < 1 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		limit = int(parsed)
	}

	result, err := c.RelatedCmd.Execute(r.Context(), command.RelatedCoursesRequest{
		CourseID: id,
		Limit:    limit,
	})
	if errors.Is(err, domain.ErrCourseNotFound) {
		writeNotFound(w, "Course not found")
		return
	}
	if err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to rank related courses", "error", err)

		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(RelatedCoursesResponse{
		Success: true,
		Data:    result.Courses,
		Meta: RelatedCoursesMeta{
			Total:   result.Total,
			BasedOn: result.BasedOn,
		},
	}); err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to write related courses to response", "error", err)
	}
}
