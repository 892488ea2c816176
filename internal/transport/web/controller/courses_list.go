package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/coursedeck/coursedeck/internal/datasources"
	"github.com/coursedeck/coursedeck/internal/domain"
)

type CoursesList struct {
	Lister interface {
		datasources.CourseLister
		datasources.CourseCounter
		datasources.CourseFetcher
	}
	PrefsGetter datasources.FilterPrefsGetter
	CacheMaxAge time.Duration
}

type CoursesListResponse struct {
	Data     []domain.Course           `json:"data"`
	Metadata domain.CourseListMetadata `json:"metadata"`
}

func (c CoursesList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	queryFilters, err := courseFiltersFromQuery(r.URL.Query())
	if err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to parse course filters in query string", "error", err)

		w.WriteHeader(http.StatusBadRequest)
		return
	}

	options, err := listOptionsFromQuery(r.URL.Query())
	if err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to parse course list options in query string", "error", err)

		w.WriteHeader(http.StatusBadRequest)
		return
	}

	filters := queryFilters
	userID := domain.UserIDFromContext(r.Context())
	if userID != "" && c.PrefsGetter != nil {
		stored, err := c.PrefsGetter.GetFilterPrefs(r.Context(), userID)
		if err != nil {
			ctx := r.Context()
			logger := domain.LoggerFromContext(ctx)
			logger.ErrorContext(ctx, "unable to fetch saved filter preferences", "error", err)

			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		filters = domain.ReconcileFilters(queryFilters, stored)
	}

	courseIDs, err := c.Lister.ListCourseIDs(r.Context(), filters, options)
	if err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to fetch course IDs", "error", err)

		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	courses, err := c.Lister.FetchCoursesByID(r.Context(), courseIDs)
	if err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to fetch course metadata", "error", err)

		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	totalRows, err := c.Lister.TotalMatchingCourses(r.Context(), filters)
	if err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to count matching courses", "error", err)

		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if userID == "" {
		w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(c.CacheMaxAge.Seconds())))
	}

	if err := json.NewEncoder(w).Encode(CoursesListResponse{
		Data: courses,
		Metadata: domain.CourseListMetadata{
			TotalRows: totalRows,
			Page:      options.Page,
			PageSize:  options.PageSize,
		},
	}); err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to write courses to response", "error", err)
	}
}
