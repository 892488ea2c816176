package controller

import (
	"encoding/json"
	"net/http"

	"github.com/coursedeck/coursedeck/internal/datasources"
	"github.com/coursedeck/coursedeck/internal/domain"
	"github.com/coursedeck/coursedeck/internal/validate"
)

// FilterPrefsBody is the JSON shape for saved catalog filters, shared by
// the GET response and PUT request of /v1/me/filters.
type FilterPrefsBody struct {
	Category     string  `json:"category" validate:"max=100"`
	TitleSearch  string  `json:"title_search" validate:"max=200"`
	InstructorID int64   `json:"instructor_id" validate:"gte=0"`
	PriceMin     int64   `json:"price_min" validate:"gte=0"`
	PriceMax     int64   `json:"price_max" validate:"gte=0"`
	MinRating    float64 `json:"min_rating" validate:"gte=0,lte=5"`
}

func filterPrefsBodyFromDomain(f domain.CourseFilters) FilterPrefsBody {
	return FilterPrefsBody{
		Category:     f.Category,
		TitleSearch:  f.TitleSearch,
		InstructorID: f.InstructorID,
		PriceMin:     f.PriceMin,
		PriceMax:     f.PriceMax,
		MinRating:    f.MinRating,
	}
}

func (b FilterPrefsBody) toDomain() domain.CourseFilters {
	return domain.CourseFilters{
		Category:     b.Category,
		TitleSearch:  b.TitleSearch,
		InstructorID: b.InstructorID,
		PriceMin:     b.PriceMin,
		PriceMax:     b.PriceMax,
		MinRating:    b.MinRating,
	}
}

// UserFiltersGet handles GET /v1/me/filters.
type UserFiltersGet struct {
	PrefsGetter datasources.FilterPrefsGetter
}

func (c UserFiltersGet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	userID := domain.UserIDFromContext(ctx)
	if userID == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	filters, err := c.PrefsGetter.GetFilterPrefs(ctx, userID)
	if err != nil {
		logger.ErrorContext(ctx, "unable to load filter preferences", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(filterPrefsBodyFromDomain(filters)); err != nil {
		logger.ErrorContext(ctx, "unable to write response", "error", err)
	}
}

// UserFiltersPut handles PUT /v1/me/filters, replacing the stored set.
type UserFiltersPut struct {
	PrefsSetter datasources.FilterPrefsSetter
}

func (c UserFiltersPut) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	userID := domain.UserIDFromContext(ctx)
	if userID == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var body FilterPrefsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logger.ErrorContext(ctx, "unable to parse request body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := validate.Check(body); err != nil {
		if fields, ok := validate.AsFieldErrors(err); ok {
			writeValidationFailure(w, fields)
			return
		}
		logger.ErrorContext(ctx, "unable to validate request body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := c.PrefsSetter.SetFilterPrefs(ctx, userID, body.toDomain()); err != nil {
		logger.ErrorContext(ctx, "unable to save filter preferences", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.ErrorContext(ctx, "unable to write response", "error", err)
	}
}
