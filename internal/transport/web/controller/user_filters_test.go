package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursedeck/coursedeck/internal/domain"
)

func TestUserFiltersGet_ServeHTTP(t *testing.T) {
	prefs := &fakePrefsStore{
		filters: domain.CourseFilters{Category: "programming", MinRating: 4},
	}

	controller := UserFiltersGet{PrefsGetter: prefs}

	req := httptest.NewRequest(http.MethodGet, "/v1/me/filters", nil)
	req = testContextWithUserID("user123")(req)
	rec := httptest.NewRecorder()

	controller.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user123", prefs.gotUserID)

	var body FilterPrefsBody
	err := json.NewDecoder(rec.Body).Decode(&body)
	require.NoError(t, err)
	assert.Equal(t, "programming", body.Category)
	assert.Equal(t, float64(4), body.MinRating)
}

func TestUserFiltersGet_ServeHTTP_Anonymous(t *testing.T) {
	controller := UserFiltersGet{PrefsGetter: &fakePrefsStore{}}

	req := httptest.NewRequest(http.MethodGet, "/v1/me/filters", nil)
	req = testContext()(req)
	rec := httptest.NewRecorder()

	controller.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserFiltersPut_ServeHTTP(t *testing.T) {
	cases := []struct {
		name         string
		setupContext func(r *http.Request) *http.Request
		body         string
		wantStatus   int
		wantFilters  domain.CourseFilters
	}{
		{
			name:         "replaces_stored_filters",
			setupContext: testContextWithUserID("user123"),
			body:         `{"category": "design", "price_max": 5000, "min_rating": 3.5}`,
			wantStatus:   http.StatusOK,
			wantFilters: domain.CourseFilters{
				Category:  "design",
				PriceMax:  5000,
				MinRating: 3.5,
			},
		},
		{
			name:         "anonymous_rejected",
			setupContext: testContext(),
			body:         `{"category": "design"}`,
			wantStatus:   http.StatusUnauthorized,
		},
		{
			name:         "rating_out_of_range",
			setupContext: testContextWithUserID("user123"),
			body:         `{"min_rating": 9}`,
			wantStatus:   http.StatusUnprocessableEntity,
		},
		{
			name:         "malformed_json",
			setupContext: testContextWithUserID("user123"),
			body:         `{"category":`,
			wantStatus:   http.StatusBadRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prefs := &fakePrefsStore{}
			controller := UserFiltersPut{PrefsSetter: prefs}

			req := httptest.NewRequest(http.MethodPut, "/v1/me/filters", strings.NewReader(tc.body))
			req = tc.setupContext(req)
			rec := httptest.NewRecorder()

			controller.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)

			if tc.wantStatus == http.StatusOK {
				assert.Equal(t, tc.wantFilters, prefs.setFilters)
			}
		})
	}
}
