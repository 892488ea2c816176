package controller

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursedeck/coursedeck/internal/domain"
)

func testContext() func(r *http.Request) *http.Request {
	return func(r *http.Request) *http.Request {
		ctx := domain.ContextWithLogger(r.Context(), slog.New(slog.DiscardHandler))
		return r.WithContext(ctx)
	}
}

func testContextWithUserID(userID string) func(r *http.Request) *http.Request {
	return func(r *http.Request) *http.Request {
		ctx := domain.ContextWithLogger(r.Context(), slog.New(slog.DiscardHandler))
		ctx = domain.ContextWithUserID(ctx, userID)
		return r.WithContext(ctx)
	}
}

type fakeCourseCatalog struct {
	courseIDs  []int64
	listIDsErr error

	courses  []domain.Course
	fetchErr error

	total    int64
	countErr error

	gotFilters domain.CourseFilters
	gotOptions domain.CourseListOptions
}

func (f *fakeCourseCatalog) ListCourseIDs(
	_ context.Context, filters domain.CourseFilters, options domain.CourseListOptions,
) ([]int64, error) {
	f.gotFilters = filters
	f.gotOptions = options
	return f.courseIDs, f.listIDsErr
}

func (f *fakeCourseCatalog) TotalMatchingCourses(_ context.Context, _ domain.CourseFilters) (int64, error) {
	return f.total, f.countErr
}

func (f *fakeCourseCatalog) FetchCoursesByID(_ context.Context, _ []int64) ([]domain.Course, error) {
	return f.courses, f.fetchErr
}

func (f *fakeCourseCatalog) FetchCourseByID(_ context.Context, id int64) (domain.Course, error) {
	for _, course := range f.courses {
		if course.ID == id {
			return course, nil
		}
	}
	return domain.Course{}, domain.ErrCourseNotFound
}

type fakePrefsStore struct {
	filters domain.CourseFilters
	getErr  error
	setErr  error

	gotUserID  string
	setFilters domain.CourseFilters
}

func (f *fakePrefsStore) GetFilterPrefs(_ context.Context, userID string) (domain.CourseFilters, error) {
	f.gotUserID = userID
	return f.filters, f.getErr
}

func (f *fakePrefsStore) SetFilterPrefs(_ context.Context, userID string, filters domain.CourseFilters) error {
	f.gotUserID = userID
	f.setFilters = filters
	return f.setErr
}

func TestCoursesList_ServeHTTP(t *testing.T) {
	testTime := time.Date(2025, 6, 12, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name          string
		queryString   string
		setupContext  func(r *http.Request) *http.Request
		courseIDs     []int64
		listIDsErr    error
		courses       []domain.Course
		fetchErr      error
		total         int64
		wantStatus    int
		wantCacheCtrl string
		wantCourses   []domain.Course
	}{
		{
			name:         "successful_list",
			queryString:  "",
			setupContext: testContext(),
			courseIDs:    []int64{1, 2},
			courses: []domain.Course{
				{ID: 1, Title: "Go Fundamentals", CreatedAt: testTime},
				{ID: 2, Title: "Advanced Go", CreatedAt: testTime},
			},
			total:         2,
			wantStatus:    http.StatusOK,
			wantCacheCtrl: "max-age=3600",
			wantCourses: []domain.Course{
				{ID: 1, Title: "Go Fundamentals", CreatedAt: testTime},
				{ID: 2, Title: "Advanced Go", CreatedAt: testTime},
			},
		},
		{
			name:         "no_cache_for_authenticated_user",
			queryString:  "",
			setupContext: testContextWithUserID("user123"),
			courseIDs:    []int64{1},
			courses: []domain.Course{
				{ID: 1, Title: "Go Fundamentals", CreatedAt: testTime},
			},
			total:         1,
			wantStatus:    http.StatusOK,
			wantCacheCtrl: "",
			wantCourses: []domain.Course{
				{ID: 1, Title: "Go Fundamentals", CreatedAt: testTime},
			},
		},
		{
			name:          "empty_list",
			queryString:   "",
			setupContext:  testContext(),
			courseIDs:     []int64{},
			courses:       []domain.Course{},
			total:         0,
			wantStatus:    http.StatusOK,
			wantCacheCtrl: "max-age=3600",
			wantCourses:   []domain.Course{},
		},
		{
			name:         "with_category_filter",
			queryString:  "category=programming",
			setupContext: testContext(),
			courseIDs:    []int64{1},
			courses: []domain.Course{
				{ID: 1, Title: "Go Fundamentals", Category: "programming", CreatedAt: testTime},
			},
			total:         1,
			wantStatus:    http.StatusOK,
			wantCacheCtrl: "max-age=3600",
			wantCourses: []domain.Course{
				{ID: 1, Title: "Go Fundamentals", Category: "programming", CreatedAt: testTime},
			},
		},
		{
			name:         "invalid_page_param",
			queryString:  "page=invalid",
			setupContext: testContext(),
			wantStatus:   http.StatusBadRequest,
		},
		{
			name:         "invalid_page_size_exceeds_limit",
			queryString:  "page_size=500",
			setupContext: testContext(),
			wantStatus:   http.StatusBadRequest,
		},
		{
			name:         "invalid_sort_field",
			queryString:  "sort=bogus",
			setupContext: testContext(),
			wantStatus:   http.StatusBadRequest,
		},
		{
			name:         "list_ids_error",
			queryString:  "",
			setupContext: testContext(),
			listIDsErr:   errors.New("database error"),
			wantStatus:   http.StatusInternalServerError,
		},
		{
			name:         "fetch_courses_error",
			queryString:  "",
			setupContext: testContext(),
			courseIDs:    []int64{1},
			fetchErr:     errors.New("fetch error"),
			wantStatus:   http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			catalog := &fakeCourseCatalog{
				courseIDs:  tc.courseIDs,
				listIDsErr: tc.listIDsErr,
				courses:    tc.courses,
				fetchErr:   tc.fetchErr,
				total:      tc.total,
			}

			controller := CoursesList{
				Lister:      catalog,
				CacheMaxAge: time.Hour,
			}

			req := httptest.NewRequest(http.MethodGet, "/v1/courses?"+tc.queryString, nil)
			req = tc.setupContext(req)
			rec := httptest.NewRecorder()

			controller.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)

			if tc.wantStatus == http.StatusOK {
				if tc.wantCacheCtrl != "" {
					assert.Equal(t, tc.wantCacheCtrl, rec.Header().Get("Cache-Control"))
				} else {
					assert.Empty(t, rec.Header().Get("Cache-Control"))
				}

				var response CoursesListResponse
				err := json.NewDecoder(rec.Body).Decode(&response)
				require.NoError(t, err)
				assert.Equal(t, tc.wantCourses, response.Data)
				assert.Equal(t, tc.total, response.Metadata.TotalRows)
			}
		})
	}
}

func TestCoursesList_SavedFiltersReconciled(t *testing.T) {
	catalog := &fakeCourseCatalog{
		courseIDs: []int64{1},
		courses:   []domain.Course{{ID: 1, Title: "Go Fundamentals"}},
		total:     1,
	}
	prefs := &fakePrefsStore{
		filters: domain.CourseFilters{Category: "programming", MinRating: 4},
	}

	controller := CoursesList{
		Lister:      catalog,
		PrefsGetter: prefs,
		CacheMaxAge: time.Hour,
	}

	// Query category should win over the stored one; the stored minimum
	// rating fills the gap.
	req := httptest.NewRequest(http.MethodGet, "/v1/courses?category=design", nil)
	req = testContextWithUserID("user123")(req)
	rec := httptest.NewRecorder()

	controller.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user123", prefs.gotUserID)
	assert.Equal(t, "design", catalog.gotFilters.Category)
	assert.Equal(t, float64(4), catalog.gotFilters.MinRating)
}
