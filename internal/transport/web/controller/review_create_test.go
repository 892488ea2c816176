package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursedeck/coursedeck/internal/command"
	"github.com/coursedeck/coursedeck/internal/domain"
)

type fakeReviewCreator struct {
	err error
}

func (f *fakeReviewCreator) CreateReview(_ context.Context, review domain.Review) (domain.Review, error) {
	if f.err != nil {
		return domain.Review{}, f.err
	}
	review.ID = 42
	return review, nil
}

func TestReviewCreate_ServeHTTP(t *testing.T) {
	catalog := &fakeCourseCatalog{
		courses: []domain.Course{{ID: 1, Title: "Go Fundamentals"}},
	}

	cases := []struct {
		name         string
		courseID     string
		setupContext func(r *http.Request) *http.Request
		body         string
		createErr    error
		wantStatus   int
	}{
		{
			name:         "successful_review",
			courseID:     "1",
			setupContext: testContextWithUserID("user123"),
			body:         `{"rating": 4.5, "comment": "solid intro"}`,
			wantStatus:   http.StatusCreated,
		},
		{
			name:         "anonymous_rejected",
			courseID:     "1",
			setupContext: testContext(),
			body:         `{"rating": 4.5}`,
			wantStatus:   http.StatusUnauthorized,
		},
		{
			name:         "course_not_found",
			courseID:     "999",
			setupContext: testContextWithUserID("user123"),
			body:         `{"rating": 4.5}`,
			wantStatus:   http.StatusNotFound,
		},
		{
			name:         "duplicate_review",
			courseID:     "1",
			setupContext: testContextWithUserID("user123"),
			body:         `{"rating": 4.5}`,
			createErr:    domain.ErrDuplicateReview,
			wantStatus:   http.StatusConflict,
		},
		{
			name:         "rating_out_of_range",
			courseID:     "1",
			setupContext: testContextWithUserID("user123"),
			body:         `{"rating": 7}`,
			wantStatus:   http.StatusUnprocessableEntity,
		},
		{
			name:         "non_numeric_course_id",
			courseID:     "abc",
			setupContext: testContextWithUserID("user123"),
			body:         `{"rating": 4.5}`,
			wantStatus:   http.StatusBadRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			controller := ReviewCreate{
				SubmitCmd: command.NewSubmitReview(catalog, &fakeReviewCreator{err: tc.createErr}),
			}

			req := httptest.NewRequest(
				http.MethodPost,
				"/v1/courses/"+tc.courseID+"/reviews",
				strings.NewReader(tc.body),
			)
			req = tc.setupContext(req)
			req = mux.SetURLVars(req, map[string]string{"course_id": tc.courseID})
			rec := httptest.NewRecorder()

			controller.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)

			if tc.wantStatus == http.StatusCreated {
				var review domain.Review
				err := json.NewDecoder(rec.Body).Decode(&review)
				require.NoError(t, err)
				assert.Equal(t, int64(42), review.ID)
				assert.Equal(t, int64(1), review.CourseID)
				assert.Equal(t, "user123", review.UserID)
				assert.Equal(t, 4.5, review.Rating)
			}
		})
	}
}
