package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconcileFilters(t *testing.T) {
	cases := []struct {
		name      string
		fromQuery CourseFilters
		stored    CourseFilters
		want      CourseFilters
	}{
		{
			name:      "empty_query_uses_stored",
			fromQuery: CourseFilters{},
			stored:    CourseFilters{Category: "frontend", MinRating: 4},
			want:      CourseFilters{Category: "frontend", MinRating: 4},
		},
		{
			name:      "query_overrides_stored",
			fromQuery: CourseFilters{Category: "backend"},
			stored:    CourseFilters{Category: "frontend", MinRating: 4},
			want:      CourseFilters{Category: "backend", MinRating: 4},
		},
		{
			name:      "both_empty",
			fromQuery: CourseFilters{},
			stored:    CourseFilters{},
			want:      CourseFilters{},
		},
		{
			name: "query_only",
			fromQuery: CourseFilters{
				TitleSearch: "testing",
				PriceMax:    10000,
			},
			stored: CourseFilters{},
			want: CourseFilters{
				TitleSearch: "testing",
				PriceMax:    10000,
			},
		},
		{
			name:      "instructor_and_price_min_merge",
			fromQuery: CourseFilters{InstructorID: 7},
			stored:    CourseFilters{PriceMin: 500},
			want:      CourseFilters{InstructorID: 7, PriceMin: 500},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ReconcileFilters(tc.fromQuery, tc.stored)
			assert.Equal(t, tc.want, got)

			// Reconciling the canonical result with either input again
			// must not change it.
			assert.Equal(t, got, ReconcileFilters(got, tc.stored))
		})
	}
}
