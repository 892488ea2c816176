package domain

// ReconcileFilters merges the filters a request carries in its query string
// with the user's saved filter preferences into one canonical filter.
//
// Precedence is one-directional: a field set in the query wins, an unset
// field falls back to the saved value. The result never feeds back into
// either input, so the query string and the stored preferences can't
// trigger each other.
func ReconcileFilters(fromQuery, stored CourseFilters) CourseFilters {
	canonical := stored

	if fromQuery.Category != "" {
		canonical.Category = fromQuery.Category
	}
	if fromQuery.TitleSearch != "" {
		canonical.TitleSearch = fromQuery.TitleSearch
	}
	if fromQuery.InstructorID != 0 {
		canonical.InstructorID = fromQuery.InstructorID
	}
	if fromQuery.PriceMin != 0 {
		canonical.PriceMin = fromQuery.PriceMin
	}
	if fromQuery.PriceMax != 0 {
		canonical.PriceMax = fromQuery.PriceMax
	}
	if fromQuery.MinRating != 0 {
		canonical.MinRating = fromQuery.MinRating
	}

	return canonical
}
