package controller

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/coursedeck/coursedeck/internal/domain"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 100
)

func courseFiltersFromQuery(q url.Values) (domain.CourseFilters, error) {
	var filters domain.CourseFilters

	if q.Has("category") {
		filters.Category = q.Get("category")
	}

	if q.Has("search") {
		filters.TitleSearch = q.Get("search")
	}

	if q.Has("instructor_id") {
		id, err := strconv.ParseInt(q.Get("instructor_id"), 10, 64)
		if err != nil {
			return domain.CourseFilters{}, fmt.Errorf("unable to parse instructor_id from query: %w", err)
		}
		filters.InstructorID = id
	}

	if q.Has("price_min") {
		priceMin, err := strconv.ParseInt(q.Get("price_min"), 10, 64)
		if err != nil {
			return domain.CourseFilters{}, fmt.Errorf("unable to parse price_min from query: %w", err)
		}
		filters.PriceMin = priceMin
	}

	if q.Has("price_max") {
		priceMax, err := strconv.ParseInt(q.Get("price_max"), 10, 64)
		if err != nil {
			return domain.CourseFilters{}, fmt.Errorf("unable to parse price_max from query: %w", err)
		}
		filters.PriceMax = priceMax
	}

	if q.Has("min_rating") {
		minRating, err := strconv.ParseFloat(q.Get("min_rating"), 64)
		if err != nil {
			return domain.CourseFilters{}, fmt.Errorf("unable to parse min_rating from query: %w", err)
		}
		filters.MinRating = minRating
	}

	return filters, nil
}

func listOptionsFromQuery(q url.Values) (domain.CourseListOptions, error) {
	var options domain.CourseListOptions
	if q.Has("page") {
		page, err := strconv.ParseInt(q.Get("page"), 10, 32)
		if err != nil {
			return domain.CourseListOptions{}, fmt.Errorf("unable to parse page from query: %w", err)
		}
		if page < 1 {
			return domain.CourseListOptions{}, fmt.Errorf("invalid page value [%d]", page)
		}
		options.Page = int(page)
	} else {
		options.Page = defaultPage
	}

	if q.Has("page_size") {
		pageSize, err := strconv.ParseInt(q.Get("page_size"), 10, 32)
		if err != nil {
			return domain.CourseListOptions{}, fmt.Errorf("unable to parse page size from query: %w", err)
		}
		if pageSize > maxPageSize {
			return domain.CourseListOptions{}, fmt.Errorf("page size [%d] exceeds limit [%d]",
				pageSize, maxPageSize)
		}
		if pageSize < 1 {
			return domain.CourseListOptions{}, fmt.Errorf("invalid page size value [%d]", pageSize)
		}
		options.PageSize = int(pageSize)
	} else {
		options.PageSize = defaultPageSize
	}

	if q.Has("sort") {
		orderings := strings.Split(q.Get("sort"), ",")

		for _, ordering := range orderings {
			field := ordering
			desc := false
			if strings.HasSuffix(ordering, "_desc") {
				field = ordering[:len(ordering)-5]
				desc = true
			}

			if !slices.Contains(domain.ValidOrderingFields, domain.CourseOrderingField(field)) {
				return domain.CourseListOptions{}, fmt.Errorf("unrecognised course ordering field: %s", field)
			}

			options.Ordering = append(options.Ordering, domain.CourseOrdering{
				Field: domain.CourseOrderingField(field),
				Desc:  desc,
			})
		}
	}

	return options, nil
}
