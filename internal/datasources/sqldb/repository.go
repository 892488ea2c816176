package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/huandu/go-sqlbuilder"

	"github.com/coursedeck/coursedeck/internal/datasources"
	"github.com/coursedeck/coursedeck/internal/domain"
)

var _ datasources.CatalogRepository = (*Repository)(nil)
var _ datasources.UserRepository = (*Repository)(nil)
var _ datasources.APITokenRepository = (*Repository)(nil)

type Repository struct {
	db     *sql.DB
	flavor sqlbuilder.Flavor
}

func New(db *sql.DB, flavor sqlbuilder.Flavor) *Repository {
	return &Repository{db: db, flavor: flavor}
}

const courseColumns = "id, title, slug, description, category, tags, price, rating, student_count, instructor_id, image, created_at"

func (r *Repository) ListCourseIDs(
	ctx context.Context,
	filters domain.CourseFilters,
	options domain.CourseListOptions,
) ([]int64, error) {
	sb := r.flavor.NewSelectBuilder()
	sb.Select("id")
	sb.From("courses")

	conds := buildCoursesConditions(sb, filters)
	if len(conds) > 0 {
		sb.Where(conds...)
	}

	orderings, err := buildCoursesOrder(options)
	if err != nil {
		return nil, fmt.Errorf("building courses order by clause: %w", err)
	}

	sb.OrderBy(orderings...)
	sb.Offset((options.Page - 1) * options.PageSize)
	sb.Limit(options.PageSize)

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running courses query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	courseIDs := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning courses: %w", err)
		}
		courseIDs = append(courseIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return courseIDs, nil
}

func (r *Repository) TotalMatchingCourses(
	ctx context.Context,
	filters domain.CourseFilters,
) (int64, error) {
	sb := r.flavor.NewSelectBuilder()
	sb.Select("COUNT(*)")
	sb.From("courses")

	conds := buildCoursesConditions(sb, filters)
	if len(conds) > 0 {
		sb.Where(conds...)
	}

	query, args := sb.Build()

	row := r.db.QueryRowContext(ctx, query, args...)
	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting matching courses: %w", err)
	}
	return count, nil
}

func (r *Repository) FetchCoursesByID(ctx context.Context, ids []int64) ([]domain.Course, error) {
	if len(ids) == 0 {
		return []domain.Course{}, nil
	}

	sb := r.flavor.NewSelectBuilder()
	sb.Select(courseColumns)
	sb.From("courses")

	idArgs := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		idArgs = append(idArgs, id)
	}
	sb.Where(sb.In("id", idArgs...))

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running courses fetch query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	courseMap := make(map[int64]domain.Course, len(ids))
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courseMap[course.ID] = course
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	// Build results in the same order as the input ids.
	courses := make([]domain.Course, 0, len(ids))
	for _, id := range ids {
		if course, exists := courseMap[id]; exists {
			courses = append(courses, course)
		}
	}

	return courses, nil
}

func (r *Repository) FetchCourseByID(ctx context.Context, id int64) (domain.Course, error) {
	sb := r.flavor.NewSelectBuilder()
	sb.Select(courseColumns)
	sb.From("courses")
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	row := r.db.QueryRowContext(ctx, query, args...)

	course, err := scanCourse(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Course{}, domain.ErrCourseNotFound
	}
	if err != nil {
		return domain.Course{}, err
	}
	return course, nil
}

// ListRelatedCandidates pre-filters the pool for related-course ranking:
// every course other than the target whose category matches or whose tags
// contain one of the target's normalized tags. The LIKE match can admit
// substring false positives; the ranker scores those at zero relevance.
func (r *Repository) ListRelatedCandidates(
	ctx context.Context, target domain.Course, limit int,
) ([]domain.Course, error) {
	sb := r.flavor.NewSelectBuilder()
	sb.Select(courseColumns)
	sb.From("courses")

	matchConds := []string{sb.Equal("category", target.Category)}
	for _, tag := range domain.NormalizeTags(target.Tags) {
		matchConds = append(matchConds, sb.Like("LOWER(tags)", "%"+tag+"%"))
	}

	sb.Where(
		sb.NotEqual("id", target.ID),
		sb.Or(matchConds...),
	)
	sb.Limit(limit)

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running related candidates query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	candidates := []domain.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return candidates, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(row rowScanner) (domain.Course, error) {
	var course domain.Course
	var tags, image sql.NullString
	var instructorID sql.NullInt64

	if err := row.Scan(
		&course.ID,
		&course.Title,
		&course.Slug,
		&course.Description,
		&course.Category,
		&tags,
		&course.PriceCents,
		&course.Rating,
		&course.StudentCount,
		&instructorID,
		&image,
		&course.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Course{}, err
		}
		return domain.Course{}, fmt.Errorf("scanning course: %w", err)
	}

	course.Tags = tags.String
	course.Image = image.String
	if instructorID.Valid {
		course.InstructorID = &instructorID.Int64
	}

	return course, nil
}

func buildCoursesConditions(sb *sqlbuilder.SelectBuilder, filters domain.CourseFilters) []string {
	var conds []string

	if filters.Category != "" {
		conds = append(conds, sb.Equal("category", filters.Category))
	}

	if filters.TitleSearch != "" {
		conds = append(conds, sb.Like("LOWER(title)", "%"+strings.ToLower(filters.TitleSearch)+"%"))
	}

	if filters.InstructorID != 0 {
		conds = append(conds, sb.Equal("instructor_id", filters.InstructorID))
	}

	if filters.PriceMin != 0 {
		conds = append(conds, sb.GreaterEqualThan("price", filters.PriceMin))
	}

	if filters.PriceMax != 0 {
		conds = append(conds, sb.LessEqualThan("price", filters.PriceMax))
	}

	if filters.MinRating != 0 {
		conds = append(conds, sb.GreaterEqualThan("rating", filters.MinRating))
	}

	return conds
}

func buildCoursesOrder(options domain.CourseListOptions) ([]string, error) {
	if len(options.Ordering) == 0 {
		return []string{"created_at DESC"}, nil
	}

	var orderings []string
	for _, ordering := range options.Ordering {
		var col string
		switch ordering.Field {
		case domain.CourseOrderingFieldCreatedAt:
			col = "created_at"
		case domain.CourseOrderingFieldPrice:
			col = "price"
		case domain.CourseOrderingFieldRating:
			col = "rating"
		case domain.CourseOrderingFieldStudents:
			col = "student_count"
		case domain.CourseOrderingFieldTitle:
			col = "title"
		default:
			return nil, fmt.Errorf("unknown ordering field: %s", ordering.Field)
		}

		if ordering.Desc {
			col += " DESC"
		}
		orderings = append(orderings, col)
	}

	return orderings, nil
}
