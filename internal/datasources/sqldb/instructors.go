package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/coursedeck/coursedeck/internal/domain"
)

func (r *Repository) FetchInstructorsByID(
	ctx context.Context, ids []int64,
) (map[int64]domain.Instructor, error) {
	if len(ids) == 0 {
		return map[int64]domain.Instructor{}, nil
	}

	sb := r.flavor.NewSelectBuilder()
	sb.Select("id, name, avatar, bio")
	sb.From("instructors")

	idArgs := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		idArgs = append(idArgs, id)
	}
	sb.Where(sb.In("id", idArgs...))

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running instructors query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	instructors := make(map[int64]domain.Instructor, len(ids))
	for rows.Next() {
		var instructor domain.Instructor
		if err := rows.Scan(
			&instructor.ID,
			&instructor.Name,
			&instructor.Avatar,
			&instructor.Bio,
		); err != nil {
			return nil, fmt.Errorf("scanning instructor: %w", err)
		}
		instructors[instructor.ID] = instructor
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return instructors, nil
}

func (r *Repository) FetchInstructorByID(ctx context.Context, id int64) (domain.Instructor, error) {
	sb := r.flavor.NewSelectBuilder()
	sb.Select("id, name, avatar, bio")
	sb.From("instructors")
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	row := r.db.QueryRowContext(ctx, query, args...)

	var instructor domain.Instructor
	err := row.Scan(&instructor.ID, &instructor.Name, &instructor.Avatar, &instructor.Bio)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Instructor{}, domain.ErrInstructorNotFound
	}
	if err != nil {
		return domain.Instructor{}, fmt.Errorf("scanning instructor: %w", err)
	}

	return instructor, nil
}

func (r *Repository) ListInstructorCourseIDs(ctx context.Context, instructorID int64) ([]int64, error) {
	sb := r.flavor.NewSelectBuilder()
	sb.Select("id")
	sb.From("courses")
	sb.Where(sb.Equal("instructor_id", instructorID))
	sb.OrderBy("created_at DESC")

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running instructor courses query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	courseIDs := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning instructor course id: %w", err)
		}
		courseIDs = append(courseIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return courseIDs, nil
}
