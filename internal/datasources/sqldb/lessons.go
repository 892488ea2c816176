package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/coursedeck/coursedeck/internal/domain"
)

const lessonColumns = "id, course_id, title, slug, position, duration_seconds, video_url, free_preview, created_at"

func (r *Repository) FetchLessonByID(ctx context.Context, id int64) (domain.Lesson, error) {
	sb := r.flavor.NewSelectBuilder()
	sb.Select(lessonColumns)
	sb.From("lessons")
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	row := r.db.QueryRowContext(ctx, query, args...)

	lesson, err := scanLesson(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Lesson{}, domain.ErrLessonNotFound
	}
	if err != nil {
		return domain.Lesson{}, err
	}
	return lesson, nil
}

func (r *Repository) ListCourseLessons(ctx context.Context, courseID int64) ([]domain.Lesson, error) {
	sb := r.flavor.NewSelectBuilder()
	sb.Select(lessonColumns)
	sb.From("lessons")
	sb.Where(sb.Equal("course_id", courseID))
	sb.OrderBy("position")

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running lessons query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	lessons := []domain.Lesson{}
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, lesson)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return lessons, nil
}

func scanLesson(row rowScanner) (domain.Lesson, error) {
	var lesson domain.Lesson

	if err := row.Scan(
		&lesson.ID,
		&lesson.CourseID,
		&lesson.Title,
		&lesson.Slug,
		&lesson.Position,
		&lesson.DurationSeconds,
		&lesson.VideoURL,
		&lesson.FreePreview,
		&lesson.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Lesson{}, err
		}
		return domain.Lesson{}, fmt.Errorf("scanning lesson: %w", err)
	}

	return lesson, nil
}
