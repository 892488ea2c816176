package domain

import "time"

type Lesson struct {
	ID              int64     `json:"id"`
	CourseID        int64     `json:"course_id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Position        int       `json:"position"`
	DurationSeconds int64     `json:"duration_seconds"`
	VideoURL        string    `json:"video_url,omitempty"`
	FreePreview     bool      `json:"free_preview"`
	CreatedAt       time.Time `json:"created_at"`
}
