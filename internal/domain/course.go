package domain

import (
	"time"
)

// DefaultCourseImage is served for courses without an uploaded image.
const DefaultCourseImage = "/images/course-placeholder.png"

type Course struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Tags         string    `json:"tags"`
	PriceCents   int64     `json:"price_cents"`
	Rating       float64   `json:"rating"`
	StudentCount int64     `json:"student_count"`
	InstructorID *int64    `json:"instructor_id,omitempty"`
	Image        string    `json:"image"`
	CreatedAt    time.Time `json:"created_at"`
}

// Price converts the stored minor-unit price to major units for display.
func (c Course) Price() float64 {
	return float64(c.PriceCents) / 100
}

// ImageOrDefault returns the course image, falling back to the placeholder.
func (c Course) ImageOrDefault() string {
	if c.Image == "" {
		return DefaultCourseImage
	}
	return c.Image
}

type CourseListMetadata struct {
	TotalRows int64 `json:"total_rows"`
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
}

type CourseFilters struct {
	Category     string
	TitleSearch  string
	InstructorID int64
	PriceMin     int64
	PriceMax     int64
	MinRating    float64
}

type CourseListOptions struct {
	Ordering       []CourseOrdering
	Page, PageSize int
}

type CourseOrdering struct {
	Field CourseOrderingField
	Desc  bool
}

type CourseOrderingField string

const CourseOrderingFieldCreatedAt CourseOrderingField = "created_at"
const CourseOrderingFieldPrice CourseOrderingField = "price"
const CourseOrderingFieldRating CourseOrderingField = "rating"
const CourseOrderingFieldStudents CourseOrderingField = "students"
const CourseOrderingFieldTitle CourseOrderingField = "title"

var ValidOrderingFields = []CourseOrderingField{
	CourseOrderingFieldCreatedAt,
	CourseOrderingFieldPrice,
	CourseOrderingFieldRating,
	CourseOrderingFieldStudents,
	CourseOrderingFieldTitle,
}
