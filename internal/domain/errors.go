package domain

import "errors"

// ErrCourseNotFound is returned when a course id or slug doesn't resolve.
// It propagates to the HTTP layer unwrapped, where it maps to a 404.
var ErrCourseNotFound = errors.New("course not found")

// ErrLessonNotFound is returned when a lesson id doesn't resolve.
var ErrLessonNotFound = errors.New("lesson not found")

// ErrInstructorNotFound is returned when an instructor id doesn't resolve.
var ErrInstructorNotFound = errors.New("instructor not found")

// ErrUserNotFound is returned when a user id, username, or email doesn't resolve.
var ErrUserNotFound = errors.New("user not found")

// ErrInvalidCredentials is returned on a failed login regardless of whether
// the account exists, so the response doesn't leak which part was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUserExists is returned when registering with a taken username or email.
var ErrUserExists = errors.New("username or email already in use")

// ErrDuplicateReview is returned when a user reviews the same course twice.
var ErrDuplicateReview = errors.New("course already reviewed by this user")
