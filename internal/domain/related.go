package domain

import (
	"slices"
	"strings"
	"time"
)

// DefaultRelatedLimit is the number of related courses returned when the
// caller doesn't ask for a specific count.
const DefaultRelatedLimit = 4

const recencyBonusCap = 10

// InstructorSummary is the enriched instructor attached to a ranked course.
type InstructorSummary struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// RelatedCourse is a scored candidate in a related-courses result.
type RelatedCourse struct {
	ID              int64              `json:"id"`
	Title           string             `json:"title"`
	Slug            string             `json:"slug"`
	Description     string             `json:"description"`
	Category        string             `json:"category"`
	Tags            []string           `json:"tags"`
	Price           float64            `json:"price"`
	Rating          float64            `json:"rating"`
	StudentCount    int64              `json:"student_count"`
	Image           string             `json:"image"`
	CreatedAt       time.Time          `json:"created_at"`
	PopularityScore float64            `json:"popularity_score"`
	TagMatchScore   int                `json:"tag_match_score"`
	CategoryMatch   bool               `json:"category_match"`
	Instructor      *InstructorSummary `json:"instructor,omitempty"`
}

// RankBasedOn echoes what the match was computed against, for
// "based on: X, Y" display.
type RankBasedOn struct {
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

// RankResult is the outcome of ranking a candidate pool against a target
// course. Total counts the truncated list, not the full pool.
type RankResult struct {
	Courses []RelatedCourse
	Total   int
	BasedOn RankBasedOn
}

// NormalizeTags turns a raw comma-separated tag string into lowercase
// trimmed tokens with empties and duplicates dropped, preserving first
// occurrence order. Applying it to its own output is a no-op.
func NormalizeTags(raw string) []string {
	tags := []string{}
	for _, tag := range strings.Split(raw, ",") {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if slices.Contains(tags, tag) {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// TagMatchScore counts tags shared between two normalized tag sets.
func TagMatchScore(courseTags, targetTags []string) int {
	score := 0
	for _, tag := range courseTags {
		if slices.Contains(targetTags, tag) {
			score++
		}
	}
	return score
}

// EffectiveRating is the mean of a course's reviews when any exist,
// else its stored rating. Out-of-range stored ratings pass through as-is.
func EffectiveRating(stored float64, reviews []Review) float64 {
	if len(reviews) == 0 {
		return stored
	}

	sum := float64(0)
	for _, review := range reviews {
		sum += review.Rating
	}
	return sum / float64(len(reviews))
}

// RecencyBonus rewards recently created courses: it starts at 10 and loses
// a point for every 30 full days since creation, staying within [0, 10].
// A createdAt in the future earns the full bonus, nothing more.
func RecencyBonus(now, createdAt time.Time) float64 {
	days := int64(now.Sub(createdAt).Hours() / 24)
	bonus := recencyBonusCap - days/30
	if bonus < 0 {
		return 0
	}
	if bonus > recencyBonusCap {
		return recencyBonusCap
	}
	return float64(bonus)
}

// PopularityScore combines enrollment, effective rating, and recency.
// It depends on the injected now, never on the wall clock.
func PopularityScore(studentCount int64, effectiveRating float64, createdAt, now time.Time) float64 {
	return float64(studentCount) + effectiveRating*10 + RecencyBonus(now, createdAt)
}

// RankRelatedCourses scores each candidate against the target and returns
// the top limit candidates ordered by category match, then tag match score,
// then popularity. The sort is stable, so candidates tied on all three keys
// keep their pool order. The target itself is never returned even if the
// caller's pool includes it.
//
// reviewsByCourseID supplies each candidate's reviews for effective-rating
// computation; instructorsByID supplies pre-resolved instructor summaries.
// Both may be missing entries for any candidate.
func RankRelatedCourses(
	target Course,
	pool []Course,
	reviewsByCourseID map[int64][]Review,
	instructorsByID map[int64]Instructor,
	limit int,
	now time.Time,
) RankResult {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	targetTags := NormalizeTags(target.Tags)

	ranked := make([]RelatedCourse, 0, len(pool))
	for _, course := range pool {
		if course.ID == target.ID {
			continue
		}

		courseTags := NormalizeTags(course.Tags)
		effectiveRating := EffectiveRating(course.Rating, reviewsByCourseID[course.ID])

		related := RelatedCourse{
			ID:              course.ID,
			Title:           course.Title,
			Slug:            course.Slug,
			Description:     course.Description,
			Category:        course.Category,
			Tags:            courseTags,
			Price:           course.Price(),
			Rating:          effectiveRating,
			StudentCount:    course.StudentCount,
			Image:           course.ImageOrDefault(),
			CreatedAt:       course.CreatedAt,
			PopularityScore: PopularityScore(course.StudentCount, effectiveRating, course.CreatedAt, now),
			TagMatchScore:   TagMatchScore(courseTags, targetTags),
			CategoryMatch:   course.Category == target.Category,
		}

		if course.InstructorID != nil {
			if instructor, ok := instructorsByID[*course.InstructorID]; ok {
				related.Instructor = &InstructorSummary{
					ID:     instructor.ID,
					Name:   instructor.Name,
					Avatar: instructor.Avatar,
				}
			}
		}

		ranked = append(ranked, related)
	}

	slices.SortStableFunc(ranked, compareRelated)

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return RankResult{
		Courses: ranked,
		Total:   len(ranked),
		BasedOn: RankBasedOn{
			Category: target.Category,
			Tags:     targetTags,
		},
	}
}

// compareRelated orders by descending relevance: category match first,
// then tag match score, then popularity.
func compareRelated(a, b RelatedCourse) int {
	if a.CategoryMatch != b.CategoryMatch {
		if a.CategoryMatch {
			return -1
		}
		return 1
	}

	if a.TagMatchScore != b.TagMatchScore {
		if a.TagMatchScore > b.TagMatchScore {
			return -1
		}
		return 1
	}

	if a.PopularityScore != b.PopularityScore {
		if a.PopularityScore > b.PopularityScore {
			return -1
		}
		return 1
	}

	return 0
}
