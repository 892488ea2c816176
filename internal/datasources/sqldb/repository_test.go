package sqldb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursedeck/coursedeck/internal/domain"
)

func setupTestRepository(t *testing.T) *Repository {
	if testing.Short() {
		t.Skip("skipping SQLite integration tests in short mode")
	}

	db, flavor, err := Connect(context.Background(), "sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := New(db, flavor)
	seedCatalog(t, repo)
	return repo
}

func seedCatalog(t *testing.T, repo *Repository) {
	t.Helper()
	ctx := context.Background()

	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO instructors (id, name, avatar, bio) VALUES (1, 'Dana Fields', '/avatars/dana.png', 'Frontend instructor')`)
	require.NoError(t, err)

	courses := []struct {
		id           int64
		title, slug  string
		category     string
		tags         string
		price        int64
		rating       float64
		students     int64
		instructorID any
		createdAt    time.Time
	}{
		{1, "Vue Fundamentals", "vue-fundamentals", "frontend", "javascript,vue", 4999, 4.5, 1200, 1, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
		{2, "React Deep Dive", "react-deep-dive", "frontend", "javascript,react", 5999, 4.7, 3400, 1, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{3, "Go for Backends", "go-for-backends", "backend", "go,api", 6999, 4.8, 2100, nil, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)},
		{4, "Advanced Vue Patterns", "advanced-vue-patterns", "frontend", "vue,architecture", 7999, 4.9, 800, 1, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range courses {
		_, err := repo.db.ExecContext(ctx,
			`INSERT INTO courses (id, title, slug, category, tags, price, rating, student_count, instructor_id, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.id, c.title, c.slug, c.category, c.tags, c.price, c.rating, c.students, c.instructorID, c.createdAt)
		require.NoError(t, err)
	}
}

func TestRepository_FetchCourseByID(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	course, err := repo.FetchCourseByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Vue Fundamentals", course.Title)
	assert.Equal(t, "javascript,vue", course.Tags)
	require.NotNil(t, course.InstructorID)
	assert.Equal(t, int64(1), *course.InstructorID)

	_, err = repo.FetchCourseByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)
}

func TestRepository_FetchCoursesByID_PreservesOrder(t *testing.T) {
	repo := setupTestRepository(t)

	courses, err := repo.FetchCoursesByID(context.Background(), []int64{3, 1, 999})
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, int64(3), courses[0].ID)
	assert.Equal(t, int64(1), courses[1].ID)
}

func TestRepository_ListCourseIDs_Filters(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()
	options := domain.CourseListOptions{Page: 1, PageSize: 10}

	ids, err := repo.ListCourseIDs(ctx, domain.CourseFilters{Category: "frontend"}, options)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2, 4}, ids)

	ids, err = repo.ListCourseIDs(ctx, domain.CourseFilters{TitleSearch: "vue"}, options)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 4}, ids)

	ids, err = repo.ListCourseIDs(ctx, domain.CourseFilters{PriceMin: 6000}, options)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{3, 4}, ids)

	total, err := repo.TotalMatchingCourses(ctx, domain.CourseFilters{Category: "frontend"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestRepository_ListCourseIDs_Ordering(t *testing.T) {
	repo := setupTestRepository(t)

	ids, err := repo.ListCourseIDs(context.Background(), domain.CourseFilters{}, domain.CourseListOptions{
		Page:     1,
		PageSize: 10,
		Ordering: []domain.CourseOrdering{{Field: domain.CourseOrderingFieldPrice, Desc: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 3, 2, 1}, ids)
}

func TestRepository_ListRelatedCandidates(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	target, err := repo.FetchCourseByID(ctx, 1)
	require.NoError(t, err)

	candidates, err := repo.ListRelatedCandidates(ctx, target, 50)
	require.NoError(t, err)

	gotIDs := make([]int64, 0, len(candidates))
	for _, c := range candidates {
		assert.NotEqual(t, target.ID, c.ID)
		gotIDs = append(gotIDs, c.ID)
	}

	// Courses 2 and 4 share category or tags with the target; course 3
	// shares neither.
	assert.ElementsMatch(t, []int64{2, 4}, gotIDs)
}

func TestRepository_ReviewsRoundTrip(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	user := domain.User{
		ID:           "user-1",
		Username:     "dana",
		Email:        "dana@example.com",
		PasswordHash: "x",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.CreateUser(ctx, user))

	created, err := repo.CreateReview(ctx, domain.Review{
		CourseID: 1,
		UserID:   user.ID,
		Rating:   5,
		Comment:  "excellent",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = repo.CreateReview(ctx, domain.Review{CourseID: 1, UserID: user.ID, Rating: 4})
	assert.ErrorIs(t, err, domain.ErrDuplicateReview)

	reviews, err := repo.ListCourseReviews(ctx, 1)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.InDelta(t, 5.0, reviews[0].Rating, 0.0001)
}

func TestRepository_Users(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	user := domain.User{
		ID:           "user-1",
		Username:     "dana",
		Email:        "dana@example.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.CreateUser(ctx, user))

	err := repo.CreateUser(ctx, domain.User{
		ID:           "user-2",
		Username:     "dana",
		Email:        "other@example.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	})
	assert.ErrorIs(t, err, domain.ErrUserExists)

	byUsername, err := repo.GetUserByLogin(ctx, "dana")
	require.NoError(t, err)
	assert.Equal(t, "user-1", byUsername.ID)

	byEmail, err := repo.GetUserByLogin(ctx, "dana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", byEmail.ID)

	_, err = repo.GetUserByLogin(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRepository_FilterPrefs(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	user := domain.User{
		ID: "user-1", Username: "dana", Email: "dana@example.com",
		PasswordHash: "x", CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.CreateUser(ctx, user))

	empty, err := repo.GetFilterPrefs(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CourseFilters{}, empty)

	filters := domain.CourseFilters{Category: "frontend", MinRating: 4}
	require.NoError(t, repo.SetFilterPrefs(ctx, user.ID, filters))

	got, err := repo.GetFilterPrefs(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, filters, got)

	// Saving again replaces, not appends.
	filters.Category = "backend"
	require.NoError(t, repo.SetFilterPrefs(ctx, user.ID, filters))
	got, err = repo.GetFilterPrefs(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "backend", got.Category)
}

func TestRepository_APITokens(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	user := domain.User{
		ID: "user-1", Username: "dana", Email: "dana@example.com",
		PasswordHash: "x", CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.CreateUser(ctx, user))

	name := "ci"
	require.NoError(t, repo.CreateAPIToken(ctx, "tok-1", user.ID, "hash-1", "abcd1234", &name, nil))

	token, err := repo.GetAPITokenByHash(ctx, "hash-1")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token.ID)
	assert.True(t, token.IsActive())

	count, err := repo.CountUserActiveAPITokens(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repo.RevokeAPIToken(ctx, "tok-1", user.ID))

	token, err = repo.GetAPITokenByHash(ctx, "hash-1")
	require.NoError(t, err)
	assert.False(t, token.IsActive())
}
