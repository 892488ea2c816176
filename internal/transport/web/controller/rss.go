package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/feeds"

	"github.com/coursedeck/coursedeck/internal/datasources"
	"github.com/coursedeck/coursedeck/internal/domain"
)

const rssFeedPageSize = 50

// RSS serves the newest courses as an RSS feed.
type RSS struct {
	FeedBaseURL     string
	FeedPath        string
	FeedAuthorName  string
	FeedAuthorEmail string
	Catalog         interface {
		datasources.CourseLister
		datasources.CourseFetcher
	}
	CacheMaxAge time.Duration
}

func (c RSS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	feed := &feeds.Feed{
		Title:       "CourseDeck New Courses",
		Link:        &feeds.Link{Href: c.FeedBaseURL + c.FeedPath},
		Description: "Feed of courses recently added to the CourseDeck catalog",
		Author:      &feeds.Author{Name: c.FeedAuthorName, Email: c.FeedAuthorEmail},
		Created:     time.Now(),
	}

	options := domain.CourseListOptions{
		Ordering: []domain.CourseOrdering{
			{Field: domain.CourseOrderingFieldCreatedAt, Desc: true},
		},
		Page:     1,
		PageSize: rssFeedPageSize,
	}

	courseIDs, err := c.Catalog.ListCourseIDs(ctx, domain.CourseFilters{}, options)
	if err != nil {
		logger.ErrorContext(ctx, "unable to fetch course IDs for feed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	courses, err := c.Catalog.FetchCoursesByID(ctx, courseIDs)
	if err != nil {
		logger.ErrorContext(ctx, "unable to fetch courses for feed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	for _, course := range courses {
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          fmt.Sprintf("%s/courses/%d", c.FeedBaseURL, course.ID),
			IsPermaLink: "false",
			Title:       course.Title,
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/courses/%s", c.FeedBaseURL, course.Slug)},
			Description: course.Description,
			Created:     course.CreatedAt,
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		logger.ErrorContext(ctx, "unable to format feed as RSS", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/xml")
	w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(c.CacheMaxAge.Seconds())))

	if _, err := w.Write([]byte(rss)); err != nil {
		logger.ErrorContext(ctx, "unable to write feed to response", "error", err)
	}
}
