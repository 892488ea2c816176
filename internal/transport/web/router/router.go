package router

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/coursedeck/coursedeck/internal/command"
	"github.com/coursedeck/coursedeck/internal/datasources"
	"github.com/coursedeck/coursedeck/internal/transport/web/controller"
)

// Commands bundles the write-side operations the router exposes.
type Commands struct {
	Related     *command.RelatedCourses
	Register    *command.RegisterUser
	Login       *command.LoginUser
	Submit      *command.SubmitReview
	CreateToken *command.CreateAPIToken
}

// RSSConfig holds the feed identity settings.
type RSSConfig struct {
	BaseURL     string
	AuthorName  string
	AuthorEmail string
}

func MakeRouter(
	catalog datasources.CatalogRepository,
	users datasources.UserRepository,
	tokens datasources.APITokenRepository,
	commands Commands,
	rss RSSConfig,
	coursesCacheMaxAge time.Duration,
	relatedDefaultLimit int,
	authMiddleware func(http.Handler) http.Handler,
) (http.Handler, error) {
	r := mux.NewRouter()
	r.Use(corsMiddleware)
	r.Use(authMiddleware)

	r.Handle("/v1/courses", controller.CoursesList{
		Lister:      catalog,
		PrefsGetter: users,
		CacheMaxAge: coursesCacheMaxAge,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/courses/{course_id}", controller.CourseGet{
		Fetcher:     catalog,
		CacheMaxAge: coursesCacheMaxAge,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/courses/{course_id}/related", controller.RelatedCoursesList{
		RelatedCmd:   commands.Related,
		DefaultLimit: relatedDefaultLimit,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/courses/{course_id}/reviews", requireAuthMiddleware(controller.ReviewCreate{
		SubmitCmd: commands.Submit,
	})).Methods(http.MethodPost, http.MethodOptions)

	r.Handle("/v1/lessons/{lesson_id}", controller.LessonGet{
		Fetcher:     catalog,
		CacheMaxAge: coursesCacheMaxAge,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/instructors/{instructor_id}", controller.InstructorGet{
		Fetcher:     catalog,
		CacheMaxAge: coursesCacheMaxAge,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/auth/register", controller.AuthRegister{
		RegisterCmd: commands.Register,
	}).Methods(http.MethodPost, http.MethodOptions)

	r.Handle("/v1/auth/login", controller.AuthLogin{
		LoginCmd: commands.Login,
	}).Methods(http.MethodPost, http.MethodOptions)

	r.Handle("/v1/auth/me", requireAuthMiddleware(controller.AuthMe{
		UserGetter: users,
	})).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/me/filters", requireAuthMiddleware(controller.UserFiltersGet{
		PrefsGetter: users,
	})).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/me/filters", requireAuthMiddleware(controller.UserFiltersPut{
		PrefsSetter: users,
	})).Methods(http.MethodPut, http.MethodOptions)

	r.Handle("/v1/tokens", requireAuthMiddleware(controller.APITokenCreate{
		CreateCmd: commands.CreateToken,
	})).Methods(http.MethodPost, http.MethodOptions)

	r.Handle("/v1/tokens", requireAuthMiddleware(controller.APITokenList{
		TokenLister: tokens,
	})).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/tokens/{token_id}", requireAuthMiddleware(controller.APITokenRevoke{
		TokenRevoker: tokens,
	})).Methods(http.MethodDelete, http.MethodOptions)

	r.Handle("/rss", controller.RSS{
		FeedBaseURL:     rss.BaseURL,
		FeedPath:        "/rss",
		FeedAuthorName:  rss.AuthorName,
		FeedAuthorEmail: rss.AuthorEmail,
		Catalog:         catalog,
		CacheMaxAge:     coursesCacheMaxAge,
	}).Methods(http.MethodGet, http.MethodOptions)

	return r, nil
}
