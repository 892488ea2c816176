package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/coursedeck/coursedeck/internal/command"
	"github.com/coursedeck/coursedeck/internal/datasources/sqldb"
	"github.com/coursedeck/coursedeck/internal/transport/web/router"
	"github.com/coursedeck/coursedeck/internal/transport/web/server"
)

type Component interface {
	Run(ctx context.Context) error
}

func Setup(ctx context.Context) ([]Component, error) {
	repo, err := setupRepository(ctx)
	if err != nil {
		return nil, fmt.Errorf("setting up catalog repository: %w", err)
	}

	session := command.SessionConfig{
		Secret:   []byte(MustGetEnvAsString(ctx, "AUTH_JWT_SECRET")),
		Issuer:   MustGetEnvAsString(ctx, "AUTH_JWT_ISSUER"),
		Audience: MustGetEnvAsString(ctx, "AUTH_JWT_AUDIENCE"),
		TTL:      MustGetEnvAsDuration(ctx, "AUTH_JWT_TTL"),
	}

	authMiddleware, err := setupAuthMiddleware(ctx, repo, session)
	if err != nil {
		return nil, fmt.Errorf("setting up auth middleware: %w", err)
	}

	commands := router.Commands{
		Related:     command.NewRelatedCourses(repo, repo, repo, repo),
		Register:    command.NewRegisterUser(repo),
		Login:       command.NewLoginUser(repo, session),
		Submit:      command.NewSubmitReview(repo, repo),
		CreateToken: command.NewCreateAPIToken(repo, repo),
	}

	httpRouter, err := router.MakeRouter(
		repo,
		repo,
		repo,
		commands,
		router.RSSConfig{
			BaseURL:     MustGetEnvAsString(ctx, "RSS_FEED_BASE_URL"),
			AuthorName:  MustGetEnvAsString(ctx, "RSS_FEED_AUTHOR_NAME"),
			AuthorEmail: MustGetEnvAsString(ctx, "RSS_FEED_AUTHOR_EMAIL"),
		},
		MustGetEnvAsDuration(ctx, "COURSES_CACHE_MAX_AGE"),
		MustGetEnvAsInt(ctx, "RELATED_COURSES_LIMIT"),
		authMiddleware,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create HTTP router: %w", err)
	}

	return []Component{
		&server.Server{
			TLSDisabled:       MustGetEnvAsBoolean(ctx, "HTTP_TLS_DISABLED"),
			TLSDisabledPort:   MustGetEnvAsInt(ctx, "PORT"),
			AutocertHostnames: MustGetEnvAsStrings(ctx, "HTTP_AUTOCERT_HOSTNAMES"),
			Router:            httpRouter,
		},
	}, nil
}

func setupRepository(ctx context.Context) (*sqldb.Repository, error) {
	db, flavor, err := sqldb.Connect(
		ctx,
		MustGetEnvAsString(ctx, "DATABASE_DRIVER"),
		MustGetEnvAsString(ctx, "DATABASE_URI"),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return sqldb.New(db, flavor), nil
}

func setupAuthMiddleware(
	ctx context.Context, repo *sqldb.Repository, session command.SessionConfig,
) (func(http.Handler) http.Handler, error) {
	jwtValidator, err := router.NewSessionJWTValidator(session)
	if err != nil {
		return nil, fmt.Errorf("creating session JWT validator: %w", err)
	}

	validators := []router.AuthValidator{
		router.NewAPITokenValidator(ctx, repo, repo),
		jwtValidator,
	}

	return router.NewAuthMiddleware(validators), nil
}
