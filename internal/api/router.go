package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/graphql-go/graphql"

	"github.com/deskhub/deskhub/internal/api/handler"
	"github.com/deskhub/deskhub/internal/api/middleware"
	"github.com/deskhub/deskhub/internal/auth"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	DBPinger handler.DBPinger
	Tokens   *auth.Tokens
	Schema   graphql.Schema
	Version  string
}

// NewRouter creates and configures a Chi router with all middleware and routes.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)

	healthHandler := handler.NewHealthHandler(deps.DBPinger, deps.Version)
	r.Get("/health", healthHandler.ServeHTTP)

	gqlHandler := handler.NewGraphQLHandler(deps.Schema)
	r.With(middleware.Auth(deps.Tokens)).Post("/graphql", gqlHandler.ServeHTTP)

	return r
}
