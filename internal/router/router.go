// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/rubsun/film-catalog/internal/handler"
	"github.com/rubsun/film-catalog/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers authentication endpoints.  Unauthenticated
// operations live under /v1/auth; /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated browse endpoints: actor
// and film listings, detail lookups and film search.
func RegisterPublic(e *echo.Echo, a *handler.ActorHandler, f *handler.FilmHandler) {
	e.GET("/v1/actors", a.List)
	e.GET("/v1/actors/detail", a.Detail)
	e.GET("/v1/films", f.List)
	e.GET("/v1/films/detail", f.Detail)
	e.GET("/v1/search/films", f.Search)
}

// RegisterEditor registers the mutating endpoints under /v1.  All routes
// require a valid JWT and the EDITOR role.
func RegisterEditor(e *echo.Echo, a *handler.ActorHandler, f *handler.FilmHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("EDITOR"),
	)

	// ---- Actors ----
	g.POST("/actors", a.Create)
	g.PUT("/actors/:id", a.Update)
	g.PATCH("/actors/:id", a.Update) // allow partial-style updates via PATCH as well
	g.DELETE("/actors/:id", a.Delete)

	// ---- Films ----
	g.POST("/films", f.Create)
	g.PUT("/films/:id", f.Update)
	g.PATCH("/films/:id", f.Update)
	g.DELETE("/films/:id", f.Delete)

	// Remove a single film from an actor's filmography.
	g.DELETE("/films/:film_id/actors/:actor_id", f.RemoveFromActor)
}
