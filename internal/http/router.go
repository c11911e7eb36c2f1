package httpserver

import (
	"net/http"

	"chargenet/internal/http/handlers"
	"chargenet/internal/http/middleware"
)

// RouterDeps collects handler dependencies.
type RouterDeps struct {
	AuthHandlers    *handlers.AuthHandlers
	EntityHandlers  *handlers.EntityHandlers
	UserHandlers    *handlers.UserHandlers
	SessionHandlers *handlers.SessionHandlers
	HealthHandler   http.HandlerFunc
}

// NewRouter wires all HTTP routes. Method-qualified patterns with path
// wildcards come from the stdlib mux; everything except health, signup and
// login sits behind the auth middleware.
func NewRouter(deps RouterDeps, auth func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /health", deps.HealthHandler)

	mux.Handle("POST /api/auth/signup", http.HandlerFunc(deps.AuthHandlers.Signup))
	mux.Handle("POST /api/auth/login", http.HandlerFunc(deps.AuthHandlers.Login))

	protect := func(handler http.HandlerFunc) http.Handler {
		return middleware.Chain(handler, auth)
	}

	mux.Handle("POST /api/auth/logout", protect(deps.AuthHandlers.Logout))

	mux.Handle("GET /api/entities/{type}", protect(deps.EntityHandlers.List))
	mux.Handle("GET /api/entities/{type}/columns", protect(deps.EntityHandlers.Columns))
	mux.Handle("GET /api/entities/{type}/{id}", protect(deps.EntityHandlers.Get))
	mux.Handle("POST /api/entities/{type}", protect(deps.EntityHandlers.Create))
	mux.Handle("PUT /api/entities/{type}/{id}", protect(deps.EntityHandlers.Update))
	mux.Handle("DELETE /api/entities/{type}/{id}", protect(deps.EntityHandlers.Delete))

	mux.Handle("GET /api/users/{id}", protect(deps.UserHandlers.Profile))
	mux.Handle("GET /api/users/{id}/vehicles", protect(deps.UserHandlers.Vehicles))
	mux.Handle("GET /api/users/{id}/history", protect(deps.UserHandlers.History))
	mux.Handle("GET /api/users/{id}/total-spent", protect(deps.UserHandlers.TotalSpent))
	mux.Handle("GET /api/users/{id}/payment", protect(deps.UserHandlers.Payment))

	mux.Handle("POST /api/sessions", protect(deps.SessionHandlers.Create))

	return mux
}
