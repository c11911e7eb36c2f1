package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"chargenet/internal/http/middleware"
	"chargenet/internal/models"
	"chargenet/internal/service"
)

// VehicleLister lists vehicles owned by one user.
type VehicleLister interface {
	VehiclesByUser(ctx context.Context, userID int64) ([]models.Vehicle, error)
}

// UserHandlers serves the per-user views: vehicles, history, totals and
// payment preference. Every route is filtered server-side by the id in the
// path, which must match the authenticated user.
type UserHandlers struct {
	vehicles VehicleLister
	sessions *service.SessionsService
	auth     *service.AuthService
	logger   *zap.Logger
}

// NewUserHandlers returns handler struct.
func NewUserHandlers(vehicles VehicleLister, sessions *service.SessionsService, auth *service.AuthService, logger *zap.Logger) *UserHandlers {
	return &UserHandlers{vehicles: vehicles, sessions: sessions, auth: auth, logger: logger}
}

// requireSelf extracts the path user id and rejects requests for anyone but
// the token's subject. The store is still the authority; this keeps one
// user's rows out of another's views.
func (h *UserHandlers) requireSelf(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return 0, false
	}
	authedID, ok := middleware.UserIDFromContext(r.Context())
	if !ok || authedID != id {
		writeMessage(w, http.StatusUnauthorized, "token does not match requested user")
		return 0, false
	}
	return id, true
}

// Profile handles GET /api/users/{id}.
func (h *UserHandlers) Profile(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requireSelf(w, r)
	if !ok {
		return
	}
	user, err := h.auth.Profile(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Vehicles handles GET /api/users/{id}/vehicles.
func (h *UserHandlers) Vehicles(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requireSelf(w, r)
	if !ok {
		return
	}
	vehicles, err := h.vehicles.VehiclesByUser(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

// History handles GET /api/users/{id}/history.
func (h *UserHandlers) History(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requireSelf(w, r)
	if !ok {
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, err)
		return
	}
	sessions, err := h.sessions.History(r.Context(), id, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

// TotalSpent handles GET /api/users/{id}/total-spent.
func (h *UserHandlers) TotalSpent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requireSelf(w, r)
	if !ok {
		return
	}
	total, err := h.sessions.TotalSpent(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"total": total})
}

// Payment handles GET /api/users/{id}/payment.
func (h *UserHandlers) Payment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requireSelf(w, r)
	if !ok {
		return
	}
	payment, err := h.sessions.Payment(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}
