package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"chargenet/internal/http/middleware"
	"chargenet/internal/service"
)

// SessionHandlers serves session creation.
type SessionHandlers struct {
	sessions *service.SessionsService
	logger   *zap.Logger
}

// NewSessionHandlers returns handler struct.
func NewSessionHandlers(sessions *service.SessionsService, logger *zap.Logger) *SessionHandlers {
	return &SessionHandlers{sessions: sessions, logger: logger}
}

// Create handles POST /api/sessions. The request has no cost field; cost is
// computed from energy_kwh by the tariff and anything else a client sends
// is ignored by the decoder.
func (h *SessionHandlers) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		VehicleID     int64     `json:"vehicle_id"`
		ChargerID     int64     `json:"charger_id"`
		StartTime     time.Time `json:"start_time"`
		EndTime       time.Time `json:"end_time"`
		EnergyKWh     float64   `json:"energy_kwh"`
		PaymentMethod string    `json:"payment_method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	session, err := h.sessions.StartSession(r.Context(), service.StartSessionInput{
		UserID:        userID,
		VehicleID:     req.VehicleID,
		ChargerID:     req.ChargerID,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		EnergyKWh:     req.EnergyKWh,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": session.ID})
}
