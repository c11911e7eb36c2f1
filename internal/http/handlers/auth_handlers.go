package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"chargenet/internal/apperr"
	"chargenet/internal/http/middleware"
	"chargenet/internal/models"
	"chargenet/internal/service"
)

// AuthHandlers serves signup, login and logout.
type AuthHandlers struct {
	auth   *service.AuthService
	logger *zap.Logger
}

// NewAuthHandlers returns handler struct.
func NewAuthHandlers(auth *service.AuthService, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{auth: auth, logger: logger}
}

type sessionResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	User      *models.User `json:"user"`
}

type signupVehicleRequest struct {
	Model              string  `json:"model"`
	VehicleType        string  `json:"vehicle_type"`
	BatteryCapacityKWh float64 `json:"battery_capacity_kwh"`
}

type signupRequest struct {
	Name        string                `json:"name"`
	Email       string                `json:"email"`
	Phone       string                `json:"phone"`
	Street      string                `json:"street"`
	City        string                `json:"city"`
	PinCode     string                `json:"pin_code"`
	DateOfBirth string                `json:"date_of_birth"`
	Vehicle     *signupVehicleRequest `json:"vehicle"`
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	in := service.SignupInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Street:  req.Street,
		City:    req.City,
		PinCode: req.PinCode,
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			writeError(w, apperr.New(apperr.KindValidation, "date_of_birth must be YYYY-MM-DD"))
			return
		}
		in.DateOfBirth = &dob
	}
	if req.Vehicle != nil {
		in.Vehicle = &service.SignupVehicle{
			Model:              req.Vehicle.Model,
			VehicleType:        req.Vehicle.VehicleType,
			BatteryCapacityKWh: req.Vehicle.BatteryCapacityKWh,
		}
	}

	token, user, err := h.auth.Signup(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{Token: token, TokenType: "Bearer", User: user})
}

// Login handles POST /api/auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Token: token, TokenType: "Bearer", User: user})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.auth.Logout(r.Context(), claims); err != nil {
		h.logger.Error("logout failed", zap.Error(err))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
