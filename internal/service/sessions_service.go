package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"chargenet/internal/apperr"
	"chargenet/internal/models"
)

// SessionStore is the storage contract for charging sessions.
type SessionStore interface {
	CreateWithPreference(ctx context.Context, session *models.ChargingSession, method string) error
	HistoryByUser(ctx context.Context, userID int64, limit int) ([]models.ChargingSession, error)
	TotalSpent(ctx context.Context, userID int64) (float64, error)
	PaymentByUser(ctx context.Context, userID int64) (*models.UserPayment, error)
}

// SessionsService creates sessions with a server-computed cost and serves
// the per-user derived reads.
type SessionsService struct {
	store  SessionStore
	tariff *Tariff
	logger *zap.Logger
}

// NewSessionsService builds SessionsService.
func NewSessionsService(store SessionStore, tariff *Tariff, logger *zap.Logger) *SessionsService {
	return &SessionsService{store: store, tariff: tariff, logger: logger}
}

// StartSessionInput carries the client-supplied session fields. Cost is
// deliberately absent: it is computed from EnergyKWh and the tariff.
type StartSessionInput struct {
	UserID        int64
	VehicleID     int64
	ChargerID     int64
	StartTime     time.Time
	EndTime       time.Time
	EnergyKWh     float64
	PaymentMethod string
}

// StartSession validates input, prices the energy and persists the session
// together with the payment-preference upsert.
func (s *SessionsService) StartSession(ctx context.Context, in StartSessionInput) (*models.ChargingSession, error) {
	if in.VehicleID <= 0 || in.ChargerID <= 0 {
		return nil, apperr.New(apperr.KindValidation, "vehicle_id and charger_id are required")
	}
	if in.EnergyKWh <= 0 {
		return nil, apperr.New(apperr.KindValidation, "energy_kwh must be positive")
	}
	if in.StartTime.IsZero() || in.EndTime.IsZero() {
		return nil, apperr.New(apperr.KindValidation, "start_time and end_time are required")
	}
	if in.EndTime.Before(in.StartTime) {
		return nil, apperr.New(apperr.KindValidation, "end_time precedes start_time")
	}

	method := in.PaymentMethod
	if method == "" {
		method = models.PaymentCash
	}
	if method != models.PaymentCash && method != models.PaymentOnline {
		return nil, apperr.Newf(apperr.KindValidation, "payment_method must be %q or %q", models.PaymentCash, models.PaymentOnline)
	}

	session := &models.ChargingSession{
		UserID:    in.UserID,
		VehicleID: in.VehicleID,
		ChargerID: in.ChargerID,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		EnergyKWh: in.EnergyKWh,
		Cost:      s.tariff.Cost(in.EnergyKWh),
	}

	if err := s.store.CreateWithPreference(ctx, session, method); err != nil {
		return nil, err
	}

	s.logger.Info("charging session created",
		zap.Int64("session_id", session.ID),
		zap.Int64("user_id", session.UserID),
		zap.Float64("energy_kwh", session.EnergyKWh),
		zap.Float64("cost", session.Cost),
	)
	return session, nil
}

// History returns the user's sessions, newest first.
func (s *SessionsService) History(ctx context.Context, userID int64, limit int) ([]models.ChargingSession, error) {
	return s.store.HistoryByUser(ctx, userID, limit)
}

// TotalSpent returns the store-computed sum of session costs.
func (s *SessionsService) TotalSpent(ctx context.Context, userID int64) (float64, error) {
	return s.store.TotalSpent(ctx, userID)
}

// Payment returns the user's payment preference.
func (s *SessionsService) Payment(ctx context.Context, userID int64) (*models.UserPayment, error) {
	return s.store.PaymentByUser(ctx, userID)
}
