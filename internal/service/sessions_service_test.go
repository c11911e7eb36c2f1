package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"chargenet/internal/apperr"
	"chargenet/internal/models"
)

type fakeSessionStore struct {
	created    *models.ChargingSession
	method     string
	history    []models.ChargingSession
	total      float64
	preference *models.UserPayment
	err        error
}

func (f *fakeSessionStore) CreateWithPreference(_ context.Context, session *models.ChargingSession, method string) error {
	if f.err != nil {
		return f.err
	}
	session.ID = 101
	session.CreatedAt = time.Now().UTC()
	f.created = session
	f.method = method
	return nil
}

func (f *fakeSessionStore) HistoryByUser(_ context.Context, _ int64, limit int) ([]models.ChargingSession, error) {
	if limit > 0 && limit < len(f.history) {
		return f.history[:limit], nil
	}
	return f.history, nil
}

func (f *fakeSessionStore) TotalSpent(_ context.Context, _ int64) (float64, error) {
	return f.total, nil
}

func (f *fakeSessionStore) PaymentByUser(_ context.Context, _ int64) (*models.UserPayment, error) {
	if f.preference == nil {
		return nil, apperr.New(apperr.KindNotFound, "no payment preference recorded")
	}
	return f.preference, nil
}

func newSessionsService(store *fakeSessionStore, rate float64) *SessionsService {
	tariff, _ := NewTariff(rate)
	return NewSessionsService(store, tariff, zap.NewNop())
}

func validStartInput() StartSessionInput {
	start := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	return StartSessionInput{
		UserID:        3,
		VehicleID:     5,
		ChargerID:     7,
		StartTime:     start,
		EndTime:       start.Add(45 * time.Minute),
		EnergyKWh:     12.0,
		PaymentMethod: models.PaymentOnline,
	}
}

func TestStartSessionComputesCost(t *testing.T) {
	store := &fakeSessionStore{}
	svc := newSessionsService(store, 8.5)

	session, err := svc.StartSession(context.Background(), validStartInput())
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if session.Cost != 12.0*8.5 {
		t.Fatalf("cost = %v, want %v", session.Cost, 12.0*8.5)
	}
	if session.ID != 101 {
		t.Fatalf("id = %d, want the store-assigned id", session.ID)
	}
	if store.method != models.PaymentOnline {
		t.Fatalf("method = %q, want %q", store.method, models.PaymentOnline)
	}
}

func TestStartSessionDefaultsToCash(t *testing.T) {
	store := &fakeSessionStore{}
	svc := newSessionsService(store, 8.5)

	in := validStartInput()
	in.PaymentMethod = ""
	if _, err := svc.StartSession(context.Background(), in); err != nil {
		t.Fatal(err)
	}
	if store.method != models.PaymentCash {
		t.Fatalf("method = %q, want cash default", store.method)
	}
}

func TestStartSessionValidation(t *testing.T) {
	svc := newSessionsService(&fakeSessionStore{}, 8.5)

	cases := map[string]func(*StartSessionInput){
		"missing vehicle": func(in *StartSessionInput) { in.VehicleID = 0 },
		"missing charger": func(in *StartSessionInput) { in.ChargerID = 0 },
		"zero energy":     func(in *StartSessionInput) { in.EnergyKWh = 0 },
		"negative energy": func(in *StartSessionInput) { in.EnergyKWh = -4 },
		"no start time":   func(in *StartSessionInput) { in.StartTime = time.Time{} },
		"no end time":     func(in *StartSessionInput) { in.EndTime = time.Time{} },
		"inverted times": func(in *StartSessionInput) {
			in.EndTime = in.StartTime.Add(-time.Minute)
		},
		"bad method": func(in *StartSessionInput) { in.PaymentMethod = "card" },
	}
	for name, mutate := range cases {
		in := validStartInput()
		mutate(&in)
		_, err := svc.StartSession(context.Background(), in)
		if apperr.KindOf(err) != apperr.KindValidation {
			t.Fatalf("%s: kind = %v, want validation", name, apperr.KindOf(err))
		}
	}
}

func TestStartSessionPropagatesStoreError(t *testing.T) {
	store := &fakeSessionStore{err: apperr.New(apperr.KindValidation, "vehicle does not belong to user")}
	svc := newSessionsService(store, 8.5)

	_, err := svc.StartSession(context.Background(), validStartInput())
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("kind = %v, want validation", apperr.KindOf(err))
	}
}

func TestHistoryPassesLimitThrough(t *testing.T) {
	store := &fakeSessionStore{history: make([]models.ChargingSession, 10)}
	svc := newSessionsService(store, 8.5)

	sessions, err := svc.History(context.Background(), 3, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 4 {
		t.Fatalf("len = %d, want 4", len(sessions))
	}
}

func TestPaymentNotFound(t *testing.T) {
	svc := newSessionsService(&fakeSessionStore{}, 8.5)

	_, err := svc.Payment(context.Background(), 3)
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("kind = %v, want not-found", apperr.KindOf(err))
	}
}
