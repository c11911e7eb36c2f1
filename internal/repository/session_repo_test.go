package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"chargenet/internal/apperr"
	"chargenet/internal/models"
)

func newSessionMock(t *testing.T) (*SessionRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSessionRepository(db), mock
}

func sampleSession() *models.ChargingSession {
	start := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	return &models.ChargingSession{
		UserID:    3,
		VehicleID: 5,
		ChargerID: 7,
		StartTime: start,
		EndTime:   start.Add(45 * time.Minute),
		EnergyKWh: 12.0,
		Cost:      102.0,
	}
}

func TestCreateWithPreferenceCommits(t *testing.T) {
	repo, mock := newSessionMock(t)
	session := sampleSession()
	createdAt := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(session.VehicleID, session.UserID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`INSERT INTO charging_sessions`).
		WithArgs(session.UserID, session.VehicleID, session.ChargerID,
			session.StartTime, session.EndTime, session.EnergyKWh, session.Cost).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(101), createdAt))
	mock.ExpectExec(`INSERT INTO user_payments`).
		WithArgs(session.UserID, false, true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CreateWithPreference(context.Background(), session, models.PaymentOnline)
	require.NoError(t, err)
	require.Equal(t, int64(101), session.ID)
	require.Equal(t, createdAt, session.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithPreferenceCashFlags(t *testing.T) {
	repo, mock := newSessionMock(t)
	session := sampleSession()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`INSERT INTO charging_sessions`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(102), time.Now()))
	mock.ExpectExec(`INSERT INTO user_payments`).
		WithArgs(session.UserID, true, false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.CreateWithPreference(context.Background(), session, models.PaymentCash))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithPreferenceRejectsForeignVehicle(t *testing.T) {
	repo, mock := newSessionMock(t)
	session := sampleSession()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(session.VehicleID, session.UserID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	err := repo.CreateWithPreference(context.Background(), session, models.PaymentCash)
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	require.Zero(t, session.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithPreferenceRollsBackOnInsertFailure(t *testing.T) {
	repo, mock := newSessionMock(t)
	session := sampleSession()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`INSERT INTO charging_sessions`).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})
	mock.ExpectRollback()

	err := repo.CreateWithPreference(context.Background(), session, models.PaymentCash)
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryByUserLimited(t *testing.T) {
	repo, mock := newSessionMock(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "vehicle_id", "charger_id",
		"start_time", "end_time", "energy_kwh", "cost", "created_at",
	}).
		AddRow(int64(2), int64(3), int64(5), int64(7), now, now.Add(time.Hour), 10.0, 85.0, now).
		AddRow(int64(1), int64(3), int64(5), int64(7), now.Add(-24*time.Hour), now.Add(-23*time.Hour), 8.0, 68.0, now)
	mock.ExpectQuery(`FROM charging_sessions\s+WHERE user_id = \$1\s+ORDER BY start_time DESC\s+LIMIT \$2`).
		WithArgs(int64(3), 2).
		WillReturnRows(rows)

	sessions, err := repo.HistoryByUser(context.Background(), 3, 2)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	require.Equal(t, int64(2), sessions[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryByUserEmpty(t *testing.T) {
	repo, mock := newSessionMock(t)

	mock.ExpectQuery(`FROM charging_sessions`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "vehicle_id", "charger_id",
			"start_time", "end_time", "energy_kwh", "cost", "created_at",
		}))

	sessions, err := repo.HistoryByUser(context.Background(), 3, 0)
	require.NoError(t, err)
	require.NotNil(t, sessions)
	require.Empty(t, sessions)
}

func TestTotalSpent(t *testing.T) {
	repo, mock := newSessionMock(t)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(cost\), 0\)`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(153.5))

	total, err := repo.TotalSpent(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, 153.5, total)
}

func TestPaymentByUserMissing(t *testing.T) {
	repo, mock := newSessionMock(t)

	mock.ExpectQuery(`FROM user_payments`).
		WithArgs(int64(3)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.PaymentByUser(context.Background(), 3)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestPaymentByUser(t *testing.T) {
	repo, mock := newSessionMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM user_payments`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "cash", "online", "updated_at"}).
			AddRow(int64(1), int64(3), false, true, now))

	payment, err := repo.PaymentByUser(context.Background(), 3)
	require.NoError(t, err)
	require.True(t, payment.Online)
	require.False(t, payment.Cash)
}
