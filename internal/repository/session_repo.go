package repository

import (
	"context"
	"database/sql"
	"errors"

	"chargenet/internal/apperr"
	"chargenet/internal/models"
)

// SessionRepository persists charging sessions and the per-user payment
// preference they update.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository returns repository instance.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// CreateWithPreference verifies vehicle ownership, inserts the session and
// upserts the owner's payment preference, all in one transaction. The
// session's Cost must already be computed by the caller.
func (r *SessionRepository) CreateWithPreference(ctx context.Context, session *models.ChargingSession, method string) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		const ownership = `
			SELECT EXISTS (
				SELECT 1 FROM vehicles WHERE id = $1 AND user_id = $2
			)
		`
		var owned bool
		if err := tx.QueryRowContext(ctx, ownership, session.VehicleID, session.UserID).Scan(&owned); err != nil {
			return apperr.FromStore(err)
		}
		if !owned {
			return apperr.New(apperr.KindValidation, "vehicle does not belong to user")
		}

		const insertSession = `
			INSERT INTO charging_sessions (user_id, vehicle_id, charger_id, start_time, end_time, energy_kwh, cost)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at
		`
		err := tx.QueryRowContext(ctx, insertSession,
			session.UserID,
			session.VehicleID,
			session.ChargerID,
			session.StartTime,
			session.EndTime,
			session.EnergyKWh,
			session.Cost,
		).Scan(&session.ID, &session.CreatedAt)
		if err != nil {
			return apperr.FromStore(err)
		}

		const upsertPreference = `
			INSERT INTO user_payments (user_id, cash, online, updated_at)
			VALUES ($1, $2, $3, NOW())
			ON CONFLICT (user_id) DO UPDATE SET
				cash = EXCLUDED.cash,
				online = EXCLUDED.online,
				updated_at = NOW()
		`
		cash := method == models.PaymentCash
		if _, err := tx.ExecContext(ctx, upsertPreference, session.UserID, cash, !cash); err != nil {
			return apperr.FromStore(err)
		}
		return nil
	})
}

const sessionColumns = `id, user_id, vehicle_id, charger_id, start_time, end_time, energy_kwh, cost, created_at`

// HistoryByUser returns the user's sessions ordered by start time, newest
// first. A non-positive limit returns the full history.
func (r *SessionRepository) HistoryByUser(ctx context.Context, userID int64, limit int) ([]models.ChargingSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM charging_sessions
		WHERE user_id = $1
		ORDER BY start_time DESC
	`
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	defer rows.Close()

	sessions := make([]models.ChargingSession, 0)
	for rows.Next() {
		var s models.ChargingSession
		if err := rows.Scan(
			&s.ID,
			&s.UserID,
			&s.VehicleID,
			&s.ChargerID,
			&s.StartTime,
			&s.EndTime,
			&s.EnergyKWh,
			&s.Cost,
			&s.CreatedAt,
		); err != nil {
			return nil, apperr.FromStore(err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.FromStore(err)
	}
	return sessions, nil
}

// TotalSpent sums session cost for the user inside the store. A user with no
// sessions totals zero.
func (r *SessionRepository) TotalSpent(ctx context.Context, userID int64) (float64, error) {
	const query = `
		SELECT COALESCE(SUM(cost), 0)
		FROM charging_sessions
		WHERE user_id = $1
	`
	var total float64
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&total); err != nil {
		return 0, apperr.FromStore(err)
	}
	return total, nil
}

// PaymentByUser returns the user's payment preference row.
func (r *SessionRepository) PaymentByUser(ctx context.Context, userID int64) (*models.UserPayment, error) {
	const query = `
		SELECT id, user_id, cash, online, updated_at
		FROM user_payments
		WHERE user_id = $1
	`
	var p models.UserPayment
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&p.ID, &p.UserID, &p.Cash, &p.Online, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.KindNotFound, "no payment preference recorded")
		}
		return nil, apperr.FromStore(err)
	}
	return &p, nil
}
