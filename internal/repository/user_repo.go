package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"chargenet/internal/apperr"
	"chargenet/internal/models"
)

// UserRepository handles typed access to users and their vehicles.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository returns repository instance.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, email, phone, street, city, pin_code, date_of_birth, created_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var (
		user models.User
		dob  sql.NullTime
	)
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.Street,
		&user.City,
		&user.PinCode,
		&dob,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	if dob.Valid {
		user.DateOfBirth = &dob.Time
	}
	return &user, nil
}

// GetByEmail fetches a user by login email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
		LIMIT 1
	`
	row := r.db.QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(email)))
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.KindNotFound, "no user found with that email")
		}
		return nil, apperr.FromStore(err)
	}
	return user, nil
}

// GetByID fetches a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, query, id)
	user, err := scanUser(row)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return user, nil
}

// CreateWithVehicle inserts a user and, when vehicle is non-nil, their first
// vehicle in the same transaction. A duplicate email surfaces as a conflict
// from the unique index, never as a silent second account.
func (r *UserRepository) CreateWithVehicle(ctx context.Context, user *models.User, vehicle *models.Vehicle) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		const insertUser = `
			INSERT INTO users (name, email, phone, street, city, pin_code, date_of_birth)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at
		`
		var dob sql.NullTime
		if user.DateOfBirth != nil {
			dob = sql.NullTime{Time: *user.DateOfBirth, Valid: true}
		}
		err := tx.QueryRowContext(ctx, insertUser,
			user.Name,
			user.Email,
			user.Phone,
			user.Street,
			user.City,
			user.PinCode,
			dob,
		).Scan(&user.ID, &user.CreatedAt)
		if err != nil {
			return apperr.FromStore(err)
		}

		if vehicle == nil {
			return nil
		}

		const insertVehicle = `
			INSERT INTO vehicles (user_id, model, vehicle_type, battery_capacity_kwh)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`
		vehicle.UserID = user.ID
		err = tx.QueryRowContext(ctx, insertVehicle,
			vehicle.UserID,
			vehicle.Model,
			vehicle.VehicleType,
			vehicle.BatteryCapacityKWh,
		).Scan(&vehicle.ID)
		if err != nil {
			return apperr.FromStore(err)
		}
		return nil
	})
}

// VehiclesByUser lists vehicles owned by the given user. The filter runs in
// the store, so one user's listing can never include another's rows.
func (r *UserRepository) VehiclesByUser(ctx context.Context, userID int64) ([]models.Vehicle, error) {
	const query = `
		SELECT id, user_id, model, vehicle_type, battery_capacity_kwh
		FROM vehicles
		WHERE user_id = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	defer rows.Close()

	vehicles := make([]models.Vehicle, 0)
	for rows.Next() {
		var v models.Vehicle
		if err := rows.Scan(&v.ID, &v.UserID, &v.Model, &v.VehicleType, &v.BatteryCapacityKWh); err != nil {
			return nil, apperr.FromStore(err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.FromStore(err)
	}
	return vehicles, nil
}
