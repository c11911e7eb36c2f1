package models

// Vehicle belongs to exactly one user.
type Vehicle struct {
	ID                 int64   `db:"id" json:"id"`
	UserID             int64   `db:"user_id" json:"user_id"`
	Model              string  `db:"model" json:"model"`
	VehicleType        string  `db:"vehicle_type" json:"vehicle_type"`
	BatteryCapacityKWh float64 `db:"battery_capacity_kwh" json:"battery_capacity_kwh"`
}
