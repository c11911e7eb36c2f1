package models

import "time"

// ChargingSession is a completed charge. Cost is derived from EnergyKWh by
// the tariff; it is never taken from a client.
type ChargingSession struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	VehicleID int64     `db:"vehicle_id" json:"vehicle_id"`
	ChargerID int64     `db:"charger_id" json:"charger_id"`
	StartTime time.Time `db:"start_time" json:"start_time"`
	EndTime   time.Time `db:"end_time" json:"end_time"`
	EnergyKWh float64   `db:"energy_kwh" json:"energy_kwh"`
	Cost      float64   `db:"cost" json:"cost"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
