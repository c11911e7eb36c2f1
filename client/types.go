package client

import "time"

// User mirrors the API's user payload.
type User struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Street      string     `json:"street"`
	City        string     `json:"city"`
	PinCode     string     `json:"pin_code"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Vehicle mirrors the API's vehicle payload.
type Vehicle struct {
	ID                 int64   `json:"id"`
	UserID             int64   `json:"user_id"`
	Model              string  `json:"model"`
	VehicleType        string  `json:"vehicle_type"`
	BatteryCapacityKWh float64 `json:"battery_capacity_kwh"`
}

// Session mirrors the API's charging-session payload.
type Session struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	VehicleID int64     `json:"vehicle_id"`
	ChargerID int64     `json:"charger_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	EnergyKWh float64   `json:"energy_kwh"`
	Cost      float64   `json:"cost"`
	CreatedAt time.Time `json:"created_at"`
}

// Payment mirrors the API's payment-preference payload.
type Payment struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Cash      bool      `json:"cash"`
	Online    bool      `json:"online"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Station mirrors the API's charging-station payload.
type Station struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
}

// Charger mirrors the API's charger payload.
type Charger struct {
	ID            int64   `json:"id"`
	StationID     int64   `json:"station_id"`
	ChargerType   string  `json:"charger_type"`
	PowerRatingKW float64 `json:"power_rating_kw"`
}

// Facility mirrors the API's station-facility payload.
type Facility struct {
	ID        int64 `json:"id"`
	StationID int64 `json:"station_id"`
	Parking   bool  `json:"parking"`
	Cafe      bool  `json:"cafe"`
	Restroom  bool  `json:"restroom"`
	Wifi      bool  `json:"wifi"`
}

// MaintenanceRecord mirrors the API's maintenance payload.
type MaintenanceRecord struct {
	ID            int64   `json:"id"`
	ChargerID     int64   `json:"charger_id"`
	DurationHours float64 `json:"duration_hours"`
	Cost          float64 `json:"cost"`
	PerformedOn   string  `json:"performed_on"`
}

// ServiceRecord mirrors the API's services payload.
type ServiceRecord struct {
	ID            int64  `json:"id"`
	MaintenanceID int64  `json:"maintenance_id"`
	ContactNumber string `json:"contact_number"`
}
