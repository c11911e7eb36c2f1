package client

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Navigator hands out one context per view activation and cancels the
// previous one, so fetches for a view the user already left stop instead of
// racing the new view's render.
type Navigator struct {
	mu     sync.Mutex
	cancel context.CancelFunc
}

// Activate cancels any in-flight view load and returns the context for the
// new one.
func (n *Navigator) Activate(parent context.Context) context.Context {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.cancel != nil {
		n.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	n.cancel = cancel
	return ctx
}

// Reset cancels the active view load, if any.
func (n *Navigator) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.cancel != nil {
		n.cancel()
		n.cancel = nil
	}
}

// DashboardView aggregates the signed-in user's headline numbers.
type DashboardView struct {
	TotalEnergyKWh float64
	TotalSpent     float64
	SessionCount   int
	VehicleModels  []string
	Recent         []Session
}

const recentSessionLimit = 6

// Dashboard loads history, vehicles and the total in parallel and folds
// them into the headline view.
func (c *Client) Dashboard(ctx context.Context) (*DashboardView, error) {
	historyPath, err := c.userPath("/history")
	if err != nil {
		return nil, err
	}
	vehiclesPath, _ := c.userPath("/vehicles")
	totalPath, _ := c.userPath("/total-spent")

	var (
		sessions []Session
		vehicles []Vehicle
		totals   struct {
			Total float64 `json:"total"`
		}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.do(gctx, http.MethodGet, historyPath, nil, &sessions) })
	g.Go(func() error { return c.do(gctx, http.MethodGet, vehiclesPath, nil, &vehicles) })
	g.Go(func() error { return c.do(gctx, http.MethodGet, totalPath, nil, &totals) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	view := &DashboardView{
		TotalSpent:   totals.Total,
		SessionCount: len(sessions),
	}
	for _, s := range sessions {
		view.TotalEnergyKWh += s.EnergyKWh
	}
	for _, v := range vehicles {
		view.VehicleModels = append(view.VehicleModels, v.Model)
	}
	// History arrives newest first; the recent table shows the head.
	if len(sessions) > recentSessionLimit {
		sessions = sessions[:recentSessionLimit]
	}
	view.Recent = sessions
	return view, nil
}

// Vehicles loads the signed-in user's vehicles.
func (c *Client) Vehicles(ctx context.Context) ([]Vehicle, error) {
	path, err := c.userPath("/vehicles")
	if err != nil {
		return nil, err
	}
	var vehicles []Vehicle
	if err := c.do(ctx, http.MethodGet, path, nil, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// UpdateVehicle applies a partial update to one of the user's vehicles.
func (c *Client) UpdateVehicle(ctx context.Context, vehicleID int64, fields map[string]any) error {
	if _, err := c.requireUser(); err != nil {
		return err
	}
	path := "/api/entities/vehicles/" + strconv.FormatInt(vehicleID, 10)
	return c.do(ctx, http.MethodPut, path, fields, nil)
}

// SessionsView is the sessions table plus the vehicle filter options.
type SessionsView struct {
	Vehicles []Vehicle
	Sessions []Session
}

// Sessions loads the user's session history, optionally filtered to one
// vehicle. vehicleID zero means all vehicles.
func (c *Client) Sessions(ctx context.Context, vehicleID int64) (*SessionsView, error) {
	historyPath, err := c.userPath("/history")
	if err != nil {
		return nil, err
	}
	vehiclesPath, _ := c.userPath("/vehicles")

	var (
		sessions []Session
		vehicles []Vehicle
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.do(gctx, http.MethodGet, historyPath, nil, &sessions) })
	g.Go(func() error { return c.do(gctx, http.MethodGet, vehiclesPath, nil, &vehicles) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	view := &SessionsView{Vehicles: vehicles}
	for _, s := range sessions {
		if vehicleID != 0 && s.VehicleID != vehicleID {
			continue
		}
		view.Sessions = append(view.Sessions, s)
	}
	return view, nil
}

// StationCard joins a station with its chargers and facility amenities.
type StationCard struct {
	Station  Station
	Chargers []Charger
	Facility *Facility
}

// Stations loads stations, chargers and facilities in parallel and joins
// them per station.
func (c *Client) Stations(ctx context.Context) ([]StationCard, error) {
	if _, err := c.requireUser(); err != nil {
		return nil, err
	}

	var (
		stations   []Station
		chargers   []Charger
		facilities []Facility
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.do(gctx, http.MethodGet, "/api/entities/charging_stations", nil, &stations) })
	g.Go(func() error { return c.do(gctx, http.MethodGet, "/api/entities/chargers", nil, &chargers) })
	g.Go(func() error { return c.do(gctx, http.MethodGet, "/api/entities/station_facilities", nil, &facilities) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cards := make([]StationCard, 0, len(stations))
	for _, st := range stations {
		card := StationCard{Station: st}
		for _, ch := range chargers {
			if ch.StationID == st.ID {
				card.Chargers = append(card.Chargers, ch)
			}
		}
		for i := range facilities {
			if facilities[i].StationID == st.ID {
				card.Facility = &facilities[i]
				break
			}
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// PaymentRow pairs a session with the locally cached method used for it.
type PaymentRow struct {
	Session Session
	Method  string
}

// PaymentsView is the payment summary screen.
type PaymentsView struct {
	Preference *Payment
	TotalSpent float64
	Rows       []PaymentRow
}

// Payments loads the preference, total and per-session breakdown. A user
// with no preference row yet gets a nil Preference, not an error.
func (c *Client) Payments(ctx context.Context) (*PaymentsView, error) {
	paymentPath, err := c.userPath("/payment")
	if err != nil {
		return nil, err
	}
	totalPath, _ := c.userPath("/total-spent")
	historyPath, _ := c.userPath("/history")

	view := &PaymentsView{}
	var (
		sessions []Session
		totals   struct {
			Total float64 `json:"total"`
		}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var pref Payment
		err := c.do(gctx, http.MethodGet, paymentPath, nil, &pref)
		if err != nil {
			var apiErr *APIError
			if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
				return nil
			}
			return err
		}
		view.Preference = &pref
		return nil
	})
	g.Go(func() error { return c.do(gctx, http.MethodGet, totalPath, nil, &totals) })
	g.Go(func() error { return c.do(gctx, http.MethodGet, historyPath, nil, &sessions) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	view.TotalSpent = totals.Total
	for _, s := range sessions {
		method, _ := c.PaymentMethodFor(s.ID)
		view.Rows = append(view.Rows, PaymentRow{Session: s, Method: method})
	}
	return view, nil
}

// MaintenanceRow joins a maintenance record with its service contact.
type MaintenanceRow struct {
	Record  MaintenanceRecord
	Contact string
}

// Maintenance loads maintenance records with their service contacts.
func (c *Client) Maintenance(ctx context.Context) ([]MaintenanceRow, error) {
	if _, err := c.requireUser(); err != nil {
		return nil, err
	}

	var (
		records  []MaintenanceRecord
		services []ServiceRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.do(gctx, http.MethodGet, "/api/entities/maintenance", nil, &records) })
	g.Go(func() error { return c.do(gctx, http.MethodGet, "/api/entities/services", nil, &services) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := make([]MaintenanceRow, 0, len(records))
	for _, m := range records {
		row := MaintenanceRow{Record: m}
		for _, svc := range services {
			if svc.MaintenanceID == m.ID {
				row.Contact = svc.ContactNumber
				break
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Facilities loads all station facility rows.
func (c *Client) Facilities(ctx context.Context) ([]Facility, error) {
	if _, err := c.requireUser(); err != nil {
		return nil, err
	}
	var facilities []Facility
	if err := c.do(ctx, http.MethodGet, "/api/entities/station_facilities", nil, &facilities); err != nil {
		return nil, err
	}
	return facilities, nil
}

// Profile loads the signed-in user's row.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	path, err := c.userPath("")
	if err != nil {
		return nil, err
	}
	var user User
	if err := c.do(ctx, http.MethodGet, path, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies a partial update to the user's own row.
func (c *Client) UpdateProfile(ctx context.Context, fields map[string]any) error {
	id, err := c.requireUser()
	if err != nil {
		return err
	}
	path := "/api/entities/users/" + strconv.FormatInt(id, 10)
	return c.do(ctx, http.MethodPut, path, fields, nil)
}

// StartSessionInput is the new-session form. There is no cost field; the
// server prices the energy.
type StartSessionInput struct {
	VehicleID     int64     `json:"vehicle_id"`
	ChargerID     int64     `json:"charger_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	EnergyKWh     float64   `json:"energy_kwh"`
	PaymentMethod string    `json:"payment_method"`
}

// StartSession creates a charging session and caches the chosen payment
// method locally for the payments view.
func (c *Client) StartSession(ctx context.Context, in StartSessionInput) (int64, error) {
	if _, err := c.requireUser(); err != nil {
		return 0, err
	}

	var resp struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/sessions", in, &resp); err != nil {
		return 0, err
	}
	if in.PaymentMethod != "" {
		c.rememberPayment(resp.ID, in.PaymentMethod)
	}
	return resp.ID, nil
}
