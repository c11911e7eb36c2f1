// Package client is the dashboard's API client: passwordless auth, eight
// view loaders and a small amount of state persisted across restarts (the
// session token and the locally chosen payment method per session).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/looplab/fsm"
)

// Auth states and events of the client session machine.
const (
	StateLoggedOut = "loggedOut"
	StateLoggedIn  = "loggedIn"

	eventLogin  = "login"
	eventLogout = "logout"
)

// ErrNotAuthenticated is returned by operations that need a signed-in user.
var ErrNotAuthenticated = errors.New("client: not signed in")

// APIError is a non-2xx response decoded from the {"error": ...} payload.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// persistedState is what survives a restart, stored as JSON in the state
// file. SessionPayments is a client-only cache of the method chosen at
// session creation; the server's preference row stays authoritative.
type persistedState struct {
	Token           string            `json:"token"`
	UserID          int64             `json:"user_id"`
	SessionPayments map[string]string `json:"session_payments"`
}

// Client talks to the ChargeNet API on behalf of one user.
type Client struct {
	baseURL   string
	http      *http.Client
	statePath string

	mu      sync.Mutex
	machine *fsm.FSM
	state   persistedState
}

// New builds a client. statePath may be empty to disable persistence; when
// the file holds a token from a previous run the client starts logged in.
func New(baseURL, statePath string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      httpClient,
		statePath: statePath,
		state:     persistedState{SessionPayments: map[string]string{}},
	}
	c.loadState()

	initial := StateLoggedOut
	if c.state.Token != "" {
		initial = StateLoggedIn
	}
	c.machine = fsm.NewFSM(
		initial,
		fsm.Events{
			{Name: eventLogin, Src: []string{StateLoggedOut}, Dst: StateLoggedIn},
			{Name: eventLogout, Src: []string{StateLoggedIn}, Dst: StateLoggedOut},
		},
		fsm.Callbacks{},
	)
	return c
}

// State returns the current auth state (loggedOut or loggedIn).
func (c *Client) State() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.Current()
}

// UserID returns the signed-in user id.
func (c *Client) UserID() (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.machine.Current() != StateLoggedIn {
		return 0, ErrNotAuthenticated
	}
	return c.state.UserID, nil
}

func (c *Client) loadState() {
	if c.statePath == "" {
		return
	}
	data, err := os.ReadFile(c.statePath)
	if err != nil {
		return
	}
	var loaded persistedState
	if err := json.Unmarshal(data, &loaded); err != nil {
		return
	}
	if loaded.SessionPayments == nil {
		loaded.SessionPayments = map[string]string{}
	}
	c.state = loaded
}

// saveState is called with c.mu held.
func (c *Client) saveState() {
	if c.statePath == "" {
		return
	}
	data, err := json.MarshalIndent(c.state, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(c.statePath, data, 0o600)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.Lock()
	token := c.state.Token
	c.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(respBody, &payload)
		if payload.Error == "" {
			payload.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: payload.Error}
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(respBody, out)
}

type authResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	User      *User  `json:"user"`
}

func (c *Client) signIn(resp authResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.machine.Current() != StateLoggedIn {
		if err := c.machine.Event(context.Background(), eventLogin); err != nil {
			return err
		}
	}
	c.state.Token = resp.Token
	c.state.UserID = resp.User.ID
	c.saveState()
	return nil
}

// Login signs in by email. An unknown email surfaces the server's 404
// without creating anything.
func (c *Client) Login(ctx context.Context, email string) (*User, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{"email": email}, &resp)
	if err != nil {
		return nil, err
	}
	if err := c.signIn(resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// SignupVehicle is the optional first vehicle created with an account.
type SignupVehicle struct {
	Model              string  `json:"model"`
	VehicleType        string  `json:"vehicle_type"`
	BatteryCapacityKWh float64 `json:"battery_capacity_kwh"`
}

// SignupInput carries the new account's fields.
type SignupInput struct {
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Phone       string         `json:"phone,omitempty"`
	Street      string         `json:"street,omitempty"`
	City        string         `json:"city,omitempty"`
	PinCode     string         `json:"pin_code,omitempty"`
	DateOfBirth string         `json:"date_of_birth,omitempty"`
	Vehicle     *SignupVehicle `json:"vehicle,omitempty"`
}

// Signup creates an account (and optional first vehicle) and signs in.
func (c *Client) Signup(ctx context.Context, in SignupInput) (*User, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", in, &resp); err != nil {
		return nil, err
	}
	if err := c.signIn(resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Logout revokes the token server-side and clears all local session state.
// Local state is cleared even when the revocation call fails.
func (c *Client) Logout(ctx context.Context) error {
	revokeErr := c.do(ctx, http.MethodPost, "/api/auth/logout", struct{}{}, nil)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.machine.Current() == StateLoggedIn {
		if err := c.machine.Event(context.Background(), eventLogout); err != nil {
			return err
		}
	}
	c.state = persistedState{SessionPayments: map[string]string{}}
	c.saveState()
	return revokeErr
}

func (c *Client) requireUser() (int64, error) {
	return c.UserID()
}

func (c *Client) userPath(suffix string) (string, error) {
	id, err := c.requireUser()
	if err != nil {
		return "", err
	}
	return "/api/users/" + strconv.FormatInt(id, 10) + suffix, nil
}

// PaymentMethodFor returns the locally cached payment method chosen when the
// session was created, if any.
func (c *Client) PaymentMethodFor(sessionID int64) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	method, ok := c.state.SessionPayments[strconv.FormatInt(sessionID, 10)]
	return method, ok
}

func (c *Client) rememberPayment(sessionID int64, method string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SessionPayments[strconv.FormatInt(sessionID, 10)] = method
	c.saveState()
}
