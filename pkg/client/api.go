package client

import (
	"context"
	"fmt"
	"net/http"
)

var loginPaths = map[Session]string{
	SessionAdmin:  "/auth/admin/login",
	SessionClient: "/auth/client/login",
	SessionCarer:  "/auth/carer/login",
}

type Principal struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type LoginResult struct {
	Token   string    `json:"token"`
	Session Session   `json:"session"`
	User    Principal `json:"user"`
}

// Login signs in to one portal. On success the token is stored and that
// portal becomes the active session.
func (c *Client) Login(ctx context.Context, session Session, email, password string) (Envelope, error) {
	path, ok := loginPaths[session]
	if !ok {
		return Envelope{}, fmt.Errorf("client: unknown session %d", session)
	}

	env, err := c.Do(ctx, http.MethodPost, path, map[string]string{"email": email, "password": password})
	if err != nil || !env.IsOk {
		return env, err
	}

	var res LoginResult
	if err := env.Decode(&res); err != nil {
		return env, fmt.Errorf("decode login: %w", err)
	}
	state, err := c.store.Load(ctx)
	if err != nil {
		return env, err
	}
	if state.Tokens == nil {
		state.Tokens = map[Session]string{}
	}
	state.Tokens[session] = res.Token
	state.Session = session
	return env, c.store.Save(ctx, state)
}

// Logout forgets the active session's token.
func (c *Client) Logout(ctx context.Context) error {
	state, err := c.store.Load(ctx)
	if err != nil {
		return err
	}
	delete(state.Tokens, state.Session)
	state.Session = SessionNone
	return c.store.Save(ctx, state)
}

// UseSession switches the active portal without signing in again.
func (c *Client) UseSession(ctx context.Context, session Session) error {
	state, err := c.store.Load(ctx)
	if err != nil {
		return err
	}
	state.Session = session
	return c.store.Save(ctx, state)
}

func (c *Client) ListServices(ctx context.Context) (Envelope, error) {
	return c.Do(ctx, http.MethodGet, "/v1/services", nil)
}

// Roster returns the signed-in carer's bookings grouped by week.
func (c *Client) Roster(ctx context.Context) (Envelope, error) {
	return c.Do(ctx, http.MethodGet, "/v1/carer/roster", nil)
}

// MyBookings returns the signed-in client's bookings grouped by week.
func (c *Client) MyBookings(ctx context.Context) (Envelope, error) {
	return c.Do(ctx, http.MethodGet, "/v1/client/bookings", nil)
}

type BookingRequest struct {
	ServiceID string `json:"service_id"`
	Date      string `json:"date,omitempty"`
	StartTime string `json:"start_time,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// CreateBooking books a service as the signed-in client. Reusing
// idempotencyKey on a retry returns the original booking.
func (c *Client) CreateBooking(ctx context.Context, req BookingRequest, idempotencyKey string) (Envelope, error) {
	var opts []RequestOption
	if idempotencyKey != "" {
		opts = append(opts, WithHeader("Idempotency-Key", idempotencyKey))
	}
	return c.Do(ctx, http.MethodPost, "/v1/client/bookings", req, opts...)
}
