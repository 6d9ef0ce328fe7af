package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_Envelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"data":[1,2]}`))
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"statusCode":404,"message":"booking not found","error":"Not Found"}`))
		case "/gone":
			w.WriteHeader(http.StatusNoContent)
		case "/text":
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream down"))
		case "/bare":
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()

	env, err := c.Do(ctx, http.MethodGet, "/ok", nil)
	require.NoError(t, err)
	assert.True(t, env.IsOk)
	assert.Equal(t, 200, env.StatusCode)
	assert.Equal(t, map[string]any{"data": []any{1.0, 2.0}}, env.Data)

	env, err = c.Do(ctx, http.MethodGet, "/missing", nil)
	require.NoError(t, err)
	assert.False(t, env.IsOk)
	assert.Equal(t, 404, env.StatusCode)
	assert.Equal(t, "Not Found", env.Data.(map[string]any)["error"])
	assert.Equal(t, "booking not found", env.Message("Something went wrong"))

	env, err = c.Do(ctx, http.MethodDelete, "/gone", nil)
	require.NoError(t, err)
	assert.True(t, env.IsOk)
	assert.Equal(t, "", env.Data)
	assert.ErrorIs(t, env.Decode(&struct{}{}), ErrNoJSON)

	env, err = c.Do(ctx, http.MethodGet, "/text", nil)
	require.NoError(t, err)
	assert.False(t, env.IsOk)
	assert.Equal(t, "upstream down", env.Data)
	assert.Equal(t, "upstream down", env.Message("Something went wrong"))

	env, err = c.Do(ctx, http.MethodGet, "/bare", nil)
	require.NoError(t, err)
	assert.Equal(t, "Something went wrong", env.Message("Something went wrong"))
}

func TestDo_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).Do(context.Background(), http.MethodGet, "/v1/services", nil)
	assert.Error(t, err)
}

func TestLogin_StoresTokenAndPicksBearer(t *testing.T) {
	var gotAuth []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/carer/login":
			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "cora@example.com", body["email"])
			_, _ = w.Write([]byte(`{"token":"carer-tok","session":3,"user":{"id":"car_1","role":"carer"}}`))
		case "/auth/admin/login":
			_, _ = w.Write([]byte(`{"token":"admin-tok","session":1,"user":{"id":"usr_1","role":"admin"}}`))
		default:
			gotAuth = append(gotAuth, r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"groups":[]}`))
		}
	}))
	defer srv.Close()

	store := NewMemoryStore()
	c := New(srv.URL, WithStore(store))
	ctx := context.Background()

	env, err := c.Login(ctx, SessionCarer, "cora@example.com", "pw")
	require.NoError(t, err)
	require.True(t, env.IsOk)
	_, err = c.Login(ctx, SessionAdmin, "ada@example.com", "pw")
	require.NoError(t, err)

	state, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, SessionAdmin, state.Session)
	assert.Equal(t, "carer-tok", state.Tokens[SessionCarer])

	_, err = c.Roster(ctx)
	require.NoError(t, err)
	require.NoError(t, c.UseSession(ctx, SessionCarer))
	_, err = c.Roster(ctx)
	require.NoError(t, err)
	require.NoError(t, c.Logout(ctx))
	_, err = c.Roster(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"Bearer admin-tok", "Bearer carer-tok", ""}, gotAuth)
}

func TestLogin_FailureKeepsState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"statusCode":401,"message":"invalid credentials","error":"Unauthorized"}`))
	}))
	defer srv.Close()

	store := NewMemoryStore()
	c := New(srv.URL, WithStore(store))

	env, err := c.Login(context.Background(), SessionClient, "x@example.com", "bad")
	require.NoError(t, err)
	assert.False(t, env.IsOk)
	assert.Equal(t, "invalid credentials", env.Message("Login failed"))

	state, _ := store.Load(context.Background())
	assert.Equal(t, SessionNone, state.Session)
	assert.Empty(t, state.Tokens)

	_, err = c.Login(context.Background(), Session(9), "x@example.com", "pw")
	assert.Error(t, err)
}

func TestCreateBooking_SendsIdempotencyKey(t *testing.T) {
	var keys []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys = append(keys, r.Header.Get("Idempotency-Key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"bkg_1","status":"pending"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	req := BookingRequest{ServiceID: "svc_1", Date: "2026-10-15", StartTime: "09:30"}

	env, err := c.CreateBooking(context.Background(), req, "retry-1")
	require.NoError(t, err)
	assert.True(t, env.IsOk)
	assert.Equal(t, http.StatusCreated, env.StatusCode)

	var b struct {
		ID string `json:"id"`
	}
	require.NoError(t, env.Decode(&b))
	assert.Equal(t, "bkg_1", b.ID)

	_, err = c.CreateBooking(context.Background(), req, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"retry-1", ""}, keys)
}
