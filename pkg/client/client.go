// Package client is a Go client for the care-services API.
//
// Every call returns an Envelope; callers branch on IsOk and show
// Envelope.Message on failure. There are no retries.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultTimeout = 30 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
	store   TokenStore
	log     zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }

func WithStore(s TokenStore) Option { return func(c *Client) { c.store = s } }

func WithLogger(l zerolog.Logger) Option { return func(c *Client) { c.log = l } }

// New returns a client for baseURL. Without WithStore tokens live in memory.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		store:   NewMemoryStore(),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RequestOption adjusts a single request.
type RequestOption func(*http.Request)

// WithHeader sets a header. An explicit Authorization header replaces the
// stored bearer token.
func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) { r.Header.Set(key, value) }
}

// Do sends a request and wraps the response in an Envelope. body, when not
// nil, is sent as JSON. A non-nil error means the request never produced a
// response.
func (c *Client) Do(ctx context.Context, method, path string, body any, opts ...RequestOption) (Envelope, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return Envelope{}, fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return Envelope{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	state, err := c.store.Load(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("token store unavailable; sending without token")
	} else if token := state.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, opt := range opts {
		opt(req)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return Envelope{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error().Err(err).Str("method", method).Str("path", path).Msg("read response failed")
		return Envelope{}, err
	}
	return envelopeFrom(resp.StatusCode, data), nil
}

func envelopeFrom(status int, body []byte) Envelope {
	env := Envelope{
		IsOk:       status >= 200 && status < 300,
		StatusCode: status,
	}
	trimmed := bytes.TrimSpace(body)
	if status == http.StatusNoContent || len(trimmed) == 0 || !json.Valid(trimmed) {
		env.Data = string(body)
		return env
	}
	var data any
	if err := json.Unmarshal(trimmed, &data); err != nil {
		env.Data = string(body)
		return env
	}
	env.Data = data
	env.raw = json.RawMessage(trimmed)
	return env
}
