package client

import (
	"encoding/json"
	"errors"
	"strings"
)

// Envelope is what every call returns. IsOk is true exactly for 2xx
// responses. On failure Data is the server's error body as parsed; a
// response without a JSON body leaves the text in Data as a string.
type Envelope struct {
	IsOk       bool `json:"isOk"`
	Data       any  `json:"data"`
	StatusCode int  `json:"statusCode"`

	raw json.RawMessage
}

// ErrNoJSON is returned by Decode when the response body was not JSON.
var ErrNoJSON = errors.New("client: response has no JSON body")

// Decode unmarshals the JSON body into v.
func (e Envelope) Decode(v any) error {
	if len(e.raw) == 0 {
		return ErrNoJSON
	}
	return json.Unmarshal(e.raw, v)
}

// Message returns the server's message for a failed call, or fallback when
// the server sent none. It returns "" for a successful call.
func (e Envelope) Message(fallback string) string {
	if e.IsOk {
		return ""
	}
	switch d := e.Data.(type) {
	case map[string]any:
		if msg, ok := d["message"].(string); ok && strings.TrimSpace(msg) != "" {
			return msg
		}
	case string:
		if s := strings.TrimSpace(d); s != "" {
			return s
		}
	}
	return fallback
}
