package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Session is the active-portal discriminator shared with the server.
type Session int

const (
	SessionNone   Session = 0
	SessionAdmin  Session = 1
	SessionClient Session = 2
	SessionCarer  Session = 3
)

// AuthKey is the key the auth state is persisted under.
const AuthKey = "persist:v1:auth"

// AuthState is the only client state that survives a restart.
type AuthState struct {
	Tokens  map[Session]string `json:"tokens"`
	Session Session            `json:"session"`
}

// Token returns the bearer token of the active session.
func (s AuthState) Token() string {
	return s.Tokens[s.Session]
}

func (s AuthState) clone() AuthState {
	out := AuthState{Session: s.Session, Tokens: make(map[Session]string, len(s.Tokens))}
	for k, v := range s.Tokens {
		out.Tokens[k] = v
	}
	return out
}

// TokenStore keeps the auth state between calls.
type TokenStore interface {
	Load(ctx context.Context) (AuthState, error)
	Save(ctx context.Context, state AuthState) error
}

// MemoryStore is a TokenStore that forgets everything on exit.
type MemoryStore struct {
	mu    sync.Mutex
	state AuthState
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Load(context.Context) (AuthState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone(), nil
}

func (m *MemoryStore) Save(_ context.Context, state AuthState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state.clone()
	return nil
}

// FileStore persists the auth state in a JSON key/value file under AuthKey.
// Other keys in the file are left untouched.
type FileStore struct {
	Path string

	mu sync.Mutex
}

func NewFileStore(path string) *FileStore { return &FileStore{Path: path} }

func (f *FileStore) Load(context.Context) (AuthState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return AuthState{}, err
	}
	var state AuthState
	if raw, ok := doc[AuthKey]; ok {
		if err := json.Unmarshal(raw, &state); err != nil {
			return AuthState{}, fmt.Errorf("decode %s: %w", AuthKey, err)
		}
	}
	return state.clone(), nil
}

func (f *FileStore) Save(_ context.Context, state AuthState) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode %s: %w", AuthKey, err)
	}
	doc[AuthKey] = raw

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return os.Rename(tmp, f.Path)
}

func (f *FileStore) read() (map[string]json.RawMessage, error) {
	doc := map[string]json.RawMessage{}
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, os.MkdirAll(filepath.Dir(f.Path), 0o700)
	}
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}
	return doc, nil
}
