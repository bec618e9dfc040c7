// Package session persists the login record and serves its token to the
// HTTP client on every request.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/oauth2"
)

// ErrNoSession is returned when no session record has been stored.
var ErrNoSession = errors.New("not logged in")

// Record is the persisted session, {"token": "..."}.
type Record struct {
	Token string `json:"token"`
}

// Store reads and writes the session record at a fixed path.
type Store struct {
	path string
}

// NewStore returns a Store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the session record.
func (s *Store) Load() (Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Record{}, ErrNoSession
		}
		return Record{}, fmt.Errorf("failed to read session: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("invalid session file: %w", err)
	}
	if strings.TrimSpace(rec.Token) == "" {
		return Record{}, ErrNoSession
	}
	return rec, nil
}

// Save writes the session record with mode 0600, creating the parent
// directory if needed.
func (s *Store) Save(rec Record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// Clear removes the session record. Clearing a missing record is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// TokenSource returns an oauth2.TokenSource that re-reads the record on each
// call, so a login performed after the client was built is picked up by the
// next request. With no session the token is empty and the request still
// goes out with a bare "Bearer" scheme.
func (s *Store) TokenSource() oauth2.TokenSource {
	return storeTokenSource{store: s}
}

type storeTokenSource struct {
	store *Store
}

func (ts storeTokenSource) Token() (*oauth2.Token, error) {
	rec, err := ts.store.Load()
	if err != nil && !errors.Is(err, ErrNoSession) {
		return nil, err
	}
	return &oauth2.Token{AccessToken: rec.Token, TokenType: "Bearer"}, nil
}

// userIDClaims are the claim names backends commonly use for the user id.
var userIDClaims = []string{"id", "_id", "userId", "user_id", "sub"}

// UserID extracts the user id from the session token's claims. The token is
// not verified; the backend remains the authority.
func (r Record) UserID() (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(r.Token, claims); err != nil {
		return "", fmt.Errorf("session token is not a JWT: %w", err)
	}
	for _, name := range userIDClaims {
		if v, ok := claims[name]; ok {
			switch id := v.(type) {
			case string:
				if id != "" {
					return id, nil
				}
			case float64:
				return fmt.Sprintf("%.0f", id), nil
			}
		}
	}
	return "", errors.New("session token carries no user id")
}
