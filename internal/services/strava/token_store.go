package strava

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// TokenState holds the OAuth tokens persisted between runs. ExpiresAt is the
// absolute expiry instant of the access token as reported by the token
// endpoint.
type TokenState struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// TokenStore abstracts persistence for Strava OAuth state.
type TokenStore interface {
	Load() (TokenState, error)
	Save(TokenState) error
}

// FileTokenStore writes token state to a JSON file on disk.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore builds a FileTokenStore rooted at the provided path.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Load reads token state from disk. A missing file resolves to an empty state.
func (s *FileTokenStore) Load() (TokenState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return TokenState{}, nil
		}
		return TokenState{}, fmt.Errorf("read strava auth state: %w", err)
	}

	var state TokenState
	if err := json.Unmarshal(data, &state); err != nil {
		return TokenState{}, fmt.Errorf("decode strava auth state: %w", err)
	}
	return state, nil
}

// Save persists token state to disk with restricted permissions.
func (s *FileTokenStore) Save(state TokenState) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("ensure auth state directory: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode strava auth state: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write strava auth state: %w", err)
	}
	return nil
}
