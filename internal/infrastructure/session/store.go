// Package session implements the authenticated session: a durable local
// store for the token and user profile, and the manager that gates every
// other component on authentication state.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/roadmap-saas/roadmap-hub/internal/domain/user"
)

// stateFileName is the session file inside the state directory.
const stateFileName = "session.json"

// State is the persisted session: token and user profile, written atomically
// on login and cleared atomically on logout.
type State struct {
	// Token is the backend session token.
	Token string `json:"token"`

	// User is the profile returned on login.
	User StoredUser `json:"user"`

	// SavedAt is when the state was written.
	SavedAt time.Time `json:"saved_at"`
}

// StoredUser is the on-disk user profile.
type StoredUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ToUser converts the stored profile into the domain entity.
func (s StoredUser) ToUser() user.User {
	role, err := user.ParseRole(s.Role)
	if err != nil {
		role = user.RoleStudent
	}
	return user.User{
		ID:        s.ID,
		Username:  s.Username,
		Role:      role,
		CreatedAt: s.CreatedAt,
	}
}

// storedUserFrom converts a domain user into its on-disk form.
func storedUserFrom(u user.User) StoredUser {
	return StoredUser{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt,
	}
}

// Store persists session state in a single JSON file under the state
// directory. Writes go through a temp file plus rename so a crash never
// leaves a half-written session behind.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("session store: state directory is empty")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("session store: create state dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// path returns the session file path.
func (s *Store) path() string {
	return filepath.Join(s.dir, stateFileName)
}

// Load reads the persisted session. A missing file yields (nil, nil): the
// process simply starts unauthenticated.
func (s *Store) Load() (*State, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("session store: read: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("session store: parse: %w", err)
	}
	if state.Token == "" {
		return nil, nil
	}
	return &state, nil
}

// Save writes the session atomically.
func (s *Store) Save(state State) error {
	state.SavedAt = time.Now().UTC()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("session store: marshal: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, stateFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("session store: create temp: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("session store: write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("session store: close temp: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("session store: chmod temp: %w", err)
	}
	if err := os.Rename(tmpName, s.path()); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("session store: rename: %w", err)
	}
	return nil
}

// Clear removes the persisted session. Clearing an absent session is a
// no-op.
func (s *Store) Clear() error {
	if err := os.Remove(s.path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session store: clear: %w", err)
	}
	return nil
}
