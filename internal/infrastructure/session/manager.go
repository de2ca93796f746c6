package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"

	"github.com/roadmap-saas/roadmap-hub/internal/domain/shared"
	"github.com/roadmap-saas/roadmap-hub/internal/domain/user"
	"github.com/roadmap-saas/roadmap-hub/internal/infrastructure/api"
)

// AuthBackend is the slice of the backend client the manager needs.
type AuthBackend interface {
	// Login authenticates and returns the session token and user.
	Login(ctx context.Context, username, password string) (*api.LoginResult, error)

	// Register creates a student account and returns an established session.
	Register(ctx context.Context, username, password string) (*api.LoginResult, error)

	// Verify re-validates the installed token.
	Verify(ctx context.Context) (*user.User, error)

	// SetToken installs the token for authenticated requests.
	SetToken(token string)

	// ClearToken removes the installed token.
	ClearToken()
}

// Credentials are the login inputs, validated before any network call.
type Credentials struct {
	Username string `validate:"required,min=3,max=50"`
	Password string `validate:"required,min=6"`
}

// Registration is the self-service signup input. Confirm must repeat
// Password exactly; a mismatch is caught before any network call.
type Registration struct {
	Username string `validate:"required,min=3,max=50"`
	Password string `validate:"required,min=6"`
	Confirm  string `validate:"required,eqfield=Password"`
}

// Manager holds the authenticated identity and role for the whole process.
// It hydrates from the durable store on construction, persists on login,
// and clears on logout. It is injected into other components rather than
// accessed as an ambient singleton.
type Manager struct {
	store    *Store
	backend  AuthBackend
	logger   *slog.Logger
	validate *validator.Validate

	mu      sync.RWMutex
	current *user.User
	token   string
}

// NewManager creates a manager and restores any persisted session.
func NewManager(store *Store, backend AuthBackend, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		store:    store,
		backend:  backend,
		logger:   logger,
		validate: validator.New(),
	}
	if err := m.restore(); err != nil {
		return nil, err
	}
	return m, nil
}

// restore hydrates the in-memory session from the durable store.
func (m *Manager) restore() error {
	state, err := m.store.Load()
	if err != nil {
		return err
	}
	if state == nil {
		return nil
	}

	u := state.User.ToUser()

	m.mu.Lock()
	m.current = &u
	m.token = state.Token
	m.mu.Unlock()

	m.backend.SetToken(state.Token)
	m.logger.Debug("session restored", "username", u.Username, "role", u.Role)
	return nil
}

// Login authenticates with the backend and persists the session. Input is
// validated locally first: invalid credentials shape never reaches the
// network.
func (m *Manager) Login(ctx context.Context, username, password string) (*user.User, error) {
	creds := Credentials{Username: username, Password: password}
	if err := m.validate.Struct(creds); err != nil {
		return nil, shared.WrapError("session", "Login", shared.ErrValidation,
			"invalid credentials format", err)
	}

	result, err := m.backend.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	u, err := m.establish(result)
	if err != nil {
		return nil, err
	}

	m.logger.Info("logged in", "username", u.Username, "role", u.Role)
	return u, nil
}

// Register creates a student account and persists the resulting session
// exactly as Login does. Username is trimmed first; a malformed username or
// password, or a confirmation mismatch, never reaches the network.
func (m *Manager) Register(ctx context.Context, username, password, confirm string) (*user.User, error) {
	reg := Registration{
		Username: strings.TrimSpace(username),
		Password: password,
		Confirm:  confirm,
	}
	if err := m.validate.Struct(reg); err != nil {
		return nil, shared.WrapError("session", "Register", shared.ErrValidation,
			"invalid registration input", err)
	}

	result, err := m.backend.Register(ctx, reg.Username, password)
	if err != nil {
		return nil, err
	}

	u, err := m.establish(result)
	if err != nil {
		return nil, err
	}

	m.logger.Info("account registered", "username", u.Username, "role", u.Role)
	return u, nil
}

// establish persists a freshly issued session and installs it in memory.
func (m *Manager) establish(result *api.LoginResult) (*user.User, error) {
	state := State{
		Token: result.Token,
		User:  storedUserFrom(result.User),
	}
	if err := m.store.Save(state); err != nil {
		// The backend session exists but could not be persisted; fail rather
		// than leave a session that will not survive restart.
		m.backend.ClearToken()
		return nil, err
	}

	u := result.User
	m.mu.Lock()
	m.current = &u
	m.token = result.Token
	m.mu.Unlock()
	return &u, nil
}

// Logout clears the session in memory, on disk, and on the backend client.
func (m *Manager) Logout() error {
	m.mu.Lock()
	m.current = nil
	m.token = ""
	m.mu.Unlock()

	m.backend.ClearToken()

	if err := m.store.Clear(); err != nil {
		return err
	}
	m.logger.Info("logged out")
	return nil
}

// Verify re-validates the stored token against the backend. On any failure
// the session is cleared and false is returned; no error escapes to the
// caller. A locally expired JWT short-circuits the round trip.
func (m *Manager) Verify(ctx context.Context) bool {
	m.mu.RLock()
	token := m.token
	m.mu.RUnlock()

	if token == "" {
		return false
	}

	if tokenExpired(token) {
		m.logger.Debug("session token expired locally")
		m.clear()
		return false
	}

	u, err := m.backend.Verify(ctx)
	if err != nil {
		m.logger.Warn("session verification failed", "error", err)
		m.clear()
		return false
	}

	// Refresh the cached profile: the backend is authoritative.
	m.mu.Lock()
	m.current = u
	m.mu.Unlock()
	return true
}

// clear drops the session everywhere, ignoring storage errors: the caller
// only needs the unauthenticated outcome.
func (m *Manager) clear() {
	m.mu.Lock()
	m.current = nil
	m.token = ""
	m.mu.Unlock()

	m.backend.ClearToken()
	if err := m.store.Clear(); err != nil {
		m.logger.Warn("failed to clear persisted session", "error", err)
	}
}

// IsAuthenticated reports whether a session is held locally. Advisory only.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token != ""
}

// CurrentUser returns a copy of the locally held user, or nil.
func (m *Manager) CurrentUser() *user.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil
	}
	u := *m.current
	return &u
}

// Token returns the locally held session token.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// IsAdmin reports whether the cached role is admin. This derived value is
// advisory: it is not re-verified per access, and server-side checks remain
// authoritative.
func (m *Manager) IsAdmin() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.IsAdmin()
}

// tokenExpired peeks at the token's exp claim without verifying the
// signature (the backend owns the signing key). Opaque non-JWT tokens are
// never considered locally expired.
func tokenExpired(token string) bool {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}
