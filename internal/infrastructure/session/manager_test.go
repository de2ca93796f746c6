package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadmap-saas/roadmap-hub/internal/domain/shared"
	"github.com/roadmap-saas/roadmap-hub/internal/domain/user"
	"github.com/roadmap-saas/roadmap-hub/internal/infrastructure/api"
)

// fakeBackend records calls and returns scripted results.
type fakeBackend struct {
	loginResult    *api.LoginResult
	loginErr       error
	registerResult *api.LoginResult
	registerErr    error
	verifyUser     *user.User
	verifyErr      error

	loginCalls    int
	registerCalls int
	verifyCalls   int
	token         string
	registeredAs  string
}

func (f *fakeBackend) Login(ctx context.Context, username, password string) (*api.LoginResult, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResult, nil
}

func (f *fakeBackend) Register(ctx context.Context, username, password string) (*api.LoginResult, error) {
	f.registerCalls++
	f.registeredAs = username
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.registerResult, nil
}

func (f *fakeBackend) Verify(ctx context.Context) (*user.User, error) {
	f.verifyCalls++
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.verifyUser, nil
}

func (f *fakeBackend) SetToken(token string) { f.token = token }
func (f *fakeBackend) ClearToken()           { f.token = "" }

func newTestManager(t *testing.T, dir string, backend *fakeBackend) *Manager {
	t.Helper()
	store, err := NewStore(dir)
	require.NoError(t, err)
	m, err := NewManager(store, backend, nil)
	require.NoError(t, err)
	return m
}

func alice() user.User {
	return user.User{ID: "u1", Username: "alice", Role: user.RoleStudent, CreatedAt: time.Now().UTC()}
}

func TestLogin_ValidationBeforeNetwork(t *testing.T) {
	backend := &fakeBackend{}
	m := newTestManager(t, t.TempDir(), backend)

	_, err := m.Login(context.Background(), "", "secret123")
	assert.True(t, shared.IsValidation(err))

	_, err = m.Login(context.Background(), "alice", "short")
	assert.True(t, shared.IsValidation(err))

	assert.Zero(t, backend.loginCalls, "validation failures must never reach the backend")
}

func TestLogin_PersistsAndRestores(t *testing.T) {
	dir := t.TempDir()
	backend := &fakeBackend{
		loginResult: &api.LoginResult{Token: "tok-1", User: alice()},
	}

	m := newTestManager(t, dir, backend)
	u, err := m.Login(context.Background(), "alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.True(t, m.IsAuthenticated())
	assert.False(t, m.IsAdmin())

	// Session file exists.
	_, err = os.Stat(filepath.Join(dir, stateFileName))
	require.NoError(t, err)

	// A fresh process restores the session and installs the token.
	backend2 := &fakeBackend{}
	m2 := newTestManager(t, dir, backend2)
	assert.True(t, m2.IsAuthenticated())
	assert.Equal(t, "tok-1", m2.Token())
	assert.Equal(t, "tok-1", backend2.token)
	require.NotNil(t, m2.CurrentUser())
	assert.Equal(t, "alice", m2.CurrentUser().Username)
}

func TestRegister_ValidationBeforeNetwork(t *testing.T) {
	backend := &fakeBackend{}
	m := newTestManager(t, t.TempDir(), backend)

	tests := []struct {
		name                         string
		username, password, confirm string
	}{
		{"confirmation mismatch", "alice", "secret123", "secret124"},
		{"missing confirmation", "alice", "secret123", ""},
		{"short username", "al", "secret123", "secret123"},
		{"short password", "alice", "short", "short"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Register(context.Background(), tt.username, tt.password, tt.confirm)
			assert.True(t, shared.IsValidation(err))
		})
	}

	assert.Zero(t, backend.registerCalls, "validation failures must never reach the backend")
}

func TestRegister_PersistsSessionAndTrimsUsername(t *testing.T) {
	dir := t.TempDir()
	backend := &fakeBackend{
		registerResult: &api.LoginResult{Token: "tok-new", User: alice()},
	}
	m := newTestManager(t, dir, backend)

	u, err := m.Register(context.Background(), "  alice  ", "secret123", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "alice", backend.registeredAs)
	assert.True(t, m.IsAuthenticated())

	// The new session survives a restart like a logged-in one.
	m2 := newTestManager(t, dir, &fakeBackend{})
	assert.True(t, m2.IsAuthenticated())
	assert.Equal(t, "tok-new", m2.Token())
}

func TestRegister_BackendErrorPassesThrough(t *testing.T) {
	backend := &fakeBackend{registerErr: shared.ErrAlreadyExists}
	m := newTestManager(t, t.TempDir(), backend)

	_, err := m.Register(context.Background(), "alice", "secret123", "secret123")
	assert.True(t, errors.Is(err, shared.ErrAlreadyExists))
	assert.False(t, m.IsAuthenticated())
}

func TestLogout_ClearsEverything(t *testing.T) {
	dir := t.TempDir()
	backend := &fakeBackend{
		loginResult: &api.LoginResult{Token: "tok-1", User: alice()},
	}
	m := newTestManager(t, dir, backend)

	_, err := m.Login(context.Background(), "alice", "secret123")
	require.NoError(t, err)
	require.NoError(t, m.Logout())

	assert.False(t, m.IsAuthenticated())
	assert.Nil(t, m.CurrentUser())
	assert.Empty(t, backend.token)

	_, err = os.Stat(filepath.Join(dir, stateFileName))
	assert.True(t, os.IsNotExist(err))

	// Fresh process starts unauthenticated.
	m2 := newTestManager(t, dir, &fakeBackend{})
	assert.False(t, m2.IsAuthenticated())
}

func TestVerify_FailureClearsSession(t *testing.T) {
	dir := t.TempDir()
	backend := &fakeBackend{
		loginResult: &api.LoginResult{Token: "tok-1", User: alice()},
		verifyErr:   shared.ErrTokenExpired,
	}
	m := newTestManager(t, dir, backend)

	_, err := m.Login(context.Background(), "alice", "secret123")
	require.NoError(t, err)

	assert.False(t, m.Verify(context.Background()))
	assert.False(t, m.IsAuthenticated())

	_, err = os.Stat(filepath.Join(dir, stateFileName))
	assert.True(t, os.IsNotExist(err))
}

func TestVerify_SuccessRefreshesProfile(t *testing.T) {
	promoted := alice()
	promoted.Role = user.RoleAdmin

	backend := &fakeBackend{
		loginResult: &api.LoginResult{Token: "tok-1", User: alice()},
		verifyUser:  &promoted,
	}
	m := newTestManager(t, t.TempDir(), backend)

	_, err := m.Login(context.Background(), "alice", "secret123")
	require.NoError(t, err)
	assert.False(t, m.IsAdmin())

	assert.True(t, m.Verify(context.Background()))
	assert.True(t, m.IsAdmin())
}

func TestVerify_NoSession(t *testing.T) {
	backend := &fakeBackend{}
	m := newTestManager(t, t.TempDir(), backend)

	assert.False(t, m.Verify(context.Background()))
	assert.Zero(t, backend.verifyCalls)
}

func TestVerify_LocallyExpiredTokenSkipsBackend(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	signed, err := expired.SignedString([]byte("test-key"))
	require.NoError(t, err)

	dir := t.TempDir()
	backend := &fakeBackend{
		loginResult: &api.LoginResult{Token: signed, User: alice()},
	}
	m := newTestManager(t, dir, backend)
	_, err = m.Login(context.Background(), "alice", "secret123")
	require.NoError(t, err)

	assert.False(t, m.Verify(context.Background()))
	assert.Zero(t, backend.verifyCalls, "expired token must not hit the backend")
	assert.False(t, m.IsAuthenticated())
}

func TestVerify_OpaqueTokenGoesToBackend(t *testing.T) {
	u := alice()
	backend := &fakeBackend{
		loginResult: &api.LoginResult{Token: "opaque-token", User: u},
		verifyUser:  &u,
	}
	m := newTestManager(t, t.TempDir(), backend)

	_, err := m.Login(context.Background(), "alice", "secret123")
	require.NoError(t, err)

	assert.True(t, m.Verify(context.Background()))
	assert.Equal(t, 1, backend.verifyCalls)
}

func TestStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, stateFileName), []byte("{not json"), 0o600))

	_, err = store.Load()
	assert.Error(t, err)
}

func TestLogin_BackendErrorPassesThrough(t *testing.T) {
	backend := &fakeBackend{loginErr: shared.ErrBadCredentials}
	m := newTestManager(t, t.TempDir(), backend)

	_, err := m.Login(context.Background(), "alice", "wrongpass")
	assert.True(t, errors.Is(err, shared.ErrUnauthorized))
	assert.False(t, m.IsAuthenticated())
}
