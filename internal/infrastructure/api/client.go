package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/roadmap-saas/roadmap-hub/internal/domain/progress"
	"github.com/roadmap-saas/roadmap-hub/internal/domain/roadmap"
	"github.com/roadmap-saas/roadmap-hub/internal/domain/shared"
	"github.com/roadmap-saas/roadmap-hub/internal/domain/user"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// ClientConfig contains configuration for the backend client.
type ClientConfig struct {
	// BaseURL is the backend API base URL.
	BaseURL string

	// Timeout is the HTTP request timeout.
	Timeout time.Duration

	// Logger for structured logging.
	Logger *slog.Logger

	// Debug enables request-level debug logging.
	Debug bool
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig(baseURL string) ClientConfig {
	return ClientConfig{
		BaseURL: baseURL,
		Timeout: 30 * time.Second,
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// CLIENT
// ══════════════════════════════════════════════════════════════════════════════

// Client is the Roadmap SaaS backend client. A failed call reports failure
// once and stops: there is no automatic retry or backoff at this layer.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
	logger     *slog.Logger
	mapper     *Mapper

	// Session token attached to authenticated requests
	token   string
	tokenMu sync.RWMutex
}

// NewClient creates a new backend client.
func NewClient(config ClientConfig) *Client {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: config.Logger,
		mapper: NewMapper(),
	}
}

// SetToken installs the session token used for authenticated requests.
func (c *Client) SetToken(token string) {
	c.tokenMu.Lock()
	c.token = token
	c.tokenMu.Unlock()
}

// ClearToken removes the session token.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// ══════════════════════════════════════════════════════════════════════════════
// AUTH OPERATIONS
// ══════════════════════════════════════════════════════════════════════════════

// LoginResult contains the session token and user returned on login.
type LoginResult struct {
	Token string
	User  user.User
}

// Login authenticates with username and password. On success the returned
// token is installed on the client for subsequent requests.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var resp LoginResponseDTO
	body := loginRequestDTO{Username: username, Password: password}
	if err := c.doRequest(ctx, http.MethodPost, "/auth/login", body, &resp, false); err != nil {
		if shared.IsAuth(err) {
			return nil, shared.WrapError("session", "Login", shared.ErrUnauthorized,
				"invalid username or password", err)
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	u, err := c.mapper.UserFromDTO(&resp.User)
	if err != nil {
		return nil, fmt.Errorf("login: map user: %w", err)
	}

	c.SetToken(resp.Token)
	return &LoginResult{Token: resp.Token, User: *u}, nil
}

// Register creates a student account. The backend logs the new account in
// immediately; the returned token is installed on the client as with Login.
func (c *Client) Register(ctx context.Context, username, password string) (*LoginResult, error) {
	var resp LoginResponseDTO
	body := registerRequestDTO{Username: username, Password: password}
	if err := c.doRequest(ctx, http.MethodPost, "/auth/register", body, &resp, false); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.WrapError("session", "Register", shared.ErrAlreadyExists,
				"username is already taken", err)
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	u, err := c.mapper.UserFromDTO(&resp.User)
	if err != nil {
		return nil, fmt.Errorf("register: map user: %w", err)
	}

	c.SetToken(resp.Token)
	return &LoginResult{Token: resp.Token, User: *u}, nil
}

// Verify re-validates the installed token against the backend and returns
// the current user.
func (c *Client) Verify(ctx context.Context) (*user.User, error) {
	var resp VerifyResponseDTO
	if err := c.doRequest(ctx, http.MethodGet, "/auth/verify", nil, &resp, true); err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}
	return c.mapper.UserFromDTO(&resp.User)
}

// ══════════════════════════════════════════════════════════════════════════════
// ROADMAP OPERATIONS
// ══════════════════════════════════════════════════════════════════════════════

// ListRoadmaps fetches the roadmaps visible to the caller. The backend scopes
// the query: students receive only roadmaps they own.
func (c *Client) ListRoadmaps(ctx context.Context) ([]roadmap.Roadmap, error) {
	var dtos []RoadmapDTO
	if err := c.doRequest(ctx, http.MethodGet, "/roadmaps", nil, &dtos, true); err != nil {
		return nil, fmt.Errorf("list roadmaps: %w", err)
	}
	return c.mapper.RoadmapsFromDTO(dtos), nil
}

// ListAllRoadmaps fetches every roadmap in the system with the owner
// embedded per record. Admin scope; the backend rejects other callers.
func (c *Client) ListAllRoadmaps(ctx context.Context) ([]OwnedRoadmap, error) {
	var dtos []RoadmapDTO
	if err := c.doRequest(ctx, http.MethodGet, "/roadmaps/getall", nil, &dtos, true); err != nil {
		return nil, fmt.Errorf("list all roadmaps: %w", err)
	}

	owned := make([]OwnedRoadmap, 0, len(dtos))
	for i := range dtos {
		o, err := c.mapper.OwnedRoadmapFromDTO(&dtos[i])
		if err != nil {
			continue
		}
		owned = append(owned, *o)
	}
	return owned, nil
}

// GetRoadmap fetches a single roadmap by ID.
func (c *Client) GetRoadmap(ctx context.Context, id string) (*roadmap.Roadmap, error) {
	path := "/roadmaps/" + url.PathEscape(id)

	var dto RoadmapDTO
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &dto, true); err != nil {
		return nil, fmt.Errorf("get roadmap %s: %w", id, err)
	}
	return c.mapper.RoadmapFromDTO(&dto)
}

// CreateRoadmapRequest carries the fields for roadmap creation.
type CreateRoadmapRequest struct {
	Title       string
	Description string
	IsPublic    bool
	ShareToken  string
}

// CreateRoadmap creates a roadmap owned by the caller.
func (c *Client) CreateRoadmap(ctx context.Context, req CreateRoadmapRequest) (*roadmap.Roadmap, error) {
	body := createRoadmapDTO{
		Title:       req.Title,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		SharedURL:   req.ShareToken,
	}

	var dto RoadmapDTO
	if err := c.doRequest(ctx, http.MethodPost, "/roadmaps", body, &dto, true); err != nil {
		return nil, fmt.Errorf("create roadmap: %w", err)
	}
	return c.mapper.RoadmapFromDTO(&dto)
}

// UpdateRoadmapRequest carries the full replacement state for a roadmap.
type UpdateRoadmapRequest struct {
	Title       string
	Description string
	IsPublic    bool
	ShareToken  string
}

// UpdateRoadmap replaces the mutable fields of a roadmap.
func (c *Client) UpdateRoadmap(ctx context.Context, id string, req UpdateRoadmapRequest) (*roadmap.Roadmap, error) {
	path := "/roadmaps/" + url.PathEscape(id)
	body := updateRoadmapDTO{
		Title:       req.Title,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		SharedURL:   req.ShareToken,
	}

	var dto RoadmapDTO
	if err := c.doRequest(ctx, http.MethodPut, path, body, &dto, true); err != nil {
		return nil, fmt.Errorf("update roadmap %s: %w", id, err)
	}
	return c.mapper.RoadmapFromDTO(&dto)
}

// DeleteRoadmap deletes a roadmap. The backend enforces owner-or-admin.
func (c *Client) DeleteRoadmap(ctx context.Context, id string) error {
	path := "/roadmaps/" + url.PathEscape(id)
	if err := c.doRequest(ctx, http.MethodDelete, path, nil, nil, true); err != nil {
		return fmt.Errorf("delete roadmap %s: %w", id, err)
	}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// MODULE OPERATIONS
// ══════════════════════════════════════════════════════════════════════════════

// ListModules fetches the modules of a roadmap, ascending by order.
func (c *Client) ListModules(ctx context.Context, roadmapID string) ([]roadmap.Module, error) {
	path := "/modules/roadmap/" + url.PathEscape(roadmapID)

	var dtos []ModuleDTO
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &dtos, true); err != nil {
		return nil, fmt.Errorf("list modules of %s: %w", roadmapID, err)
	}
	return c.mapper.ModulesFromDTO(dtos), nil
}

// CreateModuleRequest carries the fields for module creation.
type CreateModuleRequest struct {
	RoadmapID   string
	Title       string
	Description string
	Content     string
	Order       int
}

// CreateModule creates a module attached to a roadmap.
func (c *Client) CreateModule(ctx context.Context, req CreateModuleRequest) (*roadmap.Module, error) {
	body := createModuleDTO{
		RoadmapID:   req.RoadmapID,
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Order:       req.Order,
	}

	var dto ModuleDTO
	if err := c.doRequest(ctx, http.MethodPost, "/modules", body, &dto, true); err != nil {
		return nil, fmt.Errorf("create module: %w", err)
	}
	return c.mapper.ModuleFromDTO(&dto)
}

// UpdateModuleOrder persists a module's new order. This is the vehicle for
// renumbering after a removal: every shifted sibling gets one call so that
// all future readers observe the corrected contiguous sequence.
func (c *Client) UpdateModuleOrder(ctx context.Context, moduleID string, order int) (*roadmap.Module, error) {
	path := "/modules/" + url.PathEscape(moduleID)
	body := updateModuleOrderDTO{Order: order}

	var dto ModuleDTO
	if err := c.doRequest(ctx, http.MethodPut, path, body, &dto, true); err != nil {
		return nil, fmt.Errorf("update module %s order: %w", moduleID, err)
	}
	return c.mapper.ModuleFromDTO(&dto)
}

// DeleteModule deletes a module.
func (c *Client) DeleteModule(ctx context.Context, moduleID string) error {
	path := "/modules/" + url.PathEscape(moduleID)
	if err := c.doRequest(ctx, http.MethodDelete, path, nil, nil, true); err != nil {
		return fmt.Errorf("delete module %s: %w", moduleID, err)
	}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// PROGRESS OPERATIONS
// ══════════════════════════════════════════════════════════════════════════════

// ListProgress fetches the caller's progress records for a roadmap.
func (c *Client) ListProgress(ctx context.Context, roadmapID string) ([]progress.Progress, error) {
	path := "/progress/roadmap/" + url.PathEscape(roadmapID)

	var dtos []ProgressDTO
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &dtos, true); err != nil {
		return nil, fmt.Errorf("list progress of %s: %w", roadmapID, err)
	}
	return c.mapper.ProgressListFromDTO(dtos), nil
}

// UpsertProgress writes the completion flag for a module. The backend keeps
// at most one record per (user, module) pair.
func (c *Client) UpsertProgress(ctx context.Context, moduleID string, completed bool) (*progress.Progress, error) {
	body := upsertProgressDTO{ModuleID: moduleID, Completed: completed}

	var dto ProgressDTO
	if err := c.doRequest(ctx, http.MethodPost, "/progress", body, &dto, true); err != nil {
		return nil, fmt.Errorf("upsert progress for %s: %w", moduleID, err)
	}
	return c.mapper.ProgressFromDTO(&dto)
}

// ══════════════════════════════════════════════════════════════════════════════
// SHARING OPERATIONS
// ══════════════════════════════════════════════════════════════════════════════

// ResolveShared fetches the read-only view of a public roadmap by its share
// token. No session token is attached: the caller is anonymous.
func (c *Client) ResolveShared(ctx context.Context, token string) (*SharedRoadmap, error) {
	path := "/shared/" + url.PathEscape(token)

	var dto SharedRoadmapDTO
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &dto, false); err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.ErrShareTokenNotFound
		}
		return nil, fmt.Errorf("resolve shared: %w", err)
	}
	return c.mapper.SharedRoadmapFromDTO(&dto)
}

// ══════════════════════════════════════════════════════════════════════════════
// USER ADMINISTRATION
// ══════════════════════════════════════════════════════════════════════════════

// ListUsers fetches all accounts. Admin scope.
func (c *Client) ListUsers(ctx context.Context) ([]user.User, error) {
	var dtos []UserDTO
	if err := c.doRequest(ctx, http.MethodGet, "/users", nil, &dtos, true); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return c.mapper.UsersFromDTO(dtos), nil
}

// CreateUserRequest carries the fields for account creation.
type CreateUserRequest struct {
	Username string
	Password string
	Role     string
}

// CreateUser creates an account. Admin scope.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*user.User, error) {
	body := createUserDTO{Username: req.Username, Password: req.Password, Role: req.Role}

	var dto UserDTO
	if err := c.doRequest(ctx, http.MethodPost, "/users", body, &dto, true); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return c.mapper.UserFromDTO(&dto)
}

// DeleteUser deletes an account. Admin scope.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	path := "/users/" + url.PathEscape(id)
	if err := c.doRequest(ctx, http.MethodDelete, path, nil, nil, true); err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// HTTP REQUEST HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// doRequest performs a single HTTP round trip and maps the outcome onto the
// domain error taxonomy. authed controls whether the session token is
// attached; anonymous endpoints (login, shared resolution) skip it.
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}, authed bool) error {
	fullURL := c.config.BaseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if authed {
		c.tokenMu.RLock()
		token := c.token
		c.tokenMu.RUnlock()
		if token == "" {
			return shared.ErrNoSession
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if c.config.Debug {
		c.logger.Debug("backend request", "method", method, "path", path)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return shared.WrapError("api", "Request", shared.ErrUnavailable,
			"backend unreachable", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return shared.WrapError("api", "Request", shared.ErrUnavailable,
			"read response", err)
	}

	if resp.StatusCode >= 400 {
		return c.errorFromResponse(method, path, resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return shared.WrapError("api", "Request", shared.ErrBackend,
				"unmarshal response", err)
		}
	}

	return nil
}

// errorFromResponse maps an HTTP error status onto the domain taxonomy.
func (c *Client) errorFromResponse(method, path string, status int, body []byte) error {
	apiErr := &APIErrorDTO{StatusCode: status}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("%s %s: status %d", method, path, status)
	}

	var kind error
	switch {
	case status == http.StatusUnauthorized:
		kind = shared.ErrUnauthorized
	case status == http.StatusForbidden:
		kind = shared.ErrForbidden
	case status == http.StatusNotFound:
		kind = shared.ErrNotFound
	case status == http.StatusConflict:
		kind = shared.ErrAlreadyExists
	case status >= 500:
		kind = shared.ErrBackend
	default:
		kind = shared.ErrInvalidInput
	}

	c.logger.Debug("backend error response",
		"method", method, "path", path, "status", status, "message", apiErr.Message)

	return shared.WrapError("api", "Request", kind, apiErr.Message, apiErr)
}
