package command

import (
	"context"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/roadmap-saas/roadmap-hub/internal/domain/shared"
	"github.com/roadmap-saas/roadmap-hub/internal/domain/user"
	"github.com/roadmap-saas/roadmap-hub/internal/infrastructure/api"
)

// ══════════════════════════════════════════════════════════════════════════════
// USER MANAGEMENT COMMANDS
// Admin-scoped account creation and deletion. The password travels to the
// backend for hashing; this core never hashes or stores it.
// ══════════════════════════════════════════════════════════════════════════════

// CreateUserCommand contains the data needed to create an account.
type CreateUserCommand struct {
	// Username is the unique login name.
	Username string `validate:"required,min=3,max=50"`

	// Password is forwarded to the backend for hashing.
	Password string `validate:"required,min=6"`

	// Role is "student" or "admin".
	Role string `validate:"required,oneof=student admin"`
}

// DeleteUserCommand identifies the account to delete.
type DeleteUserCommand struct {
	// UserID is the account to delete.
	UserID string
}

// Validate validates the command.
func (c DeleteUserCommand) Validate() error {
	if c.UserID == "" {
		return shared.NewDomainError("user", "Delete", shared.ErrInvalidID,
			"user ID is required")
	}
	return nil
}

// UserAdminBackend is the slice of the backend client these commands need.
type UserAdminBackend interface {
	CreateUser(ctx context.Context, req api.CreateUserRequest) (*user.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// UserAdminHandler handles admin account management.
type UserAdminHandler struct {
	backend  UserAdminBackend
	logger   *slog.Logger
	validate *validator.Validate
}

// NewUserAdminHandler creates the handler.
func NewUserAdminHandler(backend UserAdminBackend, logger *slog.Logger) *UserAdminHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserAdminHandler{
		backend:  backend,
		logger:   logger,
		validate: validator.New(),
	}
}

// CreateUser validates locally and creates the account. The backend rejects
// non-admin callers.
func (h *UserAdminHandler) CreateUser(ctx context.Context, cmd CreateUserCommand) (*user.User, error) {
	if err := h.validate.Struct(cmd); err != nil {
		return nil, shared.WrapError("user", "Create", shared.ErrValidation,
			"invalid account draft", err)
	}

	created, err := h.backend.CreateUser(ctx, api.CreateUserRequest{
		Username: cmd.Username,
		Password: cmd.Password,
		Role:     cmd.Role,
	})
	if err != nil {
		return nil, err
	}

	h.logger.Info("user created", "user_id", created.ID, "role", created.Role)
	return created, nil
}

// DeleteUser deletes an account. The backend rejects non-admin callers.
func (h *UserAdminHandler) DeleteUser(ctx context.Context, cmd DeleteUserCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.backend.DeleteUser(ctx, cmd.UserID); err != nil {
		return err
	}

	h.logger.Info("user deleted", "user_id", cmd.UserID)
	return nil
}
