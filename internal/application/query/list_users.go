package query

import (
	"context"
	"log/slog"
	"sort"

	"github.com/roadmap-saas/roadmap-hub/internal/domain/user"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST USERS QUERY (ADMIN)
// ══════════════════════════════════════════════════════════════════════════════

// UserLister is the slice of the backend client this query needs.
type UserLister interface {
	ListUsers(ctx context.Context) ([]user.User, error)
}

// ListUsersHandler lists all accounts for administrators.
type ListUsersHandler struct {
	backend UserLister
	logger  *slog.Logger
}

// NewListUsersHandler creates the handler.
func NewListUsersHandler(backend UserLister, logger *slog.Logger) *ListUsersHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ListUsersHandler{backend: backend, logger: logger}
}

// Handle returns all accounts sorted by username.
func (h *ListUsersHandler) Handle(ctx context.Context) ([]user.User, error) {
	users, err := h.backend.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(users, func(i, j int) bool {
		return users[i].Username < users[j].Username
	})
	return users, nil
}
