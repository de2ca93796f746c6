// Package api implements the Roadmap SaaS backend client.
// This package handles all communication with the backend REST API: auth,
// roadmaps, modules, progress, sharing, and user administration.
package api

import (
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// WIRE DTOs
// Field names follow the backend wire format (Mongo-style "_id", snake_case
// bodies, "createdAt" timestamps).
// ══════════════════════════════════════════════════════════════════════════════

// UserDTO represents a user as returned by the backend.
type UserDTO struct {
	// ID is the backend identifier.
	ID string `json:"_id"`

	// Username is the unique login name.
	Username string `json:"username"`

	// Role is "student" or "admin".
	Role string `json:"role"`

	// CreatedAt is when the account was created.
	CreatedAt time.Time `json:"createdAt"`
}

// RoadmapDTO represents a roadmap as returned by the backend.
type RoadmapDTO struct {
	// ID is the backend identifier.
	ID string `json:"_id"`

	// UserID is the owning user's identifier.
	UserID string `json:"user_id"`

	// Title of the roadmap.
	Title string `json:"title"`

	// Description of the roadmap.
	Description string `json:"description"`

	// IsPublic marks the roadmap as shareable.
	IsPublic bool `json:"is_public"`

	// SharedURL is the opaque share token slug (present iff public).
	SharedURL string `json:"shared_url,omitempty"`

	// CreatedAt is when the roadmap was created.
	CreatedAt time.Time `json:"createdAt"`

	// Owner is embedded by the admin-wide listing only.
	Owner *UserDTO `json:"owner,omitempty"`
}

// ModuleDTO represents a module as returned by the backend.
type ModuleDTO struct {
	// ID is the backend identifier.
	ID string `json:"_id"`

	// RoadmapID is the parent roadmap's identifier.
	RoadmapID string `json:"roadmap_id"`

	// Title of the module.
	Title string `json:"title"`

	// Description of the module.
	Description string `json:"description"`

	// Content is optional long-form material.
	Content string `json:"content,omitempty"`

	// Order is the 1-based position within the roadmap.
	Order int `json:"order"`
}

// ProgressDTO represents a progress record as returned by the backend.
type ProgressDTO struct {
	// ID is the backend identifier.
	ID string `json:"_id"`

	// UserID is the user the flag belongs to.
	UserID string `json:"user_id"`

	// ModuleID is the module the flag is for.
	ModuleID string `json:"module_id"`

	// Completed is the completion state.
	Completed bool `json:"completed"`

	// UpdatedAt is when the flag last changed.
	UpdatedAt time.Time `json:"updatedAt"`
}

// SharedRoadmapDTO is the anonymous read-only view of a public roadmap.
// It never contains progress: the visitor has no identity.
type SharedRoadmapDTO struct {
	Roadmap RoadmapDTO  `json:"roadmap"`
	Modules []ModuleDTO `json:"modules"`
}

// LoginResponseDTO is returned by POST /auth/login.
type LoginResponseDTO struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// VerifyResponseDTO is returned by GET /auth/verify.
type VerifyResponseDTO struct {
	User UserDTO `json:"user"`
}

// ══════════════════════════════════════════════════════════════════════════════
// REQUEST BODIES
// ══════════════════════════════════════════════════════════════════════════════

type loginRequestDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequestDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type createRoadmapDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
	SharedURL   string `json:"shared_url,omitempty"`
}

type updateRoadmapDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
	SharedURL   string `json:"shared_url"`
}

type createModuleDTO struct {
	RoadmapID   string `json:"roadmap_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content,omitempty"`
	Order       int    `json:"order"`
}

type updateModuleOrderDTO struct {
	Order int `json:"order"`
}

type upsertProgressDTO struct {
	ModuleID  string `json:"module_id"`
	Completed bool   `json:"completed"`
}

type createUserDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ══════════════════════════════════════════════════════════════════════════════
// ERROR BODY
// ══════════════════════════════════════════════════════════════════════════════

// APIErrorDTO is the backend's error body shape.
type APIErrorDTO struct {
	// Message is the human-readable error description.
	Message string `json:"message"`

	// StatusCode is filled by the client from the HTTP response.
	StatusCode int `json:"-"`
}

// Error implements the error interface.
func (e *APIErrorDTO) Error() string {
	return e.Message
}
