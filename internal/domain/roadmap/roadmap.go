// Package roadmap contains the roadmap and module entities together with the
// pure ordering logic that keeps module sequences contiguous.
package roadmap

import (
	"time"

	"github.com/roadmap-saas/roadmap-hub/internal/domain/shared"
)

// Roadmap is a named, ordered curriculum owned by one user, optionally
// publicly shareable.
type Roadmap struct {
	// ID is the backend-assigned identifier.
	ID string

	// OwnerID references the owning user and is immutable.
	OwnerID string

	// Title of the roadmap.
	Title string

	// Description of the roadmap's goal and content.
	Description string

	// IsPublic marks the roadmap as anonymously resolvable via ShareToken.
	IsPublic bool

	// ShareToken is the opaque token granting read-only anonymous access.
	// Present if and only if IsPublic is true.
	ShareToken string

	// CreatedAt is when the roadmap was created.
	CreatedAt time.Time
}

// Validate checks the share token invariant: a token exists exactly when the
// roadmap is public.
func (r *Roadmap) Validate() error {
	if r.IsPublic && r.ShareToken == "" {
		return shared.NewDomainError("roadmap", "Validate", shared.ErrInvalidState,
			"public roadmap has no share token")
	}
	if !r.IsPublic && r.ShareToken != "" {
		return shared.NewDomainError("roadmap", "Validate", shared.ErrInvalidState,
			"private roadmap still carries a share token")
	}
	return nil
}

// Module is an ordered unit of content within a roadmap.
type Module struct {
	// ID is the backend-assigned identifier.
	ID string

	// RoadmapID references the parent roadmap and is immutable.
	RoadmapID string

	// Title of the module.
	Title string

	// Description of the module's content.
	Description string

	// Content is optional long-form material.
	Content string

	// Order is the 1-based position within the roadmap. Orders of sibling
	// modules always form the contiguous sequence 1..N.
	Order int
}
