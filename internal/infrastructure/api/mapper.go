package api

import (
	"errors"

	"github.com/roadmap-saas/roadmap-hub/internal/domain/progress"
	"github.com/roadmap-saas/roadmap-hub/internal/domain/roadmap"
	"github.com/roadmap-saas/roadmap-hub/internal/domain/user"
)

// ErrNilDTO is returned when a mapper receives a nil DTO.
var ErrNilDTO = errors.New("nil DTO")

// ══════════════════════════════════════════════════════════════════════════════
// MAPPER - DTO to Domain Entity transformations
// ══════════════════════════════════════════════════════════════════════════════

// Mapper handles transformation between backend DTOs and domain entities.
// It is the anti-corruption layer protecting the domain from wire-format
// changes on the backend side.
type Mapper struct{}

// NewMapper creates a new Mapper instance.
func NewMapper() *Mapper {
	return &Mapper{}
}

// UserFromDTO converts a UserDTO to a domain User.
func (m *Mapper) UserFromDTO(dto *UserDTO) (*user.User, error) {
	if dto == nil {
		return nil, ErrNilDTO
	}

	role, err := user.ParseRole(dto.Role)
	if err != nil {
		// Unknown roles are treated as students; the backend remains the
		// authority on what the account may actually do.
		role = user.RoleStudent
	}

	return &user.User{
		ID:        dto.ID,
		Username:  dto.Username,
		Role:      role,
		CreatedAt: dto.CreatedAt,
	}, nil
}

// UsersFromDTO converts a slice of UserDTOs.
func (m *Mapper) UsersFromDTO(dtos []UserDTO) []user.User {
	users := make([]user.User, 0, len(dtos))
	for i := range dtos {
		u, err := m.UserFromDTO(&dtos[i])
		if err != nil {
			continue
		}
		users = append(users, *u)
	}
	return users
}

// RoadmapFromDTO converts a RoadmapDTO to a domain Roadmap.
func (m *Mapper) RoadmapFromDTO(dto *RoadmapDTO) (*roadmap.Roadmap, error) {
	if dto == nil {
		return nil, ErrNilDTO
	}

	return &roadmap.Roadmap{
		ID:          dto.ID,
		OwnerID:     dto.UserID,
		Title:       dto.Title,
		Description: dto.Description,
		IsPublic:    dto.IsPublic,
		ShareToken:  dto.SharedURL,
		CreatedAt:   dto.CreatedAt,
	}, nil
}

// RoadmapsFromDTO converts a slice of RoadmapDTOs.
func (m *Mapper) RoadmapsFromDTO(dtos []RoadmapDTO) []roadmap.Roadmap {
	roadmaps := make([]roadmap.Roadmap, 0, len(dtos))
	for i := range dtos {
		r, err := m.RoadmapFromDTO(&dtos[i])
		if err != nil {
			continue
		}
		roadmaps = append(roadmaps, *r)
	}
	return roadmaps
}

// OwnedRoadmap pairs a roadmap with its owner's identity. Only the
// admin-wide listing embeds the owner.
type OwnedRoadmap struct {
	Roadmap roadmap.Roadmap
	Owner   user.User
}

// OwnedRoadmapFromDTO converts a RoadmapDTO with an embedded owner.
func (m *Mapper) OwnedRoadmapFromDTO(dto *RoadmapDTO) (*OwnedRoadmap, error) {
	r, err := m.RoadmapFromDTO(dto)
	if err != nil {
		return nil, err
	}

	owned := &OwnedRoadmap{Roadmap: *r}
	if dto.Owner != nil {
		owner, err := m.UserFromDTO(dto.Owner)
		if err == nil {
			owned.Owner = *owner
		}
	}
	return owned, nil
}

// ModuleFromDTO converts a ModuleDTO to a domain Module.
func (m *Mapper) ModuleFromDTO(dto *ModuleDTO) (*roadmap.Module, error) {
	if dto == nil {
		return nil, ErrNilDTO
	}

	return &roadmap.Module{
		ID:          dto.ID,
		RoadmapID:   dto.RoadmapID,
		Title:       dto.Title,
		Description: dto.Description,
		Content:     dto.Content,
		Order:       dto.Order,
	}, nil
}

// ModulesFromDTO converts a slice of ModuleDTOs, sorted ascending by order.
// The defensive sort keeps the ordering invariant even if the backend ever
// returns modules unsorted.
func (m *Mapper) ModulesFromDTO(dtos []ModuleDTO) []roadmap.Module {
	modules := make([]roadmap.Module, 0, len(dtos))
	for i := range dtos {
		mod, err := m.ModuleFromDTO(&dtos[i])
		if err != nil {
			continue
		}
		modules = append(modules, *mod)
	}
	return roadmap.SortByOrder(modules)
}

// ProgressFromDTO converts a ProgressDTO to a domain Progress.
func (m *Mapper) ProgressFromDTO(dto *ProgressDTO) (*progress.Progress, error) {
	if dto == nil {
		return nil, ErrNilDTO
	}

	return &progress.Progress{
		ID:        dto.ID,
		UserID:    dto.UserID,
		ModuleID:  dto.ModuleID,
		Completed: dto.Completed,
		UpdatedAt: dto.UpdatedAt,
	}, nil
}

// ProgressListFromDTO converts a slice of ProgressDTOs.
func (m *Mapper) ProgressListFromDTO(dtos []ProgressDTO) []progress.Progress {
	records := make([]progress.Progress, 0, len(dtos))
	for i := range dtos {
		p, err := m.ProgressFromDTO(&dtos[i])
		if err != nil {
			continue
		}
		records = append(records, *p)
	}
	return records
}

// SharedRoadmap is the anonymous read-only view of a public roadmap.
type SharedRoadmap struct {
	Roadmap roadmap.Roadmap
	Modules []roadmap.Module
}

// SharedRoadmapFromDTO converts a SharedRoadmapDTO.
func (m *Mapper) SharedRoadmapFromDTO(dto *SharedRoadmapDTO) (*SharedRoadmap, error) {
	if dto == nil {
		return nil, ErrNilDTO
	}

	r, err := m.RoadmapFromDTO(&dto.Roadmap)
	if err != nil {
		return nil, err
	}

	return &SharedRoadmap{
		Roadmap: *r,
		Modules: m.ModulesFromDTO(dto.Modules),
	}, nil
}
