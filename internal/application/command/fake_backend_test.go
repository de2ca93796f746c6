package command

import (
	"context"
	"fmt"
	"sync"

	"github.com/roadmap-saas/roadmap-hub/internal/domain/progress"
	"github.com/roadmap-saas/roadmap-hub/internal/domain/roadmap"
	"github.com/roadmap-saas/roadmap-hub/internal/domain/shared"
	"github.com/roadmap-saas/roadmap-hub/internal/domain/user"
	"github.com/roadmap-saas/roadmap-hub/internal/infrastructure/api"
)

// fakeBackend is an in-memory stand-in for the backend client, with
// scripted failure points and call recording.
type fakeBackend struct {
	mu sync.Mutex

	roadmaps map[string]roadmap.Roadmap
	modules  map[string][]roadmap.Module // keyed by roadmap ID
	flags    map[string]bool             // module ID -> completed
	users    map[string]user.User

	nextID int

	// Failure scripting
	failCreateRoadmap    bool
	failCreateModuleAt   int    // 1-based call count to fail on, 0 = never
	failUpdateOrderForID string // module ID whose order update fails
	failDeleteModuleID   string // module ID whose delete fails
	failUpsert           bool
	cascadeOnDelete      bool

	// Call recording
	createModuleCalls int
	orderUpdates      []string // "moduleID=order"
	upsertCalls       []string // "moduleID=completed"

	// Optional gates for concurrency tests
	upsertStarted chan struct{}
	upsertRelease chan struct{}
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		roadmaps: map[string]roadmap.Roadmap{},
		modules:  map[string][]roadmap.Module{},
		flags:    map[string]bool{},
		users:    map[string]user.User{},
	}
}

func (f *fakeBackend) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s%d", prefix, f.nextID)
}

func (f *fakeBackend) CreateRoadmap(ctx context.Context, req api.CreateRoadmapRequest) (*roadmap.Roadmap, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreateRoadmap {
		return nil, shared.WrapError("api", "Request", shared.ErrBackend, "scripted failure", nil)
	}
	r := roadmap.Roadmap{
		ID:          f.id("r"),
		OwnerID:     "u1",
		Title:       req.Title,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		ShareToken:  req.ShareToken,
	}
	f.roadmaps[r.ID] = r
	return &r, nil
}

func (f *fakeBackend) GetRoadmap(ctx context.Context, id string) (*roadmap.Roadmap, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.roadmaps[id]
	if !ok {
		return nil, shared.ErrRoadmapNotFound
	}
	return &r, nil
}

func (f *fakeBackend) UpdateRoadmap(ctx context.Context, id string, req api.UpdateRoadmapRequest) (*roadmap.Roadmap, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.roadmaps[id]
	if !ok {
		return nil, shared.ErrRoadmapNotFound
	}
	r.Title = req.Title
	r.Description = req.Description
	r.IsPublic = req.IsPublic
	r.ShareToken = req.ShareToken
	f.roadmaps[id] = r
	return &r, nil
}

func (f *fakeBackend) DeleteRoadmap(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.roadmaps[id]; !ok {
		return shared.ErrRoadmapNotFound
	}
	delete(f.roadmaps, id)
	if f.cascadeOnDelete {
		delete(f.modules, id)
	}
	return nil
}

func (f *fakeBackend) ListModules(ctx context.Context, roadmapID string) ([]roadmap.Module, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]roadmap.Module, len(f.modules[roadmapID]))
	copy(out, f.modules[roadmapID])
	return roadmap.SortByOrder(out), nil
}

func (f *fakeBackend) CreateModule(ctx context.Context, req api.CreateModuleRequest) (*roadmap.Module, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createModuleCalls++
	if f.failCreateModuleAt > 0 && f.createModuleCalls == f.failCreateModuleAt {
		return nil, shared.WrapError("api", "Request", shared.ErrBackend, "scripted failure", nil)
	}
	m := roadmap.Module{
		ID:          f.id("m"),
		RoadmapID:   req.RoadmapID,
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Order:       req.Order,
	}
	f.modules[req.RoadmapID] = append(f.modules[req.RoadmapID], m)
	return &m, nil
}

func (f *fakeBackend) UpdateModuleOrder(ctx context.Context, moduleID string, order int) (*roadmap.Module, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if moduleID == f.failUpdateOrderForID {
		return nil, shared.WrapError("api", "Request", shared.ErrBackend, "scripted failure", nil)
	}
	f.orderUpdates = append(f.orderUpdates, fmt.Sprintf("%s=%d", moduleID, order))
	for rid, ms := range f.modules {
		for i := range ms {
			if ms[i].ID == moduleID {
				ms[i].Order = order
				m := ms[i]
				f.modules[rid] = ms
				return &m, nil
			}
		}
	}
	return nil, shared.ErrModuleNotFound
}

func (f *fakeBackend) DeleteModule(ctx context.Context, moduleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if moduleID == f.failDeleteModuleID {
		return shared.WrapError("api", "Request", shared.ErrBackend, "scripted failure", nil)
	}
	for rid, ms := range f.modules {
		for i := range ms {
			if ms[i].ID == moduleID {
				f.modules[rid] = append(ms[:i:i], ms[i+1:]...)
				return nil
			}
		}
	}
	return shared.ErrModuleNotFound
}

func (f *fakeBackend) ListProgress(ctx context.Context, roadmapID string) ([]progress.Progress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []progress.Progress
	for moduleID, completed := range f.flags {
		out = append(out, progress.Progress{
			ID:        "p-" + moduleID,
			UserID:    "u1",
			ModuleID:  moduleID,
			Completed: completed,
		})
	}
	return out, nil
}

func (f *fakeBackend) UpsertProgress(ctx context.Context, moduleID string, completed bool) (*progress.Progress, error) {
	if f.upsertStarted != nil {
		f.upsertStarted <- struct{}{}
	}
	if f.upsertRelease != nil {
		<-f.upsertRelease
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.upsertCalls = append(f.upsertCalls, fmt.Sprintf("%s=%v", moduleID, completed))
	if f.failUpsert {
		return nil, shared.WrapError("api", "Request", shared.ErrUnavailable, "scripted failure", nil)
	}
	f.flags[moduleID] = completed
	return &progress.Progress{ID: "p-" + moduleID, UserID: "u1", ModuleID: moduleID, Completed: completed}, nil
}

func (f *fakeBackend) CreateUser(ctx context.Context, req api.CreateUserRequest) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	role, err := user.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	u := user.User{ID: f.id("u"), Username: req.Username, Role: role}
	f.users[u.ID] = u
	return &u, nil
}

func (f *fakeBackend) DeleteUser(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

// seedModules installs a roadmap with n modules ordered 1..n and returns
// their IDs.
func (f *fakeBackend) seedModules(roadmapID string, n int) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roadmaps[roadmapID] = roadmap.Roadmap{ID: roadmapID, OwnerID: "u1", Title: "seed", Description: "d"}
	ids := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		m := roadmap.Module{ID: f.id("m"), RoadmapID: roadmapID, Title: fmt.Sprintf("module %d", i), Order: i}
		f.modules[roadmapID] = append(f.modules[roadmapID], m)
		ids = append(ids, m.ID)
	}
	return ids
}
