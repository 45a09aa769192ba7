package restapi

import (
	"sync"

	"github.com/google/uuid"
	"workspace.busmate.lk/internal/workspace"
)

// SessionStore keys live workspaces by session id. The store's lock
// only guards the maps; concurrent requests on one session are
// serialized by the workspace's own mutex.
type SessionStore struct {
	mu          sync.Mutex
	routeGroups map[string]*workspace.RouteGroupWorkspace
	schedules   map[string]*workspace.ScheduleWorkspace
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		routeGroups: make(map[string]*workspace.RouteGroupWorkspace),
		schedules:   make(map[string]*workspace.ScheduleWorkspace),
	}
}

// PutRouteGroup stores a workspace under a fresh session id.
func (s *SessionStore) PutRouteGroup(w *workspace.RouteGroupWorkspace) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.routeGroups[id] = w
	return id
}

// RouteGroup fetches the workspace for a session, if it exists.
func (s *SessionStore) RouteGroup(id string) (*workspace.RouteGroupWorkspace, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.routeGroups[id]
	return w, ok
}

// PutSchedule stores a schedule workspace under a fresh session id.
func (s *SessionStore) PutSchedule(w *workspace.ScheduleWorkspace) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.schedules[id] = w
	return id
}

// Schedule fetches the schedule workspace for a session, if it exists.
func (s *SessionStore) Schedule(id string) (*workspace.ScheduleWorkspace, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.schedules[id]
	return w, ok
}
