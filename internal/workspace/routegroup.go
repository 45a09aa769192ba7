package workspace

import (
	"fmt"
	"sync"

	"workspace.busmate.lk/internal/models"
)

// StopFocusListener is notified when an edit touches a placed stop, so a
// rendering surface can pan a map to it. Listeners receive the direction
// and the stop's index within that route.
type StopFocusListener func(direction models.Direction, stopIndex int)

// RouteGroupWorkspace owns the editing state for one route group. Every
// mutator rebuilds the containers it touches, so Group() snapshots taken
// before and after an edit never share structure. Mutators serialize on
// an internal mutex: requests that share a session cannot interleave a
// read-modify-write.
type RouteGroupWorkspace struct {
	mu        sync.Mutex
	group     models.RouteGroup
	listeners map[string]StopFocusListener
	nextToken int
}

// NewRouteGroupWorkspace creates an empty workspace for a named group.
func NewRouteGroupWorkspace(name string) *RouteGroupWorkspace {
	return &RouteGroupWorkspace{
		group:     models.NewRouteGroup(name),
		listeners: make(map[string]StopFocusListener),
	}
}

// LoadRouteGroupWorkspace wraps an existing group, e.g. one fetched from
// the directory for further editing.
func LoadRouteGroupWorkspace(group models.RouteGroup) *RouteGroupWorkspace {
	return &RouteGroupWorkspace{
		group:     group.Clone(),
		listeners: make(map[string]StopFocusListener),
	}
}

// Group returns a deep-copied snapshot of the current state.
func (w *RouteGroupWorkspace) Group() models.RouteGroup {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.group.Clone()
}

// Route returns a snapshot of one direction's route, or false when that
// direction has not been added yet.
func (w *RouteGroupWorkspace) Route(direction models.Direction) (models.Route, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	r := w.group.RouteFor(direction)
	if r == nil {
		return models.Route{}, false
	}
	return r.Clone(), true
}

// AddRoute creates an empty route for the given direction. Adding a
// direction that already exists replaces it with a fresh empty route.
func (w *RouteGroupWorkspace) AddRoute(direction models.Direction) error {
	if !direction.Valid() {
		return fmt.Errorf("unknown direction %q", direction)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	next := w.group.Clone()
	next.SetRoute(models.NewRoute(direction))
	w.group = next
	return nil
}

// UpdateRoute applies one field patch to the route of a direction.
func (w *RouteGroupWorkspace) UpdateRoute(direction models.Direction, patch RoutePatch) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	r := w.group.RouteFor(direction)
	if r == nil {
		return fmt.Errorf("no %s route in workspace", direction)
	}
	next := w.group.Clone()
	next.SetRoute(applyRoutePatch(*next.RouteFor(direction), patch))
	w.group = next
	return nil
}

// ReplaceRoute writes a whole route into the group, replacing whatever
// its direction held before. Derivations use this to land their result.
func (w *RouteGroupWorkspace) ReplaceRoute(route models.Route) error {
	if !route.Direction.Valid() {
		return fmt.Errorf("unknown direction %q", route.Direction)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.replaceRouteLocked(route)
	return nil
}

func (w *RouteGroupWorkspace) replaceRouteLocked(route models.Route) {
	next := w.group.Clone()
	next.SetRoute(route.Clone())
	w.group = next
}

// ReplaceGroup swaps the whole group state, e.g. to adopt the
// directory-assigned ids after a successful save.
func (w *RouteGroupWorkspace) ReplaceGroup(group models.RouteGroup) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.group = group.Clone()
}

// AppendRouteStop places a stop at the end of a direction's stop list.
// The stop's order is assigned densely; its distance starts unset unless
// it is the first stop, which is pinned to distance 0.
func (w *RouteGroupWorkspace) AppendRouteStop(direction models.Direction, stop models.Stop) error {
	w.mu.Lock()
	r := w.group.RouteFor(direction)
	if r == nil {
		w.mu.Unlock()
		return fmt.Errorf("no %s route in workspace", direction)
	}
	next := w.group.Clone()
	route := *next.RouteFor(direction)
	rs := models.NewRouteStop(stop, len(route.Stops))
	if len(route.Stops) == 0 {
		rs.DistanceFromStartKm = models.Float64Ptr(0)
	}
	route.Stops = append(route.Stops, rs)
	next.SetRoute(route)
	w.group = next
	index := len(route.Stops) - 1
	w.mu.Unlock()
	w.notifyFocus(direction, index)
	return nil
}

// RemoveRouteStop deletes the stop at index and renumbers the remainder
// densely. Distances are left as entered; the aggregate invariants are
// re-checked at validation time, not here.
func (w *RouteGroupWorkspace) RemoveRouteStop(direction models.Direction, index int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	r := w.group.RouteFor(direction)
	if r == nil {
		return fmt.Errorf("no %s route in workspace", direction)
	}
	if index < 0 || index >= len(r.Stops) {
		return fmt.Errorf("route stop index %d out of range", index)
	}
	next := w.group.Clone()
	route := *next.RouteFor(direction)
	route.Stops = append(route.Stops[:index:index], route.Stops[index+1:]...)
	for i := range route.Stops {
		route.Stops[i].StopOrder = i
	}
	next.SetRoute(route)
	w.group = next
	return nil
}

// UpdateRouteStop applies one field patch to the placed stop at index.
// Invalid intermediate states (duplicate ids, out-of-order distances)
// are allowed while editing; the route checks catch them before the
// group can be saved.
func (w *RouteGroupWorkspace) UpdateRouteStop(direction models.Direction, index int, patch RouteStopPatch) error {
	w.mu.Lock()
	r := w.group.RouteFor(direction)
	if r == nil {
		w.mu.Unlock()
		return fmt.Errorf("no %s route in workspace", direction)
	}
	if index < 0 || index >= len(r.Stops) {
		w.mu.Unlock()
		return fmt.Errorf("route stop index %d out of range", index)
	}
	next := w.group.Clone()
	route := *next.RouteFor(direction)
	route.Stops[index] = applyRouteStopPatch(route.Stops[index], patch)
	next.SetRoute(route)
	w.group = next
	w.mu.Unlock()
	w.notifyFocus(direction, index)
	return nil
}

// RegisterFocusListener adds a stop-focus callback and returns the
// function that removes it again, so a rendering surface can pair the
// two across its own setup/teardown.
func (w *RouteGroupWorkspace) RegisterFocusListener(fn StopFocusListener) (unregister func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextToken++
	key := fmt.Sprintf("focus-%d", w.nextToken)
	w.listeners[key] = fn
	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.listeners, key)
	}
}

// notifyFocus runs the listeners outside the lock, so a callback may
// read the workspace without deadlocking.
func (w *RouteGroupWorkspace) notifyFocus(direction models.Direction, stopIndex int) {
	w.mu.Lock()
	fns := make([]StopFocusListener, 0, len(w.listeners))
	for _, fn := range w.listeners {
		fns = append(fns, fn)
	}
	w.mu.Unlock()
	for _, fn := range fns {
		fn(direction, stopIndex)
	}
}
