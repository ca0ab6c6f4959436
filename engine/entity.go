package engine

import (
	"fmt"

	"github.com/google/uuid"
)

// RunHooks is implemented by every long-lived simulation object. newRun is
// called once before each replica, endRun once after.
type RunHooks interface {
	NewRun()
	EndRun()
}

// Entity is a named, numbered long-lived simulation object. It is meant to
// be embedded by concrete domain types (Task, State, ...), the way the
// original's Entity base class is inherited from.
//
// An Entity is only ever constructed through Registry.Register: that is
// what assigns its id, its UUID, and registers it.
type Entity struct {
	id   int
	uuid uuid.UUID
	name string
	reg  *Registry
}

func (e *Entity) ID() int          { return e.id }
func (e *Entity) UUID() uuid.UUID  { return e.uuid }
func (e *Entity) Name() string     { return e.name }
func (e *Entity) Registry() *Registry { return e.reg }

// NewRun and EndRun give Entity a zero-value implementation of RunHooks so
// that embedders only need to override the hook they actually care about.
func (e *Entity) NewRun() {}
func (e *Entity) EndRun() {}

// entityRecord pairs an Entity's identity with the RunHooks implementation
// that should actually be multicast to, normally a concrete type
// embedding *Entity, overriding NewRun/EndRun.
type entityRecord struct {
	id    int
	uuid  uuid.UUID
	name  string
	hooks RunHooks
}

// Registry is a single-threaded, per-Simulation collection of live
// entities. The original's Entity registry is a process-wide singleton;
// per the design notes, RTSIM threads it through the Simulation instead so
// that tests can build isolated simulations without colliding on global
// state.
type Registry struct {
	byOrder []*entityRecord
	byName  map[string]*entityRecord
	nextID  int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*entityRecord)}
}

// Register assigns name a new monotonically increasing id and records
// hooks as the RunHooks implementation to multicast to. An empty name is
// allowed and gets no name binding; a non-empty name must be unique.
func (r *Registry) Register(name string, hooks RunHooks) (*Entity, error) {
	if name != "" {
		if _, exists := r.byName[name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
	}

	r.nextID++
	rec := &entityRecord{id: r.nextID, uuid: uuid.New(), name: name, hooks: hooks}
	r.byOrder = append(r.byOrder, rec)
	if name != "" {
		r.byName[name] = rec
	}

	return &Entity{id: rec.id, uuid: rec.uuid, name: name, reg: r}, nil
}

// Deregister removes the entity from the registry. It is idempotent: a
// missing entity is a no-op, matching destructor semantics where the
// object may already have been torn down.
func (r *Registry) Deregister(e *Entity) {
	if e == nil {
		return
	}
	for i, rec := range r.byOrder {
		if rec.id == e.id {
			r.byOrder = append(r.byOrder[:i], r.byOrder[i+1:]...)
			break
		}
	}
	if e.name != "" {
		delete(r.byName, e.name)
	}
}

// Find looks up an entity by name, returning ErrNotFound if absent.
func (r *Registry) Find(name string) (*Entity, error) {
	rec, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return &Entity{id: rec.id, uuid: rec.uuid, name: rec.name, reg: r}, nil
}

// CallNewRun invokes NewRun on every live entity exactly once, in
// registration order.
func (r *Registry) CallNewRun() {
	for _, rec := range r.byOrder {
		rec.hooks.NewRun()
	}
}

// CallEndRun invokes EndRun on every live entity exactly once, in
// registration order.
func (r *Registry) CallEndRun() {
	for _, rec := range r.byOrder {
		rec.hooks.EndRun()
	}
}

// Len reports how many entities are currently registered.
func (r *Registry) Len() int { return len(r.byOrder) }
