package engine

import (
	"errors"
	"testing"
)

type recordingEntity struct {
	*Entity
	newRunCalls int
	endRunCalls int
}

func (r *recordingEntity) NewRun() { r.newRunCalls++ }
func (r *recordingEntity) EndRun() { r.endRunCalls++ }

func newRecordingEntity(r *Registry, name string) *recordingEntity {
	re := &recordingEntity{}
	e, err := r.Register(name, re)
	if err != nil {
		panic(err)
	}
	re.Entity = e
	return re
}

func TestRegistryAssignsMonotonicIDs(t *testing.T) {
	r := NewRegistry()
	a := newRecordingEntity(r, "a")
	b := newRecordingEntity(r, "b")

	if a.ID() == b.ID() {
		t.Fatal("expected distinct ids")
	}
	if b.ID() <= a.ID() {
		t.Fatalf("expected monotonically increasing ids, got %d then %d", a.ID(), b.ID())
	}
}

func TestRegistryEmptyNameNotLookupable(t *testing.T) {
	r := NewRegistry()
	newRecordingEntity(r, "")

	if _, err := r.Find(""); err == nil {
		t.Fatal("expected Find(\"\") to fail")
	}
}

func TestRegistryDuplicateNameRejected(t *testing.T) {
	r := NewRegistry()
	newRecordingEntity(r, "dup")

	_, err := r.Register("dup", &recordingEntity{})
	if err == nil {
		t.Fatal("expected duplicate name registration to fail")
	}
}

func TestRegistryFindMissingIsNotFound(t *testing.T) {
	r := NewRegistry()
	_, err := r.Find("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// TestRegistryMulticastOrder checks that CallNewRun invokes NewRun on
// every live entity exactly once, in registration order.
func TestRegistryMulticastOrder(t *testing.T) {
	r := NewRegistry()
	var order []string

	for _, name := range []string{"first", "second", "third"} {
		name := name
		e := &orderTrackingEntity{onNewRun: func() { order = append(order, name) }}
		reg, err := r.Register(name, e)
		if err != nil {
			t.Fatal(err)
		}
		e.Entity = reg
	}

	r.CallNewRun()

	want := []string{"first", "second", "third"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

type orderTrackingEntity struct {
	*Entity
	onNewRun func()
}

func (o *orderTrackingEntity) NewRun() { o.onNewRun() }
func (o *orderTrackingEntity) EndRun() {}

func TestRegistryDeregisterRemovesEntity(t *testing.T) {
	r := NewRegistry()
	a := newRecordingEntity(r, "a")

	if r.Len() != 1 {
		t.Fatalf("expected 1 entity, got %d", r.Len())
	}

	r.Deregister(a.Entity)

	if r.Len() != 0 {
		t.Fatalf("expected 0 entities after deregister, got %d", r.Len())
	}
	if _, err := r.Find("a"); err == nil {
		t.Fatal("expected Find to fail after deregister")
	}
}
