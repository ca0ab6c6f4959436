package engine

import "testing"

func newTracking(sim *Simulation, label string, fired *[]string, priority int) *Event {
	return sim.NewEvent(HandlerFunc(func(e *Event) {
		*fired = append(*fired, label)
	}), priority)
}

// TestScenarioS1TwoEventsSameTimeDefaultPriorityFIFO: two events at the same
// time with default priority fire in post order.
func TestScenarioS1TwoEventsSameTimeDefaultPriorityFIFO(t *testing.T) {
	sim := NewSimulation(nil)
	var fired []string

	a := newTracking(sim, "A", &fired, DefaultPriority)
	b := newTracking(sim, "B", &fired, DefaultPriority)

	if err := a.Post(10, false); err != nil {
		t.Fatal(err)
	}
	if err := b.Post(10, false); err != nil {
		t.Fatal(err)
	}

	sim.RunTo(10)

	if got, want := fired, []string{"A", "B"}; !equalStrings(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if sim.QueueLen() != 0 {
		t.Fatalf("expected empty queue, got %d pending", sim.QueueLen())
	}
	if sim.GetTime() != 10 {
		t.Fatalf("expected globalTime=10, got %s", sim.GetTime())
	}
}

// TestScenarioS2PriorityBreaksTies: among same-time events, lower priority
// fires first.
func TestScenarioS2PriorityBreaksTies(t *testing.T) {
	sim := NewSimulation(nil)
	var fired []string

	a := newTracking(sim, "A", &fired, 8)
	b := newTracking(sim, "B", &fired, 0)

	if err := a.Post(10, false); err != nil {
		t.Fatal(err)
	}
	if err := b.Post(10, false); err != nil {
		t.Fatal(err)
	}

	sim.RunTo(10)

	if got, want := fired, []string{"B", "A"}; !equalStrings(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

// TestScenarioS3RepostPreservesLastTime: a handler that reposts its own
// event keeps the stat probe's recorded lastTime pinned to the firing that
// produced it.
func TestScenarioS3RepostPreservesLastTime(t *testing.T) {
	sim := NewSimulation(nil)
	var fired []string

	a := sim.NewEvent(HandlerFunc(func(e *Event) {
		fired = append(fired, "A")
		if e.LastTime() < 20 {
			if err := e.Post(20, false); err != nil {
				t.Fatalf("repost failed: %v", err)
			}
		}
	}), DefaultPriority)

	stat := NewStatCount("a-stat")
	a.AddStat(stat)

	if err := a.Post(10, false); err != nil {
		t.Fatal(err)
	}

	sim.RunTo(10)

	if stat.Count() != 1 {
		t.Fatalf("expected exactly one sample, got %d", stat.Count())
	}
	if got := stat.Samples()[0]; got != 10 {
		t.Fatalf("expected lastTime=10, got %s", got)
	}

	sim.RunTo(20)
	if got, want := fired, []string{"A", "A"}; !equalStrings(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

// TestProcessPrecedence: Process fires an event ahead of anything already
// queued at the same time.
func TestProcessPrecedence(t *testing.T) {
	sim := NewSimulation(nil)
	var fired []string

	queued := newTracking(sim, "queued", &fired, DefaultPriority)
	immediate := newTracking(sim, "immediate", &fired, DefaultPriority)

	if err := queued.Post(5, false); err != nil {
		t.Fatal(err)
	}

	sim.RunTo(4) // advance time to just before 5, without firing anything
	sim.globalTime = 5
	if err := immediate.Process(false); err != nil {
		t.Fatal(err)
	}

	sim.RunTo(5)

	if got, want := fired, []string{"immediate", "queued"}; !equalStrings(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if immediate.Priority() != DefaultPriority {
		t.Fatalf("expected priority restored after Process, got %d", immediate.Priority())
	}
}

// TestDropIdempotence: Drop is safe to call on an event that is not queued.
func TestDropIdempotence(t *testing.T) {
	sim := NewSimulation(nil)
	var fired []string
	e := newTracking(sim, "e", &fired, DefaultPriority)

	e.Drop() // no-op, not queued

	if err := e.Post(5, false); err != nil {
		t.Fatal(err)
	}
	e.Drop()
	if e.InQueue() {
		t.Fatal("expected event to be dropped")
	}

	if err := e.Post(7, false); err != nil {
		t.Fatal(err)
	}
	if sim.QueueLen() != 1 {
		t.Fatalf("expected exactly one enqueued event, got %d", sim.QueueLen())
	}
}

func TestPostWhileQueuedFails(t *testing.T) {
	sim := NewSimulation(nil)
	var fired []string
	e := newTracking(sim, "e", &fired, DefaultPriority)

	if err := e.Post(5, false); err != nil {
		t.Fatal(err)
	}
	if err := e.Post(6, false); err == nil {
		t.Fatal("expected ErrQueueDuplicate")
	}
}

func TestPostInPastFails(t *testing.T) {
	sim := NewSimulation(nil)
	sim.globalTime = 10
	var fired []string
	e := newTracking(sim, "e", &fired, DefaultPriority)

	if err := e.Post(5, false); err == nil {
		t.Fatal("expected ErrPostInPast")
	}
}

// TestHeadMinimality: the queue always fires its earliest-time event next.
func TestHeadMinimality(t *testing.T) {
	sim := NewSimulation(nil)
	var fired []string

	late := newTracking(sim, "late", &fired, DefaultPriority)
	early := newTracking(sim, "early", &fired, DefaultPriority)
	mid := newTracking(sim, "mid", &fired, DefaultPriority)

	_ = late.Post(30, false)
	_ = early.Post(10, false)
	_ = mid.Post(20, false)

	sim.RunTo(30)

	if got, want := fired, []string{"early", "mid", "late"}; !equalStrings(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestDisposableEventNotObservedAfterFiring(t *testing.T) {
	sim := NewSimulation(nil)
	fireCount := 0
	e := sim.NewEvent(HandlerFunc(func(e *Event) {
		fireCount++
	}), DefaultPriority)

	if err := e.Post(5, true); err != nil {
		t.Fatal(err)
	}
	sim.RunTo(5)

	if fireCount != 1 {
		t.Fatalf("expected exactly one firing, got %d", fireCount)
	}
	if e.InQueue() {
		t.Fatal("disposable event must not remain in queue after firing")
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
