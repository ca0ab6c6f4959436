package engine

import "container/heap"

// Priority constants. The lower the number, the higher the priority.
const (
	DefaultPriority   = 8
	ImmediatePriority = 0
)

// Handler is the one capability every Event needs: something to run when
// the event fires. This is the Go replacement for the deep Event
// subclass hierarchy the original uses (GEvent<X>, JumpEvent, ...): a
// concrete event type either implements Handler itself, or an adaptor
// closure is wrapped in HandlerFunc.
type Handler interface {
	Doit(e *Event)
}

// HandlerFunc adapts a plain function to Handler, the same pattern as
// http.HandlerFunc.
type HandlerFunc func(e *Event)

func (f HandlerFunc) Doit(e *Event) { f(e) }

// Prober is implemented by statistics, particle, and trace probes alike:
// all three are "notified with the event after the handler returns".
type Prober interface {
	Probe(e *Event)
}

// Event is a handle onto a future callback. It is never used as a bare
// value: NewEvent returns a pointer, and that pointer's identity is what
// "currently in the queue" means.
type Event struct {
	sim *Simulation

	time     Tick
	lastTime Tick

	priority    int
	stdPriority int

	order      uint64
	inQueue    bool
	disposable bool
	heapIndex  int // maintained by eventQueue for O(log n) removal

	handler Handler

	stats     []Prober
	particles []Prober
	traces    []Prober
}

// NewEvent creates an event bound to sim with the given handler and
// priority. A disposable event must not be statically allocated: in Go
// terms, it must not be shared by anything that expects it to outlive the
// engine's queue, since the engine is free to drop all references to it
// once it fires.
func NewEvent(sim *Simulation, handler Handler, priority int) *Event {
	return &Event{
		sim:         sim,
		handler:     handler,
		priority:    priority,
		stdPriority: priority,
		heapIndex:   -1,
	}
}

// Time returns the triggering time. It is only meaningful while the event
// is enqueued; after firing, use LastTime.
func (e *Event) Time() Tick { return e.time }

// LastTime returns the time at which the event most recently fired. It is
// frozen at the start of action() and is not overwritten by a re-post
// performed from within the handler; this is the guarantee that keeps
// statistics probes correct.
func (e *Event) LastTime() Tick { return e.lastTime }

func (e *Event) Priority() int        { return e.priority }
func (e *Event) SetPriority(p int)    { e.priority = p }
func (e *Event) RestorePriority()     { e.priority = e.stdPriority }
func (e *Event) InQueue() bool        { return e.inQueue }
func (e *Event) Disposable() bool     { return e.disposable }
func (e *Event) Order() uint64        { return e.order }

func (e *Event) AddStat(s Prober)     { e.stats = append(e.stats, s) }
func (e *Event) AddParticle(p Prober) { e.particles = append(e.particles, p) }
func (e *Event) AddTrace(t Prober)    { e.traces = append(e.traces, t) }

// Post enqueues the event to fire at time at. It fails with ErrPostInPast
// if at is before the simulation's current time, and with
// ErrQueueDuplicate if the event is already enqueued.
func (e *Event) Post(at Tick, disposable bool) error {
	if e.inQueue {
		return ErrQueueDuplicate
	}
	if at < e.sim.globalTime {
		return ErrPostInPast
	}

	e.sim.counter++
	e.order = e.sim.counter
	e.time = at
	e.disposable = disposable
	e.inQueue = true
	heap.Push(e.sim.queue, e)
	return nil
}

// Drop extracts the event from the queue if present. It is a no-op if the
// event is not currently enqueued, and it never destroys the event.
func (e *Event) Drop() {
	if !e.inQueue {
		return
	}
	heap.Remove(e.sim.queue, e.heapIndex)
	e.inQueue = false
}

// Process fires the event immediately: it is posted at the simulation's
// current time with priority forced to ImmediatePriority, so it runs
// ahead of any other event already queued for this instant. The event's
// prior priority is restored once posting completes, regardless of
// outcome.
func (e *Event) Process(disposable bool) error {
	saved := e.priority
	e.priority = ImmediatePriority
	err := e.Post(e.sim.globalTime, disposable)
	e.priority = saved
	return err
}

// action is the engine-only entry point invoked by Simulation.SimStep
// (through runAction). It must never be called by user code.
func (e *Event) action() {
	e.lastTime = e.time

	if e.handler != nil {
		e.handler.Doit(e)
	}

	for _, s := range e.stats {
		s.Probe(e)
	}
	for _, p := range e.particles {
		p.Probe(e)
	}
	for _, t := range e.traces {
		t.Probe(e)
	}
}

// eventQueue is a min-heap ordered by (time, priority, order). The order
// field is what makes the compound key collision-free: container/heap
// leaves the relative order of equal keys undefined, and two re-posts of
// the same (time, priority) legitimately happen within one tick and must
// fire in post order.
type eventQueue struct {
	items []*Event
}

func newEventQueue() *eventQueue {
	q := &eventQueue{}
	heap.Init(q)
	return q
}

func (q *eventQueue) Len() int { return len(q.items) }

func (q *eventQueue) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if a.time != b.time {
		return a.time < b.time
	}
	if a.priority != b.priority {
		return a.priority < b.priority
	}
	return a.order < b.order
}

func (q *eventQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.items[i].heapIndex = i
	q.items[j].heapIndex = j
}

func (q *eventQueue) Push(x interface{}) {
	e := x.(*Event)
	e.heapIndex = len(q.items)
	q.items = append(q.items, e)
}

func (q *eventQueue) Pop() interface{} {
	old := q.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	q.items = old[:n-1]
	item.heapIndex = -1
	return item
}

func (q *eventQueue) peek() *Event {
	if len(q.items) == 0 {
		return nil
	}
	return q.items[0]
}
