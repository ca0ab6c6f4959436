package engine

// StatCount is the minimal statistics probe: whatever event it is
// attached to, it records the event's LastTime each time it fires,
// never Time; that is the whole point of the lastTime/time split (a
// re-post inside the handler must not leak into the sample).
type StatCount struct {
	Name    string
	samples []Tick
}

// NewStatCount creates a named, empty probe.
func NewStatCount(name string) *StatCount {
	return &StatCount{Name: name}
}

// Probe implements Prober.
func (c *StatCount) Probe(e *Event) {
	c.samples = append(c.samples, e.LastTime())
}

// Samples returns the recorded LastTime values, in firing order.
func (c *StatCount) Samples() []Tick {
	out := make([]Tick, len(c.samples))
	copy(out, c.samples)
	return out
}

// Count returns how many times the probe has fired.
func (c *StatCount) Count() int { return len(c.samples) }
