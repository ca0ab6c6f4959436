package engine

import "github.com/sirupsen/logrus"

// Trace is the tracing sink contract: Probe is called once per
// firing of every event the trace is attached to, and is responsible for
// rendering the observation however it sees fit.
type Trace interface {
	Prober
}

// LogrusTrace renders each probe firing as a structured logrus entry.
// Each entity carries a stable UUID (assigned at registration, see
// entity.go) so that log lines from different replicas or different
// entities sharing a name never get confused once they interleave in one
// log stream.
type LogrusTrace struct {
	log    *logrus.Logger
	name   string
	entity *Entity
}

// NewLogrusTrace creates a trace sink labelled name, optionally
// associated with an entity for correlation. entity may be nil.
func NewLogrusTrace(log *logrus.Logger, name string, entity *Entity) *LogrusTrace {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LogrusTrace{log: log, name: name, entity: entity}
}

// Probe implements Prober.
func (t *LogrusTrace) Probe(e *Event) {
	fields := logrus.Fields{
		"trace":     t.name,
		"lastTime":  e.LastTime().String(),
		"priority":  e.Priority(),
		"order":     e.Order(),
	}
	if t.entity != nil {
		fields["entity"] = t.entity.Name()
		fields["entityID"] = t.entity.ID()
		fields["entityUUID"] = t.entity.UUID().String()
	}
	t.log.WithFields(fields).Info("event fired")
}
