package rtlib

import "github.com/balsini/RTSIM/engine"

// Instr is one step of a Task's program. Schedule starts or resumes
// execution; Deschedule suspends it (e.g. on preemption) without
// finishing it; SetTrace attaches an observer fired whenever the
// instruction's end event is processed.
type Instr interface {
	Schedule()
	Deschedule()
	SetTrace(tr engine.Trace)
}
