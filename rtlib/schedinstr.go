package rtlib

import "github.com/balsini/RTSIM/engine"

// SchedInstr is a scheduling instruction: it runs for a fixed amount of
// time on behalf of father, and on completion lowers the task's
// preemption threshold and asks the kernel to dispatch before finally
// processing its own threshold-restore event. The call order below is
// load-bearing: dispatch must see the task already past its own
// endEvt handling, and threEvt.Process must fire only after dispatch has
// had a chance to pick a new running task.
type SchedInstr struct {
	sim    *engine.Simulation
	father *Task

	endEvt  *engine.Event
	threEvt *engine.Event

	duration engine.Tick
	trace    engine.Trace
}

// NewSchedInstr creates a scheduling instruction of the given duration,
// owned by father.
func NewSchedInstr(sim *engine.Simulation, father *Task, duration engine.Tick) *SchedInstr {
	s := &SchedInstr{sim: sim, father: father, duration: duration}
	s.endEvt = sim.NewEvent(engine.HandlerFunc(s.onEnd), engine.DefaultPriority)
	s.threEvt = sim.NewEvent(engine.HandlerFunc(s.onThreshold), engine.DefaultPriority)
	return s
}

// SetTrace attaches tr to this instruction's end event.
func (s *SchedInstr) SetTrace(tr engine.Trace) {
	s.trace = tr
	if tr != nil {
		s.endEvt.AddTrace(tr)
	}
}

// Schedule posts the end event duration ticks from now.
func (s *SchedInstr) Schedule() {
	if s.endEvt.InQueue() {
		return
	}
	_ = s.endEvt.Post(s.sim.GetTime()+s.duration, false)
}

// Deschedule drops the end event without firing it. Resuming a
// partially-executed instruction at its remaining duration, rather than
// restarting it, is not implemented.
func (s *SchedInstr) Deschedule() {
	s.endEvt.Drop()
}

// onEnd is the fixed call order described on SchedInstr: the father is
// notified first, then the task's kernel is asked to lower the
// threshold and dispatch, and only then is the threshold-restore event
// processed.
func (s *SchedInstr) onEnd(e *engine.Event) {
	s.father.OnInstrEnd()

	lc, err := AsLoweringCapable(s.father.Kernel())
	if err != nil {
		engine.Fail(err)
	}

	lc.DisableThreshold(s.father)
	lc.Dispatch()

	if err := s.threEvt.Process(false); err != nil {
		engine.Fail(err)
	}
}

// onThreshold is fired by Process from within onEnd; it carries no
// payload of its own. It exists as a separate event so that probes
// attached to threEvt fire after Dispatch has run, in the same tick as
// the end event.
func (s *SchedInstr) onThreshold(e *engine.Event) {}
