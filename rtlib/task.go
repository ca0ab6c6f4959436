package rtlib

import (
	"github.com/balsini/RTSIM/engine"
)

// Task is a schedulable activity: a named entity owning a kernel and a
// sequence of instructions it steps through. It embeds *engine.Entity so
// it participates in NewRun/EndRun multicast and carries a stable UUID
// for trace correlation.
type Task struct {
	*engine.Entity

	kernel Kernel
	instrs []Instr
	cursor int

	onRelease func() // optional hook run whenever OnInstrEnd completes the last instruction
}

// NewTask registers name with sim and returns the bound Task. kernel may
// be nil for tasks that never run a SchedInstr (e.g. pure computation in
// tests).
func NewTask(sim *engine.Simulation, name string, kernel Kernel) (*Task, error) {
	t := &Task{kernel: kernel}
	return registerTask(sim, name, t, t)
}

// registerTask binds t to sim under name, using hooks as the
// NewRun/EndRun multicast target. Types that embed *Task and override
// NewRun/EndRun (e.g. PeriodicTask) pass themselves as hooks so the
// registry calls the override rather than Task's own no-op.
func registerTask(sim *engine.Simulation, name string, t *Task, hooks engine.RunHooks) (*Task, error) {
	e, err := sim.Registry().Register(name, hooks)
	if err != nil {
		return nil, err
	}
	t.Entity = e
	return t, nil
}

// Kernel returns the task's kernel, or nil if it has none.
func (t *Task) Kernel() Kernel { return t.kernel }

// SetKernel rebinds the task's kernel, e.g. after a migration.
func (t *Task) SetKernel(k Kernel) { t.kernel = k }

// AddInstr appends an instruction to the task's program.
func (t *Task) AddInstr(i Instr) { t.instrs = append(t.instrs, i) }

// Schedule starts (or resumes) the task at its current instruction.
func (t *Task) Schedule() {
	if t.cursor < len(t.instrs) {
		t.instrs[t.cursor].Schedule()
	}
}

// Deschedule suspends the task's in-flight instruction without advancing
// the cursor.
func (t *Task) Deschedule() {
	if t.cursor < len(t.instrs) {
		t.instrs[t.cursor].Deschedule()
	}
}

// OnInstrEnd advances the cursor and schedules the next instruction, if
// any. It is the hook SchedInstr.onEnd calls on its owning task before
// touching the kernel, mirroring the original's RTTask::onInstrEnd.
func (t *Task) OnInstrEnd() {
	t.cursor++
	if t.cursor < len(t.instrs) {
		t.instrs[t.cursor].Schedule()
		return
	}
	if t.onRelease != nil {
		t.onRelease()
	}
}

// NewRun resets the task to its first instruction at the start of every
// replica.
func (t *Task) NewRun() { t.cursor = 0 }

// EndRun is a no-op: a task carries no cross-replica state beyond what
// NewRun already resets.
func (t *Task) EndRun() {}
