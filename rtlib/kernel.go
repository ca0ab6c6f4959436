// Package rtlib is the thin real-time scheduling layer built on top of
// engine: tasks, instructions, and the scheduling-instruction hook that
// demonstrates the interaction between a task, its kernel, and the event
// queue.
package rtlib

import (
	"fmt"

	"github.com/balsini/RTSIM/engine"
)

// Kernel is the capability-free marker every scheduler kernel
// implementation satisfies. A Task's kernel is stored as this narrow
// interface; instructions that need more ask for a specific capability
// (e.g. LoweringCapable) via a type assertion, replacing the original's
// dynamic_cast<RTKernel*> with an explicit, named query (design note:
// "the kernel either satisfies LoweringCapable or it does not").
type Kernel interface {
	Name() string
}

// LoweringCapable is the capability SchedInstr.onEnd needs: lower the
// owning task's preemption threshold, then dispatch (re-evaluate which
// task should run next).
type LoweringCapable interface {
	Kernel
	DisableThreshold(t *Task)
	Dispatch()
}

// AsLoweringCapable narrows k to LoweringCapable, returning
// engine.ErrKernelMismatch if k is nil or does not implement it.
func AsLoweringCapable(k Kernel) (LoweringCapable, error) {
	if k == nil {
		return nil, fmt.Errorf("%w: task has no kernel", engine.ErrKernelMismatch)
	}
	lc, ok := k.(LoweringCapable)
	if !ok {
		return nil, fmt.Errorf("%w: kernel %q is not LoweringCapable", engine.ErrKernelMismatch, k.Name())
	}
	return lc, nil
}
