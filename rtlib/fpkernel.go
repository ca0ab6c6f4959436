package rtlib

// FPKernel is a minimal fixed-priority kernel: tasks are ordered once,
// at registration time, by an explicit priority number (lower runs
// first), and DisableThreshold/Dispatch only ever touch that static
// ordering. It exists to drive SchedInstr end-to-end without pulling in
// a full preemptive scheduler.
type FPKernel struct {
	name string

	tasks      []*Task
	priorities map[*Task]int
	running    *Task

	dispatches int
}

// NewFPKernel creates an empty fixed-priority kernel named name.
func NewFPKernel(name string) *FPKernel {
	return &FPKernel{name: name, priorities: make(map[*Task]int)}
}

// Name identifies the kernel in error messages.
func (k *FPKernel) Name() string { return k.name }

// AddTask registers t at the given priority (lower value means higher
// priority) and binds the kernel onto the task.
func (k *FPKernel) AddTask(t *Task, priority int) {
	k.tasks = append(k.tasks, t)
	k.priorities[t] = priority
	t.SetKernel(k)
}

// DisableThreshold clears the currently running task, the fixed-priority
// equivalent of lowering a preemption threshold back to the task's own
// priority: once an instruction ends, t no longer blocks lower-priority
// tasks from being picked.
func (k *FPKernel) DisableThreshold(t *Task) {
	if k.running == t {
		k.running = nil
	}
}

// Dispatch picks the highest-priority task with a pending instruction
// and schedules it, descheduling whatever was running before if it
// changed.
func (k *FPKernel) Dispatch() {
	k.dispatches++

	var next *Task
	best := int(^uint(0) >> 1) // max int
	for _, t := range k.tasks {
		if t.cursor >= len(t.instrs) {
			continue
		}
		if pr := k.priorities[t]; pr < best {
			best = pr
			next = t
		}
	}

	if next == k.running {
		return
	}
	if k.running != nil {
		k.running.Deschedule()
	}
	k.running = next
	if next != nil {
		next.Schedule()
	}
}

// Dispatches reports how many times Dispatch has run, mostly useful for
// tests asserting call order.
func (k *FPKernel) Dispatches() int { return k.dispatches }

// Running returns the task FPKernel currently believes is executing, or
// nil.
func (k *FPKernel) Running() *Task { return k.running }
