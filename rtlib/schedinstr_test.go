package rtlib

import (
	"testing"

	"github.com/balsini/RTSIM/engine"
)

// TestScenarioS5SchedInstrCallOrder: onEnd must call
// father.OnInstrEnd, then the kernel's DisableThreshold, then Dispatch,
// and only then process threEvt, all observed at time=5.
func TestScenarioS5SchedInstrCallOrder(t *testing.T) {
	sim := engine.NewSimulation(nil)

	kernel := NewFPKernel("fp")
	task, err := NewTask(sim, "T", kernel)
	if err != nil {
		t.Fatal(err)
	}
	kernel.AddTask(task, 0)

	var order []string
	var times []engine.Tick

	instr := NewSchedInstr(sim, task, 5)
	task.AddInstr(instr)

	marker, err := NewTask(sim, "marker", kernel)
	if err != nil {
		t.Fatal(err)
	}
	kernel.AddTask(marker, 1)
	markerInstr := NewSchedInstr(sim, marker, 1)
	marker.AddInstr(markerInstr)

	endTrace := recordingTrace{label: "onEnd", order: &order, times: &times}
	instr.SetTrace(&endTrace)

	threTrace := recordingTrace{label: "threEvt", order: &order, times: &times}
	instr.threEvt.AddTrace(&threTrace)

	task.Schedule()
	kernel.Dispatch()

	if _, err := sim.RunTo(5); err != nil {
		t.Fatal(err)
	}

	if kernel.Dispatches() < 2 {
		t.Fatalf("expected Dispatch to have run at least twice (initial + onEnd), got %d", kernel.Dispatches())
	}

	if len(order) < 2 || order[0] != "onEnd" || order[1] != "threEvt" {
		t.Fatalf("expected onEnd to fire before threEvt, got %v", order)
	}
	for _, tm := range times {
		if tm != 5 {
			t.Fatalf("expected every probe at time=5, got %s", tm)
		}
	}
}

func TestSchedInstrKernelMismatchFails(t *testing.T) {
	sim := engine.NewSimulation(nil)

	task, err := NewTask(sim, "T", nil) // no kernel bound
	if err != nil {
		t.Fatal(err)
	}

	instr := NewSchedInstr(sim, task, 5)
	task.AddInstr(instr)
	task.Schedule()

	_, err = sim.RunTo(5)
	if err == nil {
		t.Fatal("expected KernelMismatch error to propagate from SimStep")
	}
}

type recordingTrace struct {
	label string
	order *[]string
	times *[]engine.Tick
}

func (r *recordingTrace) Probe(e *engine.Event) {
	*r.order = append(*r.order, r.label)
	*r.times = append(*r.times, e.LastTime())
}
