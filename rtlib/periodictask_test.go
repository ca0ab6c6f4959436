package rtlib

import (
	"testing"

	"github.com/balsini/RTSIM/engine"
)

func TestPeriodicTaskReleasesEveryPeriod(t *testing.T) {
	sim := engine.NewSimulation(nil)
	kernel := NewFPKernel("fp")

	task, err := NewPeriodicTask(sim, "periodic", kernel, 0, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	kernel.AddTask(task.Task, 0)

	var releases int
	task.AddInstr(countingInstr{fn: func() { releases++ }})

	if err := sim.Run(35, 1); err != nil {
		t.Fatal(err)
	}

	if releases != 4 {
		t.Fatalf("expected one release per period (t=0,10,20,30), got %d", releases)
	}
}

func TestCreatePeriodicTaskVarOffByOnePanicsOnShortParams(t *testing.T) {
	sim := engine.NewSimulation(nil)
	kernel := NewFPKernel("fp")

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected the off-by-one par[3] read to panic on a 3-element parameter list")
		}
	}()
	_, _ = CreatePeriodicTaskVar(sim, kernel, []string{"0", "10", "10"})
}

func TestCreatePeriodicTaskVarWithNameSucceeds(t *testing.T) {
	sim := engine.NewSimulation(nil)
	kernel := NewFPKernel("fp")

	pt, err := CreatePeriodicTaskVar(sim, kernel, []string{"0", "10", "10", "named"})
	if err != nil {
		t.Fatal(err)
	}
	if pt.Name() != "named" {
		t.Fatalf("expected name %q, got %q", "named", pt.Name())
	}
}

type countingInstr struct {
	fn func()
}

func (c countingInstr) Schedule() {
	if c.fn != nil {
		c.fn()
	}
}
func (c countingInstr) Deschedule()           {}
func (c countingInstr) SetTrace(engine.Trace) {}
