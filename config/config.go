// Package config loads scenario descriptions from YAML files: the
// horizon, replica count, random seed, and the set of periodic tasks to
// register before a run starts.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/balsini/RTSIM/engine"
	"github.com/balsini/RTSIM/rtlib"
)

// TaskSpec describes one periodic task entry in a scenario file.
type TaskSpec struct {
	Name         string `yaml:"name"`
	InitialDelay int64  `yaml:"initialDelay"`
	Deadline     int64  `yaml:"deadline"`
	Period       int64  `yaml:"period"`
	Priority     int    `yaml:"priority"`
	Duration     int64  `yaml:"duration"`
	QueueLen     int    `yaml:"queueLen"`
	Aborting     *bool  `yaml:"aborting"`
}

// Scenario is the root document of a scenario file.
type Scenario struct {
	Seed    int64      `yaml:"seed"`
	Horizon int64      `yaml:"horizon"`
	NRuns   int        `yaml:"nRuns"`
	Kernel  string     `yaml:"kernel"`
	Tasks   []TaskSpec `yaml:"tasks"`
}

// Load reads and strictly decodes a scenario file at path: unknown
// fields are a load error, not a silent no-op, matching the same
// "config typos must fail loudly" stance as the rest of the ambient
// stack.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrIO, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: decoding scenario %q: %v", engine.ErrParse, path, err)
	}
	return &s, nil
}

// Build instantiates the scenario's tasks against sim and kernel,
// returning the constructed tasks in file order.
func (s *Scenario) Build(sim *engine.Simulation, kernel rtlib.Kernel) ([]*rtlib.PeriodicTask, error) {
	fp, _ := kernel.(*rtlib.FPKernel)

	tasks := make([]*rtlib.PeriodicTask, 0, len(s.Tasks))
	for _, ts := range s.Tasks {
		pt, err := rtlib.NewPeriodicTask(sim, ts.Name, kernel,
			engine.Tick(ts.InitialDelay), engine.Tick(ts.Deadline), engine.Tick(ts.Period))
		if err != nil {
			return nil, fmt.Errorf("building task %q: %w", ts.Name, err)
		}
		if ts.QueueLen > 0 {
			pt.SetQueueLen(ts.QueueLen)
		}
		if ts.Aborting != nil {
			pt.SetAborting(*ts.Aborting)
		}

		instr := rtlib.NewSchedInstr(sim, pt.Task, engine.Tick(ts.Duration))
		pt.AddInstr(instr)

		if fp != nil {
			fp.AddTask(pt.Task, ts.Priority)
		}

		tasks = append(tasks, pt)
	}
	return tasks, nil
}
