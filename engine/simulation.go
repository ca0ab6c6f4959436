package engine

import (
	"errors"

	"github.com/sirupsen/logrus"
)

const debugLevelSimul = "Simul"

// Simulation is the top-level driver: event queue, entity registry, and
// global time, bundled into one value instead of the original's
// process-wide singleton (design note: tests get to build isolated
// simulations instead of sharing one global Simulation::getInstance()).
type Simulation struct {
	Dbg *DebugStream

	queue    *eventQueue
	registry *Registry
	counter  uint64

	globalTime Tick
	numRuns    int
	actRuns    int
	end        bool

	log *logrus.Logger
}

// NewSimulation creates an empty simulation bound to log (nil uses
// logrus.StandardLogger()).
func NewSimulation(log *logrus.Logger) *Simulation {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Simulation{
		Dbg:      NewDebugStream(log),
		queue:    newEventQueue(),
		registry: NewRegistry(),
		log:      log,
	}
}

// Registry returns the entity registry bound to this simulation.
func (s *Simulation) Registry() *Registry { return s.registry }

// NewEvent creates an event bound to this simulation.
func (s *Simulation) NewEvent(handler Handler, priority int) *Event {
	return NewEvent(s, handler, priority)
}

// GetTime returns the current simulation time.
func (s *Simulation) GetTime() Tick { return s.globalTime }

// QueueLen reports how many events are currently pending, mostly useful
// for tests and debugging.
func (s *Simulation) QueueLen() int { return s.queue.Len() }

// InitRuns resets globalTime and the end flag, and records the intended
// replica count. It does not touch any RandomGen state: the RNG seed
// persists across replicas within a run by contract.
func (s *Simulation) InitRuns(nRuns int) {
	s.numRuns = nRuns
	s.globalTime = 0
	s.end = false
}

// InitSingleRun resets globalTime and multicasts NewRun to every
// registered entity, in registration order.
func (s *Simulation) InitSingleRun() {
	s.globalTime = 0
	s.registry.CallNewRun()
}

// EndSingleRun multicasts EndRun and clears the event queue.
func (s *Simulation) EndSingleRun() {
	s.registry.CallEndRun()
	s.ClearEventQueue()
}

// SimStep removes the head of the queue, advances globalTime to its
// firing time, and runs its action. It returns ErrNoMoreEvents if the
// queue is empty, or whatever error a handler raised via Fail.
func (s *Simulation) SimStep() (Tick, error) {
	s.Dbg.Enter(debugLevelSimul, s.globalTime, "Simulation.SimStep")
	defer s.Dbg.Exit()

	head := s.queue.peek()
	if head == nil {
		return 0, ErrNoMoreEvents
	}
	head.Drop()

	mytime := head.time
	s.globalTime = mytime

	if err := runAction(head); err != nil {
		return mytime, err
	}
	// head.disposable: nothing further to do. The event has already
	// been unlinked from the queue by Drop, and dropping every other
	// reference to it (as a disposable event's handler must) lets the
	// garbage collector reclaim it. This is the Go rendering of
	// "the engine deletes it": ownership, not memory, is what the
	// disposable flag signals.

	return mytime, nil
}

// RunTo repeatedly steps the simulation while the next event's time is <=
// stop. On an empty queue it logs a diagnostic and stops; it clamps
// globalTime up to stop if the simulation finished early. Any error other
// than ErrNoMoreEvents is returned after clearing the event queue, per
// its error-propagation policy.
func (s *Simulation) RunTo(stop Tick) (Tick, error) {
	for {
		head := s.queue.peek()
		if head == nil {
			s.log.WithField("time", s.globalTime).Warn("no more events in queue")
			break
		}
		if head.time > stop {
			break
		}
		t, err := s.SimStep()
		if err != nil {
			if errors.Is(err, ErrNoMoreEvents) {
				break
			}
			s.ClearEventQueue()
			return s.globalTime, err
		}
		s.globalTime = t
	}

	if s.globalTime < stop {
		s.globalTime = stop
	}
	return s.globalTime, nil
}

// ClearEventQueue drops every pending event and resets globalTime to 0.
// It is called at the end of each replica, and is also safe to call from
// an exception-recovery path to return the engine to a re-startable
// state.
func (s *Simulation) ClearEventQueue() {
	for {
		head := s.queue.peek()
		if head == nil {
			break
		}
		head.Drop()
	}
	s.globalTime = 0
}

// Run is the top-level driver. The nRuns argument
// encodes a batch-control mode:
//
//	>= 3   : run that many replicas, init/terminate stats normally
//	  2    : warn, then run 3 (stats cannot be initialized with 2 runs)
//	  1    : single run, init and terminate
//	  0    : last run in a batch: do not re-init, do terminate
//	 -1    : middle run in a batch: neither init nor terminate
//	< -1   : first run in a batch: init, do not terminate
//
// Any error other than ErrNoMoreEvents aborts the current replica and is
// returned after clearing the event queue.
func (s *Simulation) Run(length Tick, nRuns int) error {
	s.Dbg.Enter(debugLevelSimul, s.globalTime, "Simulation.Run")
	defer s.Dbg.Exit()

	initializeRuns := true
	terminateSim := true
	var numRuns int

	switch {
	case nRuns < -1:
		s.log.Info("initialize stats")
		initializeRuns = true
		terminateSim = false
		numRuns = 1
	case nRuns == -1:
		s.log.Info("will not initialize stats")
		initializeRuns = false
		terminateSim = false
		numRuns = 1
	case nRuns == 0:
		s.log.Info("last sim in the batch")
		initializeRuns = false
		terminateSim = true
		numRuns = 1
	case nRuns == 1:
		s.log.Info("one single run")
		initializeRuns = true
		terminateSim = true
		numRuns = 1
	default:
		numRuns = nRuns
	}

	// The rationale for why exactly 2 runs is unsupported is asserted by
	// the original but never explained; behavior is preserved as-is
	// pending clarification.
	if numRuns == 2 {
		s.log.Warn("simulation cannot be initialized with 2 runs; executing 3 runs instead")
		numRuns = 3
	}

	if initializeRuns {
		s.InitRuns(numRuns)
	}

	s.actRuns = 0
	for s.actRuns < numRuns {
		s.log.WithField("run", s.actRuns).Info("starting run")

		s.InitSingleRun()

		for s.globalTime < length {
			t, err := s.SimStep()
			if err != nil {
				if errors.Is(err, ErrNoMoreEvents) {
					s.log.WithField("time", s.globalTime).Warn("no more events in queue")
					break
				}
				s.ClearEventQueue()
				return err
			}
			s.globalTime = t
		}

		s.EndSingleRun()
		s.actRuns++
	}

	if terminateSim {
		s.end = true
		s.endSim()
	}
	return nil
}

func (s *Simulation) endSim() {
	s.log.Info("simulation complete")
}
