package engine

import "errors"

// Error kinds checked with errors.Is;
// call sites that need context wrap them with fmt.Errorf("...: %w", ...).
var (
	// ErrQueueDuplicate is returned by Post when the event is already
	// enqueued; re-posting without a prior Drop is a fault.
	ErrQueueDuplicate = errors.New("event already in queue")

	// ErrPostInPast is returned by Post when the requested time is
	// strictly before the current global time.
	ErrPostInPast = errors.New("cannot post an event in the past")

	// ErrNoMoreEvents signals an empty queue to the driver. It is a
	// normal termination condition, not a programming error: run_to and
	// Run catch it and stop the current replica.
	ErrNoMoreEvents = errors.New("no more events in queue")

	// ErrNotFound is returned by the entity registry when a name has no
	// binding.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicateName is returned by Registry.Register when name is
	// already bound to a live entity.
	ErrDuplicateName = errors.New("entity name already registered")

	// ErrParse is returned by a createInstance factory invoked with the
	// wrong arity or malformed parameters.
	ErrParse = errors.New("wrong number of parameters")

	// ErrKernelMismatch is returned when a task's kernel does not exist
	// or does not satisfy the capability an instruction requires.
	ErrKernelMismatch = errors.New("kernel not found or missing required capability")

	// ErrIO covers a file that cannot be read (a DetVar values file, a
	// scenario file) and a malformed value in a DetVar file.
	ErrIO = errors.New("io error")
)
