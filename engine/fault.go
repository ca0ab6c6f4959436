package engine

// actionFault is the internal panic payload a handler uses to abort the
// current action and surface an error from SimStep/Run. It replaces the
// original's exception-typed control flow (design note: a failing
// handler becomes a recovered panic turned back into a normal error
// return, not C++-style unwinding through the call stack).
type actionFault struct{ err error }

// Fail aborts the handler currently running inside Event.action and
// surfaces err as the error SimStep (and therefore Run) returns. It must
// only be called from within a Handler's Doit.
func Fail(err error) {
	panic(actionFault{err: err})
}

// runAction invokes e.action(), recovering an actionFault panic into a
// normal error return. Any other panic propagates unchanged: RTSIM only
// ever intercepts faults it itself raised via Fail.
func runAction(e *Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if af, ok := r.(actionFault); ok {
				err = af.err
				return
			}
			panic(r)
		}
	}()
	e.action()
	return nil
}
