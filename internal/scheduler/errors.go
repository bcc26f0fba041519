package scheduler

import "fmt"

// TickFailure records one subsystem failing one tick.
type TickFailure struct {
	Tick        uint64
	SubsystemID string
	Err         error
}

func (f TickFailure) String() string {
	return fmt.Sprintf("tick %d: subsystem %q: %v", f.Tick, f.SubsystemID, f.Err)
}

// FatalTickError is returned when the failure policy aborts the run.
type FatalTickError struct {
	Failure TickFailure
}

func (e *FatalTickError) Error() string {
	return fmt.Sprintf("run aborted: subsystem %q failed on tick %d: %v",
		e.Failure.SubsystemID, e.Failure.Tick, e.Failure.Err)
}

func (e *FatalTickError) Unwrap() error {
	return e.Failure.Err
}
