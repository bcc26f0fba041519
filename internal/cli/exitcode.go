package cli

import (
	"errors"

	"github.com/vk/tickcore/internal/dag"
	"github.com/vk/tickcore/internal/host"
	"github.com/vk/tickcore/internal/scheduler"
)

// Exit statuses per error category, so calling tooling can distinguish
// configuration bugs from runtime failures.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitStartup     = 10
	ExitCycle       = 11
	ExitTickFailure = 12
)

// ExitCodeFor maps an error from a run onto its exit status. The cycle check
// runs before the generic startup check because a CyclicDependency surfaces
// wrapped in a StartupError.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitOK
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var cycleErr *dag.CycleError
	if errors.As(err, &cycleErr) {
		return ExitCycle
	}
	var fatalTick *scheduler.FatalTickError
	if errors.As(err, &fatalTick) {
		return ExitTickFailure
	}
	var startupErr *host.StartupError
	if errors.As(err, &startupErr) {
		return ExitStartup
	}
	return ExitFailure
}
