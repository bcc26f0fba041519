package dag

import (
	"fmt"
	"strings"
)

// CycleError reports a dependency cycle. Path lists the identifiers along the
// cycle with the starting node repeated at the end, e.g. ["a", "b", "a"].
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Path, " -> "))
}
