// Package schema holds the HCL-tagged structures for the runtime manifest.
// These are the raw decode targets; the hcl package translates them into the
// format-agnostic config model.
package schema

import "github.com/hashicorp/hcl/v2"

// EngineBlock is the top-level `engine` block controlling the run.
type EngineBlock struct {
	Features      []string `hcl:"features,optional"`
	TickLimit     *uint64  `hcl:"tick_limit,optional"`
	FailurePolicy string   `hcl:"failure_policy,optional"`
	Parallel      bool     `hcl:"parallel,optional"`
}

// SubsystemBlock carries one subsystem's settings as free-form attributes.
type SubsystemBlock struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// Manifest is the root structure of a runtime manifest file.
type Manifest struct {
	Engine     *EngineBlock      `hcl:"engine,block"`
	Subsystems []*SubsystemBlock `hcl:"subsystem,block"`
}
