// Package subsystem defines the contract between the runtime core and the
// pluggable units of work it composes. A subsystem is anything implementing
// the three-phase lifecycle (Init, Tick, Shutdown) together with a static
// Descriptor declaring its identity, its resource reads and writes, and the
// subsystems it depends on.
//
// The core is written entirely against this contract; it never references a
// concrete subsystem type. Concrete implementations live under modules/ and
// are selected at startup by the enabled feature set.
package subsystem
