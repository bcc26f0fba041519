// Package registry provides the capability table for the runtime: the mapping
// from feature identifiers to subsystem constructors and their descriptors.
//
// The registry is populated once during application startup, before any tick
// runs, by compiled-in modules implementing the Module interface. Building a
// registry against an enabled feature set yields the ordered subsystem
// instances for that build configuration; the core never references concrete
// subsystem types directly.
package registry
