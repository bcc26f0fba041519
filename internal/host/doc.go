// Package host is the top-level owner of a runtime instance. Start assembles
// registry, arena, and scheduler for an enabled feature set, initializes the
// subsystems in tick order, and hands back a Handle. The Handle drives the
// tick loop until a stop condition and tears everything down deterministically
// in reverse tick order.
package host
