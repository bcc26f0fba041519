package app

import (
	"github.com/vk/tickcore/internal/registry"
	"github.com/vk/tickcore/internal/subsystem"
	"github.com/vk/tickcore/modules/clock"
	"github.com/vk/tickcore/modules/counter"
	"github.com/vk/tickcore/modules/journal"
	"github.com/vk/tickcore/modules/telemetry"
)

// coreModules is the definitive list of subsystem modules compiled into the
// binary. Registration makes them available; only the enabled feature set
// selects them into a run.
var coreModules = []registry.Module{
	&clock.Module{},
	&counter.Module{},
	&journal.Module{},
	&telemetry.Module{},
}

// DefaultFeatures is the default build configuration: every bundled
// subsystem enabled.
func DefaultFeatures() subsystem.FeatureSet {
	return subsystem.NewFeatureSet(clock.Feature, counter.Feature, telemetry.Feature, journal.Feature)
}

// MinimalFeatures is the no-default-features configuration: nothing beyond
// the mandatory core.
func MinimalFeatures() subsystem.FeatureSet {
	return subsystem.NewFeatureSet(clock.Feature)
}
