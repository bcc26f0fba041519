package subsystem

// CoreFeature is the mandatory feature present in every build configuration.
// The runtime host normalizes every requested feature set to include it.
const CoreFeature = "core"

// FeatureSet is an ordered, deduplicated set of feature identifiers. Order is
// significant: it is the declaration order used for deterministic tie-breaks.
type FeatureSet []string

// NewFeatureSet builds a FeatureSet from the given names, dropping empty
// strings and later duplicates while preserving first-seen order.
func NewFeatureSet(names ...string) FeatureSet {
	seen := make(map[string]struct{}, len(names))
	fs := make(FeatureSet, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		fs = append(fs, name)
	}
	return fs
}

// Has reports whether the set contains the named feature.
func (fs FeatureSet) Has(name string) bool {
	for _, f := range fs {
		if f == name {
			return true
		}
	}
	return false
}

// WithCore returns the set with the mandatory core feature prepended if absent.
func (fs FeatureSet) WithCore() FeatureSet {
	if fs.Has(CoreFeature) {
		return fs
	}
	out := make(FeatureSet, 0, len(fs)+1)
	out = append(out, CoreFeature)
	return append(out, fs...)
}
