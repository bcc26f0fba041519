// Package config defines the format-agnostic configuration model for the
// runtime, along with the Loader interface implemented by format-specific
// packages. The model is the single source of truth the app layer feeds into
// the host; nothing downstream of it knows which format it came from.
package config
