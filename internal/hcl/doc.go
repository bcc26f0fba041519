// Package hcl implements the config.Loader interface for HCL manifests.
package hcl
