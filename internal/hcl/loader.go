package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/tickcore/internal/config"
	"github.com/vk/tickcore/internal/ctxlog"
	"github.com/vk/tickcore/internal/schema"
)

// Loader parses HCL runtime manifests into the format-agnostic config model.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the manifest at path and translates it into a config.Model.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading runtime manifest.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, diags)
	}

	var manifest schema.Manifest
	if diags := gohcl.DecodeBody(file.Body, nil, &manifest); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", path, diags)
	}

	model, err := l.translate(&manifest)
	if err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}

	logger.Debug("Manifest loaded.", "features", model.Features, "subsystem_blocks", len(model.Subsystems))
	return model, nil
}
