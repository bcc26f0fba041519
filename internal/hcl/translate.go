package hcl

import (
	"fmt"

	"github.com/vk/tickcore/internal/config"
	"github.com/vk/tickcore/internal/schema"
	"github.com/vk/tickcore/internal/subsystem"
)

// translate converts the HCL-specific manifest schema into the agnostic model.
func (l *Loader) translate(manifest *schema.Manifest) (*config.Model, error) {
	model := config.New()

	if manifest.Engine != nil {
		model.Features = manifest.Engine.Features
		model.TickLimit = manifest.Engine.TickLimit
		model.FailurePolicy = manifest.Engine.FailurePolicy
		model.Parallel = manifest.Engine.Parallel
	}

	for _, block := range manifest.Subsystems {
		if _, dup := model.Subsystems[block.Name]; dup {
			return nil, fmt.Errorf("duplicate subsystem block %q", block.Name)
		}
		settings, err := extractSettings(block)
		if err != nil {
			return nil, err
		}
		model.Subsystems[block.Name] = settings
	}

	return model, nil
}

// extractSettings evaluates a subsystem block's attributes into cty values.
// Settings are literal values; expressions referencing variables are not
// part of the manifest language.
func extractSettings(block *schema.SubsystemBlock) (subsystem.Settings, error) {
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("subsystem block %q: %w", block.Name, diags)
	}

	settings := make(subsystem.Settings, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("subsystem block %q, setting %q: %w", block.Name, name, diags)
		}
		settings[name] = val
	}
	return settings, nil
}
