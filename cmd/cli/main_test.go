package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/tickcore/internal/cli"
	"github.com/vk/tickcore/internal/host"
)

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("bounded run with built-in defaults", func(t *testing.T) {
		var out bytes.Buffer
		err := run(ctx, &out, []string{"-ticks", "3", "-log-level", "error"})
		assert.NoError(t, err)
	})

	t.Run("manifest drives the run", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "runtime.hcl")
		require.NoError(t, os.WriteFile(path, []byte(`
engine {
  features   = ["core", "counter"]
  tick_limit = 2
}
`), 0o644))

		var out bytes.Buffer
		err := run(ctx, &out, []string{"-log-level", "error", path})
		assert.NoError(t, err)
	})

	t.Run("help is a clean exit", func(t *testing.T) {
		var out bytes.Buffer
		err := run(ctx, &out, []string{"-h"})
		assert.NoError(t, err)
		assert.Equal(t, cli.ExitOK, cli.ExitCodeFor(err))
	})

	t.Run("bad flag maps to the usage exit code", func(t *testing.T) {
		var out bytes.Buffer
		err := run(ctx, &out, []string{"-log-format", "xml"})
		require.Error(t, err)
		assert.Equal(t, cli.ExitUsage, cli.ExitCodeFor(err))
	})

	t.Run("missing manifest maps to the startup exit code", func(t *testing.T) {
		var out bytes.Buffer
		err := run(ctx, &out, []string{filepath.Join(t.TempDir(), "absent.hcl")})
		var startupErr *host.StartupError
		require.ErrorAs(t, err, &startupErr)
		assert.Equal(t, cli.ExitStartup, cli.ExitCodeFor(err))
	})

	t.Run("unknown feature maps to the startup exit code", func(t *testing.T) {
		var out bytes.Buffer
		err := run(ctx, &out, []string{"-features", "ghost", "-ticks", "1", "-log-level", "error"})
		require.Error(t, err)
		assert.Equal(t, cli.ExitStartup, cli.ExitCodeFor(err))
	})
}
