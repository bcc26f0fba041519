package app

import (
	"context"
	"errors"

	"github.com/vk/tickcore/internal/ctxlog"
	"github.com/vk/tickcore/internal/host"
	"github.com/vk/tickcore/internal/scheduler"
	"github.com/vk/tickcore/internal/subsystem"
)

// Run executes a full runtime cycle: start the host, drive ticks until the
// stop condition, then shut down. The returned error is nil on a clean run
// (including cooperative cancellation) and otherwise one of the typed errors
// cmd/cli maps onto exit statuses.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	features := subsystem.NewFeatureSet(a.cfg.Features...)
	if len(features) == 0 {
		features = subsystem.NewFeatureSet(a.model.Features...)
	}
	if len(features) == 0 {
		features = DefaultFeatures()
	}

	policyStr := a.cfg.FailurePolicy
	if policyStr == "" {
		policyStr = a.model.FailurePolicy
	}
	policy, err := scheduler.ParseFailurePolicy(policyStr)
	if err != nil {
		return &host.StartupError{Err: err}
	}

	tickLimit := a.cfg.TickLimit
	if tickLimit == nil {
		tickLimit = a.model.TickLimit
	}
	var stop host.StopCondition
	if tickLimit != nil {
		stop = host.TickLimit(*tickLimit)
	}

	if a.cfg.HealthcheckPort > 0 {
		a.startHealthcheckServer(ctx)
		defer a.closeHealthcheckServer(ctx)
	}

	a.logger.Info("Starting runtime.",
		"features", []string(features), "policy", policy.String(),
		"parallel", a.cfg.Parallel || a.model.Parallel)

	handle, err := host.Start(ctx, host.Options{
		Registry: a.registry,
		Features: features,
		Policy:   policy,
		Parallel: a.cfg.Parallel || a.model.Parallel,
		Settings: a.model.Subsystems,
	})
	if err != nil {
		return err
	}
	a.handle.Store(handle)

	runErr := handle.RunUntil(ctx, stop)
	if errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded) {
		a.logger.Info("Run cancelled, shutting down.")
		runErr = nil
	}

	diags := handle.Shutdown(ctx)
	for _, diag := range diags {
		a.logger.Warn("Shutdown diagnostic.", "error", diag)
	}
	if failures := handle.Failures(); len(failures) > 0 {
		a.logger.Warn("Run recorded tick failures.", "count", len(failures))
	}

	if runErr != nil {
		return runErr
	}
	a.logger.Info("Run finished.", "ticks", handle.TickIndex())
	return nil
}
