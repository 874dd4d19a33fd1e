package service

import (
	"context"
	"fmt"
	"time"

	"raffle_deployer/internal/app/port"
	"raffle_deployer/internal/pkg/metrics"
	"raffle_deployer/internal/pkg/utils"

	"github.com/google/uuid"
)

// ScriptRunner runs registered deploy scripts in order, filtered by tags.
type ScriptRunner struct {
	scripts []port.DeployScript
	logger  port.Logger
	metrics *metrics.Metrics
}

// NewScriptRunner creates a runner; scripts run in the order given.
func NewScriptRunner(logger port.Logger, m *metrics.Metrics, scripts ...port.DeployScript) *ScriptRunner {
	return &ScriptRunner{scripts: scripts, logger: logger, metrics: m}
}

// Selected returns the scripts a run with tags would execute. No tags selects everything.
func (r *ScriptRunner) Selected(tags []string) []port.DeployScript {
	if len(tags) == 0 {
		return append([]port.DeployScript(nil), r.scripts...)
	}
	var out []port.DeployScript
	for _, s := range r.scripts {
		if utils.Intersects(s.Tags(), tags) {
			out = append(out, s)
		}
	}
	return out
}

// Run executes the selected scripts sequentially. The first failure stops the run
// and is returned wrapped with the script name; nothing is retried.
func (r *ScriptRunner) Run(ctx context.Context, env port.ScriptEnv, tags []string) error {
	runID := uuid.NewString()
	log := r.logger.With("run_id", runID, "network", env.Network.Name)

	selected := r.Selected(tags)
	if len(selected) == 0 {
		log.Warn("No deploy scripts match the requested tags", "tags", tags)
		return nil
	}
	log.Info("Starting deploy run", "scripts", len(selected), "tags", tags)

	for _, s := range selected {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("deploy run cancelled before %s: %w", s.Name(), err)
		}

		start := time.Now()
		log.Debug("Running deploy script", "script", s.Name())
		if err := s.Run(ctx, env); err != nil {
			r.count(s.Name(), metrics.OutcomeFailed)
			log.Error("Deploy script failed", "script", s.Name(), "error", err)
			return fmt.Errorf("deploy script %s: %w", s.Name(), err)
		}
		r.count(s.Name(), metrics.OutcomeOK)
		log.Debug("Deploy script finished", "script", s.Name(), "elapsed", time.Since(start))
	}

	log.Info("Deploy run finished")
	return nil
}

func (r *ScriptRunner) count(script, outcome string) {
	if r.metrics != nil {
		r.metrics.ScriptRuns.WithLabelValues(script, outcome).Inc()
	}
}
