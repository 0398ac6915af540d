package runner

import (
	"context"
	"fmt"
	"time"

	"cutcheck/internal/core/domain"
	"cutcheck/internal/core/port"
	"cutcheck/internal/core/service"

	"github.com/rs/zerolog/log"
)

type Runner struct {
	registry port.CheckRegistry
	recorder *service.RunRecorder
	timeout  time.Duration
}

func New(registry port.CheckRegistry, recorder *service.RunRecorder, timeout time.Duration) *Runner {
	return &Runner{registry: registry, recorder: recorder, timeout: timeout}
}

// Run executes the selected checks sequentially and returns the run summary.
// An empty selection runs every registered check. A failing check is recorded
// and does not stop the remaining ones.
func (r *Runner) Run(ctx context.Context, names []string) domain.RunSummary {
	if len(names) == 0 {
		names = r.registry.ListChecks()
	}

	log.Info().Strs("checks", names).Str("run", r.recorder.GetRunID()).Msg("starting run")

	for _, name := range names {
		c, err := r.registry.Get(name)
		if err != nil {
			log.Error().Str("check", name).Msg("no check with this name")
			r.recorder.Record(name, 0, fmt.Errorf("no check with this name: %w", err))
			continue
		}

		start := time.Now()
		err = c.Run(ctx, r.timeout)
		duration := time.Since(start)

		if err != nil {
			log.Error().Err(err).Str("check", name).Dur("duration", duration).Msg("check failed")
		} else {
			log.Info().Str("check", name).Dur("duration", duration).Msg("check passed")
		}

		r.recorder.Record(name, duration, err)
	}

	return r.recorder.Summary()
}
