package check

import (
	"context"
	"fmt"
	"time"

	"cutcheck/internal/core/domain"
	"cutcheck/internal/core/port"
	"cutcheck/internal/core/service"

	"github.com/rs/zerolog/log"
)

// cliModels is the reduced model list for command line runs, which download
// weights on first use.
var cliModels = []string{domain.ModelU2Net, domain.ModelU2NetP, domain.ModelISNetGeneral}

// CLI drives the installed rembg command line tool: version, usage text, a
// plain removal and a removal per model.
type CLI struct {
	cli      port.CLIRemover
	samples  port.SampleSource
	store    port.ArtifactStore
	recorder service.Recorder
	name     string
}

func NewCLI(cli port.CLIRemover, samples port.SampleSource, store port.ArtifactStore,
	recorder service.Recorder, name string) *CLI {
	return &CLI{cli: cli, samples: samples, store: store, recorder: recorder, name: name}
}

func (c *CLI) GetName() string {
	return c.name
}

func (c *CLI) Run(ctx context.Context, timeout time.Duration) error {
	l := log.With().Str("check", c.GetName()).Logger()

	l.Info().Msg("running check")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	version, err := c.cli.Version(ctx)
	if err != nil {
		return fmt.Errorf("failed to read version: %w", err)
	}
	l.Info().Str("version", version).Msg("command line tool found")

	help, err := c.cli.Help(ctx)
	if err != nil {
		return fmt.Errorf("failed to read usage text: %w", err)
	}
	l.Debug().Int("length", len(help)).Msg("usage text received")

	paths, err := c.samples.FindSamples()
	if err != nil {
		return err
	}
	sample := paths[0]

	img, err := c.samples.Load(sample)
	if err != nil {
		return err
	}

	l.Info().Str("sample", sample).Msg("removing background")

	name := fmt.Sprintf("cli_%s.png", stem(sample))
	if err := c.cli.Remove(ctx, img, c.store.OutPath(name), "", domain.Options{}); err != nil {
		return fmt.Errorf("failed to remove background: %w", err)
	}
	if err := recordArtifact(c.store, c.recorder, c.GetName(), name); err != nil {
		return err
	}

	failed := 0
	for _, model := range cliModels {
		l.Info().Str("model", model).Str("sample", sample).Msg("removing background")

		name := fmt.Sprintf("cli_%s_%s.png", model, stem(sample))
		if err := c.cli.Remove(ctx, img, c.store.OutPath(name), model, domain.Options{}); err != nil {
			l.Error().Err(err).Str("model", model).Msg("model run failed")
			failed++
			continue
		}
		if err := recordArtifact(c.store, c.recorder, c.GetName(), name); err != nil {
			l.Error().Err(err).Str("model", model).Msg("model run failed")
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d model runs failed", failed, len(cliModels))
	}

	return nil
}
