package check

import (
	"context"
	"fmt"
	"image"
	"time"

	"cutcheck/internal/core/domain"
	"cutcheck/internal/core/port"
	"cutcheck/internal/core/service"

	"github.com/rs/zerolog/log"
)

// Models runs a plain removal on the first sample once per known model. A
// failing model does not stop the remaining ones.
type Models struct {
	engine   port.Engine
	samples  port.SampleSource
	store    port.ArtifactStore
	recorder service.Recorder
	name     string
}

func NewModels(engine port.Engine, samples port.SampleSource, store port.ArtifactStore,
	recorder service.Recorder, name string) *Models {
	return &Models{engine: engine, samples: samples, store: store, recorder: recorder, name: name}
}

func (m *Models) GetName() string {
	return m.name
}

func (m *Models) Run(ctx context.Context, timeout time.Duration) error {
	l := log.With().Str("check", m.GetName()).Logger()

	l.Info().Msg("running check")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	paths, err := m.samples.FindSamples()
	if err != nil {
		return err
	}
	sample := paths[0]

	img, err := m.samples.Load(sample)
	if err != nil {
		return err
	}

	models := domain.SmokeModels()

	failed := 0
	for _, model := range models {
		l.Info().Str("model", model).Str("sample", sample).Msg("removing background")

		if err := m.runModel(ctx, model, sample, img); err != nil {
			l.Error().Err(err).Str("model", model).Msg("model run failed")
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d model runs failed", failed, len(models))
	}

	return nil
}

func (m *Models) runModel(ctx context.Context, model, sample string, img image.Image) error {
	session, err := m.engine.NewSession(ctx, model)
	if err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}
	defer closeSession(session)

	cutout, err := session.Remove(ctx, img, domain.Options{})
	if err != nil {
		return fmt.Errorf("failed to remove background: %w", err)
	}

	name := fmt.Sprintf("model_%s_%s.png", model, stem(sample))
	if _, err := m.store.SaveImage(cutout, name); err != nil {
		return err
	}

	return recordArtifact(m.store, m.recorder, m.GetName(), name)
}
