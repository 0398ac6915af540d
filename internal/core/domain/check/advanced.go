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

// Advanced exercises the optional removal tunables on one shared session:
// alpha matting, mask post-processing and an opaque background fill. Backends
// without one of the options fail that step only.
type Advanced struct {
	engine   port.Engine
	samples  port.SampleSource
	store    port.ArtifactStore
	recorder service.Recorder
	model    string
	name     string
}

func NewAdvanced(engine port.Engine, samples port.SampleSource, store port.ArtifactStore,
	recorder service.Recorder, model, name string) *Advanced {
	return &Advanced{engine: engine, samples: samples, store: store, recorder: recorder,
		model: model, name: name}
}

func (a *Advanced) GetName() string {
	return a.name
}

func (a *Advanced) Run(ctx context.Context, timeout time.Duration) error {
	l := log.With().
		Str("check", a.GetName()).
		Str("model", a.model).
		Logger()

	l.Info().Msg("running check")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	paths, err := a.samples.FindSamples()
	if err != nil {
		return err
	}
	sample := paths[0]

	img, err := a.samples.Load(sample)
	if err != nil {
		return err
	}

	session, err := a.engine.NewSession(ctx, a.model)
	if err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}
	defer closeSession(session)

	steps := []struct {
		prefix string
		opts   domain.Options
	}{
		{prefix: "matting", opts: domain.MattingOptions()},
		{prefix: "postprocess", opts: domain.Options{PostProcessMask: true}},
		{prefix: "whitebg", opts: domain.Options{BackgroundColor: &domain.White}},
	}

	failed := 0
	for _, step := range steps {
		l.Info().Str("step", step.prefix).Str("sample", sample).Msg("removing background")

		if err := a.runStep(ctx, session, step.prefix, sample, img, step.opts); err != nil {
			l.Error().Err(err).Str("step", step.prefix).Msg("option run failed")
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d option runs failed", failed, len(steps))
	}

	return nil
}

func (a *Advanced) runStep(ctx context.Context, session port.Session, prefix, sample string,
	img image.Image, opts domain.Options) error {
	out, err := session.Remove(ctx, img, opts)
	if err != nil {
		return fmt.Errorf("failed to remove background: %w", err)
	}

	name := fmt.Sprintf("%s_%s.png", prefix, stem(sample))
	if _, err := a.store.SaveImage(out, name); err != nil {
		return err
	}

	return recordArtifact(a.store, a.recorder, a.GetName(), name)
}
