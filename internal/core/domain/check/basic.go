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

// Basic removes the background from the first sample twice, once through the
// decoded image route and once through the raw bytes route.
type Basic struct {
	engine   port.Engine
	samples  port.SampleSource
	store    port.ArtifactStore
	recorder service.Recorder
	model    string
	name     string
}

func NewBasic(engine port.Engine, samples port.SampleSource, store port.ArtifactStore,
	recorder service.Recorder, model, name string) *Basic {
	return &Basic{engine: engine, samples: samples, store: store, recorder: recorder,
		model: model, name: name}
}

func (b *Basic) GetName() string {
	return b.name
}

func (b *Basic) Run(ctx context.Context, timeout time.Duration) error {
	l := log.With().
		Str("check", b.GetName()).
		Str("model", b.model).
		Logger()

	l.Info().Msg("running check")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	paths, err := b.samples.FindSamples()
	if err != nil {
		return err
	}
	sample := paths[0]

	session, err := b.engine.NewSession(ctx, b.model)
	if err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}
	defer closeSession(session)

	img, err := b.samples.Load(sample)
	if err != nil {
		return err
	}

	l.Info().Str("sample", sample).Msg("removing background")

	cutout, err := session.Remove(ctx, img, domain.Options{})
	if err != nil {
		return fmt.Errorf("failed to remove background: %w", err)
	}

	name := fmt.Sprintf("removed_%s.png", stem(sample))
	if _, err := b.store.SaveImage(cutout, name); err != nil {
		return err
	}
	if err := recordArtifact(b.store, b.recorder, b.GetName(), name); err != nil {
		return err
	}

	data, err := b.samples.LoadBytes(sample)
	if err != nil {
		return err
	}

	out, err := session.RemoveBytes(ctx, data, domain.Options{})
	if err != nil {
		return fmt.Errorf("failed to remove background from bytes: %w", err)
	}

	name = fmt.Sprintf("removed_bytes_%s.png", stem(sample))
	if _, err := b.store.SaveBytes(out, name); err != nil {
		return err
	}

	return recordArtifact(b.store, b.recorder, b.GetName(), name)
}
