package check

import (
	"context"
	"fmt"
	"time"

	"cutcheck/internal/core/domain"
	"cutcheck/internal/core/matte"
	"cutcheck/internal/core/port"
	"cutcheck/internal/core/service"

	"github.com/rs/zerolog/log"
)

// Background keeps the background instead of the subject, through two routes:
// inverting the foreground mask and applying it as alpha, and punching the
// cutout out of the original.
type Background struct {
	engine   port.Engine
	samples  port.SampleSource
	store    port.ArtifactStore
	recorder service.Recorder
	model    string
	name     string
}

func NewBackground(engine port.Engine, samples port.SampleSource, store port.ArtifactStore,
	recorder service.Recorder, model, name string) *Background {
	return &Background{engine: engine, samples: samples, store: store, recorder: recorder,
		model: model, name: name}
}

func (b *Background) GetName() string {
	return b.name
}

func (b *Background) Run(ctx context.Context, timeout time.Duration) error {
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

	img, err := b.samples.Load(sample)
	if err != nil {
		return err
	}

	session, err := b.engine.NewSession(ctx, b.model)
	if err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}
	defer closeSession(session)

	l.Info().Str("sample", sample).Msg("extracting foreground mask")

	maskImg, err := session.Remove(ctx, img, domain.Options{OnlyMask: true})
	if err != nil {
		return fmt.Errorf("failed to extract mask: %w", err)
	}

	inverted := matte.InvertMask(matte.ToGray(maskImg))

	name := fmt.Sprintf("background_mask_%s.png", stem(sample))
	if _, err := b.store.SaveImage(inverted, name); err != nil {
		return err
	}
	if err := recordArtifact(b.store, b.recorder, b.GetName(), name); err != nil {
		return err
	}

	background, err := matte.ApplyMask(img, inverted)
	if err != nil {
		return fmt.Errorf("failed to apply inverted mask: %w", err)
	}

	name = fmt.Sprintf("background_%s.png", stem(sample))
	if _, err := b.store.SaveImage(background, name); err != nil {
		return err
	}
	if err := recordArtifact(b.store, b.recorder, b.GetName(), name); err != nil {
		return err
	}

	l.Info().Str("sample", sample).Msg("subtracting foreground from original")

	cutout, err := session.Remove(ctx, img, domain.Options{})
	if err != nil {
		return fmt.Errorf("failed to remove background: %w", err)
	}

	punched, err := matte.SubtractForeground(img, cutout)
	if err != nil {
		return fmt.Errorf("failed to subtract foreground: %w", err)
	}

	name = fmt.Sprintf("background_composite_%s.png", stem(sample))
	if _, err := b.store.SaveImage(punched, name); err != nil {
		return err
	}

	return recordArtifact(b.store, b.recorder, b.GetName(), name)
}
