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

// Batch removes the background from the first few samples through one shared
// session, the way a caller processing a folder would reuse it.
type Batch struct {
	engine   port.Engine
	samples  port.SampleSource
	store    port.ArtifactStore
	recorder service.Recorder
	model    string
	name     string
	size     int
}

// defaultBatchSize caps the batch check when no size is configured.
const defaultBatchSize = 3

func NewBatch(engine port.Engine, samples port.SampleSource, store port.ArtifactStore,
	recorder service.Recorder, model, name string, size int) *Batch {
	if size <= 0 {
		size = defaultBatchSize
	}
	return &Batch{engine: engine, samples: samples, store: store, recorder: recorder,
		model: model, name: name, size: size}
}

func (b *Batch) GetName() string {
	return b.name
}

func (b *Batch) Run(ctx context.Context, timeout time.Duration) error {
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
	if len(paths) > b.size {
		paths = paths[:b.size]
	}

	session, err := b.engine.NewSession(ctx, b.model)
	if err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}
	defer closeSession(session)

	for i, sample := range paths {
		l.Info().Int("index", i).Str("sample", sample).Msg("removing background")

		img, err := b.samples.Load(sample)
		if err != nil {
			return err
		}

		cutout, err := session.Remove(ctx, img, domain.Options{})
		if err != nil {
			return fmt.Errorf("failed to remove background from %s: %w", sample, err)
		}

		name := fmt.Sprintf("batch_%d_%s.png", i, stem(sample))
		if _, err := b.store.SaveImage(cutout, name); err != nil {
			return err
		}
		if err := recordArtifact(b.store, b.recorder, b.GetName(), name); err != nil {
			return err
		}
	}

	l.Info().Int("processed", len(paths)).Msg("batch finished")

	return nil
}
