package check

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cutcheck/internal/core/domain"
)

func TestBatchRunShouldShareOneSession(t *testing.T) {
	session := &MockSession{}
	engine := &MockEngine{session: session}
	samples := &MockSampleSource{paths: []string{
		"samples/ape.jpg", "samples/bat.png", "samples/cow.jpg", "samples/dog.jpg", "samples/elk.png",
	}}
	store := &MockArtifactStore{}
	recorder := &MockRecorder{}

	b := NewBatch(engine, samples, store, recorder, domain.ModelU2Net, "batch", 3)

	err := b.Run(t.Context(), time.Minute)
	require.NoError(t, err)

	assert.Len(t, engine.requests, 1)
	assert.Equal(t, 3, session.calls)
	assert.True(t, session.closed)

	assert.Contains(t, store.data, "batch_0_ape.png")
	assert.Contains(t, store.data, "batch_1_bat.png")
	assert.Contains(t, store.data, "batch_2_cow.png")
	assert.NotContains(t, store.data, "batch_3_dog.png")
	assert.Len(t, recorder.artifacts["batch"], 3)
}

func TestBatchRunWithFewerSamplesThanBatchSize(t *testing.T) {
	engine := &MockEngine{}
	samples := &MockSampleSource{paths: []string{"samples/ape.jpg", "samples/bat.png"}}
	store := &MockArtifactStore{}
	recorder := &MockRecorder{}

	b := NewBatch(engine, samples, store, recorder, domain.ModelU2Net, "batch", 3)

	err := b.Run(t.Context(), time.Minute)
	require.NoError(t, err)

	assert.Len(t, recorder.artifacts["batch"], 2)
}

func TestBatchRunWithUnsetSizeShouldUseDefault(t *testing.T) {
	engine := &MockEngine{}
	samples := &MockSampleSource{paths: []string{
		"samples/ape.jpg", "samples/bat.png", "samples/cow.jpg", "samples/dog.jpg",
	}}
	store := &MockArtifactStore{}
	recorder := &MockRecorder{}

	b := NewBatch(engine, samples, store, recorder, domain.ModelU2Net, "batch", 0)

	err := b.Run(t.Context(), time.Minute)
	require.NoError(t, err)

	assert.Len(t, recorder.artifacts["batch"], defaultBatchSize)
}

func TestBatchRunShouldStopOnFirstFailure(t *testing.T) {
	session := &MockSession{err: assert.AnError}
	engine := &MockEngine{session: session}
	samples := &MockSampleSource{paths: []string{"samples/ape.jpg", "samples/bat.png"}}
	recorder := &MockRecorder{}

	b := NewBatch(engine, samples, &MockArtifactStore{}, recorder, domain.ModelU2Net, "batch", 3)

	err := b.Run(t.Context(), time.Minute)

	require.ErrorContains(t, err, "failed to remove background from samples/ape.jpg")
	assert.Equal(t, 1, session.calls)
	assert.Empty(t, recorder.artifacts)
}

func TestBatchRunNoSamples(t *testing.T) {
	b := NewBatch(&MockEngine{}, &MockSampleSource{findErr: domain.ErrNoSamples},
		&MockArtifactStore{}, &MockRecorder{}, domain.ModelU2Net, "batch", 3)

	err := b.Run(t.Context(), time.Minute)

	require.ErrorIs(t, err, domain.ErrNoSamples)
}
