package check

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cutcheck/internal/core/domain"
)

func TestModelsRunSuccess(t *testing.T) {
	engine := &MockEngine{}
	samples := &MockSampleSource{paths: []string{"samples/dog.jpg"}}
	store := &MockArtifactStore{}
	recorder := &MockRecorder{}

	m := NewModels(engine, samples, store, recorder, "models")

	err := m.Run(t.Context(), time.Minute)
	require.NoError(t, err)

	assert.Equal(t, domain.SmokeModels(), engine.requests)
	for _, model := range domain.SmokeModels() {
		assert.Contains(t, store.data, "model_"+model+"_dog.png")
	}
	assert.Len(t, recorder.artifacts["models"], len(domain.SmokeModels()))
}

func TestModelsRunShouldContinuePastFailingModel(t *testing.T) {
	engine := &MockEngine{errFor: map[string]error{domain.ModelISNetAnime: assert.AnError}}
	samples := &MockSampleSource{paths: []string{"samples/dog.jpg"}}
	store := &MockArtifactStore{}
	recorder := &MockRecorder{}

	m := NewModels(engine, samples, store, recorder, "models")

	err := m.Run(t.Context(), time.Minute)

	require.ErrorContains(t, err, "1 of 5 model runs failed")
	assert.Len(t, engine.requests, 5)
	assert.Len(t, recorder.artifacts["models"], 4)
	assert.NotContains(t, store.data, "model_isnet-anime_dog.png")
}

func TestModelsRunShouldFailWhenNoModelWorks(t *testing.T) {
	engine := &MockEngine{err: domain.ErrEngineUnavailable}
	samples := &MockSampleSource{paths: []string{"samples/dog.jpg"}}
	recorder := &MockRecorder{}

	m := NewModels(engine, samples, &MockArtifactStore{}, recorder, "models")

	err := m.Run(t.Context(), time.Minute)

	require.ErrorContains(t, err, "5 of 5 model runs failed")
	assert.Empty(t, recorder.artifacts)
}

func TestModelsRunNoSamples(t *testing.T) {
	m := NewModels(&MockEngine{}, &MockSampleSource{findErr: domain.ErrNoSamples},
		&MockArtifactStore{}, &MockRecorder{}, "models")

	err := m.Run(t.Context(), time.Minute)

	require.ErrorIs(t, err, domain.ErrNoSamples)
}
