package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunRecorder(t *testing.T) {
	recorder := NewRunRecorder()

	assert.NotEmpty(t, recorder.GetRunID())
	assert.NotNil(t, recorder.artifacts)
	assert.WithinDuration(t, time.Now(), recorder.started, time.Second)
}

func TestAddArtifact(t *testing.T) {
	tests := []struct {
		name      string
		check     string
		paths     []string
		wantCount int
	}{
		{
			name:      "Single artifact",
			check:     "basic",
			paths:     []string{"out/removed_dog.png"},
			wantCount: 1,
		},
		{
			name:      "Multiple artifacts for one check",
			check:     "models",
			paths:     []string{"out/model_u2net_dog.png", "out/model_u2netp_dog.png"},
			wantCount: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := NewRunRecorder()
			for _, p := range tt.paths {
				recorder.AddArtifact(tt.check, p)
			}

			assert.Len(t, recorder.artifacts[tt.check], tt.wantCount)
		})
	}
}

func TestRecordShouldAttachArtifacts(t *testing.T) {
	recorder := NewRunRecorder()
	recorder.AddArtifact("basic", "out/removed_dog.png")
	recorder.AddArtifact("basic", "out/removed_bytes_dog.png")
	recorder.AddArtifact("cli", "out/cli_dog.png")

	recorder.Record("basic", time.Second, nil)
	recorder.Record("cli", 2*time.Second, assert.AnError)

	summary := recorder.Summary()

	require.Len(t, summary.Results, 2)
	assert.Len(t, summary.Results[0].Artifacts, 2)
	assert.True(t, summary.Results[0].Passed())
	assert.Len(t, summary.Results[1].Artifacts, 1)
	assert.False(t, summary.Results[1].Passed())
	assert.Equal(t, 3, summary.ArtifactCount())
}

func TestSummaryShouldListFailures(t *testing.T) {
	recorder := NewRunRecorder()
	recorder.Record("basic", time.Second, nil)
	recorder.Record("background", time.Second, assert.AnError)
	recorder.Record("deps", time.Second, nil)

	summary := recorder.Summary()

	assert.Equal(t, recorder.GetRunID(), summary.RunID)
	assert.Equal(t, []string{"background"}, summary.Failed())
}

func TestRecorderShouldBeSafeForConcurrentUse(t *testing.T) {
	recorder := NewRunRecorder()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			recorder.AddArtifact("batch", "out/batch_0_dog.png")
			recorder.Record("batch", time.Millisecond, nil)
		}()
	}
	wg.Wait()

	summary := recorder.Summary()
	assert.Len(t, summary.Results, 10)
}
