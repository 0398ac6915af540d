package service

import (
	"sync"
	"time"

	"cutcheck/internal/core/domain"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/ksuid"
)

type Recorder interface {
	AddArtifact(check string, path string)
}

type RunRecorder struct {
	runID     string
	started   time.Time
	results   []domain.CheckResult
	artifacts map[string][]string
	mutex     *sync.Mutex
}

func NewRunRecorder() *RunRecorder {
	return &RunRecorder{
		runID:     ksuid.New().String(),
		started:   time.Now(),
		artifacts: make(map[string][]string),
		mutex:     &sync.Mutex{},
	}
}

func (r *RunRecorder) GetRunID() string {
	return r.runID
}

func (r *RunRecorder) AddArtifact(check string, path string) {
	r.mutex.Lock()
	r.artifacts[check] = append(r.artifacts[check], path)
	r.mutex.Unlock()

	log.Debug().Str("check", check).Str("path", path).Msg("artifact recorded")
}

func (r *RunRecorder) Record(check string, duration time.Duration, err error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.results = append(r.results, domain.CheckResult{
		Name:      check,
		Err:       err,
		Duration:  duration,
		Artifacts: r.artifacts[check],
	})
}

func (r *RunRecorder) Summary() domain.RunSummary {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	results := make([]domain.CheckResult, len(r.results))
	copy(results, r.results)

	return domain.RunSummary{
		RunID:   r.runID,
		Started: r.started,
		Results: results,
	}
}
