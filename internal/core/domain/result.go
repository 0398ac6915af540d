package domain

import "time"

// CheckResult is the recorded outcome of one smoke check.
type CheckResult struct {
	Name      string
	Err       error
	Duration  time.Duration
	Artifacts []string
}

// Passed reports whether the check completed without error.
func (r CheckResult) Passed() bool {
	return r.Err == nil
}

// RunSummary aggregates the results of one harness run.
type RunSummary struct {
	RunID   string
	Started time.Time
	Results []CheckResult
}

// Failed returns the names of checks that did not pass.
func (s RunSummary) Failed() []string {
	var failed []string
	for _, r := range s.Results {
		if !r.Passed() {
			failed = append(failed, r.Name)
		}
	}
	return failed
}

// ArtifactCount returns the total number of files written across all checks.
func (s RunSummary) ArtifactCount() int {
	n := 0
	for _, r := range s.Results {
		n += len(r.Artifacts)
	}
	return n
}
