package port

import (
	"context"
	"time"
)

type Check interface {
	// Run executes the check within a specified timeout and reports any failure.
	Run(ctx context.Context, timeout time.Duration) error
	// GetName retrieves the identifier associated with a specific check.
	GetName() string
}

type CheckRegistry interface {
	// Register adds a new check to the check registry.
	Register(check Check)
	// Get retrieves a registered Check based on its string identifier or returns an error if not found.
	Get(name string) (Check, error)
	// ListChecks returns a list of all check identifiers currently registered in the check registry.
	ListChecks() []string
}
