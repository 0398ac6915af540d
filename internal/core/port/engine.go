package port

import (
	"context"
	"image"

	"cutcheck/internal/core/domain"
)

type Engine interface {
	// GetName returns a short identifier for the engine backend.
	GetName() string
	// NewSession prepares a reusable session for the given model, loading or probing
	// whatever the backend needs before the first removal.
	NewSession(ctx context.Context, model string) (Session, error)
}

type Session interface {
	// GetModel returns the model identifier the session was created with.
	GetModel() string
	// Remove strips the background from a decoded image and returns the cutout.
	Remove(ctx context.Context, img image.Image, opts domain.Options) (image.Image, error)
	// RemoveBytes strips the background from encoded image data and returns encoded PNG bytes.
	RemoveBytes(ctx context.Context, data []byte, opts domain.Options) ([]byte, error)
	// Close releases any resources held by the session.
	Close() error
}
