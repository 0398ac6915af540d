package domain

import "errors"

var (
	ErrNoSamples         = errors.New("no sample images found")
	ErrUnsupportedOption = errors.New("option not supported by this engine")
	ErrEngineUnavailable = errors.New("engine unavailable")
	ErrEmptyResult       = errors.New("engine returned an empty result")
)
