package domain

import (
	"fmt"
	"image/color"
)

// Model identifiers understood by the engine. The engine downloads weights on
// first use; the local adapter resolves them to .onnx files instead.
const (
	ModelU2Net         = "u2net"
	ModelU2NetP        = "u2netp"
	ModelU2NetHumanSeg = "u2net_human_seg"
	ModelISNetGeneral  = "isnet-general-use"
	ModelISNetAnime    = "isnet-anime"
	ModelSAM           = "sam"
)

// SmokeModels returns the model list exercised by the model matrix check.
func SmokeModels() []string {
	return []string{
		ModelU2Net,
		ModelU2NetP,
		ModelU2NetHumanSeg,
		ModelISNetGeneral,
		ModelISNetAnime,
	}
}

// Alpha matting thresholds exercised by the smoke checks.
const (
	MattingForegroundThreshold = 270
	MattingBackgroundThreshold = 20
	MattingErodeSize           = 11
)

// MattingOptions returns options enabling alpha matting with the smoke
// threshold values.
func MattingOptions() Options {
	return Options{
		AlphaMatting:        true,
		ForegroundThreshold: MattingForegroundThreshold,
		BackgroundThreshold: MattingBackgroundThreshold,
		ErodeSize:           MattingErodeSize,
	}
}

// Options carries the per-call tunables of the engine. The zero value requests
// a plain foreground cutout with the engine's own defaults.
type Options struct {
	// AlphaMatting enables the engine's soft-edge refinement; the three
	// thresholds below are only read when it is set.
	AlphaMatting        bool
	ForegroundThreshold int
	BackgroundThreshold int
	ErodeSize           int

	// OnlyMask asks for the single-channel foreground mask instead of the
	// composited cutout.
	OnlyMask bool

	// PostProcessMask enables the engine's mask smoothing pass.
	PostProcessMask bool

	// BackgroundColor, when non-nil, replaces the removed background with an
	// opaque fill instead of transparency.
	BackgroundColor *Color
}

// Plain reports whether the options request nothing beyond a default cutout.
func (o Options) Plain() bool {
	return !o.AlphaMatting && !o.OnlyMask && !o.PostProcessMask && o.BackgroundColor == nil
}

// Color is an 8-bit RGBA fill color.
type Color struct {
	R, G, B, A uint8
}

// White is the fill used by the background replacement smoke check.
var White = Color{R: 255, G: 255, B: 255, A: 255}

// NRGBA converts the color for use with the image packages.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// String renders the color in the comma-separated form the engine API accepts.
func (c Color) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", c.R, c.G, c.B, c.A)
}
