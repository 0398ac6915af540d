package port

import (
	"context"
	"image"

	"cutcheck/internal/core/domain"
)

type CLIRemover interface {
	// Version returns the version string of the installed command line tool.
	Version(ctx context.Context) (string, error)
	// Help returns the usage text of the command line tool.
	Help(ctx context.Context) (string, error)
	// Remove stages img to a temp file and invokes the command line tool to
	// process it into outputPath with the given model and options.
	Remove(ctx context.Context, img image.Image, outputPath, model string, opts domain.Options) error
}
