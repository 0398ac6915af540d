package port

import "image"

type SampleSource interface {
	// FindSamples returns the paths of all usable sample images in lexical order.
	FindSamples() ([]string, error)
	// Load decodes a sample image, downscaling it if it exceeds the configured edge limit.
	Load(path string) (image.Image, error)
	// LoadBytes returns the raw encoded bytes of a sample image.
	LoadBytes(path string) ([]byte, error)
}

type ArtifactStore interface {
	// SaveImage encodes an image into the output directory and returns the written path.
	SaveImage(img image.Image, name string) (string, error)
	// SaveBytes writes encoded image data into the output directory and returns the written path.
	SaveBytes(data []byte, name string) (string, error)
	// OutPath returns the path an artifact with the given name would be written to.
	OutPath(name string) string
	// Stat returns the size of a written artifact or an error if it does not exist.
	Stat(name string) (int64, error)
}
