package gallery

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"cutcheck/internal/core/domain"
	"cutcheck/internal/core/matte"

	"github.com/disintegration/imaging"
	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	_ "golang.org/x/image/webp"
)

var sampleExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

type Gallery struct {
	samplesDir string
	outputDir  string
	maxEdge    int
}

func New() (*Gallery, error) {
	g := &Gallery{
		samplesDir: viper.GetString("gallery.samples_dir"),
		outputDir:  viper.GetString("harness.output_dir"),
		maxEdge:    viper.GetInt("gallery.max_edge"),
	}

	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		err = fmt.Errorf("error creating output dir %w", err)
		log.Error().Err(err).Str("path", g.outputDir).Send()
		return nil, err
	}

	log.Debug().Str("samples", g.samplesDir).Str("output", g.outputDir).Msg("gallery ready")

	return g, nil
}

// FindSamples returns the sample image paths in lexical order.
func (g *Gallery) FindSamples() ([]string, error) {
	entries, err := os.ReadDir(g.samplesDir)
	if err != nil {
		err = fmt.Errorf("error reading samples dir %w", err)
		log.Error().Err(err).Str("path", g.samplesDir).Send()
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if sampleExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			paths = append(paths, filepath.Join(g.samplesDir, entry.Name()))
		}
	}

	if len(paths) == 0 {
		log.Error().Str("path", g.samplesDir).Msg("no sample images found")
		return nil, domain.ErrNoSamples
	}

	return paths, nil
}

// Load decodes a sample image, downscaling it if it exceeds the configured edge limit.
func (g *Gallery) Load(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		err = fmt.Errorf("error decoding sample %w", err)
		log.Error().Err(err).Str("path", path).Send()
		return nil, err
	}

	return matte.ClampEdge(img, g.maxEdge), nil
}

// LoadBytes returns the raw encoded bytes of a sample image.
func (g *Gallery) LoadBytes(path string) ([]byte, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("error reading sample %w", err)
		log.Error().Err(err).Str("path", path).Send()
		return nil, err
	}

	return buf, nil
}

// SaveImage encodes an image into the output directory, with the format chosen
// by the name's extension.
func (g *Gallery) SaveImage(img image.Image, name string) (string, error) {
	path := g.OutPath(name)

	if err := imaging.Save(img, path); err != nil {
		err = fmt.Errorf("error saving artifact %w", err)
		log.Error().Err(err).Str("path", path).Send()
		return "", err
	}

	log.Debug().Str("path", path).Msg("saved artifact")

	return path, nil
}

// SaveBytes writes already encoded image data into the output directory.
func (g *Gallery) SaveBytes(data []byte, name string) (string, error) {
	path := g.OutPath(name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		err = fmt.Errorf("error saving artifact %w", err)
		log.Error().Err(err).Str("path", path).Send()
		return "", err
	}

	log.Debug().Str("path", path).Int("bytes", len(data)).Msg("saved artifact")

	return path, nil
}

// OutPath returns the path an artifact with the given name would be written to.
func (g *Gallery) OutPath(name string) string {
	return filepath.Join(g.outputDir, name)
}

// Stat returns the size of a written artifact.
func (g *Gallery) Stat(name string) (int64, error) {
	info, err := os.Stat(g.OutPath(name))
	if err != nil {
		err = fmt.Errorf("error checking artifact %w", err)
		log.Error().Err(err).Str("path", g.OutPath(name)).Send()
		return 0, err
	}

	return info.Size(), nil
}

// SaveTempPNG encodes an image to a temp location and returns the path.
func SaveTempPNG(img image.Image) (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}

	path := filepath.Join(os.TempDir(), fmt.Sprintf("%s.png", id.String()))

	if err := imaging.Save(img, path); err != nil {
		err = fmt.Errorf("error creating temp file %w", err)
		log.Error().Err(err).Send()
		return "", err
	}

	log.Debug().Str("path", path).Msg("created temp file")

	return path, nil
}

// RemoveTempFile removes a specified temporary file at the given path and logs success or failure.
func RemoveTempFile(path string) {
	err := os.Remove(path)
	if err != nil {
		log.Warn().Str("path", path).Err(err).Msg("could not clean up temp file")
		return
	}
	log.Debug().Str("path", path).Msg("cleaned up temp file")
}
