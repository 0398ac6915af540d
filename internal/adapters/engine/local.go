package engine

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"cutcheck/internal/core/domain"
	"cutcheck/internal/core/matte"
	"cutcheck/internal/core/port"

	"github.com/disintegration/imaging"
	"github.com/josuedeavila/rmbg"
	"github.com/rs/zerolog/log"
)

type remover interface {
	RemoveBackground(img image.Image) (image.Image, error)
	Close() error
}

// onnxRemover bridges a loaded rmbg engine onto the remover seam.
type onnxRemover struct {
	remove func(img image.Image) (image.Image, error)
	close  func() error
}

func (r *onnxRemover) RemoveBackground(img image.Image) (image.Image, error) {
	return r.remove(img)
}

func (r *onnxRemover) Close() error {
	return r.close()
}

// Local provides removal sessions backed by ONNX models on disk. Matting and
// mask post-processing are not available on this backend; mask extraction and
// background fills are emulated on the cutout instead.
type Local struct {
	modelsDir string
	open      func(path string) (remover, error)
}

func NewLocal(modelsDir string) *Local {
	return &Local{
		modelsDir: modelsDir,
		open: func(path string) (remover, error) {
			engine, err := rmbg.New(&rmbg.Config{ModelPath: path})
			if err != nil {
				return nil, err
			}

			return &onnxRemover{
				remove: func(img image.Image) (image.Image, error) {
					return engine.RemoveBackground(img)
				},
				close: func() error {
					engine.Close()
					return nil
				},
			}, nil
		},
	}
}

func (l *Local) GetName() string {
	return "local"
}

// NewSession loads the ONNX model for the given model name. The model file
// must exist under the configured models directory as <model>.onnx.
func (l *Local) NewSession(_ context.Context, model string) (port.Session, error) {
	path := filepath.Join(l.modelsDir, model+".onnx")

	if _, err := os.Stat(path); err != nil {
		log.Error().Err(err).Str("path", path).Msg("model file not found")
		return nil, domain.ErrEngineUnavailable
	}

	r, err := l.open(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("error loading model")
		return nil, fmt.Errorf("error loading model %s: %w", model, err)
	}

	log.Debug().Str("model", model).Str("path", path).Msg("model loaded")

	return &LocalSession{remover: r, model: model}, nil
}

type LocalSession struct {
	remover remover
	model   string
}

func (s *LocalSession) GetModel() string {
	return s.model
}

func (s *LocalSession) Remove(ctx context.Context, img image.Image, opts domain.Options) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if opts.AlphaMatting {
		return nil, fmt.Errorf("alpha matting: %w", domain.ErrUnsupportedOption)
	}
	if opts.PostProcessMask {
		return nil, fmt.Errorf("mask post-processing: %w", domain.ErrUnsupportedOption)
	}

	cutout, err := s.remover.RemoveBackground(img)
	if err != nil {
		return nil, fmt.Errorf("error removing background: %w", err)
	}

	if opts.OnlyMask {
		return matte.ExtractAlpha(cutout), nil
	}

	if opts.BackgroundColor != nil {
		return matte.Flatten(cutout, opts.BackgroundColor.NRGBA()), nil
	}

	return cutout, nil
}

func (s *LocalSession) RemoveBytes(ctx context.Context, data []byte, opts domain.Options) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("error decoding image: %w", err)
	}

	out, err := s.Remove(ctx, img, opts)
	if err != nil {
		return nil, err
	}

	payloadBuf := new(bytes.Buffer)
	if err := imaging.Encode(payloadBuf, out, imaging.PNG); err != nil {
		return nil, fmt.Errorf("error encoding result: %w", err)
	}

	return payloadBuf.Bytes(), nil
}

func (s *LocalSession) Close() error {
	return s.remover.Close()
}
