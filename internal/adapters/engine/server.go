package engine

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"cutcheck/internal/core/domain"
	"cutcheck/internal/core/port"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
)

const removePath = "/api/remove"

// Server provides removal sessions backed by a running rembg HTTP server.
type Server struct {
	baseURL string
}

func NewServer(baseURL string) *Server {
	return &Server{baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *Server) GetName() string {
	return "server"
}

// NewSession probes the server once and returns a session bound to the given
// model. Any HTTP response counts as reachable.
func (s *Server) NewSession(ctx context.Context, model string) (port.Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL, nil)
	if err != nil {
		log.Error().Err(err).Msg("error creating probe request for engine server")
		return nil, err
	}

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("url", s.baseURL).Msg("engine server probe failed")
		return nil, domain.ErrEngineUnavailable
	}
	defer res.Body.Close()

	log.Debug().Str("url", s.baseURL).Str("model", model).Msg("engine server reachable")

	return &ServerSession{baseURL: s.baseURL, model: model}, nil
}

// ServerSession sends images to the remove endpoint with the parameters of a
// single model. Sessions are stateless and reusable across images.
type ServerSession struct {
	baseURL string
	model   string
}

func (s *ServerSession) GetModel() string {
	return s.model
}

func (s *ServerSession) Remove(ctx context.Context, img image.Image, opts domain.Options) (image.Image, error) {
	payloadBuf := new(bytes.Buffer)
	if err := imaging.Encode(payloadBuf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("error encoding image for engine request: %w", err)
	}

	body, err := s.RemoveBytes(ctx, payloadBuf.Bytes(), opts)
	if err != nil {
		return nil, err
	}

	out, err := imaging.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error decoding engine response: %w", err)
	}

	return out, nil
}

func (s *ServerSession) RemoveBytes(ctx context.Context, data []byte, opts domain.Options) ([]byte, error) {
	payloadBuf := new(bytes.Buffer)
	writer := multipart.NewWriter(payloadBuf)

	part, err := writer.CreateFormFile("file", "image.png")
	if err != nil {
		return nil, fmt.Errorf("error building engine request: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("error building engine request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("error building engine request: %w", err)
	}

	endpoint := s.baseURL + removePath + "?" + buildQuery(s.model, opts).Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, payloadBuf)
	if err != nil {
		log.Error().Err(err).Msg("error creating POST request for engine server")
		return nil, err
	}

	req.Header.Add("Content-Type", writer.FormDataContentType())

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error executing engine request: %w", err)
	}

	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading engine response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		log.Error().Int("status", res.StatusCode).Str("body", string(body)).Msg("engine request rejected")
		return nil, fmt.Errorf("unexpected status code from engine: %d", res.StatusCode)
	}

	if len(body) == 0 {
		return nil, domain.ErrEmptyResult
	}

	log.Debug().Str("model", s.model).Int("bytes", len(body)).Msg("engine response received")

	return body, nil
}

func (s *ServerSession) Close() error {
	return nil
}

// buildQuery maps removal options onto the server's query parameters.
func buildQuery(model string, opts domain.Options) url.Values {
	values := url.Values{}
	values.Set("model", model)

	if opts.AlphaMatting {
		values.Set("a", "true")
		values.Set("af", strconv.Itoa(opts.ForegroundThreshold))
		values.Set("ab", strconv.Itoa(opts.BackgroundThreshold))
		values.Set("ae", strconv.Itoa(opts.ErodeSize))
	}

	if opts.OnlyMask {
		values.Set("om", "true")
	}

	if opts.PostProcessMask {
		values.Set("ppm", "true")
	}

	if opts.BackgroundColor != nil {
		values.Set("bgc", opts.BackgroundColor.String())
	}

	return values
}
