package check

import (
	"fmt"
	"path/filepath"
	"strings"

	"cutcheck/internal/core/domain"
	"cutcheck/internal/core/port"
	"cutcheck/internal/core/service"

	"github.com/rs/zerolog/log"
)

// stem returns the sample file name without directory and extension, used to
// build artifact names.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// recordArtifact verifies a written artifact is non-empty and records it for
// the run summary.
func recordArtifact(store port.ArtifactStore, recorder service.Recorder, check, name string) error {
	size, err := store.Stat(name)
	if err != nil {
		return err
	}

	if size == 0 {
		return fmt.Errorf("%s: %w", name, domain.ErrEmptyResult)
	}

	log.Info().Str("artifact", name).Int64("bytes", size).Msg("artifact written")

	recorder.AddArtifact(check, store.OutPath(name))

	return nil
}

func closeSession(session port.Session) {
	if err := session.Close(); err != nil {
		log.Warn().Err(err).Str("model", session.GetModel()).Msg("could not close session")
	}
}
