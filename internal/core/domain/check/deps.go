package check

import (
	"context"
	"time"

	"cutcheck/internal/core/domain"
	"cutcheck/internal/core/port"

	"github.com/rs/zerolog/log"
)

const samCheckpointURL = "https://dl.fbaipublicfiles.com/segment_anything/sam_vit_h_4b8939.pth"

// Deps probes whether the optional segment anything backend is usable. Its
// checkpoint weighs around 2.4 GB and is never fetched automatically, so the
// probe reports availability without failing the run either way.
type Deps struct {
	engine port.Engine
	name   string
}

func NewDeps(engine port.Engine, name string) *Deps {
	return &Deps{engine: engine, name: name}
}

func (d *Deps) GetName() string {
	return d.name
}

func (d *Deps) Run(ctx context.Context, timeout time.Duration) error {
	l := log.With().Str("check", d.GetName()).Logger()

	l.Info().Msg("running check")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	session, err := d.engine.NewSession(ctx, domain.ModelSAM)
	if err != nil {
		l.Warn().
			Err(err).
			Str("engine", d.engine.GetName()).
			Str("checkpoint", samCheckpointURL).
			Msg("segment anything backend not available")
		return nil
	}
	defer closeSession(session)

	l.Info().Str("engine", d.engine.GetName()).Msg("segment anything backend available")

	return nil
}
