package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"cutcheck/internal/adapters/engine"
	"cutcheck/internal/adapters/gallery"
	"cutcheck/internal/adapters/rembgcli"
	"cutcheck/internal/adapters/runner"
	"cutcheck/internal/core/domain/check"
	"cutcheck/internal/core/port"
	"cutcheck/internal/core/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func main() {
	log.Info().Msg("starting cutcheck...")

	viper.AddConfigPath(".")
	viper.SetConfigType("toml")

	log.Info().Msg("reading config file...")
	err := viper.ReadInConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("could not read config file")
	}

	var logLevel zerolog.Level

	switch viper.GetString("harness.log_level") {
	case "info":
		logLevel = zerolog.InfoLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	g, err := gallery.New()
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing gallery")
	}

	eng, err := buildEngine()
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing engine")
	}

	defaultModel := viper.GetString("engine.default_model")

	// The checks are pointless without a working engine, so probe it once
	// before running anything.
	probe, err := eng.NewSession(ctx, defaultModel)
	if err != nil {
		log.Fatal().Err(err).Str("engine", eng.GetName()).Msg("engine not usable, aborting")
	}
	if err := probe.Close(); err != nil {
		log.Warn().Err(err).Msg("could not close probe session")
	}

	log.Info().Str("engine", eng.GetName()).Str("model", defaultModel).Msg("engine ready")

	recorder := service.NewRunRecorder()
	registry := &check.Registry{}

	registry.Register(check.NewBasic(eng, g, g, recorder, defaultModel, "basic"))
	registry.Register(check.NewModels(eng, g, g, recorder, "models"))
	registry.Register(check.NewAdvanced(eng, g, g, recorder, defaultModel, "advanced"))
	registry.Register(check.NewBatch(eng, g, g, recorder, defaultModel, "batch",
		viper.GetInt("gallery.max_batch")))
	registry.Register(check.NewBackground(eng, g, g, recorder, defaultModel, "background"))

	cli, err := rembgcli.NewRunner()
	if err != nil {
		log.Warn().Err(err).Msg("command line tool not found, skipping cli check")
	} else {
		registry.Register(check.NewCLI(cli, g, g, recorder, "cli"))
	}

	registry.Register(check.NewDeps(eng, "deps"))

	checkTimeout, err := time.ParseDuration(viper.GetString("harness.check_timeout"))
	if err != nil {
		log.Panic().Err(err).Msg("invalid timeout for checks in config")
	}

	r := runner.New(registry, recorder, checkTimeout)

	summary := r.Run(ctx, check.ParseSelection(os.Args[1:]))

	elapsed := time.Since(summary.Started)

	if failed := summary.Failed(); len(failed) > 0 {
		log.Error().
			Strs("failed", failed).
			Int("artifacts", summary.ArtifactCount()).
			Dur("elapsed", elapsed).
			Msg("run finished with failures")
		os.Exit(1)
	}

	log.Info().
		Int("checks", len(summary.Results)).
		Int("artifacts", summary.ArtifactCount()).
		Dur("elapsed", elapsed).
		Msg("run finished")
}

func buildEngine() (port.Engine, error) {
	mode := viper.GetString("engine.mode")

	switch mode {
	case "server":
		return engine.NewServer(viper.GetString("engine.url")), nil
	case "local", "":
		return engine.NewLocal(viper.GetString("engine.models_dir")), nil
	default:
		return nil, fmt.Errorf("unknown engine mode: %s", mode)
	}
}
