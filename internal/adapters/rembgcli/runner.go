package rembgcli

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os/exec"
	"strconv"
	"strings"

	"cutcheck/internal/adapters/gallery"
	"cutcheck/internal/core/domain"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Runner invokes the rembg command line tool, either as a standalone binary
// or through the python module fallback.
type Runner struct {
	binary []string
}

func NewRunner() (*Runner, error) {
	r := &Runner{}

	commands := [][]string{{"rembg", "--version"}, {"python3", "-m", "rembg", "--version"}}
	if configured := viper.GetString("cli.binary"); configured != "" {
		commands = append([][]string{{configured, "--version"}}, commands...)
	}

	for _, command := range commands {
		_, err := exec.Command(command[0], command[1:]...).Output()
		if err != nil {
			log.Debug().Strs("command", command).Msg("binary not found")
			continue
		}

		log.Debug().Strs("command", command).Msg("binary found")
		r.binary = command[:len(command)-1]
		break
	}

	if len(r.binary) == 0 {
		return nil, errors.New("rembg binary not available")
	}

	return r, nil
}

func (r *Runner) Version(ctx context.Context) (string, error) {
	out, err := r.run(ctx, "--version")
	if err != nil {
		return "", fmt.Errorf("error reading rembg version: %w", err)
	}

	return strings.TrimSpace(string(out)), nil
}

func (r *Runner) Help(ctx context.Context) (string, error) {
	out, err := r.run(ctx, "--help")
	if err != nil {
		return "", fmt.Errorf("error reading rembg usage: %w", err)
	}

	return string(out), nil
}

// Remove stages img to a temp file and processes it into outputPath through
// the i subcommand.
func (r *Runner) Remove(ctx context.Context, img image.Image, outputPath, model string, opts domain.Options) error {
	inputPath, err := gallery.SaveTempPNG(img)
	if err != nil {
		return err
	}
	defer gallery.RemoveTempFile(inputPath)

	if _, err := r.run(ctx, buildArgs(inputPath, outputPath, model, opts)...); err != nil {
		return fmt.Errorf("error running rembg: %w", err)
	}

	return nil
}

func (r *Runner) run(ctx context.Context, args ...string) ([]byte, error) {
	full := append([]string{}, r.binary...)
	full = append(full, args...)

	cmd := exec.CommandContext(ctx, full[0], full[1:]...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.Error().Strs("args", args).Bytes("stderr", exitErr.Stderr).Msg("rembg command failed")
		}
		return nil, err
	}

	log.Debug().Strs("args", args).Msg("rembg command finished")

	return out, nil
}

func buildArgs(inputPath, outputPath, model string, opts domain.Options) []string {
	args := []string{"i"}

	if model != "" {
		args = append(args, "-m", model)
	}

	if opts.AlphaMatting {
		args = append(args, "-a",
			"-af", strconv.Itoa(opts.ForegroundThreshold),
			"-ab", strconv.Itoa(opts.BackgroundThreshold),
			"-ae", strconv.Itoa(opts.ErodeSize))
	}

	if opts.OnlyMask {
		args = append(args, "-om")
	}

	if opts.PostProcessMask {
		args = append(args, "-ppm")
	}

	if opts.BackgroundColor != nil {
		c := opts.BackgroundColor
		args = append(args, "-bgc",
			strconv.Itoa(int(c.R)), strconv.Itoa(int(c.G)), strconv.Itoa(int(c.B)), strconv.Itoa(int(c.A)))
	}

	return append(args, inputPath, outputPath)
}
