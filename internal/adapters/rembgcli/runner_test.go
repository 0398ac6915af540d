package rembgcli

import (
	"image"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cutcheck/internal/core/domain"
)

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name  string
		model string
		opts  domain.Options
		want  []string
	}{
		{
			name: "plain",
			opts: domain.Options{},
			want: []string{"i", "in.png", "out.png"},
		},
		{
			name:  "with model",
			model: domain.ModelISNetGeneral,
			opts:  domain.Options{},
			want:  []string{"i", "-m", "isnet-general-use", "in.png", "out.png"},
		},
		{
			name: "alpha matting",
			opts: domain.Options{
				AlphaMatting:        true,
				ForegroundThreshold: 270,
				BackgroundThreshold: 20,
				ErodeSize:           11,
			},
			want: []string{"i", "-a", "-af", "270", "-ab", "20", "-ae", "11", "in.png", "out.png"},
		},
		{
			name: "mask flags",
			opts: domain.Options{OnlyMask: true, PostProcessMask: true},
			want: []string{"i", "-om", "-ppm", "in.png", "out.png"},
		},
		{
			name: "background color",
			opts: domain.Options{BackgroundColor: &domain.Color{R: 255, G: 255, B: 255, A: 255}},
			want: []string{"i", "-bgc", "255", "255", "255", "255", "in.png", "out.png"},
		},
		{
			name:  "model with matting",
			model: domain.ModelU2NetP,
			opts: domain.Options{
				AlphaMatting:        true,
				ForegroundThreshold: 270,
				BackgroundThreshold: 20,
				ErodeSize:           11,
			},
			want: []string{"i", "-m", "u2netp", "-a", "-af", "270", "-ab", "20", "-ae", "11", "in.png", "out.png"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := buildArgs("in.png", "out.png", tc.model, tc.opts)

			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewRunnerShouldUseConfiguredBinary(t *testing.T) {
	viper.Set("cli.binary", "echo")

	r, err := NewRunner()

	require.NoError(t, err)
	assert.Equal(t, []string{"echo"}, r.binary)
}

func TestNewRunnerShouldErrorWhenNothingFound(t *testing.T) {
	viper.Set("cli.binary", "")
	t.Setenv("PATH", t.TempDir())

	_, err := NewRunner()

	require.ErrorContains(t, err, "rembg binary not available")
}

func TestVersionShouldTrimOutput(t *testing.T) {
	r := &Runner{binary: []string{"echo"}}

	version, err := r.Version(t.Context())

	require.NoError(t, err)
	assert.Equal(t, "--version", version)
}

func TestHelpShouldReturnOutput(t *testing.T) {
	r := &Runner{binary: []string{"echo"}}

	help, err := r.Help(t.Context())

	require.NoError(t, err)
	assert.Contains(t, help, "--help")
}

func TestRemoveShouldErrorOnFailingBinary(t *testing.T) {
	r := &Runner{binary: []string{"false"}}

	err := r.Remove(t.Context(), image.NewNRGBA(image.Rect(0, 0, 2, 2)),
		filepath.Join(t.TempDir(), "out.png"), "", domain.Options{})

	require.ErrorContains(t, err, "error running rembg")
}

func TestRemoveShouldPassWithZeroExit(t *testing.T) {
	r := &Runner{binary: []string{"true"}}

	err := r.Remove(t.Context(), image.NewNRGBA(image.Rect(0, 0, 2, 2)),
		filepath.Join(t.TempDir(), "out.png"), domain.ModelU2Net, domain.Options{})

	require.NoError(t, err)
}
