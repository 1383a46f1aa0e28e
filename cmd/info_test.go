package cmd

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pypulse/pypulse/internal/cmd"
	cmdopts "github.com/pypulse/pypulse/internal/cmd/options"
	"github.com/pypulse/pypulse/internal/cmd/output"
	"github.com/pypulse/pypulse/internal/errors"
	"github.com/pypulse/pypulse/internal/packages"
	"github.com/pypulse/pypulse/internal/registry/options"
)

func flaskDetail() packages.Detail {
	return packages.Detail{
		Name:         "flask",
		Version:      "3.1.0",
		Summary:      "A simple framework",
		License:      "BSD-3-Clause",
		ReleaseCount: 58,
		Maintenance: packages.Maintenance{
			Score:            82,
			Status:           packages.StatusActive,
			RecencyScore:     44.0,
			FrequencyScore:   38.0,
			ReleasesLastYear: 8,
		},
		RecentReleases: []packages.Release{
			{Version: "3.1.0", UploadedAt: time.Date(2025, 5, 13, 10, 0, 0, 0, time.UTC)},
		},
		Source: "pypi",
	}
}

func TestInfoCmd_TextOutput(t *testing.T) {
	t.Parallel()

	reg := &fakeRegistry{detail: flaskDetail()}

	cobraCmd, err := NewInfoCmd(&cmd.BaseCmd{}, cmdopts.WithRegistryBuilder(&fakeBuilder{reg: reg}))
	require.NoError(t, err)

	var buf bytes.Buffer
	cobraCmd.SetOut(&buf)
	cobraCmd.SetErr(&buf)
	cobraCmd.SetArgs([]string{"flask"})

	require.NoError(t, cobraCmd.Execute())
	require.Equal(t, "flask", reg.gotName)
	require.Empty(t, reg.gotResolveOpts)

	out := buf.String()
	require.Contains(t, out, "📦 flask 3.1.0")
	require.Contains(t, out, "❤️ Maintenance: 82/100 (Actively maintained)")
	require.Contains(t, out, "🚀 Releases: 58")
}

func TestInfoCmd_JSONOutput(t *testing.T) {
	t.Parallel()

	reg := &fakeRegistry{detail: flaskDetail()}

	cobraCmd, err := NewInfoCmd(&cmd.BaseCmd{}, cmdopts.WithRegistryBuilder(&fakeBuilder{reg: reg}))
	require.NoError(t, err)

	var buf bytes.Buffer
	cobraCmd.SetOut(&buf)
	cobraCmd.SetErr(&buf)
	cobraCmd.SetArgs([]string{"flask", "--format=json", "--version=3.1.0"})

	require.NoError(t, cobraCmd.Execute())

	resolveOpts, err := options.NewResolveOptions(reg.gotResolveOpts...)
	require.NoError(t, err)
	require.Equal(t, "3.1.0", resolveOpts.Version)

	var payload output.ResultPayload[packages.Detail]
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))
	require.Equal(t, "flask", payload.Result.Name)
	require.Equal(t, 82, payload.Result.Maintenance.Score)
}

func TestInfoCmd_JSONErrorPayload(t *testing.T) {
	t.Parallel()

	reg := &fakeRegistry{resolveErr: errors.ErrPackageNotFound}

	cobraCmd, err := NewInfoCmd(&cmd.BaseCmd{}, cmdopts.WithRegistryBuilder(&fakeBuilder{reg: reg}))
	require.NoError(t, err)

	var buf bytes.Buffer
	cobraCmd.SetOut(&buf)
	cobraCmd.SetErr(&buf)
	cobraCmd.SetArgs([]string{"nope", "--format=json"})

	require.NoError(t, cobraCmd.Execute())

	var payload output.ErrorPayload
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))
	require.NotEmpty(t, payload.Error)
}

func TestInfoCmd_TextErrorReturned(t *testing.T) {
	t.Parallel()

	reg := &fakeRegistry{resolveErr: errors.ErrPackageNotFound}

	cobraCmd, err := NewInfoCmd(&cmd.BaseCmd{}, cmdopts.WithRegistryBuilder(&fakeBuilder{reg: reg}))
	require.NoError(t, err)

	var buf bytes.Buffer
	cobraCmd.SetOut(&buf)
	cobraCmd.SetErr(&buf)
	cobraCmd.SetArgs([]string{"nope"})

	require.ErrorIs(t, cobraCmd.Execute(), errors.ErrPackageNotFound)
}

func TestInfoCmd_MissingName(t *testing.T) {
	t.Parallel()

	cobraCmd, err := NewInfoCmd(&cmd.BaseCmd{}, cmdopts.WithRegistryBuilder(&fakeBuilder{reg: &fakeRegistry{}}))
	require.NoError(t, err)

	var buf bytes.Buffer
	cobraCmd.SetOut(&buf)
	cobraCmd.SetErr(&buf)
	cobraCmd.SetArgs([]string{})

	execErr := cobraCmd.Execute()
	require.Error(t, execErr)
	require.Contains(t, execErr.Error(), "package name is required")
}

func TestInfoCmd_UnknownFormatHandler(t *testing.T) {
	t.Parallel()

	c := &InfoCmd{BaseCmd: &cmd.BaseCmd{}, Format: cmd.OutputFormat("bogus")}

	_, err := c.formatHandler(&bytes.Buffer{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "no handler for output format: bogus")
}
