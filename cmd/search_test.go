package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pypulse/pypulse/internal/cmd"
	cmdopts "github.com/pypulse/pypulse/internal/cmd/options"
	"github.com/pypulse/pypulse/internal/cmd/output"
	"github.com/pypulse/pypulse/internal/config"
	"github.com/pypulse/pypulse/internal/errors"
	"github.com/pypulse/pypulse/internal/packages"
	"github.com/pypulse/pypulse/internal/registry"
	"github.com/pypulse/pypulse/internal/registry/options"
)

var (
	_ registry.Builder         = (*fakeBuilder)(nil)
	_ registry.PackageProvider = (*fakeRegistry)(nil)
	_ config.Loader            = (*fakeLoader)(nil)
)

type fakeBuilder struct {
	reg *fakeRegistry
	err error
}

func (f *fakeBuilder) Build() (registry.PackageProvider, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.reg, nil
}

type fakeRegistry struct {
	searchResults  []packages.Package
	searchErr      error
	detail         packages.Detail
	resolveErr     error
	gotQuery       string
	gotName        string
	gotSearchOpts  []options.SearchOption
	gotResolveOpts []options.ResolveOption
}

func (f *fakeRegistry) Search(
	_ context.Context,
	query string,
	opt ...options.SearchOption,
) ([]packages.Package, error) {
	f.gotQuery = query
	f.gotSearchOpts = opt
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchResults, nil
}

func (f *fakeRegistry) Resolve(
	_ context.Context,
	name string,
	opt ...options.ResolveOption,
) (packages.Detail, error) {
	f.gotName = name
	f.gotResolveOpts = opt
	if f.resolveErr != nil {
		return packages.Detail{}, f.resolveErr
	}
	return f.detail, nil
}

func (f *fakeRegistry) ID() string {
	return "pypi"
}

type fakeLoader struct {
	cfg *config.Config
	err error
}

func (f *fakeLoader) Load(string) (*config.Config, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.cfg != nil {
		return f.cfg, nil
	}
	return &config.Config{}, nil
}

func TestSearchCmd_TextOutput(t *testing.T) {
	t.Parallel()

	reg := &fakeRegistry{
		searchResults: []packages.Package{
			{Name: "flask", Version: "3.1.0", Similarity: 1.0, Source: "pypi"},
			{Name: "flask-login", Similarity: 0.85, Source: "pypi"},
		},
	}

	cobraCmd, err := NewSearchCmd(&cmd.BaseCmd{}, cmdopts.WithRegistryBuilder(&fakeBuilder{reg: reg}))
	require.NoError(t, err)

	var buf bytes.Buffer
	cobraCmd.SetOut(&buf)
	cobraCmd.SetErr(&buf)
	cobraCmd.SetArgs([]string{"flask"})

	require.NoError(t, cobraCmd.Execute())
	require.Equal(t, "flask", reg.gotQuery)

	out := buf.String()
	require.Contains(t, out, "🔎 Registry search results...")
	require.Contains(t, out, "📦 flask")
	require.Contains(t, out, "📦 Found 2 packages")
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	t.Parallel()

	reg := &fakeRegistry{
		searchResults: []packages.Package{
			{Name: "flask", Version: "3.1.0", Similarity: 1.0, Source: "pypi"},
		},
	}

	cobraCmd, err := NewSearchCmd(&cmd.BaseCmd{}, cmdopts.WithRegistryBuilder(&fakeBuilder{reg: reg}))
	require.NoError(t, err)

	var buf bytes.Buffer
	cobraCmd.SetOut(&buf)
	cobraCmd.SetErr(&buf)
	cobraCmd.SetArgs([]string{"flask", "--format=json", "--limit=3"})

	require.NoError(t, cobraCmd.Execute())

	searchOpts, err := options.NewSearchOptions(reg.gotSearchOpts...)
	require.NoError(t, err)
	require.Equal(t, 3, searchOpts.Limit)

	var payload output.ResultsPayload[packages.Package]
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))
	require.Len(t, payload.Results, 1)
	require.Equal(t, "flask", payload.Results[0].Name)
}

func TestSearchCmd_JSONErrorPayload(t *testing.T) {
	t.Parallel()

	reg := &fakeRegistry{searchErr: errors.ErrRegistryUnavailable}

	cobraCmd, err := NewSearchCmd(&cmd.BaseCmd{}, cmdopts.WithRegistryBuilder(&fakeBuilder{reg: reg}))
	require.NoError(t, err)

	var buf bytes.Buffer
	cobraCmd.SetOut(&buf)
	cobraCmd.SetErr(&buf)
	cobraCmd.SetArgs([]string{"flask", "--format=json"})

	// JSON output reports errors as a payload, not a command failure.
	require.NoError(t, cobraCmd.Execute())

	var payload output.ErrorPayload
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))
	require.Contains(t, payload.Error, "registry unavailable")
}

func TestSearchCmd_TextErrorReturned(t *testing.T) {
	t.Parallel()

	reg := &fakeRegistry{searchErr: errors.ErrRegistryUnavailable}

	cobraCmd, err := NewSearchCmd(&cmd.BaseCmd{}, cmdopts.WithRegistryBuilder(&fakeBuilder{reg: reg}))
	require.NoError(t, err)

	var buf bytes.Buffer
	cobraCmd.SetOut(&buf)
	cobraCmd.SetErr(&buf)
	cobraCmd.SetArgs([]string{"flask"})

	require.ErrorIs(t, cobraCmd.Execute(), errors.ErrRegistryUnavailable)
}

func TestSearchCmd_EmptyQuery(t *testing.T) {
	t.Parallel()

	cobraCmd, err := NewSearchCmd(&cmd.BaseCmd{}, cmdopts.WithRegistryBuilder(&fakeBuilder{reg: &fakeRegistry{}}))
	require.NoError(t, err)

	var buf bytes.Buffer
	cobraCmd.SetOut(&buf)
	cobraCmd.SetErr(&buf)
	cobraCmd.SetArgs([]string{"   "})

	execErr := cobraCmd.Execute()
	require.Error(t, execErr)
	require.Contains(t, execErr.Error(), "query is required")
}

func TestSearchCmd_NoResults(t *testing.T) {
	t.Parallel()

	cobraCmd, err := NewSearchCmd(&cmd.BaseCmd{}, cmdopts.WithRegistryBuilder(&fakeBuilder{reg: &fakeRegistry{}}))
	require.NoError(t, err)

	var buf bytes.Buffer
	cobraCmd.SetOut(&buf)
	cobraCmd.SetErr(&buf)
	cobraCmd.SetArgs([]string{"zzz-nothing"})

	require.NoError(t, cobraCmd.Execute())
	require.Contains(t, buf.String(), "No items found")
}

func TestSearchCmd_InvalidFormat(t *testing.T) {
	t.Parallel()

	cobraCmd, err := NewSearchCmd(&cmd.BaseCmd{}, cmdopts.WithRegistryBuilder(&fakeBuilder{reg: &fakeRegistry{}}))
	require.NoError(t, err)

	var buf bytes.Buffer
	cobraCmd.SetOut(&buf)
	cobraCmd.SetErr(&buf)
	cobraCmd.SetArgs([]string{"flask", "--format=xml"})

	execErr := cobraCmd.Execute()
	require.Error(t, execErr)
	require.Contains(t, execErr.Error(), "invalid format 'xml'")
}

func TestSearchCmd_UnknownFormatHandler(t *testing.T) {
	t.Parallel()

	c := &SearchCmd{BaseCmd: &cmd.BaseCmd{}, Format: cmd.OutputFormat("bogus")}

	_, err := c.formatHandler(&bytes.Buffer{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "no handler for output format: bogus")
}

func TestSearchCmd_BuilderError(t *testing.T) {
	t.Parallel()

	cobraCmd, err := NewSearchCmd(
		&cmd.BaseCmd{},
		cmdopts.WithRegistryBuilder(&fakeBuilder{err: errors.ErrRegistryUnavailable}),
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	cobraCmd.SetOut(&buf)
	cobraCmd.SetErr(&buf)
	cobraCmd.SetArgs([]string{"flask"})

	require.ErrorIs(t, cobraCmd.Execute(), errors.ErrRegistryUnavailable)
}
