package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".pypulse.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultLoader_Load_MissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	loader := &DefaultLoader{}
	cfg, err := loader.Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	require.Equal(t, DefaultRegistryURL, cfg.RegistryURL())
	require.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout())
	require.True(t, cfg.CacheEnabled())
	require.Equal(t, DefaultCacheTTL, cfg.CacheTTL())
	require.Equal(t, DefaultCacheSize, cfg.CacheSize())
	require.Empty(t, cfg.APIAddr())
	require.Nil(t, cfg.CORS())
	require.Equal(t, DefaultHealthInterval, cfg.HealthInterval())
	require.Equal(t, DefaultHealthTimeout, cfg.HealthTimeout())
}

func TestDefaultLoader_Load_EmptyPath(t *testing.T) {
	t.Parallel()

	loader := &DefaultLoader{}
	_, err := loader.Load("  ")
	require.ErrorIs(t, err, ErrConfigLoadFailed)
}

func TestDefaultLoader_Load_FullConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
[registry]
url = "https://test.pypi.org/"
request_timeout = "10s"
user_agent = "pypulse-test"

[cache]
enable = false
ttl = "30m"
size = 64

[api]
addr = "localhost:9000"

[api.cors]
enable = true
allow_origins = ["https://example.com"]
max_age = "2m"

[health]
interval = "1m"
timeout = "2s"
`)

	loader := &DefaultLoader{}
	cfg, err := loader.Load(path)
	require.NoError(t, err)

	// Trailing slash is stripped from the registry URL.
	require.Equal(t, "https://test.pypi.org", cfg.RegistryURL())
	require.Equal(t, 10*time.Second, cfg.RequestTimeout())
	require.Equal(t, "pypulse-test", cfg.UserAgent())

	require.False(t, cfg.CacheEnabled())
	require.Equal(t, 30*time.Minute, cfg.CacheTTL())
	require.Equal(t, 64, cfg.CacheSize())

	require.Equal(t, "localhost:9000", cfg.APIAddr())
	cors := cfg.CORS()
	require.NotNil(t, cors)
	require.NotNil(t, cors.Enable)
	require.True(t, *cors.Enable)
	require.Equal(t, []string{"https://example.com"}, cors.Origins)
	require.NotNil(t, cors.MaxAge)
	require.Equal(t, 2*time.Minute, time.Duration(*cors.MaxAge))

	require.Equal(t, time.Minute, cfg.HealthInterval())
	require.Equal(t, 2*time.Second, cfg.HealthTimeout())
}

func TestDefaultLoader_Load_Invalid(t *testing.T) {
	t.Parallel()

	tc := []struct {
		name    string
		content string
	}{
		{
			name: "bad registry url scheme",
			content: `
[registry]
url = "ftp://example.com"
`,
		},
		{
			name: "registry url missing host",
			content: `
[registry]
url = "https://"
`,
		},
		{
			name: "non-positive request timeout",
			content: `
[registry]
request_timeout = "0s"
`,
		},
		{
			name: "non-positive cache ttl",
			content: `
[cache]
ttl = "-1m"
`,
		},
		{
			name: "non-positive cache size",
			content: `
[cache]
size = 0
`,
		},
		{
			name: "non-positive health interval",
			content: `
[health]
interval = "0s"
`,
		},
		{
			name: "malformed toml",
			content: `
[registry
`,
		},
		{
			name: "malformed duration",
			content: `
[health]
timeout = "soon"
`,
		},
	}

	for _, testCase := range tc {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			loader := &DefaultLoader{}
			_, err := loader.Load(writeConfig(t, testCase.content))
			require.ErrorIs(t, err, ErrConfigLoadFailed)
		})
	}
}

func TestDuration_Roundtrip(t *testing.T) {
	t.Parallel()

	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("90s")))
	require.Equal(t, 90*time.Second, time.Duration(d))

	text, err := d.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "1m30s", string(text))

	require.Error(t, d.UnmarshalText([]byte("not-a-duration")))
}

func TestDuration_String(t *testing.T) {
	t.Parallel()

	tc := []struct {
		name string
		in   time.Duration
		want string
	}{
		{name: "hours", in: 2 * time.Hour, want: "2h"},
		{name: "minutes", in: 30 * time.Minute, want: "30m"},
		{name: "milliseconds", in: 250 * time.Millisecond, want: "250ms"},
	}

	for _, testCase := range tc {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			d := Duration(testCase.in)
			require.Equal(t, testCase.want, d.String())
		})
	}

	var nilDuration *Duration
	require.Equal(t, "", nilDuration.String())
}
