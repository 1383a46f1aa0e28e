package pypi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/pypulse/pypulse/internal/errors"
	"github.com/pypulse/pypulse/internal/packages"
	"github.com/pypulse/pypulse/internal/registry/options"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// testServer serves a PEP 691 simple index and per-project JSON documents.
func testServer(t *testing.T, projects map[string]projectResponse, hits *atomic.Int64) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/simple/", func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusOK)
			return
		}
		require.Equal(t, simpleContentType, r.Header.Get("Accept"))

		idx := simpleIndex{}
		for name := range projects {
			idx.Projects = append(idx.Projects, simpleProject{Name: name})
		}
		w.Header().Set("Content-Type", simpleContentType)
		require.NoError(t, json.NewEncoder(w).Encode(idx))
	})

	mux.HandleFunc("/pypi/", func(w http.ResponseWriter, r *http.Request) {
		for name, resp := range projects {
			if r.URL.Path == "/pypi/"+name+"/json" {
				w.Header().Set("Content-Type", "application/json")
				require.NoError(t, json.NewEncoder(w).Encode(resp))
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func newTestRegistry(t *testing.T, serverURL string) *Registry {
	t.Helper()

	reg, err := NewRegistry(
		hclog.NewNullLogger(),
		WithBaseURL(serverURL),
		WithClock(func() time.Time { return testNow }),
	)
	require.NoError(t, err)

	return reg
}

func uploaded(daysAgo int) string {
	return testNow.Add(-time.Duration(daysAgo) * 24 * time.Hour).Format(uploadTimeLayout)
}

func flaskProject() projectResponse {
	return projectResponse{
		Info: infoBlock{
			Name:              "flask",
			Version:           "3.1.0",
			Summary:           "A simple framework for building complex web applications.",
			LicenseExpression: "BSD-3-Clause",
			RequiresPython:    ">=3.9",
			Keywords:          "web,framework",
			ProjectURLs: map[string]string{
				"Source": "https://github.com/pallets/flask",
			},
		},
		Releases: map[string][]releaseFile{
			"3.1.0": {{UploadTime: uploaded(20)}, {UploadTime: uploaded(20)}},
			"3.0.0": {{UploadTime: uploaded(150)}},
			"2.3.0": {{UploadTime: uploaded(500)}},
		},
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()

	projects := map[string]projectResponse{
		"flask": flaskProject(),
		"flask-login": {
			Info: infoBlock{Name: "flask-login", Version: "0.6.3", Summary: "User session management for Flask."},
		},
		"numpy": {
			Info: infoBlock{Name: "numpy", Version: "2.2.0"},
		},
	}
	server := testServer(t, projects, nil)
	reg := newTestRegistry(t, server.URL)

	results, err := reg.Search(context.Background(), "flask")
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Exact match first, prefix match second, unrelated name excluded.
	require.Equal(t, "flask", results[0].Name)
	require.Equal(t, 1.0, results[0].Similarity)
	require.Equal(t, "flask-login", results[1].Name)
	require.Greater(t, results[0].Similarity, results[1].Similarity)

	// Enrichment attaches version and summary from project documents.
	require.Equal(t, "3.1.0", results[0].Version)
	require.Equal(t, "A simple framework for building complex web applications.", results[0].Summary)
	require.Equal(t, "0.6.3", results[1].Version)

	require.Equal(t, "pypi", results[0].Source)
}

func TestSearch_Limit(t *testing.T) {
	t.Parallel()

	projects := map[string]projectResponse{
		"flask":       {Info: infoBlock{Name: "flask"}},
		"flask-login": {Info: infoBlock{Name: "flask-login"}},
		"flask-cors":  {Info: infoBlock{Name: "flask-cors"}},
	}
	server := testServer(t, projects, nil)
	reg := newTestRegistry(t, server.URL)

	results, err := reg.Search(context.Background(), "flask", options.WithSearchLimit(1))
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "flask", results[0].Name)
}

func TestSearch_EmptyQuery(t *testing.T) {
	t.Parallel()

	server := testServer(t, nil, nil)
	reg := newTestRegistry(t, server.URL)

	_, err := reg.Search(context.Background(), "   ")
	require.ErrorIs(t, err, errors.ErrBadRequest)
}

func TestSearch_IndexIsCached(t *testing.T) {
	t.Parallel()

	var hits atomic.Int64
	server := testServer(t, map[string]projectResponse{
		"requests": {Info: infoBlock{Name: "requests"}},
	}, &hits)
	reg := newTestRegistry(t, server.URL)

	_, err := reg.Search(context.Background(), "requests")
	require.NoError(t, err)
	_, err = reg.Search(context.Background(), "requests")
	require.NoError(t, err)

	require.Equal(t, int64(1), hits.Load())
}

func TestResolve(t *testing.T) {
	t.Parallel()

	server := testServer(t, map[string]projectResponse{"flask": flaskProject()}, nil)
	reg := newTestRegistry(t, server.URL)

	detail, err := reg.Resolve(context.Background(), "flask")
	require.NoError(t, err)

	require.Equal(t, "flask", detail.Name)
	require.Equal(t, "3.1.0", detail.Version)
	require.Equal(t, "BSD-3-Clause", detail.License)
	require.Equal(t, "https://github.com/pallets/flask", detail.Repository)
	require.Equal(t, ">=3.9", detail.RequiresPython)
	require.Equal(t, []string{"web", "framework"}, detail.Keywords)
	require.Equal(t, "pypi", detail.Source)

	// Two files for 3.1.0 each produce a record; four records total.
	require.Equal(t, 4, detail.ReleaseCount)
	require.Len(t, detail.RecentReleases, 4)
	require.Equal(t, "3.1.0", detail.RecentReleases[0].Version)
	require.Equal(t, "2.3.0", detail.RecentReleases[3].Version)

	// 20 days since last release, 3 releases in the trailing year:
	// recency = 50 - (20/30)*2 ≈ 48.67, frequency = 15, score = 64.
	require.Equal(t, 64, detail.Maintenance.Score)
	require.Equal(t, packages.StatusRegular, detail.Maintenance.Status)
	require.Equal(t, 3, detail.Maintenance.ReleasesLastYear)
}

func TestResolve_PinnedVersion(t *testing.T) {
	t.Parallel()

	server := testServer(t, map[string]projectResponse{"flask": flaskProject()}, nil)
	reg := newTestRegistry(t, server.URL)

	detail, err := reg.Resolve(context.Background(), "flask", options.WithResolveVersion("3.0.0"))
	require.NoError(t, err)
	require.Equal(t, "3.0.0", detail.Version)

	// Maintenance is always computed from the full release history.
	require.Equal(t, 64, detail.Maintenance.Score)
}

func TestResolve_VersionNotFound(t *testing.T) {
	t.Parallel()

	server := testServer(t, map[string]projectResponse{"flask": flaskProject()}, nil)
	reg := newTestRegistry(t, server.URL)

	_, err := reg.Resolve(context.Background(), "flask", options.WithResolveVersion("99.0.0"))
	require.ErrorIs(t, err, errors.ErrVersionNotFound)
}

func TestResolve_PackageNotFound(t *testing.T) {
	t.Parallel()

	server := testServer(t, map[string]projectResponse{}, nil)
	reg := newTestRegistry(t, server.URL)

	_, err := reg.Resolve(context.Background(), "nope")
	require.ErrorIs(t, err, errors.ErrPackageNotFound)
}

func TestResolve_EmptyHistory(t *testing.T) {
	t.Parallel()

	server := testServer(t, map[string]projectResponse{
		"ghost": {
			Info:     infoBlock{Name: "ghost", Version: "0.0.1"},
			Releases: map[string][]releaseFile{},
		},
	}, nil)
	reg := newTestRegistry(t, server.URL)

	detail, err := reg.Resolve(context.Background(), "ghost")
	require.NoError(t, err)
	require.Equal(t, 0, detail.Maintenance.Score)
	require.Equal(t, packages.StatusPoor, detail.Maintenance.Status)
	require.Equal(t, 0, detail.ReleaseCount)
}

func TestResolve_RegistryUnavailable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	reg := newTestRegistry(t, server.URL)

	_, err := reg.Resolve(context.Background(), "flask")
	require.ErrorIs(t, err, errors.ErrRegistryUnavailable)
}

func TestPing(t *testing.T) {
	t.Parallel()

	server := testServer(t, nil, nil)
	reg := newTestRegistry(t, server.URL)
	require.NoError(t, reg.Ping(context.Background()))

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(down.Close)

	regDown := newTestRegistry(t, down.URL)
	require.ErrorIs(t, regDown.Ping(context.Background()), errors.ErrRegistryUnavailable)
}
