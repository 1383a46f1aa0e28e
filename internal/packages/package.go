package packages

import "time"

// Package represents a canonical, flattened view of a package returned from a registry search.
type Package struct {
	Name       string  `json:"name"`
	Version    string  `json:"version,omitempty"`
	Summary    string  `json:"summary,omitempty"`
	Similarity float64 `json:"similarity"`
	Source     string  `json:"source"`
}

// Detail represents the full metadata for a single package, including its
// flattened release history and derived maintenance information.
type Detail struct {
	Name           string            `json:"name"`
	Version        string            `json:"version"`
	Summary        string            `json:"summary,omitempty"`
	License        string            `json:"license,omitempty"`
	Author         string            `json:"author,omitempty"`
	Homepage       string            `json:"homepage,omitempty"`
	Repository     string            `json:"repository,omitempty"`
	RequiresPython string            `json:"requiresPython,omitempty"`
	Keywords       []string          `json:"keywords,omitempty"`
	ProjectURLs    map[string]string `json:"projectUrls,omitempty"`
	ReleaseCount   int               `json:"releaseCount"`
	RecentReleases []Release         `json:"recentReleases,omitempty"`
	Maintenance    Maintenance       `json:"maintenance"`
	Source         string            `json:"source"`
}

// Release is one published file/version entry with its upload timestamp.
// A version with multiple uploaded files produces one Release per file.
type Release struct {
	Version    string    `json:"version"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// MaintenanceStatus is a qualitative label derived from a maintenance score.
type MaintenanceStatus string

const (
	StatusActive     MaintenanceStatus = "Actively maintained"
	StatusRegular    MaintenanceStatus = "Regularly maintained"
	StatusOccasional MaintenanceStatus = "Occasionally maintained"
	StatusMinimal    MaintenanceStatus = "Minimally maintained"
	StatusPoor       MaintenanceStatus = "Poorly maintained"
)

// Maintenance summarizes how actively a package is maintained, derived from
// the recency and frequency of its releases. Score is always in [0,100].
type Maintenance struct {
	Score                  int               `json:"score"`
	Status                 MaintenanceStatus `json:"status"`
	RecencyScore           float64           `json:"recencyScore"`
	FrequencyScore         float64           `json:"frequencyScore"`
	MonthsSinceLastRelease float64           `json:"monthsSinceLastRelease"`
	ReleasesLastYear       int               `json:"releasesLastYear"`
}
