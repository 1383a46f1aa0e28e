package pypi

import (
	"slices"
	"strings"
	"time"

	"github.com/pypulse/pypulse/internal/packages"
)

// uploadTimeLayout is the timestamp format used by the PyPI JSON API's
// 'upload_time' field. The 'upload_time_iso_8601' field is RFC 3339.
const uploadTimeLayout = "2006-01-02T15:04:05"

// flattenReleases converts the registry's per-version release-file lists
// into one record per (version, upload time) pair, sorted descending by
// timestamp. Multiple files for the same version each produce a separate
// record. Files whose timestamps cannot be parsed are skipped.
func flattenReleases(releases map[string][]releaseFile) []packages.Release {
	flattened := make([]packages.Release, 0, len(releases))

	for version, files := range releases {
		for _, file := range files {
			uploadedAt, ok := parseUploadTime(file)
			if !ok {
				continue
			}
			flattened = append(flattened, packages.Release{
				Version:    version,
				UploadedAt: uploadedAt,
			})
		}
	}

	slices.SortFunc(flattened, func(a, b packages.Release) int {
		if a.UploadedAt.After(b.UploadedAt) {
			return -1
		}
		if b.UploadedAt.After(a.UploadedAt) {
			return 1
		}
		return strings.Compare(a.Version, b.Version)
	})

	return flattened
}

func parseUploadTime(file releaseFile) (time.Time, bool) {
	if file.UploadTimeISO8601 != "" {
		if t, err := time.Parse(time.RFC3339, file.UploadTimeISO8601); err == nil {
			return t, true
		}
	}
	if file.UploadTime != "" {
		if t, err := time.Parse(uploadTimeLayout, file.UploadTime); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
