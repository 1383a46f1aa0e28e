// Package scoring derives a maintenance score and status label from a
// package's release history. Scoring is a pure function of the release
// history and the supplied clock instant, so results are deterministic and
// safe to compute concurrently.
package scoring

import (
	"math"
	"time"

	"github.com/pypulse/pypulse/internal/packages"
)

const (
	// daysPerMonth fixes one month at 30 days of wall-clock time (not calendar months).
	daysPerMonth = 30

	// trailingWindow is the window over which release frequency is measured.
	trailingWindow = 365 * 24 * time.Hour

	// recencyCeiling is the maximum contribution of release recency to the score.
	recencyCeiling = 50.0

	// recencyPenaltyPerMonth is deducted from the recency ceiling for every
	// month since the most recent release. The recency component reaches zero
	// once the most recent release is 25 or more months old.
	recencyPenaltyPerMonth = 2.0

	// frequencyCeiling is the maximum contribution of release frequency to the score.
	frequencyCeiling = 50.0

	// frequencyPointsPerRelease is awarded per release in the trailing window,
	// saturating at 10 or more releases.
	frequencyPointsPerRelease = 5.0
)

// Evaluate computes the maintenance summary for the given release history.
// Releases must be sorted descending by upload timestamp (most recent first).
// An empty history is a defined input and yields a score of zero, not an error.
func Evaluate(releases []packages.Release, now time.Time) packages.Maintenance {
	if len(releases) == 0 {
		return packages.Maintenance{
			Score:  0,
			Status: StatusFor(0),
		}
	}

	months := now.Sub(releases[0].UploadedAt).Hours() / 24 / daysPerMonth

	recency := max(0, recencyCeiling-months*recencyPenaltyPerMonth)

	cutoff := now.Add(-trailingWindow)
	lastYear := 0
	for _, r := range releases {
		if r.UploadedAt.After(cutoff) {
			lastYear++
		}
	}

	frequency := min(frequencyCeiling, float64(lastYear)*frequencyPointsPerRelease)

	score := int(math.Round(recency + frequency))
	// Guard against clock skew pushing a future-dated release over the ceiling.
	score = max(0, min(100, score))

	return packages.Maintenance{
		Score:                  score,
		Status:                 StatusFor(score),
		RecencyScore:           recency,
		FrequencyScore:         frequency,
		MonthsSinceLastRelease: months,
		ReleasesLastYear:       lastYear,
	}
}

// StatusFor maps a maintenance score to its qualitative label.
// Evaluated top-down, first match wins.
func StatusFor(score int) packages.MaintenanceStatus {
	switch {
	case score >= 80:
		return packages.StatusActive
	case score >= 60:
		return packages.StatusRegular
	case score >= 40:
		return packages.StatusOccasional
	case score >= 20:
		return packages.StatusMinimal
	default:
		return packages.StatusPoor
	}
}
