package reporting

import (
	"fmt"

	"github.com/yaas-media/reportdesk/internal/models"
)

// Stats are lifetime counters over one editor's report history (or any report
// set the caller hands in).
type Stats struct {
	TotalReports  int     `json:"total_reports"`
	AvgHygiene    string  `json:"avg_hygiene"`
	TotalSF       float64 `json:"total_sf"`
	TotalLF       float64 `json:"total_lf"`
	TotalApproved float64 `json:"total_approved"`
	TotalMinutes  float64 `json:"total_minutes"`
}

// Aggregate computes summary statistics over the given reports, applying the
// legacy short-form fallback per entry. Returns nil for an empty set. Any
// date-range restriction is the caller's responsibility; the aggregator is
// pure over whatever it is given.
func Aggregate(reports []models.Report) *Stats {
	if len(reports) == 0 {
		return nil
	}

	stats := &Stats{TotalReports: len(reports)}
	var hygieneSum float64

	for i := range reports {
		r := &reports[i]
		hygieneSum += r.HygieneScore
		for j := range r.Entries {
			e := &r.Entries[j]
			sf, _ := e.EffectiveSF()
			stats.TotalSF += sf
			stats.TotalLF += e.EffectiveLF()
			stats.TotalApproved += e.EffectiveApproved()
			stats.TotalMinutes += e.EffectiveMinutes()
		}
	}

	stats.AvgHygiene = fmt.Sprintf("%.1f", hygieneSum/float64(len(reports)))
	return stats
}
