package reporting

import (
	"strings"

	"github.com/yaas-media/reportdesk/internal/models"
)

// EditorStatus is one roster entry's submission standing for the selected
// week: every roster entry appears exactly once in joiner output, submitted or
// not.
type EditorStatus struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	YaasID       string  `json:"yaas_id"`
	HasSubmitted bool    `json:"has_submitted"`
	WeeklyScore  float64 `json:"weekly_score"`
	ReportID     uint    `json:"report_id,omitempty"`
}

// Join cross-references the roster against the week's reports. Email is the
// join key, matched exactly; when duplicates exist for a week the first report
// wins, matching the store's lookup semantics. The weekly score sums, over the
// matched report's entries, the effective short-form value (legacy fallback
// applied) plus the long-form value.
func Join(roster []models.EditorRegistry, reportsForWeek []models.Report) []EditorStatus {
	statuses := make([]EditorStatus, 0, len(roster))
	for i := range roster {
		entry := &roster[i]
		status := EditorStatus{
			Name:   entry.Name,
			Email:  entry.Email,
			YaasID: entry.YaasID,
		}

		for j := range reportsForWeek {
			r := &reportsForWeek[j]
			if r.EditorEmail != entry.Email {
				continue
			}
			status.HasSubmitted = true
			status.ReportID = r.ID
			for k := range r.Entries {
				sf, _ := r.Entries[k].EffectiveSF()
				status.WeeklyScore += sf + r.Entries[k].EffectiveLF()
			}
			break
		}

		statuses = append(statuses, status)
	}
	return statuses
}

// Tracker status filter values.
const (
	StatusSubmitted = "submitted"
	StatusMissing   = "missing"
)

// FilterStatuses narrows joiner output by a case-insensitive substring match
// on name or YAAS id, and by submission status. Applied after the join so the
// roster stays complete for the unfiltered view.
func FilterStatuses(statuses []EditorStatus, query, status string) []EditorStatus {
	needle := strings.ToLower(strings.TrimSpace(query))
	out := make([]EditorStatus, 0, len(statuses))
	for _, s := range statuses {
		if needle != "" &&
			!strings.Contains(strings.ToLower(s.Name), needle) &&
			!strings.Contains(strings.ToLower(s.YaasID), needle) {
			continue
		}
		switch status {
		case StatusSubmitted:
			if !s.HasSubmitted {
				continue
			}
		case StatusMissing:
			if s.HasSubmitted {
				continue
			}
		}
		out = append(out, s)
	}
	return out
}
