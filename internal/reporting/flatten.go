package reporting

import (
	"fmt"

	"github.com/yaas-media/reportdesk/internal/models"
)

// LegacySFNote is attached to a flat row when the short-form value was read
// from the legacy delivered-count field.
const LegacySFNote = "derived from legacy delivered reel count"

// Placeholder marks entry-specific text columns of a report with no entries.
const Placeholder = "-"

// FlatRow is a display-only join of one report's general fields with one of
// its project entries. Recomputed from the current report set on every
// request; never persisted.
type FlatRow struct {
	ID       string `json:"id"`
	ReportID uint   `json:"report_id"`

	EditorName          string  `json:"editor_name"`
	EditorEmail         string  `json:"editor_email"`
	YaasID              string  `json:"yaas_id"`
	SubmissionDate      string  `json:"submission_date"`
	WeekLabel           string  `json:"week_label"`
	MonthLabel          string  `json:"month_label"`
	HygieneScore        float64 `json:"hygiene_score"`
	MistakesRepeated    bool    `json:"mistakes_repeated"`
	MistakeDetails      string  `json:"mistake_details"`
	Delays              bool    `json:"delays"`
	DelayReasons        string  `json:"delay_reasons"`
	GeneralImprovements string  `json:"general_improvements"`
	NextWeekCommitment  float64 `json:"next_week_commitment"`
	AreasImprovement    string  `json:"areas_improvement"`
	OverallFeedback     string  `json:"overall_feedback"`

	IPName          string  `json:"ip_name"`
	LeadEditor      string  `json:"lead_editor"`
	ChannelManager  string  `json:"channel_manager"`
	SFDaily         float64 `json:"sf_daily"`
	SFNote          string  `json:"sf_note"`
	SFLegacy        bool    `json:"sf_legacy"`
	LFDaily         float64 `json:"lf_daily"`
	LFNote          string  `json:"lf_note"`
	TotalMinutes    float64 `json:"total_minutes"`
	MinutesNote     string  `json:"minutes_note"`
	Approved        float64 `json:"approved"`
	CreativeInputs  string  `json:"creative_inputs"`
	HasBlockers     string  `json:"has_blockers"`
	BlockerDetails  string  `json:"blocker_details"`
	HasQCRepeat     string  `json:"has_qc_repeat"`
	QCDetails       string  `json:"qc_details"`
	Improvements    string  `json:"improvements"`
	DriveLinks      string  `json:"drive_links"`
	ManagerComments string  `json:"manager_comments"`
}

// Flatten expands each report into one row per project entry, duplicating the
// general fields onto every row. A report with no entries still yields one
// placeholder row so it stays visible in the table. Pure and order-preserving:
// rows follow report order, entries keep their list order, and inputs are
// never mutated.
func Flatten(reports []models.Report) []FlatRow {
	rows := make([]FlatRow, 0, len(reports))
	for i := range reports {
		r := &reports[i]
		if len(r.Entries) == 0 {
			rows = append(rows, placeholderRow(r))
			continue
		}
		for idx := range r.Entries {
			rows = append(rows, entryRow(r, idx))
		}
	}
	return rows
}

func generalRow(r *models.Report, idx int) FlatRow {
	return FlatRow{
		ID:       fmt.Sprintf("%d_%d", r.ID, idx),
		ReportID: r.ID,

		EditorName:          r.EditorName,
		EditorEmail:         r.EditorEmail,
		YaasID:              r.YaasID,
		SubmissionDate:      r.SubmissionDate,
		WeekLabel:           r.WeekLabel,
		MonthLabel:          r.MonthLabel,
		HygieneScore:        r.HygieneScore,
		MistakesRepeated:    r.MistakesRepeated,
		MistakeDetails:      r.MistakeDetails,
		Delays:              r.Delays,
		DelayReasons:        r.DelayReasons,
		GeneralImprovements: r.GeneralImprovements,
		NextWeekCommitment:  r.NextWeekCommitment,
		AreasImprovement:    r.AreasImprovement,
		OverallFeedback:     r.OverallFeedback,
	}
}

func entryRow(r *models.Report, idx int) FlatRow {
	e := &r.Entries[idx]
	row := generalRow(r, idx)

	sf, legacy := e.EffectiveSF()
	row.SFDaily = sf
	row.SFNote = e.SFNote
	row.SFLegacy = legacy
	if legacy {
		// Single point of truth for the fallback: consumers read the
		// resolved value and the note, never the raw legacy field.
		row.SFNote = LegacySFNote
	}

	row.IPName = e.IPName
	row.LeadEditor = e.LeadEditor
	row.ChannelManager = e.ChannelManager
	row.LFDaily = e.EffectiveLF()
	row.LFNote = e.LFNote
	row.TotalMinutes = e.EffectiveMinutes()
	row.MinutesNote = e.MinutesNote
	row.Approved = e.EffectiveApproved()
	row.CreativeInputs = e.CreativeInputs
	row.HasBlockers = e.HasBlockers
	row.BlockerDetails = e.BlockerDetails
	row.HasQCRepeat = e.HasQCRepeat
	row.QCDetails = e.QCDetails
	row.Improvements = e.Improvements
	row.DriveLinks = e.DriveLinks
	row.ManagerComments = e.ManagerComments
	return row
}

func placeholderRow(r *models.Report) FlatRow {
	row := generalRow(r, 0)
	row.IPName = Placeholder
	row.LeadEditor = Placeholder
	row.ChannelManager = Placeholder
	row.CreativeInputs = Placeholder
	row.HasBlockers = Placeholder
	row.BlockerDetails = Placeholder
	row.HasQCRepeat = Placeholder
	row.QCDetails = Placeholder
	row.Improvements = Placeholder
	row.DriveLinks = Placeholder
	row.ManagerComments = Placeholder
	return row
}
