package reporting

import (
	"sort"
	"strconv"
	"strings"
)

// Sort directions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// SortSpec names the column to order by and the direction. An empty key means
// input order is kept.
type SortSpec struct {
	Key       string `json:"key" form:"sort_by"`
	Direction string `json:"direction" form:"sort_order"`
}

// ProcessedRow is a FlatRow annotated with grouping metadata. RowSpan is the
// run length on the first row of a merged block; Merged marks follower rows
// whose shared (per-report) columns the renderer suppresses. Entry-specific
// columns are never merged.
type ProcessedRow struct {
	FlatRow
	RowSpan int  `json:"row_span"`
	Merged  bool `json:"merged"`
}

// Columns whose sort order keeps rows of one report adjacent, making row-span
// grouping meaningful. Sorting by an entry metric interleaves reports, so
// grouping is disabled there: merging per-report cells under a per-entry order
// would misrepresent the data.
var groupableKeys = map[string]bool{
	"editor_name":     true,
	"yaas_id":         true,
	"submission_date": true,
}

var numericKeys = map[string]bool{
	"hygiene_score":        true,
	"next_week_commitment": true,
	"sf_daily":             true,
	"lf_daily":             true,
	"total_minutes":        true,
	"approved":             true,
	"report_id":            true,
}

// Process applies global search, per-column filters, sorting and row-span
// grouping to a flattened row set. Pure: the input slice is left untouched and
// a fresh slice is returned, so repeated calls over the same rows are
// structurally equal.
//
// Search is a case-insensitive substring match over editor name, YAAS id and
// IP name (OR). Column filters match the stringified field value and compose
// with AND. The sort is stable, so ties keep their prior relative order.
func Process(rows []FlatRow, search string, filters map[string]string, spec SortSpec) []ProcessedRow {
	filtered := make([]FlatRow, 0, len(rows))
	needle := strings.ToLower(strings.TrimSpace(search))

	for _, row := range rows {
		if needle != "" && !matchesSearch(&row, needle) {
			continue
		}
		if !matchesFilters(&row, filters) {
			continue
		}
		filtered = append(filtered, row)
	}

	if spec.Key != "" {
		desc := spec.Direction == SortDesc
		if numericKeys[spec.Key] {
			sort.SliceStable(filtered, func(i, j int) bool {
				a, b := fieldNumber(&filtered[i], spec.Key), fieldNumber(&filtered[j], spec.Key)
				if desc {
					return a > b
				}
				return a < b
			})
		} else {
			sort.SliceStable(filtered, func(i, j int) bool {
				a, b := FieldString(&filtered[i], spec.Key), FieldString(&filtered[j], spec.Key)
				if desc {
					return a > b
				}
				return a < b
			})
		}
	}

	return group(filtered, groupableKeys[spec.Key])
}

// group merges consecutive rows sharing a parent report into one visual block
// when enabled. The first row of each run carries the span; followers are
// marked merged.
func group(rows []FlatRow, enabled bool) []ProcessedRow {
	out := make([]ProcessedRow, len(rows))
	for i, row := range rows {
		out[i] = ProcessedRow{FlatRow: row, RowSpan: 1}
	}
	if !enabled {
		return out
	}

	for i := 0; i < len(out); {
		j := i + 1
		for j < len(out) && out[j].ReportID == out[i].ReportID {
			out[j].Merged = true
			out[j].RowSpan = 0
			j++
		}
		out[i].RowSpan = j - i
		i = j
	}
	return out
}

func matchesSearch(row *FlatRow, needle string) bool {
	return strings.Contains(strings.ToLower(row.EditorName), needle) ||
		strings.Contains(strings.ToLower(row.YaasID), needle) ||
		strings.Contains(strings.ToLower(row.IPName), needle)
}

func matchesFilters(row *FlatRow, filters map[string]string) bool {
	for key, want := range filters {
		want = strings.ToLower(strings.TrimSpace(want))
		if want == "" {
			continue
		}
		if !strings.Contains(strings.ToLower(FieldString(row, key)), want) {
			return false
		}
	}
	return true
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FieldString returns the display/filter value of a column. Unknown keys
// stringify to "" so a filter on them matches everything, mirroring how the
// dashboard ignores stale filter state for removed columns.
func FieldString(row *FlatRow, key string) string {
	switch key {
	case "editor_name":
		return row.EditorName
	case "editor_email":
		return row.EditorEmail
	case "yaas_id":
		return row.YaasID
	case "submission_date":
		return row.SubmissionDate
	case "week_label":
		return row.WeekLabel
	case "month_label":
		return row.MonthLabel
	case "hygiene_score":
		return formatNumber(row.HygieneScore)
	case "mistakes_repeated":
		return yesNo(row.MistakesRepeated)
	case "mistake_details":
		return row.MistakeDetails
	case "delays":
		return yesNo(row.Delays)
	case "delay_reasons":
		return row.DelayReasons
	case "general_improvements":
		return row.GeneralImprovements
	case "areas_improvement":
		return row.AreasImprovement
	case "overall_feedback":
		return row.OverallFeedback
	case "next_week_commitment":
		return formatNumber(row.NextWeekCommitment)
	case "ip_name":
		return row.IPName
	case "lead_editor":
		return row.LeadEditor
	case "channel_manager":
		return row.ChannelManager
	case "sf_daily":
		return formatNumber(row.SFDaily)
	case "sf_note":
		return row.SFNote
	case "lf_daily":
		return formatNumber(row.LFDaily)
	case "lf_note":
		return row.LFNote
	case "total_minutes":
		return formatNumber(row.TotalMinutes)
	case "minutes_note":
		return row.MinutesNote
	case "approved":
		return formatNumber(row.Approved)
	case "creative_inputs":
		return row.CreativeInputs
	case "has_blockers":
		return row.HasBlockers
	case "blocker_details":
		return row.BlockerDetails
	case "has_qc_repeat":
		return row.HasQCRepeat
	case "qc_details":
		return row.QCDetails
	case "improvements":
		return row.Improvements
	case "drive_links":
		return row.DriveLinks
	case "manager_comments":
		return row.ManagerComments
	default:
		return ""
	}
}

func fieldNumber(row *FlatRow, key string) float64 {
	switch key {
	case "hygiene_score":
		return row.HygieneScore
	case "next_week_commitment":
		return row.NextWeekCommitment
	case "sf_daily":
		return row.SFDaily
	case "lf_daily":
		return row.LFDaily
	case "total_minutes":
		return row.TotalMinutes
	case "approved":
		return row.Approved
	case "report_id":
		return float64(row.ReportID)
	default:
		return 0
	}
}
