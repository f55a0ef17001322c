package services

import (
	"regexp"

	"github.com/xuri/excelize/v2"
	"github.com/yaas-media/reportdesk/internal/reporting"
)

// ExportService renders flattened report rows into a single-sheet workbook.
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

var exportColumns = []struct {
	Header string
	Key    string
}{
	{"Date", "submission_date"},
	{"Week", "week_label"},
	{"Month", "month_label"},
	{"Editor", "editor_name"},
	{"Email", "editor_email"},
	{"YAAS ID", "yaas_id"},
	{"Hygiene Score", "hygiene_score"},
	{"Mistakes Repeated", "mistakes_repeated"},
	{"Mistake Details", "mistake_details"},
	{"Delays", "delays"},
	{"Delay Reasons", "delay_reasons"},
	{"General Improvements", "general_improvements"},
	{"Next Week Commitment", "next_week_commitment"},
	{"Areas for Improvement", "areas_improvement"},
	{"Overall Feedback", "overall_feedback"},
	{"IP Name", "ip_name"},
	{"Lead Editor", "lead_editor"},
	{"Channel Manager", "channel_manager"},
	{"SF Daily", "sf_daily"},
	{"SF Note", "sf_note"},
	{"LF Daily", "lf_daily"},
	{"LF Note", "lf_note"},
	{"Total Minutes", "total_minutes"},
	{"Minutes Note", "minutes_note"},
	{"Approved", "approved"},
	{"Creative Inputs", "creative_inputs"},
	{"Blockers", "has_blockers"},
	{"Blocker Details", "blocker_details"},
	{"QC Repeated", "has_qc_repeat"},
	{"QC Details", "qc_details"},
	{"Improvements", "improvements"},
	{"Work Links", "drive_links"},
	{"Manager Comments", "manager_comments"},
}

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

// ExportFilename derives the download name from the active week label,
// replacing every non-alphanumeric character.
func ExportFilename(weekLabel string) string {
	if weekLabel == "" {
		weekLabel = "reports"
	}
	return nonAlnum.ReplaceAllString(weekLabel, "_") + ".xlsx"
}

// BuildWorkbook writes one row per flat row into a workbook with a single
// sheet, columns matching the admin table field set.
func (s *ExportService) BuildWorkbook(rows []reporting.FlatRow) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Reports"

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(exportColumns))
	for i, col := range exportColumns {
		header[i] = col.Header
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for i := range rows {
		values := rowValues(&rows[i])
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func rowValues(row *reporting.FlatRow) []interface{} {
	values := make([]interface{}, len(exportColumns))
	for i, col := range exportColumns {
		switch col.Key {
		case "hygiene_score":
			values[i] = row.HygieneScore
		case "next_week_commitment":
			values[i] = row.NextWeekCommitment
		case "sf_daily":
			values[i] = row.SFDaily
		case "lf_daily":
			values[i] = row.LFDaily
		case "total_minutes":
			values[i] = row.TotalMinutes
		case "approved":
			values[i] = row.Approved
		default:
			values[i] = reporting.FieldString(row, col.Key)
		}
	}
	return values
}

