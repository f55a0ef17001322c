package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yaas-media/reportdesk/internal/models"
	"github.com/yaas-media/reportdesk/pkg/logger"
	"gorm.io/gorm"
)

// ImportService ingests historical report data pasted straight out of a
// spreadsheet. Input is either a JSON array of row objects or raw CSV/TSV
// text with a header line; rows are regrouped into one report per editor
// and week before insertion.
type ImportService struct {
	db *gorm.DB
}

func NewImportService(db *gorm.DB) *ImportService {
	return &ImportService{db: db}
}

// CreateJob records a pending import job and returns it. The actual work
// happens in Run, usually via the task queue.
func (s *ImportService) CreateJob(createdBy uint) (*models.ImportJob, error) {
	job := &models.ImportJob{
		ID:        uuid.NewString(),
		Status:    models.ImportStatusPending,
		CreatedBy: createdBy,
	}
	if err := s.db.Create(job).Error; err != nil {
		return nil, err
	}
	return job, nil
}

// GetJob loads one import job by its UUID.
func (s *ImportService) GetJob(id string) (*models.ImportJob, error) {
	var job models.ImportJob
	if err := s.db.First(&job, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// ListJobs returns recent import jobs, newest first.
func (s *ImportService) ListJobs(limit int) ([]models.ImportJob, error) {
	if limit <= 0 {
		limit = 20
	}
	var jobs []models.ImportJob
	if err := s.db.Order("created_at DESC").Limit(limit).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// Run executes one import job end to end: parse, group, insert, tally.
// Per-record insert failures are counted and logged on the job rather than
// aborting it; only unparseable input fails the job outright.
func (s *ImportService) Run(ctx context.Context, jobID, input string) error {
	var job models.ImportJob
	if err := s.db.First(&job, "id = ?", jobID).Error; err != nil {
		return err
	}

	var lines []string
	logf := func(format string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	fail := func(err error) error {
		logf("import aborted: %v", err)
		job.Status = models.ImportStatusFailed
		job.Log = strings.Join(lines, "\n")
		s.db.Save(&job)
		LogError("import", "run", "bulk import failed", &job.CreatedBy, "", map[string]interface{}{
			"job_id": job.ID,
			"error":  err.Error(),
		})
		return err
	}

	job.Status = models.ImportStatusRunning
	if err := s.db.Save(&job).Error; err != nil {
		return err
	}

	rows, err := parseRows(input)
	if err != nil {
		return fail(err)
	}
	job.TotalRows = len(rows)
	logf("loaded %d rows, grouping by week and email", len(rows))

	reports := groupRows(rows)
	logf("grouped into %d unique reports", len(reports))

	for i := range reports {
		if err := ctx.Err(); err != nil {
			return fail(err)
		}
		report := &reports[i]

		// Link to an existing account when the email matches one.
		var user models.User
		if err := s.db.Where("email = ?", report.EditorEmail).First(&user).Error; err == nil {
			report.UserID = user.ID
		}

		if err := s.db.Create(report).Error; err != nil {
			job.Failed++
			logf("failed (%s, %s): %v", report.EditorName, report.WeekLabel, err)
			continue
		}
		job.Imported++
	}

	logf("done: imported %d, failed %d", job.Imported, job.Failed)
	job.Status = models.ImportStatusFinished
	job.Log = strings.Join(lines, "\n")
	if err := s.db.Save(&job).Error; err != nil {
		return err
	}

	LogInfo("import", "run", "bulk import finished", &job.CreatedBy, "", map[string]interface{}{
		"job_id":   job.ID,
		"imported": job.Imported,
		"failed":   job.Failed,
	})
	return nil
}

// parseRows decodes the pasted input. A JSON array of objects is taken as-is;
// anything else is treated as delimited text with a header line. The
// delimiter is sniffed from the header: a tab means spreadsheet paste,
// otherwise comma.
func parseRows(input string) ([]map[string]string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, fmt.Errorf("empty input")
	}

	if strings.HasPrefix(trimmed, "[") {
		var generic []map[string]interface{}
		if err := json.Unmarshal([]byte(trimmed), &generic); err == nil {
			rows := make([]map[string]string, 0, len(generic))
			for _, obj := range generic {
				row := make(map[string]string, len(obj))
				for k, v := range obj {
					row[k] = fmt.Sprintf("%v", v)
				}
				rows = append(rows, row)
			}
			return rows, nil
		}
	}

	lines := strings.Split(strings.ReplaceAll(trimmed, "\r\n", "\n"), "\n")
	if len(lines) < 2 {
		return nil, fmt.Errorf("not enough data: need a header line and at least one row")
	}

	sep := ","
	if strings.Contains(lines[0], "\t") {
		sep = "\t"
	}

	headers := splitClean(lines[0], sep)
	rows := make([]map[string]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := splitClean(line, sep)
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(values) {
				row[h] = values[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// splitClean splits one delimited line and strips whitespace plus any wrapping
// quotes from each cell.
func splitClean(line, sep string) []string {
	parts := strings.Split(line, sep)
	for i, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.TrimPrefix(p, `"`)
		p = strings.TrimSuffix(p, `"`)
		parts[i] = p
	}
	return parts
}

// groupRows folds spreadsheet rows into reports keyed by editor email and
// week label. The first row of a group supplies the general answers; every
// row contributes one project entry. Rows with neither an email nor a name
// are skipped as padding.
func groupRows(rows []map[string]string) []models.Report {
	grouped := make(map[string]*models.Report)
	var order []string

	for _, row := range rows {
		if row["Email"] == "" && row["Name"] == "" {
			continue
		}

		key := row["Email"] + "-" + row["Week"]
		report, ok := grouped[key]
		if !ok {
			report = &models.Report{
				EditorName:          row["Name"],
				EditorEmail:         row["Email"],
				YaasID:              row["YAAS ID"],
				SubmissionDate:      importDate(row["Timestamp"]),
				WeekLabel:           row["Week"],
				MonthLabel:          row["Month"],
				HygieneScore:        importNum(row["Hygiene Score"]),
				MistakesRepeated:    importYes(row["Mistakes Repeated?"]),
				MistakeDetails:      row["Mistake Details"],
				Delays:              importYes(row["Delays?"]),
				DelayReasons:        row["Delay Reasons"],
				GeneralImprovements: row["General Improvements"],
				NextWeekCommitment:  importNum(row["Next Week Target (Reels/Animations)"]),
				AreasImprovement:    row["Areas for Improvement"],
				OverallFeedback:     row["Self Reflection"],
			}
			grouped[key] = report
			order = append(order, key)
		}

		// Historical rows only carry the legacy reel counters; the named
		// daily metrics stay nil and readers fall back per entry.
		delivered := importNum(row["Reels/Animations Delivered"])
		approved := importNum(row["Approved"])
		report.Entries = append(report.Entries, models.ProjectEntry{
			IPName:          row["IP Name"],
			LeadEditor:      row["Lead Editor"],
			ChannelManager:  row["Channel Manager"],
			ReelsDelivered:  &delivered,
			ApprovedReels:   &approved,
			CreativeInputs:  row["Creative Inputs"],
			HasBlockers:     yesNoFlag(row["Blockers?"]),
			BlockerDetails:  row["Blocker Details"],
			HasQCRepeat:     yesNoFlag(row["QC Changes Repeated?"]),
			QCDetails:       row["QC Details"],
			Improvements:    row["IP Improvements"],
			DriveLinks:      row["Work Links"],
			ManagerComments: row["IP Manager Comments"],
		})
	}

	reports := make([]models.Report, 0, len(order))
	for _, key := range order {
		reports = append(reports, *grouped[key])
	}
	return reports
}

// importDate normalizes a spreadsheet timestamp to YYYY-MM-DD. Unparseable
// or missing timestamps fall back to today so the record still lands.
func importDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Now().Format("2006-01-02")
	}
	for _, layout := range []string{
		"2006-01-02", time.RFC3339, "1/2/2006 15:04:05", "1/2/2006",
		"02/01/2006 15:04:05", "02/01/2006",
	} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02")
		}
	}
	logger.Warn().Str("timestamp", raw).Msg("unparseable import timestamp, using today")
	return time.Now().Format("2006-01-02")
}

func importNum(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}

func importYes(raw string) bool {
	return strings.Contains(strings.ToLower(raw), "yes")
}

func yesNoFlag(raw string) string {
	if importYes(raw) {
		return "Yes"
	}
	return "No"
}
