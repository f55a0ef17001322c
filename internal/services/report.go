package services

import (
	"time"

	"github.com/yaas-media/reportdesk/internal/models"
	"github.com/yaas-media/reportdesk/internal/reporting"
	"github.com/yaas-media/reportdesk/pkg/logger"
	"gorm.io/gorm"
)

type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

type SubmitReportRequest struct {
	SubmissionDate string                   `json:"submission_date" binding:"required"`
	General        reporting.GeneralAnswers `json:"general"`
	Entries        []models.ProjectEntry    `json:"entries"`
}

// Submit validates and persists one weekly report. Insert-only: resubmitting
// the same week appends a new record. Validation errors block the write; a
// store error on the write is surfaced as-is, never retried.
func (s *ReportService) Submit(user *models.User, req *SubmitReportRequest) (*models.Report, error) {
	report, err := reporting.BuildReport(user, req.SubmissionDate, req.General, req.Entries)
	if err != nil {
		return nil, err
	}

	if err := s.db.Create(report).Error; err != nil {
		return nil, err
	}

	LogInfo("reports", "submit", "weekly report submitted", &user.ID, "", map[string]interface{}{
		"report_id":  report.ID,
		"week_label": report.WeekLabel,
	})
	return report, nil
}

// ReportsForWeek loads all reports carrying the given week label, oldest
// first so that first-match-wins lookups are deterministic. Read failures
// degrade to an empty set: the dashboards render "no records" instead of
// failing.
func (s *ReportService) ReportsForWeek(weekLabel string) []models.Report {
	var reports []models.Report
	if err := s.db.Where("week_label = ?", weekLabel).Order("id").Find(&reports).Error; err != nil {
		logger.Error().Err(err).Str("week", weekLabel).Msg("failed to load reports for week")
		return nil
	}
	return reports
}

// HistoryRequest bounds an editor's report history. From/To are inclusive
// submission-date bounds; empty means unbounded.
type HistoryRequest struct {
	Email string `form:"email"`
	From  string `form:"from"`
	To    string `form:"to"`
}

type HistoryResponse struct {
	Reports []models.Report  `json:"reports"`
	Stats   *reporting.Stats `json:"stats"`
}

// History returns an editor's reports newest first plus lifetime statistics.
// The date-range restriction happens here, in the query; the aggregator stays
// pure over the fetched set.
func (s *ReportService) History(req *HistoryRequest) *HistoryResponse {
	query := s.db.Where("editor_email = ?", req.Email)
	if req.From != "" {
		query = query.Where("submission_date >= ?", req.From)
	}
	if req.To != "" {
		query = query.Where("submission_date <= ?", req.To)
	}

	var reports []models.Report
	if err := query.Order("submission_date DESC").Find(&reports).Error; err != nil {
		logger.Error().Err(err).Str("email", req.Email).Msg("failed to load report history")
		return &HistoryResponse{Reports: []models.Report{}}
	}

	return &HistoryResponse{
		Reports: reports,
		Stats:   reporting.Aggregate(reports),
	}
}

// WeekOptions lists the selectable weeks for dropdowns.
func (s *ReportService) WeekOptions() []reporting.WeekOption {
	return reporting.WeekOptions(time.Now())
}
