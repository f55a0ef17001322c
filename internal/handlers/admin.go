package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yaas-media/reportdesk/internal/reporting"
	"github.com/yaas-media/reportdesk/internal/services"
	"github.com/yaas-media/reportdesk/pkg/logger"
	"github.com/yaas-media/reportdesk/pkg/response"
	"gorm.io/gorm"
)

// AdminHandler serves the admin dashboard: the submission tracker, the
// processed report table, the xlsx export and per-editor history.
type AdminHandler struct {
	reportService  *services.ReportService
	trackerService *services.TrackerService
	exportService  *services.ExportService
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{
		reportService:  services.NewReportService(db),
		trackerService: services.NewTrackerService(db),
		exportService:  services.NewExportService(),
	}
}

// Tracker returns the roster join for one week
// GET /api/admin/tracker?week=&q=&status=
func (h *AdminHandler) Tracker(c *gin.Context) {
	var req services.TrackerRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, h.trackerService.Tracker(&req))
}

// weekLabelFromQuery resolves the week query parameter (an ISO date inside
// the wanted week, today when absent) to its label.
func weekLabelFromQuery(c *gin.Context) string {
	date := c.Query("week")
	if date == "" {
		date = time.Now().Format(reporting.DateLayout)
	}
	return reporting.LabelFor(date).WeekLabel
}

// columnFilters collects filter_<key>=value query params into a filter map.
func columnFilters(c *gin.Context) map[string]string {
	filters := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if !strings.HasPrefix(key, "filter_") || len(values) == 0 || values[0] == "" {
			continue
		}
		filters[strings.TrimPrefix(key, "filter_")] = values[0]
	}
	return filters
}

// Reports returns the flattened, processed report table for one week
// GET /api/admin/reports?week=&search=&filter_<col>=&sort_by=&sort_order=
func (h *AdminHandler) Reports(c *gin.Context) {
	weekLabel := weekLabelFromQuery(c)
	if weekLabel == "" {
		response.BadRequest(c, "invalid week date")
		return
	}

	var spec reporting.SortSpec
	if err := c.ShouldBindQuery(&spec); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	reports := h.reportService.ReportsForWeek(weekLabel)
	rows := reporting.Flatten(reports)
	processed := reporting.Process(rows, c.Query("search"), columnFilters(c), spec)

	response.Success(c, gin.H{
		"week_label": weekLabel,
		"total":      len(processed),
		"rows":       processed,
	})
}

// Export streams the current week view as an xlsx attachment. The export
// honors the same search/filter/sort parameters as the table so what is
// downloaded matches what is on screen.
// GET /api/admin/reports/export?week=&search=&filter_<col>=&sort_by=&sort_order=
func (h *AdminHandler) Export(c *gin.Context) {
	weekLabel := weekLabelFromQuery(c)
	if weekLabel == "" {
		response.BadRequest(c, "invalid week date")
		return
	}

	var spec reporting.SortSpec
	if err := c.ShouldBindQuery(&spec); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	reports := h.reportService.ReportsForWeek(weekLabel)
	processed := reporting.Process(reporting.Flatten(reports), c.Query("search"), columnFilters(c), spec)

	rows := make([]reporting.FlatRow, len(processed))
	for i := range processed {
		rows[i] = processed[i].FlatRow
	}

	file, err := h.exportService.BuildWorkbook(rows)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	defer file.Close()

	filename := services.ExportFilename(weekLabel)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := file.Write(c.Writer); err != nil {
		logger.Error().Err(err).Msg("xlsx export write failed")
	}
}

// History returns one editor's full report history with aggregate stats
// GET /api/admin/history?email=&from=&to=
func (h *AdminHandler) History(c *gin.Context) {
	var req services.HistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if req.Email == "" {
		response.BadRequest(c, "email is required")
		return
	}

	response.Success(c, h.reportService.History(&req))
}
