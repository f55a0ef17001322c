package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yaas-media/reportdesk/internal/middleware"
	"github.com/yaas-media/reportdesk/internal/reporting"
	"github.com/yaas-media/reportdesk/internal/services"
	"github.com/yaas-media/reportdesk/pkg/response"
	"gorm.io/gorm"
)

// ReportHandler serves the editors' side of the system: submitting a weekly
// report, listing the week choices, and reading back their own history.
type ReportHandler struct {
	reportService *services.ReportService
	authService   *services.AuthService
}

func NewReportHandler(db *gorm.DB, authService *services.AuthService) *ReportHandler {
	return &ReportHandler{
		reportService: services.NewReportService(db),
		authService:   authService,
	}
}

// Submit stores one weekly report for the logged-in editor
// POST /api/reports
func (h *ReportHandler) Submit(c *gin.Context) {
	var req services.SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.authService.GetUserByID(middleware.GetUserID(c))
	if err != nil {
		response.Unauthorized(c, "user not found")
		return
	}

	report, err := h.reportService.Submit(user, &req)
	if err != nil {
		if verr, ok := err.(*reporting.ValidationError); ok {
			response.BadRequest(c, verr.Error())
			return
		}
		response.ServerError(c, err.Error())
		return
	}

	response.Created(c, report)
}

// WeekOptions lists the selectable reporting weeks
// GET /api/reports/week-options
func (h *ReportHandler) WeekOptions(c *gin.Context) {
	response.Success(c, h.reportService.WeekOptions())
}

// Mine returns the logged-in editor's own history with lifetime stats
// GET /api/reports/mine
func (h *ReportHandler) Mine(c *gin.Context) {
	user, err := h.authService.GetUserByID(middleware.GetUserID(c))
	if err != nil {
		response.Unauthorized(c, "user not found")
		return
	}

	req := services.HistoryRequest{
		Email: user.Email,
		From:  c.Query("from"),
		To:    c.Query("to"),
	}
	response.Success(c, h.reportService.History(&req))
}
