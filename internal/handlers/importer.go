package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/yaas-media/reportdesk/internal/middleware"
	"github.com/yaas-media/reportdesk/internal/services"
	"github.com/yaas-media/reportdesk/pkg/response"
	"gorm.io/gorm"
)

// ImportHandler accepts pasted spreadsheet data and hands it to the task
// queue. With Redis the work runs on the async worker and the client polls
// the job; without it the sync queue processes in-process.
type ImportHandler struct {
	importService *services.ImportService
}

func NewImportHandler(db *gorm.DB) *ImportHandler {
	return &ImportHandler{
		importService: services.NewImportService(db),
	}
}

type importRequest struct {
	Data string `json:"data" binding:"required"`
}

// Start creates an import job and enqueues it
// POST /api/admin/import
func (h *ImportHandler) Start(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	job, err := h.importService.CreateJob(middleware.GetUserID(c))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	queue := services.GetTaskQueue()
	if queue == nil {
		// No queue wired (tests, partial bootstrap): run inline.
		if err := h.importService.Run(context.Background(), job.ID, req.Data); err != nil {
			response.ServerError(c, err.Error())
			return
		}
		finished, err := h.importService.GetJob(job.ID)
		if err != nil {
			response.ServerError(c, err.Error())
			return
		}
		response.Success(c, finished)
		return
	}

	if err := queue.Enqueue(&services.ImportTask{JobID: job.ID, Input: req.Data}); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Accepted(c, job)
}

// GetJob returns one import job with its tally and log
// GET /api/admin/import/:id
func (h *ImportHandler) GetJob(c *gin.Context) {
	job, err := h.importService.GetJob(c.Param("id"))
	if err != nil {
		response.NotFound(c, "import job not found")
		return
	}
	response.Success(c, job)
}

// ListJobs returns recent import jobs
// GET /api/admin/import
func (h *ImportHandler) ListJobs(c *gin.Context) {
	jobs, err := h.importService.ListJobs(20)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, jobs)
}
