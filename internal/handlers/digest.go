package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yaas-media/reportdesk/internal/config"
	"github.com/yaas-media/reportdesk/internal/services"
	"github.com/yaas-media/reportdesk/pkg/response"
	"gorm.io/gorm"
)

// DigestHandler exposes the stored weekly digests and on-demand generation.
type DigestHandler struct {
	digestService *services.DigestService
}

func NewDigestHandler(db *gorm.DB, cfg *config.Config) *DigestHandler {
	return &DigestHandler{
		digestService: services.NewDigestService(db, &cfg.OpenAI),
	}
}

// List returns recent digests
// GET /api/admin/digests
func (h *DigestHandler) List(c *gin.Context) {
	digests, err := h.digestService.List(12)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, digests)
}

type generateDigestRequest struct {
	Week string `json:"week" binding:"required"` // week label
}

// Generate builds (or rebuilds) the digest for one week
// POST /api/admin/digests
func (h *DigestHandler) Generate(c *gin.Context) {
	var req generateDigestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	digest, err := h.digestService.Generate(c.Request.Context(), req.Week)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, digest)
}
