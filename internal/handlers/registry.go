package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yaas-media/reportdesk/internal/services"
	"github.com/yaas-media/reportdesk/pkg/response"
	"gorm.io/gorm"
)

// RegistryHandler manages the editor roster and the IP catalog.
type RegistryHandler struct {
	registryService *services.RegistryService
}

func NewRegistryHandler(db *gorm.DB) *RegistryHandler {
	return &RegistryHandler{
		registryService: services.NewRegistryService(db),
	}
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// ListEditors returns the roster
// GET /api/admin/registry?active=true
func (h *RegistryHandler) ListEditors(c *gin.Context) {
	entries, err := h.registryService.ListEditors(c.Query("active") == "true")
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, entries)
}

// CreateEditor adds a roster entry
// POST /api/admin/registry
func (h *RegistryHandler) CreateEditor(c *gin.Context) {
	var req services.RegistryEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	entry, err := h.registryService.CreateEditor(&req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Created(c, entry)
}

// UpdateEditor updates a roster entry
// PUT /api/admin/registry/:id
func (h *RegistryHandler) UpdateEditor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req services.RegistryEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	entry, err := h.registryService.UpdateEditor(id, &req)
	if err != nil {
		response.NotFound(c, err.Error())
		return
	}
	response.Success(c, entry)
}

// DeleteEditor removes a roster entry
// DELETE /api/admin/registry/:id
func (h *RegistryHandler) DeleteEditor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.registryService.DeleteEditor(id); err != nil {
		response.NotFound(c, err.Error())
		return
	}
	response.Success(c, gin.H{"deleted": id})
}

// ListIPs returns the IP catalog
// GET /api/admin/ips?active=true
func (h *RegistryHandler) ListIPs(c *gin.Context) {
	ips, err := h.registryService.ListIPs(c.Query("active") == "true")
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, ips)
}

// CreateIP adds an IP to the catalog
// POST /api/admin/ips
func (h *RegistryHandler) CreateIP(c *gin.Context) {
	var req services.IPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ip, err := h.registryService.CreateIP(&req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Created(c, ip)
}

// UpdateIP updates an IP catalog entry
// PUT /api/admin/ips/:id
func (h *RegistryHandler) UpdateIP(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req services.IPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ip, err := h.registryService.UpdateIP(id, &req)
	if err != nil {
		response.NotFound(c, err.Error())
		return
	}
	response.Success(c, ip)
}

// DeleteIP removes an IP catalog entry
// DELETE /api/admin/ips/:id
func (h *RegistryHandler) DeleteIP(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.registryService.DeleteIP(id); err != nil {
		response.NotFound(c, err.Error())
		return
	}
	response.Success(c, gin.H{"deleted": id})
}
