package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/capframe/capframe-backend/internal/http/response"
	"github.com/capframe/capframe-backend/internal/services"
)

type CapabilityHandler struct {
	capabilities services.CapabilityService
}

func NewCapabilityHandler(capabilities services.CapabilityService) *CapabilityHandler {
	return &CapabilityHandler{capabilities: capabilities}
}

// POST /api/capabilities
func (h *CapabilityHandler) CreateCapability(c *gin.Context) {
	var input services.CreateCapabilityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_json", err)
		return
	}
	capability, err := h.capabilities.Create(c.Request.Context(), nil, input)
	if err != nil {
		response.RespondImportError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"capability": capability})
}

// GET /api/capabilities
func (h *CapabilityHandler) ListCapabilities(c *gin.Context) {
	var statuses []string
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				statuses = append(statuses, s)
			}
		}
	}
	capabilities, err := h.capabilities.List(c.Request.Context(), nil, statuses)
	if err != nil {
		response.RespondImportError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"capabilities": capabilities})
}

// GET /api/capabilities/:id
func (h *CapabilityHandler) GetCapability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_capability_id", err)
		return
	}
	capability, err := h.capabilities.Get(c.Request.Context(), nil, id)
	if err != nil {
		response.RespondImportError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"capability": capability})
}

// DELETE /api/capabilities/:id
func (h *CapabilityHandler) DeleteCapability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_capability_id", err)
		return
	}
	if err := h.capabilities.Delete(c.Request.Context(), nil, id); err != nil {
		response.RespondImportError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}

// GET /api/capabilities/:id/domains
func (h *CapabilityHandler) GetCapabilityDomains(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_capability_id", err)
		return
	}
	tree, err := h.capabilities.DomainTree(c.Request.Context(), nil, id)
	if err != nil {
		response.RespondImportError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"domains": tree})
}
