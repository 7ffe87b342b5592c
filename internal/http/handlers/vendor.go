package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/capframe/capframe-backend/internal/http/response"
	"github.com/capframe/capframe-backend/internal/services"
)

type VendorHandler struct {
	capabilities services.CapabilityService
}

func NewVendorHandler(capabilities services.CapabilityService) *VendorHandler {
	return &VendorHandler{capabilities: capabilities}
}

// GET /api/vendors
func (h *VendorHandler) ListVendors(c *gin.Context) {
	vendors, err := h.capabilities.ListVendors(c.Request.Context(), nil)
	if err != nil {
		response.RespondImportError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"vendors": vendors})
}
