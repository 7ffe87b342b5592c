package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/capframe/capframe-backend/internal/domain/importing"
	"github.com/capframe/capframe-backend/internal/http/response"
	"github.com/capframe/capframe-backend/internal/importer"
	"github.com/capframe/capframe-backend/internal/platform/logger"
)

// Research documents arrive as whole JSON bodies; 4 MB is far beyond any
// observed document and bounds memory per request.
const maxImportBodyBytes = 4 << 20

type ImportHandler struct {
	log      *logger.Logger
	importer *importer.Orchestrator
}

func NewImportHandler(baseLog *logger.Logger, orch *importer.Orchestrator) *ImportHandler {
	return &ImportHandler{
		log:      baseLog.With("handler", "ImportHandler"),
		importer: orch,
	}
}

type importDomainsRequest struct {
	Domains []importing.DomainInput `json:"domains"`
}

type renameDomainRequest struct {
	OldName string `json:"old_name"`
	NewName string `json:"new_name"`
}

// POST /api/capabilities/:id/imports/research
func (h *ImportHandler) ImportResearch(c *gin.Context) {
	capabilityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_capability_id", err)
		return
	}
	raw, ok := h.readBody(c)
	if !ok {
		return
	}
	stats, err := h.importer.ProcessResearchImport(c.Request.Context(), capabilityID, raw)
	if err != nil {
		response.RespondImportError(c, err)
		return
	}
	response.RespondOK(c, stats)
}

// POST /api/capabilities/:id/imports/domains
//
// Accepts {"domains":[...]} or a bare JSON list.
func (h *ImportHandler) ImportDomains(c *gin.Context) {
	capabilityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_capability_id", err)
		return
	}
	raw, ok := h.readBody(c)
	if !ok {
		return
	}

	var domains []importing.DomainInput
	var env importDomainsRequest
	if err := json.Unmarshal(raw, &env); err == nil && env.Domains != nil {
		domains = env.Domains
	} else {
		var arr []importing.DomainInput
		if err2 := json.Unmarshal(raw, &arr); err2 != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_json", err2)
			return
		}
		domains = arr
	}

	stats, err := h.importer.ProcessDomainImport(c.Request.Context(), capabilityID, domains)
	if err != nil {
		response.RespondImportError(c, err)
		return
	}
	response.RespondOK(c, stats)
}

// GET /api/capabilities/:id/imports
func (h *ImportHandler) GetImportHistory(c *gin.Context) {
	capabilityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_capability_id", err)
		return
	}
	history, err := h.importer.History(c.Request.Context(), capabilityID)
	if err != nil {
		response.RespondImportError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"history": history})
}

// POST /api/capabilities/:id/domains/rename
func (h *ImportHandler) RenameDomain(c *gin.Context) {
	capabilityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_capability_id", err)
		return
	}
	var req renameDomainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_json", err)
		return
	}
	stats, err := h.importer.RenameDomain(c.Request.Context(), capabilityID, req.OldName, req.NewName)
	if err != nil {
		response.RespondImportError(c, err)
		return
	}
	response.RespondOK(c, stats)
}

func (h *ImportHandler) readBody(c *gin.Context) ([]byte, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBodyBytes)
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return nil, false
	}
	if len(raw) == 0 {
		response.RespondError(c, http.StatusBadRequest, "empty_body", nil)
		return nil, false
	}
	return raw, true
}
