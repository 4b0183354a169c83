package handler

import (
	"net/http"

	"leadscout_backend/internal/leads/transport"
	"leadscout_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// AnalyzeNotes handles POST /analyze-notes with the lead id in the body.
func (h *Handler) AnalyzeNotes(c *gin.Context) {
	var req transport.AnalyzeNotesRequest
	if !h.bind(c, &req) {
		return
	}
	h.analyze(c, req)
}

// AnalyzeLeadNotes handles POST /leads/:id/analyze-notes. The path id wins
// over any leadId in the body.
func (h *Handler) AnalyzeLeadNotes(c *gin.Context) {
	var req transport.AnalyzeNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	req.LeadID = c.Param("id")
	if !h.validate(c, req) {
		return
	}
	h.analyze(c, req)
}

func (h *Handler) analyze(c *gin.Context, req transport.AnalyzeNotesRequest) {
	resp, err := h.svc.AnalyzeNotes(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) SendFollowUp(c *gin.Context) {
	var req transport.SendFollowUpRequest
	if !h.bind(c, &req) {
		return
	}

	resp, err := h.svc.SendFollowUp(c.Request.Context(), c.Param("id"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}
