package handler

import (
	"net/http"

	"leadscout_backend/internal/leads/transport"
	"leadscout_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// SubmitConfigurator handles the public savings configurator form.
func (h *Handler) SubmitConfigurator(c *gin.Context) {
	var req transport.ConfiguratorRequest
	if !h.bind(c, &req) {
		return
	}

	resp, err := h.svc.SubmitConfigurator(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, resp)
}
