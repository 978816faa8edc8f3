package handler

import (
	"net/http"

	"laundry-hub/internal/adapter/http/dto"
	"laundry-hub/internal/core/domain"
	"laundry-hub/internal/core/ports"
	"laundry-hub/pkg/apperror"
	"laundry-hub/pkg/response"

	"github.com/gin-gonic/gin"
)

// TokenHandler serves the custody checkpoints of an order.
type TokenHandler struct {
	gate ports.TokenGate
}

// NewTokenHandler creates a new TokenHandler.
func NewTokenHandler(gate ports.TokenGate) *TokenHandler {
	return &TokenHandler{gate: gate}
}

// Scan handles POST /api/v1/orders/:id/tokens/:checkpoint/scan.
func (h *TokenHandler) Scan(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	token, err := h.gate.Consume(c.Request.Context(), actor, c.Param("id"), domain.Checkpoint(c.Param("checkpoint")), req.Payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewTokenResponse(token, false))
}

// Reissue handles POST /api/v1/orders/:id/tokens/:checkpoint/reissue.
func (h *TokenHandler) Reissue(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	token, err := h.gate.Reissue(c.Request.Context(), actor, c.Param("id"), domain.Checkpoint(c.Param("checkpoint")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewTokenResponse(token, true))
}

// QRCode handles GET /api/v1/orders/:id/tokens/:checkpoint/qr.
func (h *TokenHandler) QRCode(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	png, err := h.gate.QRCode(c.Request.Context(), actor, c.Param("id"), domain.Checkpoint(c.Param("checkpoint")))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}
