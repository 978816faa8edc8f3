package handler

import (
	"errors"
	"net/http"

	"laundry-hub/internal/adapter/http/dto"
	"laundry-hub/internal/core/domain"
	"laundry-hub/internal/core/ports"
	"laundry-hub/pkg/apperror"
	"laundry-hub/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

var ackMessages = map[domain.ReconcileOutcome]string{
	domain.OutcomeApplied:   "payment applied",
	domain.OutcomeDuplicate: "event already processed",
	domain.OutcomeIgnored:   "event not applicable, ignored",
	domain.OutcomeRefunded:  "order closed, payment refunded",
}

// WebhookHandler receives payment gateway callbacks. Authentication happens
// in middleware before the body is read.
type WebhookHandler struct {
	recon ports.ReconciliationService
	log   zerolog.Logger
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(recon ports.ReconciliationService, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{recon: recon, log: log}
}

// Payments handles POST /webhooks/payments.
//
// 200 acknowledges anything applied or recognised as a no-op, including
// bodies that can never be applied. 404 is reserved for a missing order and
// 500 asks the gateway to redeliver.
func (h *WebhookHandler) Payments(c *gin.Context) {
	var req dto.WebhookEvent
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn().Err(err).Msg("unparseable payment webhook acknowledged")
		response.Ack(c, string(domain.OutcomeIgnored), "malformed event, ignored")
		return
	}

	outcome, err := h.recon.HandleEvent(c.Request.Context(), req.ToDomain())
	if err != nil {
		if apperror.HasCode(err, apperror.CodeNotFound) {
			response.Error(c, err)
			return
		}
		h.log.Error().Err(err).Str("event_id", req.ID).Msg("webhook processing failed, requesting redelivery")
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			ErrorCode: errorCode(err),
			Message:   "processing failed, retry later",
			RequestID: c.GetString("request_id"),
		})
		return
	}

	response.Ack(c, string(outcome), ackMessages[outcome])
}

func errorCode(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return apperror.CodeInternal
}
