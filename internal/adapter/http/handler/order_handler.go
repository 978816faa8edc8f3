package handler

import (
	"context"

	"laundry-hub/internal/adapter/http/dto"
	"laundry-hub/internal/core/domain"
	"laundry-hub/internal/core/ports"
	"laundry-hub/pkg/apperror"
	"laundry-hub/pkg/response"

	"github.com/gin-gonic/gin"
)

// OrderHandler exposes the order state machine.
type OrderHandler struct {
	orderSvc ports.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderSvc ports.OrderService) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc}
}

// Place handles POST /api/v1/orders.
func (h *OrderHandler) Place(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	order, err := h.orderSvc.PlaceOrder(c.Request.Context(), actor, ports.PlaceOrderParams{
		MerchantID:    req.MerchantID,
		Fulfillment:   domain.Fulfillment(req.Fulfillment),
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
		EstimatedKilo: req.EstimatedKilo,
		PricePerKilo:  req.PricePerKilo,
		Extras:        req.Extras,
		PickupLat:     req.PickupLocation.Lat,
		PickupLng:     req.PickupLocation.Lng,
		MerchantLat:   req.MerchantLocation.Lat,
		MerchantLng:   req.MerchantLocation.Lng,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.NewOrderResponse(order))
}

// Get handles GET /api/v1/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	order, err := h.orderSvc.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewOrderResponse(order))
}

type transitionFunc func(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error)

// Transition adapts a body-less state transition to a handler.
func (h *OrderHandler) Transition(fn transitionFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := mustActor(c)
		if !ok {
			return
		}

		order, err := fn(c.Request.Context(), actor, c.Param("id"))
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, dto.NewOrderResponse(order))
	}
}

// Deliver handles POST /api/v1/orders/:id/deliver. The courier hands the
// load over together with the weight measured at the shop.
func (h *OrderHandler) Deliver(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.DeliverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	order, err := h.orderSvc.Deliver(c.Request.Context(), actor, c.Param("id"), req.ActualKilo)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewOrderResponse(order))
}

// Cancel handles POST /api/v1/orders/:id/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	h.withReason(c, h.orderSvc.Cancel)
}

// Refund handles POST /api/v1/orders/:id/refund (admin).
func (h *OrderHandler) Refund(c *gin.Context) {
	h.withReason(c, h.orderSvc.Refund)
}

func (h *OrderHandler) withReason(c *gin.Context, fn func(context.Context, domain.Actor, string, string) (*domain.Order, error)) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.ReasonRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, apperror.Validation(err.Error()))
			return
		}
		dto.SanitizeStruct(&req)
	}

	order, err := fn(c.Request.Context(), actor, c.Param("id"), req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewOrderResponse(order))
}

// Settle handles POST /api/v1/orders/:id/settle. It opens a checkout for
// the outstanding shortfall of an underpaid order.
func (h *OrderHandler) Settle(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	session, err := h.orderSvc.SettleShortfall(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.CheckoutResponse{CheckoutID: session.ID, CheckoutURL: session.CheckoutURL})
}
