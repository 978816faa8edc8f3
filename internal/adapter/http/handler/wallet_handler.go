package handler

import (
	"time"

	"laundry-hub/internal/adapter/http/dto"
	"laundry-hub/internal/core/ports"
	"laundry-hub/pkg/apperror"
	"laundry-hub/pkg/response"

	"github.com/gin-gonic/gin"
)

// WalletHandler handles wallet-related endpoints. Every route acts on the
// caller's own wallet.
type WalletHandler struct {
	walletSvc ports.WalletService
	now       func() time.Time
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletService) *WalletHandler {
	return &WalletHandler{
		walletSvc: walletSvc,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Create handles POST /api/v1/wallets.
func (h *WalletHandler) Create(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	balance, err := h.walletSvc.CreateAccount(c.Request.Context(), actor.ID, actor.Role)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewWalletResponse(balance, h.now()))
}

// Me handles GET /api/v1/wallets/me.
func (h *WalletHandler) Me(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	balance, err := h.walletSvc.GetBalance(c.Request.Context(), actor.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewWalletResponse(balance, h.now()))
}

// Withdraw handles POST /api/v1/wallets/me/withdraw.
func (h *WalletHandler) Withdraw(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	balance, err := h.walletSvc.Withdraw(c.Request.Context(), actor.ID, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewWalletResponse(balance, h.now()))
}

// TopUp handles POST /api/v1/wallets/me/topup. The wallet is credited when
// the gateway confirms the charge.
func (h *WalletHandler) TopUp(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	session, err := h.walletSvc.TopUpCheckout(c.Request.Context(), actor, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.CheckoutResponse{CheckoutID: session.ID, CheckoutURL: session.CheckoutURL})
}
