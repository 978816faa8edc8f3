package handler

import (
	"net/http"

	"laundry-hub/internal/adapter/http/middleware"
	"laundry-hub/internal/core/domain"
	"laundry-hub/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	OrderSvc       ports.OrderService
	TokenGate      ports.TokenGate
	WalletSvc      ports.WalletService
	ReconSvc       ports.ReconciliationService
	Identity       ports.IdentityService
	RateLimiter    ports.RateLimiter // nil = rate limiting disabled
	WebhookSecret  string
	HealthCheckers []ports.HealthChecker
	MetricsHandler http.Handler // nil = no metrics endpoint
	MetricsPath    string
	Mode           string
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	if deps.Mode != "" {
		gin.SetMode(deps.Mode)
	}
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit
	r.Use(middleware.ActionLog(deps.Logger.With().Str("component", "audit").Logger()))

	// Health check pings storage and cache
	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	if deps.MetricsHandler != nil {
		path := deps.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(deps.MetricsHandler))
	}

	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if a limiter is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimiter == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimiter, group, rule, deps.Logger)
	}

	// --- Gateway callbacks (shared-secret header) ---
	webhookHandler := NewWebhookHandler(deps.ReconSvc, deps.Logger)
	r.POST("/webhooks/payments",
		middleware.WebhookSecret(deps.WebhookSecret, deps.Logger),
		rl("webhooks"),
		webhookHandler.Payments,
	)

	// --- JWT-authenticated routes ---
	v1 := r.Group("/api/v1", middleware.JWTAuth(deps.Identity, deps.Logger))

	orderHandler := NewOrderHandler(deps.OrderSvc)
	tokenHandler := NewTokenHandler(deps.TokenGate)
	v1.POST("/orders", rl("orders_place"), orderHandler.Place)
	orders := v1.Group("/orders/:id")
	{
		orders.GET("", rl("orders"), orderHandler.Get)
		orders.POST("/accept", rl("orders"), orderHandler.Transition(deps.OrderSvc.Accept))
		orders.POST("/claim", rl("orders"), orderHandler.Transition(deps.OrderSvc.Claim))
		orders.POST("/pickup", rl("orders"), orderHandler.Transition(deps.OrderSvc.Pickup))
		orders.POST("/deliver", rl("orders"), orderHandler.Deliver)
		orders.POST("/ready-for-return", rl("orders"), orderHandler.Transition(deps.OrderSvc.ReadyForReturn))
		orders.POST("/return-pickup", rl("orders"), orderHandler.Transition(deps.OrderSvc.ReturnPickup))
		orders.POST("/complete", rl("orders"), orderHandler.Transition(deps.OrderSvc.Complete))
		orders.POST("/cancel", rl("orders"), orderHandler.Cancel)
		orders.POST("/refund", middleware.RequireRole(domain.RoleAdmin), rl("orders"), orderHandler.Refund)
		orders.POST("/settle", rl("orders"), orderHandler.Settle)

		orders.POST("/tokens/:checkpoint/scan", middleware.RequireRole(domain.RoleCourier), rl("tokens_scan"), tokenHandler.Scan)
		orders.POST("/tokens/:checkpoint/reissue", middleware.RequireRole(domain.RoleMerchant), rl("orders"), tokenHandler.Reissue)
		orders.GET("/tokens/:checkpoint/qr", middleware.RequireRole(domain.RoleMerchant), rl("orders"), tokenHandler.QRCode)
	}

	walletHandler := NewWalletHandler(deps.WalletSvc)
	wallets := v1.Group("/wallets", middleware.RequireRole(domain.RoleMerchant, domain.RoleCourier))
	{
		wallets.POST("", rl("wallets"), walletHandler.Create)
		wallets.GET("/me", rl("wallets"), walletHandler.Me)
		wallets.POST("/me/withdraw", rl("wallets_money"), walletHandler.Withdraw)
		wallets.POST("/me/topup", rl("wallets_money"), walletHandler.TopUp)
	}

	return r
}
