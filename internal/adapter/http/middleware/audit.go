package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// actions maps mutating routes to the money- or custody-relevant action
// they perform.
var actions = map[string]string{
	"POST /api/v1/orders":                                "order.place",
	"POST /api/v1/orders/:id/deliver":                    "order.deliver",
	"POST /api/v1/orders/:id/complete":                   "order.complete",
	"POST /api/v1/orders/:id/cancel":                     "order.cancel",
	"POST /api/v1/orders/:id/refund":                     "order.refund",
	"POST /api/v1/orders/:id/settle":                     "order.settle",
	"POST /api/v1/orders/:id/tokens/:checkpoint/scan":    "token.scan",
	"POST /api/v1/orders/:id/tokens/:checkpoint/reissue": "token.reissue",
	"POST /api/v1/wallets/me/withdraw":                   "wallet.withdraw",
	"POST /api/v1/wallets/me/topup":                      "wallet.topup",
}

// ActionLog writes an audit line for every successful call of a mapped
// route, after the handler ran.
func ActionLog(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			return
		}
		action, ok := actions[c.Request.Method+" "+c.FullPath()]
		if !ok {
			return
		}

		event := log.Info().
			Str("audit_action", action).
			Str("request_id", c.GetString(CtxRequestID)).
			Str("client_ip", c.ClientIP())
		if actor, ok := ActorFrom(c); ok {
			event = event.Str("actor_id", actor.ID).Str("actor_role", string(actor.Role))
		}
		if id := c.Param("id"); id != "" {
			event = event.Str("order_id", id)
		}
		event.Msg("audit")
	}
}
