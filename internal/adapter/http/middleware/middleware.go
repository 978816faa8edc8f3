package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"laundry-hub/internal/core/domain"
	"laundry-hub/internal/core/ports"
	"laundry-hub/pkg/apperror"
	"laundry-hub/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	HeaderWebhookSecret = "X-Webhook-Secret"
	HeaderRequestID     = "X-Request-ID"

	// Context keys
	CtxActor     = "actor"
	CtxRequestID = "request_id"
)

// RequestID tags every request with an id, reusing the caller's when given.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 64 {
			id = uuid.New().String()
		}
		c.Set(CtxRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// JWTAuth validates the bearer token issued by the identity provider and
// stores the resulting domain.Actor on the context.
func JWTAuth(identity ports.IdentityService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenStr == "" {
			response.Error(c, apperror.ErrUnauthorized("missing bearer token"))
			c.Abort()
			return
		}

		actor, err := identity.Validate(tokenStr)
		if err != nil {
			log.Debug().Err(err).Msg("bearer token rejected")
			response.Error(c, apperror.ErrUnauthorized("invalid or expired token"))
			c.Abort()
			return
		}

		c.Set(CtxActor, *actor)
		c.Next()
	}
}

// ActorFrom returns the authenticated actor set by JWTAuth.
func ActorFrom(c *gin.Context) (domain.Actor, bool) {
	v, ok := c.Get(CtxActor)
	if !ok {
		return domain.Actor{}, false
	}
	actor, ok := v.(domain.Actor)
	return actor, ok
}

// RequireRole rejects actors whose role is not listed.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			response.Error(c, apperror.ErrUnauthorized("authentication required"))
			c.Abort()
			return
		}
		for _, r := range roles {
			if actor.Role == r {
				c.Next()
				return
			}
		}
		response.Error(c, apperror.ErrForbidden("role "+string(actor.Role)+" may not call this endpoint"))
		c.Abort()
	}
}

// WebhookSecret authenticates gateway callbacks by comparing a shared
// secret header in constant time. It runs before the body is read.
func WebhookSecret(secret string, log zerolog.Logger) gin.HandlerFunc {
	want := []byte(secret)
	return func(c *gin.Context) {
		got := []byte(c.GetHeader(HeaderWebhookSecret))
		if len(want) == 0 || subtle.ConstantTimeCompare(got, want) != 1 {
			log.Warn().Str("client_ip", c.ClientIP()).Msg("webhook rejected: bad secret")
			response.Error(c, apperror.ErrUnauthorized("invalid webhook secret"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("request_id", c.GetString(CtxRequestID)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error_code": apperror.CodeInternal,
					"message":    "Internal server error",
				})
			}
		}()
		c.Next()
	}
}
