package handler

import (
	"laundry-hub/internal/adapter/http/middleware"
	"laundry-hub/internal/core/domain"
	"laundry-hub/pkg/apperror"
	"laundry-hub/pkg/response"

	"github.com/gin-gonic/gin"
)

// mustActor returns the authenticated actor or writes a 401.
func mustActor(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, apperror.ErrUnauthorized("authentication required"))
		return domain.Actor{}, false
	}
	return actor, true
}
