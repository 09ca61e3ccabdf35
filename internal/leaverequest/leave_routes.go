package leaverequest

import (
	"github.com/ImaneBelmiloudi/hr-management/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	enforcer *casbin.Enforcer,
	denylist middleware.TokenDenylist,
	rdb *redis.Client,
) {
	requests := r.Group("/leave-requests")
	requests.Use(middleware.AuthMiddleware(denylist))
	{
		requests.GET("", handler.List)
		requests.POST("", middleware.Idempotency(rdb), handler.Create)
		requests.GET("/:id", handler.Get)
		requests.PUT("/:id", handler.Update)
		requests.POST("/:id/status",
			middleware.Authorize(enforcer, "leave_requests", "decide"),
			handler.UpdateStatus,
		)
		requests.DELETE("/:id", handler.Cancel)
	}
}
