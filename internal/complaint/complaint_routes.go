package complaint

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
	complaints := r.Group("/complaints")
	complaints.Use(middleware.AuthMiddleware(denylist))
	{
		complaints.GET("", handler.List)
		complaints.POST("", middleware.Idempotency(rdb), handler.Create)
		complaints.GET("/:id", handler.Get)
		complaints.PUT("/:id", handler.Update)
		complaints.POST("/:id/status",
			middleware.Authorize(enforcer, "complaints", "decide"),
			handler.UpdateStatus,
		)
		complaints.DELETE("/:id", handler.Delete)
	}
}
