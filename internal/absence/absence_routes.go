package absence

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
	justifications := r.Group("/absence-justifications")
	justifications.Use(middleware.AuthMiddleware(denylist))
	{
		justifications.GET("", handler.List)
		justifications.POST("", middleware.Idempotency(rdb), handler.Create)
		justifications.GET("/:id", handler.Get)
		justifications.PUT("/:id", handler.Update)
		justifications.POST("/:id/status",
			middleware.Authorize(enforcer, "absence_justifications", "decide"),
			handler.UpdateStatus,
		)
		justifications.DELETE("/:id", handler.Delete)
	}
}
