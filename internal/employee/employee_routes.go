package employee

import (
	"github.com/ImaneBelmiloudi/hr-management/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	enforcer *casbin.Enforcer,
	denylist middleware.TokenDenylist,
) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware(denylist))
	employees.Use(middleware.Authorize(enforcer, "employees", "manage"))
	{
		employees.GET("", handler.GetAll)
		employees.POST("", handler.Create)
		employees.GET("/:id", handler.GetByID)
		employees.PUT("/:id", handler.Update)
		employees.DELETE("/:id", handler.Delete)
	}
}
