package careerpath

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
	paths := r.Group("/career-paths")
	paths.Use(middleware.AuthMiddleware(denylist))
	{
		paths.GET("", handler.List)
		paths.GET("/:id", handler.Get)
		paths.POST("",
			middleware.Authorize(enforcer, "career_paths", "manage"),
			handler.Create,
		)
		paths.PUT("/:id",
			middleware.Authorize(enforcer, "career_paths", "manage"),
			handler.Update,
		)
	}

	// Lookup by employee rather than by path id.
	r.GET("/employees/:id/career-path",
		middleware.AuthMiddleware(denylist),
		handler.GetForEmployee,
	)
}
