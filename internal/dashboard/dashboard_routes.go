package dashboard

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
	r.GET("/admin/dashboard-stats",
		middleware.AuthMiddleware(denylist),
		middleware.Authorize(enforcer, "dashboard_admin", "read"),
		handler.StaffStats,
	)
	r.GET("/rh/dashboard-stats",
		middleware.AuthMiddleware(denylist),
		middleware.Authorize(enforcer, "dashboard_rh", "read"),
		handler.StaffStats,
	)
	r.GET("/employee/dashboard-stats",
		middleware.AuthMiddleware(denylist),
		middleware.Authorize(enforcer, "dashboard_employee", "read"),
		handler.EmployeeStats,
	)
}
