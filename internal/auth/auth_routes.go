package auth

import (
	"time"

	"github.com/ImaneBelmiloudi/hr-management/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	denylist middleware.TokenDenylist,
) {
	// Public endpoints are rate limited to slow down credential stuffing.
	public := r.Group("")
	public.Use(middleware.RateLimitByIP(rate.Every(time.Second), 5))
	{
		public.POST("/register", handler.Register)
		public.POST("/login", handler.Login)
	}

	authed := r.Group("")
	authed.Use(middleware.AuthMiddleware(denylist))
	{
		authed.POST("/logout", handler.Logout)
		authed.GET("/user", handler.GetMe)
		authed.PUT("/user/profile", handler.UpdateProfile)
		authed.PUT("/user/password", handler.UpdatePassword)
	}
}
