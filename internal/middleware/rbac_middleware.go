package middleware

import (
	"net/http"

	"github.com/ImaneBelmiloudi/hr-management/internal/shared/response"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

// Authorize gates a route on the static role policy. Ownership and
// pending-state rules are enforced later, inside the services.
func Authorize(enforcer *casbin.Enforcer, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Missing auth context", nil)
			c.Abort()
			return
		}

		allowed, err := enforcer.Enforce(string(actor.Role), resource, action)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Authorization check failed", nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden,
				"Unauthorized to "+action+" "+resource, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
