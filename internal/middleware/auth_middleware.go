package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/ImaneBelmiloudi/hr-management/internal/identity"
	"github.com/ImaneBelmiloudi/hr-management/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

const actorKey = "actor"

// TokenDenylist checks whether a token id was revoked at logout. A nil
// checker disables the check (worker binaries, tests).
type TokenDenylist interface {
	IsRevoked(c *gin.Context, jti string) (bool, error)
}

type redisDenylist struct {
	rdb *redis.Client
}

func NewRedisDenylist(rdb *redis.Client) TokenDenylist {
	return &redisDenylist{rdb: rdb}
}

func (d *redisDenylist) IsRevoked(c *gin.Context, jti string) (bool, error) {
	n, err := d.rdb.Exists(c.Request.Context(), "auth:denylist:"+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// AuthMiddleware validates the bearer token and stores the resolved
// identity.Actor on the gin context. Everything below the HTTP layer
// receives the actor as an explicit argument.
func AuthMiddleware(denylist TokenDenylist) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			msg := "Invalid token"
			if err != nil && strings.Contains(err.Error(), "expired") {
				msg = "Token expired"
			}
			response.Error(c, http.StatusUnauthorized, msg, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Invalid token claims", nil)
			c.Abort()
			return
		}

		if denylist != nil {
			if jti, _ := claims["jti"].(string); jti != "" {
				revoked, err := denylist.IsRevoked(c, jti)
				if err == nil && revoked {
					response.Error(c, http.StatusUnauthorized, "Token revoked", nil)
					c.Abort()
					return
				}
			}
		}

		userID, ok := claims["user_id"].(float64)
		if !ok || userID <= 0 {
			response.Error(c, http.StatusUnauthorized, "User ID not found in token", nil)
			c.Abort()
			return
		}

		role, _ := claims["role"].(string)
		actor := identity.Actor{
			UserID: uint(userID),
			Role:   identity.Role(role),
		}
		if !actor.Role.Valid() {
			response.Error(c, http.StatusUnauthorized, "Role not found in token", nil)
			c.Abort()
			return
		}

		if employeeID, ok := claims["employee_id"].(float64); ok && employeeID > 0 {
			id := uint(employeeID)
			actor.EmployeeID = &id
		}

		if jti, ok := claims["jti"].(string); ok {
			c.Set("token_jti", jti)
		}
		if exp, ok := claims["exp"].(float64); ok {
			c.Set("token_exp", int64(exp))
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// ActorFrom returns the actor stored by AuthMiddleware.
func ActorFrom(c *gin.Context) (identity.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return identity.Actor{}, false
	}
	actor, ok := v.(identity.Actor)
	return actor, ok
}

// SetActor is a test helper for handler tests that bypass the middleware.
func SetActor(c *gin.Context, actor identity.Actor) {
	c.Set(actorKey, actor)
}
