package middleware

import (
	"strings"

	"nandhub_backend/internal/config"
	"nandhub_backend/internal/model"
	"nandhub_backend/internal/service"
	"nandhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the bearer token into JWT claims stored on
// the context under "user".
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			util.AbortWithAppError(c, util.ErrInvalidAuth)
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			util.AbortWithAppError(c, util.ErrInvalidAuth)
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// RoleMiddleware gates a route group by minimum role. Roles are
// ordered user < moderator < admin, so an admin passes every gate.
func RoleMiddleware(minRole model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.AbortWithAppError(c, util.ErrInvalidAuth)
			return
		}

		if user.Role < minRole {
			util.AbortWithAppError(c, util.ErrNoPermissions)
			return
		}
		c.Next()
	}
}

// NotBanned rejects requests from users serving an active ban. It must
// run after AuthMiddleware.
func NotBanned(banService *service.BanService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.AbortWithAppError(c, util.ErrInvalidAuth)
			return
		}

		if err := banService.CheckIfBanned(user.UserID); err != nil {
			if appErr, ok := util.AsAppError(err); ok {
				util.AbortWithAppError(c, appErr)
				return
			}
			util.LogInternalError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}
