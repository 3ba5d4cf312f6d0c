package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"doctqr-server/internal/config"
	"doctqr-server/internal/utils"
)

// AuthTokenCookie is the cookie the login handler sets for browser clients.
const AuthTokenCookie = "auth_token"

// AuthMiddleware creates a middleware for JWT authentication. The token is
// taken from the Authorization header, or from the auth cookie for browser
// requests that carry no header.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				utils.Unauthorized(c, "Invalid authorization header format")
				c.Abort()
				return
			}
			tokenString = parts[1]
		} else if cookie, err := c.Cookie(AuthTokenCookie); err == nil {
			tokenString = cookie
		}

		if tokenString == "" {
			utils.Unauthorized(c, "Authorization required")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString, cfg.JWTSecret)
		if err != nil {
			utils.Unauthorized(c, "Invalid token: "+err.Error())
			c.Abort()
			return
		}

		// Set user information in context for downstream handlers
		c.Set("userID", claims.UserID)

		c.Next()
	}
}

// GetUserIDFromContext returns the authenticated account id set by
// AuthMiddleware.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		return "", false
	}
	idStr, ok := userID.(string)
	return idStr, ok
}
