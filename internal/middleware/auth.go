package middleware

import (
	"net/http"
	"strings"

	"github.com/faa35/UHFC/internal/config"
	jwtsvc "github.com/faa35/UHFC/internal/pkg/jwt"
	"github.com/faa35/UHFC/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// JWTAuth authenticates the request from the session cookie or a Bearer
// header and puts user_id and role on the context.
func JWTAuth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, errCode := extractToken(c)
		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, errCode, "Authentication required")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// extractToken prefers the session cookie; the Authorization header is the
// fallback for non-browser clients.
func extractToken(c *gin.Context) (token, errCode string) {
	if v, err := c.Cookie(config.AccessCookie); err == nil && v != "" {
		return v, ""
	}

	h := c.GetHeader("Authorization")
	if h == "" {
		return "", "UNAUTHORIZED"
	}
	if !strings.HasPrefix(h, "Bearer ") {
		return "", "INVALID_AUTH_FORMAT"
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer ")), "UNAUTHORIZED"
}
