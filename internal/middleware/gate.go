package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/faa35/UHFC/internal/config"
	jwtsvc "github.com/faa35/UHFC/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const (
	loginPath    = "/login"
	schedulePath = "/schedule"
)

// RoleReader resolves the authoritative role for an identity. The gate
// checks the stored role, not the token claim, so a demoted admin loses
// access as soon as the profile row changes.
type RoleReader interface {
	GetRole(ctx context.Context, userID string) (string, error)
}

// SessionRefresher exchanges a refresh token for a new session. Returned
// cookies must be attached to whatever response the gate ends up sending,
// redirects included.
type SessionRefresher interface {
	RefreshSession(ctx context.Context, refreshRaw string) (userID, role, accessToken, refreshToken string, err error)
}

// AdminGate guards the /admin path prefix: unauthenticated visitors are sent
// to the login page, authenticated non-admins to the schedule.
type AdminGate struct {
	jwt      *jwtsvc.Service
	sessions SessionRefresher
	profiles RoleReader
	cfg      *config.Config
}

func NewAdminGate(jwt *jwtsvc.Service, sessions SessionRefresher, profiles RoleReader, cfg *config.Config) *AdminGate {
	return &AdminGate{
		jwt:      jwt,
		sessions: sessions,
		profiles: profiles,
		cfg:      cfg,
	}
}

func (g *AdminGate) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := g.identify(c)
		if userID == "" {
			g.redirect(c, loginPath)
			return
		}

		role, err := g.profiles.GetRole(c.Request.Context(), userID)
		if err != nil || strings.ToLower(strings.TrimSpace(role)) != "admin" {
			g.redirect(c, schedulePath)
			return
		}

		c.Set("user_id", userID)
		c.Set("role", role)

		c.Next()
	}
}

// identify resolves the caller from the access cookie, falling back to a
// refresh-token exchange when the access token is missing or expired. Any
// cookies minted during the exchange are set before the request proceeds, so
// they ride along on redirect responses too.
func (g *AdminGate) identify(c *gin.Context) string {
	if token, err := c.Cookie(config.AccessCookie); err == nil && token != "" {
		if claims, err := g.jwt.ValidateToken(token); err == nil {
			return claims.UserID
		}
	}

	refreshRaw, err := c.Cookie(config.RefreshCookie)
	if err != nil || refreshRaw == "" || g.sessions == nil {
		return ""
	}

	userID, _, access, refresh, err := g.sessions.RefreshSession(c.Request.Context(), refreshRaw)
	if err != nil {
		return ""
	}

	c.SetCookie(config.AccessCookie, access, int(g.cfg.JWTAccessTTL.Seconds()), "/", "", g.cfg.CookieSecure, true)
	c.SetCookie(config.RefreshCookie, refresh, int(g.cfg.RefreshTTL.Seconds()), "/", "", g.cfg.CookieSecure, true)

	return userID
}

func (g *AdminGate) redirect(c *gin.Context, to string) {
	c.Redirect(http.StatusFound, to)
	c.Abort()
}
