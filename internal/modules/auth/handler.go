package auth

import (
	"errors"
	"net/http"

	"github.com/faa35/UHFC/internal/config"
	"github.com/faa35/UHFC/internal/pkg/response"
	"github.com/faa35/UHFC/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
	cfg     *config.Config
}

func NewHandler(service *Service, cfg *config.Config) *Handler {
	return &Handler{
		service: service,
		cfg:     cfg,
	}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/signup", h.Signup)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.POST("/logout", h.Logout)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	userGroup := protected.Group("/users")
	{
		userGroup.GET("/me", h.GetMe)
		userGroup.PUT("/me", h.UpdateProfile)
	}
}

func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	profile, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to sign up")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"profile": gin.H{
			"id":        profile.ID,
			"email":     profile.Email,
			"full_name": profile.FullName,
			"phone":     profile.Phone,
			"role":      profile.Role,
		},
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to login")
		return
	}

	h.setSessionCookies(c, result.AccessToken, result.RefreshToken)

	response.Success(c, http.StatusOK, gin.H{
		"profile": gin.H{
			"id":        result.Profile.ID,
			"email":     result.Profile.Email,
			"full_name": result.Profile.FullName,
			"phone":     result.Profile.Phone,
			"role":      result.Profile.Role,
		},
		"token": result.AccessToken,
	})
}

func (h *Handler) Refresh(c *gin.Context) {
	refreshRaw, err := c.Cookie(config.RefreshCookie)
	if err != nil || refreshRaw == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing refresh token")
		return
	}

	_, _, access, refresh, err := h.service.RefreshSession(c.Request.Context(), refreshRaw)
	if err != nil {
		h.clearSessionCookies(c)
		response.Error(c, http.StatusUnauthorized, "INVALID_REFRESH", "Session expired, please log in again")
		return
	}

	h.setSessionCookies(c, access, refresh)

	response.Success(c, http.StatusOK, gin.H{"token": access})
}

func (h *Handler) Logout(c *gin.Context) {
	if refreshRaw, err := c.Cookie(config.RefreshCookie); err == nil && refreshRaw != "" {
		_ = h.service.Logout(c.Request.Context(), refreshRaw)
	}

	h.clearSessionCookies(c)

	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *Handler) GetMe(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	profile, err := h.service.GetCurrentProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Profile not found")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"profile": profile})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid profile fields", errs)
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Could not update profile")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"profile": profile})
}

func (h *Handler) setSessionCookies(c *gin.Context, access, refresh string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(config.AccessCookie, access, int(h.cfg.JWTAccessTTL.Seconds()), "/", "", h.cfg.CookieSecure, true)
	c.SetCookie(config.RefreshCookie, refresh, int(h.cfg.RefreshTTL.Seconds()), "/", "", h.cfg.CookieSecure, true)
}

func (h *Handler) clearSessionCookies(c *gin.Context) {
	c.SetCookie(config.AccessCookie, "", -1, "/", "", h.cfg.CookieSecure, true)
	c.SetCookie(config.RefreshCookie, "", -1, "/", "", h.cfg.CookieSecure, true)
}
