package admin

import (
	"errors"
	"net/http"

	"github.com/faa35/UHFC/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings", h.ListBookings)
	rg.POST("/bookings/:id/confirm", h.Confirm)
	rg.POST("/bookings/:id/cancel", h.Cancel)
}

func (h *Handler) ListBookings(c *gin.Context) {
	bookings, err := h.service.ListBookings(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load bookings")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) Confirm(c *gin.Context) {
	b, err := h.service.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeTransitionError(c, err, "Only a pending booking can be confirmed")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Cancel(c *gin.Context) {
	b, err := h.service.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeTransitionError(c, err, "Booking is already cancelled")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) writeTransitionError(c *gin.Context, err error, transitionMsg string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", transitionMsg)
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update booking")
	}
}
