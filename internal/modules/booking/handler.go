package booking

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
	rg.POST("/bookings", h.RequestSlot)
	rg.GET("/bookings/my", h.ListMine)
	rg.DELETE("/bookings/:id", h.CancelOwn)
}

func (h *Handler) RequestSlot(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req RequestSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.RequestSlot(c.Request.Context(), userID, req.StartTime)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Slot must start on a future whole hour")
		case errors.Is(err, ErrPhoneRequired):
			response.Error(c, http.StatusBadRequest, "PHONE_REQUIRED", "Add a phone number to your profile first")
		case errors.Is(err, ErrSlotTaken):
			response.Error(c, http.StatusConflict, "SLOT_TAKEN", "Slot already taken")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create booking")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"booking": gin.H{
			"id":         b.ID,
			"start_time": b.StartTime,
			"end_time":   b.EndTime,
			"status":     b.Status,
		},
	})
}

func (h *Handler) ListMine(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	bookings, err := h.service.ListMine(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load bookings")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) CancelOwn(c *gin.Context) {
	userID := c.GetString("user_id")
	bookingID := c.Param("id")

	b, err := h.service.CancelOwn(c.Request.Context(), userID, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not your booking")
		case errors.Is(err, ErrInvalidTransition):
			response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Booking is already cancelled")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to cancel booking")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"booking": gin.H{
			"id":     b.ID,
			"status": b.Status,
		},
	})
}
