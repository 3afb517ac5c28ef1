package schedule

import (
	"net/http"
	"time"

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
	rg.GET("/schedule/week", h.GetWeek)
}

// GetWeek returns the slot grid for the week containing ?from= (RFC 3339,
// defaults to now). Out-of-range weeks are clamped, not rejected.
func (h *Handler) GetWeek(c *gin.Context) {
	now := time.Now()
	from := now

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			parsed, err = time.Parse("2006-01-02", raw)
		}
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "from must be RFC 3339 or YYYY-MM-DD")
			return
		}
		from = parsed
	}

	grid, err := h.service.Grid(c.Request.Context(), from, now)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load schedule")
		return
	}

	response.Success(c, http.StatusOK, grid)
}
