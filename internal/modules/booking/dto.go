package booking

import "time"

type RequestSlotRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
}
