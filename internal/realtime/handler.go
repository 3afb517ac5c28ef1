package realtime

import (
	"log"
	"net/http"
	"time"

	"github.com/faa35/UHFC/internal/pkg/week"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,

	// Same-origin is enforced by the reverse proxy in production.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// subscribeMessage is what a client sends to pick its window. Week is the
// RFC 3339 start of the week it is viewing; empty means the whole table.
type subscribeMessage struct {
	Table string `json:"table"`
	Week  string `json:"week"`
}

type subscribeAck struct {
	Subscribed string    `json:"subscribed"`
	WeekStart  time.Time `json:"week_start,omitempty"`
}

type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws/feed", h.HandleFeed)
}

// HandleFeed upgrades the connection and reads subscribe messages until the
// client goes away. The feed is read-only for clients: anything other than a
// subscribe message is ignored.
func (h *Handler) HandleFeed(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("feed upgrade failed: %v", err)
		return
	}

	defer h.hub.Unsubscribe(conn)

	for {
		var msg subscribeMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Table == "" {
			continue
		}

		var weekStart time.Time
		if msg.Week != "" {
			parsed, err := time.Parse(time.RFC3339, msg.Week)
			if err != nil {
				continue
			}
			weekStart = week.Clamp(parsed, time.Now())
		}

		h.hub.Subscribe(conn, msg.Table, weekStart)

		ack := subscribeAck{Subscribed: msg.Table, WeekStart: weekStart}
		if err := h.hub.Send(conn, ack); err != nil {
			return
		}
	}
}
