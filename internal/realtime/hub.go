package realtime

import (
	"sync"
	"time"

	"github.com/faa35/UHFC/internal/metrics"
	"github.com/faa35/UHFC/internal/pkg/week"

	"github.com/gorilla/websocket"
)

// Event is the invalidation payload pushed to subscribers. Clients refetch
// the affected week; the event carries no row data.
type Event struct {
	Table  string    `json:"table"`
	Action string    `json:"action"`
	Start  time.Time `json:"start_time"`
}

// subscriber owns all writes to its connection. gorilla/websocket allows at
// most one concurrent writer per conn, so every write — broadcast or ack —
// goes through writeMu.
type subscriber struct {
	writeMu   sync.Mutex
	table     string
	weekStart time.Time
}

type Hub struct {
	subscribers map[*websocket.Conn]*subscriber
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[*websocket.Conn]*subscriber),
	}
}

// Subscribe attaches conn to changes on table within the week starting at
// weekStart. A zero weekStart subscribes to the whole table. Re-subscribing
// replaces the window but keeps the connection's write lock.
func (h *Hub) Subscribe(conn *websocket.Conn, table string, weekStart time.Time) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	sub, exists := h.subscribers[conn]
	if !exists {
		sub = &subscriber{}
		h.subscribers[conn] = sub
	}
	sub.table = table
	sub.weekStart = weekStart
}

func (h *Hub) Unsubscribe(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, exists := h.subscribers[conn]; exists {
		_ = conn.Close()
		delete(h.subscribers, conn)
	}
}

// Broadcast fans an event out to every subscriber of table whose week window
// contains start. Connections that fail to write are dropped.
func (h *Hub) Broadcast(table, action string, start time.Time) {
	event := Event{Table: table, Action: action, Start: start}

	type target struct {
		conn *websocket.Conn
		sub  *subscriber
	}

	h.mutex.RLock()
	targets := make([]target, 0, len(h.subscribers))
	for conn, sub := range h.subscribers {
		if sub.table != table {
			continue
		}
		if !sub.weekStart.IsZero() && !week.Contains(sub.weekStart, start) {
			continue
		}
		targets = append(targets, target{conn: conn, sub: sub})
	}
	h.mutex.RUnlock()

	metrics.IncFeedEvent(table)

	for _, t := range targets {
		t.sub.writeMu.Lock()
		err := t.conn.WriteJSON(event)
		t.sub.writeMu.Unlock()
		if err != nil {
			h.Unsubscribe(t.conn)
		}
	}
}

// Send writes v to conn, serialized against broadcasts on the same conn.
func (h *Hub) Send(conn *websocket.Conn, v any) error {
	h.mutex.RLock()
	sub, exists := h.subscribers[conn]
	h.mutex.RUnlock()

	if !exists {
		return conn.WriteJSON(v)
	}

	sub.writeMu.Lock()
	defer sub.writeMu.Unlock()
	return conn.WriteJSON(v)
}

func (h *Hub) SubscriberCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.subscribers)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn := range h.subscribers {
		_ = conn.Close()
		delete(h.subscribers, conn)
	}
}
