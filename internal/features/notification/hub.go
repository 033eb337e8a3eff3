package notification

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// Hub fans live notifications out to connected dashboard sessions, keyed by
// employee id. Persistence is handled by the repository; the hub is purely
// best-effort push.
type Hub struct {
	mu    sync.RWMutex
	conns map[string][]*websocket.Conn
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[string][]*websocket.Conn),
	}
}

func (h *Hub) Register(employeeID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[employeeID] = append(h.conns[employeeID], conn)
}

func (h *Hub) Unregister(employeeID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.conns[employeeID]
	for i, c := range conns {
		if c == conn {
			h.conns[employeeID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(h.conns[employeeID]) == 0 {
		delete(h.conns, employeeID)
	}
}

// Push sends the notification to every live session of the employee.
// Write failures just drop the session's message; the persisted copy is
// the source of truth.
func (h *Hub) Push(employeeID string, n *Notification) {
	payload, err := json.Marshal(n)
	if err != nil {
		return
	}

	h.mu.RLock()
	conns := append([]*websocket.Conn(nil), h.conns[employeeID]...)
	h.mu.RUnlock()

	for _, conn := range conns {
		_ = conn.WriteMessage(websocket.TextMessage, payload)
	}
}
