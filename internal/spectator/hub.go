// Package spectator broadcasts live session snapshots to WebSocket viewers.
// The feed is one-way: viewers receive state frames and never send input,
// so a dropped or slow viewer cannot affect the simulation.
package spectator

import (
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/magoocas/life-of-a-burrb/internal/sim"
)

const (
	// writeWait bounds how long a broadcast blocks on one viewer.
	writeWait = 5 * time.Second

	// broadcastGap throttles the feed: snapshots arrive at the simulation
	// tick rate but viewers only get one frame per gap.
	broadcastGap = 100 * time.Millisecond
)

// frame is the wire envelope for one broadcast update. Source names the
// publishing session so viewers of a shared hub can tell streams apart.
type frame struct {
	Type       string       `json:"type"`
	Source     string       `json:"source"`
	ServerTime int64        `json:"serverTime"`
	State      sim.Snapshot `json:"state"`
}

type viewer struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// Hub fans session snapshots out to connected viewers.
type Hub struct {
	logger *log.Logger
	nextID atomic.Uint64

	mu      sync.Mutex
	viewers map[string]*viewer
	last    []byte // most recent encoded frame, replayed to joining viewers
	lastAt  time.Time
}

// NewHub creates an empty hub.
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		logger:  logger,
		viewers: make(map[string]*viewer),
	}
}

// Publish offers the latest snapshot for broadcast. Calls inside the
// throttle window are dropped; the host may call this every tick. The gap
// spans all sources, so several sessions sharing one hub split the rate.
func (h *Hub) Publish(source string, snap sim.Snapshot) {
	now := time.Now()

	h.mu.Lock()
	if now.Sub(h.lastAt) < broadcastGap {
		h.mu.Unlock()
		return
	}
	h.lastAt = now
	h.mu.Unlock()

	msg := frame{Type: "state", Source: source, ServerTime: now.UnixMilli(), State: snap}
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("failed to marshal snapshot", "error", err)
		return
	}

	h.mu.Lock()
	h.last = data
	viewers := make(map[string]*viewer, len(h.viewers))
	for id, v := range h.viewers {
		viewers[id] = v
	}
	h.mu.Unlock()

	for id, v := range viewers {
		v.mu.Lock()
		v.conn.SetWriteDeadline(now.Add(writeWait))
		err := v.conn.WriteMessage(websocket.TextMessage, data)
		v.mu.Unlock()
		if err != nil {
			h.logger.Info("viewer dropped", "id", id, "error", err)
			h.remove(id)
		}
	}
}

// Attach registers a viewer connection, replays the latest frame and blocks
// until the viewer disconnects. Incoming messages are read and discarded.
func (h *Hub) Attach(conn *websocket.Conn) {
	id := fmt.Sprintf("viewer-%d", h.nextID.Add(1))
	v := &viewer{conn: conn}

	h.mu.Lock()
	h.viewers[id] = v
	last := h.last
	h.mu.Unlock()

	h.logger.Info("viewer connected", "id", id, "remote", conn.RemoteAddr().String())

	if last != nil {
		v.mu.Lock()
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		err := conn.WriteMessage(websocket.TextMessage, last)
		v.mu.Unlock()
		if err != nil {
			h.remove(id)
			return
		}
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.logger.Info("viewer disconnected", "id", id)
			h.remove(id)
			return
		}
	}
}

// ViewerCount reports how many viewers are attached.
func (h *Hub) ViewerCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.viewers)
}

// CloseAll disconnects every viewer. Called at shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	viewers := h.viewers
	h.viewers = make(map[string]*viewer)
	h.mu.Unlock()

	for _, v := range viewers {
		v.conn.Close()
	}
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	v, ok := h.viewers[id]
	if ok {
		delete(h.viewers, id)
	}
	h.mu.Unlock()

	if ok {
		v.conn.Close()
	}
}
