// Package stream fans simulation frames out to websocket viewers and feeds
// their tuning messages back into the run loop.
//
// Frames travel as binary messages holding little endian float32 records.
// Control messages travel the other way as JSON, with every field optional.
package stream

import (
	"encoding/binary"
	"encoding/json"
	"math"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	golog "github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-flock-kernel/pkg/boids"
)

// ControlUpdate carries the tunables a viewer may change mid-run. Nil fields
// keep their current value.
type ControlUpdate struct {
	MaxSpeed           *float64 `json:"maxSpeed,omitempty"`
	MinSpeed           *float64 `json:"minSpeed,omitempty"`
	Jitter             *float64 `json:"jitter,omitempty"`
	SeparationStrength *float64 `json:"separationStrength,omitempty"`
	AlignmentStrength  *float64 `json:"alignmentStrength,omitempty"`
	CohesionStrength   *float64 `json:"cohesionStrength,omitempty"`
}

// Apply copies the set fields onto cfg.
func (u ControlUpdate) Apply(cfg *boids.Config) {
	if u.MaxSpeed != nil {
		cfg.MaxSpeed = *u.MaxSpeed
	}
	if u.MinSpeed != nil {
		cfg.MinSpeed = *u.MinSpeed
	}
	if u.Jitter != nil {
		cfg.Jitter = *u.Jitter
	}
	if u.SeparationStrength != nil {
		cfg.SeparationStrength = *u.SeparationStrength
	}
	if u.AlignmentStrength != nil {
		cfg.AlignmentStrength = *u.AlignmentStrength
	}
	if u.CohesionStrength != nil {
		cfg.CohesionStrength = *u.CohesionStrength
	}
}

// Hub tracks connected viewers and broadcasts frames to all of them.
type Hub struct {
	mu        sync.Mutex
	clients   map[*websocket.Conn]struct{}
	upgrader  websocket.Upgrader
	logger    golog.Logger
	onControl func(ControlUpdate)
}

// NewHub returns a hub ready to accept connections. onControl runs on every
// decoded control message and may be nil when updates should be ignored.
func NewHub(logger golog.Logger, onControl func(ControlUpdate)) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger:    logger,
		onControl: onControl,
	}
}

func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = struct{}{}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
	conn.Close()
}

// ClientCount reports how many viewers are currently connected.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// BroadcastFrame sends one frame to every viewer. A client that fails to
// take the write is dropped.
func (h *Hub) BroadcastFrame(frame []float32) {
	payload := EncodeFrame(frame)

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.BinaryMessage, payload); err != nil {
			h.logger.Warnf("dropping viewer %s: %v", conn.RemoteAddr(), err)
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// Handler upgrades incoming requests and reads control updates until the
// viewer goes away.
func (h *Hub) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Warnf("websocket upgrade failed: %v", err)
			return
		}
		h.add(conn)
		defer h.remove(conn)
		h.logger.Infof("viewer connected from %s", conn.RemoteAddr())

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				h.logger.Infof("viewer %s left: %v", conn.RemoteAddr(), err)
				return
			}
			if h.onControl == nil {
				continue
			}
			var update ControlUpdate
			if err := json.Unmarshal(data, &update); err != nil {
				h.logger.Warnf("unable to decode control update: %v", err)
				continue
			}
			h.onControl(update)
		}
	}
}

// EncodeFrame packs a float32 frame into the little endian wire form.
func EncodeFrame(frame []float32) []byte {
	buf := make([]byte, 4*len(frame))
	for i, v := range frame {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}
