// Package devserver exposes the content-authoring endpoints used by editor
// tooling: the generated schema artifact, a registry listing, an explicit
// reload trigger, and a websocket stream of registry events. File watching
// stays with the host; reloads are always client-initiated.
package devserver

import (
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"protoforge/catalog"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Hub fans registry events out to connected editor clients.
type Hub struct {
	mu          sync.Mutex
	subscribers map[uint64]*subscriber
	nextID      atomic.Uint64
	log         *zap.Logger
}

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		subscribers: make(map[uint64]*subscriber),
		log:         log,
	}
}

// Broadcast sends one registry event to every connected client. Clients whose
// writes fail are dropped.
func (h *Hub) Broadcast(event catalog.Event) {
	h.mu.Lock()
	subs := make(map[uint64]*subscriber, len(h.subscribers))
	for id, sub := range h.subscribers {
		subs[id] = sub
	}
	h.mu.Unlock()

	for id, sub := range subs {
		sub.mu.Lock()
		err := sub.conn.WriteJSON(event)
		sub.mu.Unlock()
		if err != nil {
			h.log.Debug("dropping event subscriber", zap.Uint64("subscriber", id), zap.Error(err))
			h.remove(id)
		}
	}
}

// HandleEvents upgrades the request and keeps the connection subscribed until
// the client goes away.
func (h *Hub) HandleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	id := h.nextID.Add(1)
	h.mu.Lock()
	h.subscribers[id] = &subscriber{conn: conn}
	h.mu.Unlock()
	h.log.Info("event subscriber connected", zap.Uint64("subscriber", id))

	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.remove(id)
				return
			}
		}
	}()
}

// Close drops every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	subs := h.subscribers
	h.subscribers = make(map[uint64]*subscriber)
	h.mu.Unlock()

	for _, sub := range subs {
		_ = sub.conn.Close()
	}
}

func (h *Hub) remove(id uint64) {
	h.mu.Lock()
	sub, ok := h.subscribers[id]
	delete(h.subscribers, id)
	h.mu.Unlock()
	if ok {
		_ = sub.conn.Close()
	}
}
