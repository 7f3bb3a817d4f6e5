package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"
	"whatsapp-campaign/internal/models"

	"github.com/gorilla/websocket"
)

const (
	EventMessageSent   = "message_sent"
	EventMessageFailed = "message_failed"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = pongWait * 9 / 10
	maxReadBytes = 512
	queueSize    = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// dashboard is one connected campaign UI. It only receives events.
type dashboard struct {
	conn   *websocket.Conn
	events chan []byte
}

// Hub fans send results out to connected dashboards. A dashboard that falls
// behind is disconnected rather than slowing the others down.
type Hub struct {
	mu         sync.RWMutex
	dashboards map[*dashboard]struct{}
	events     chan []byte
	join       chan *dashboard
	leave      chan *dashboard
}

func NewHub() *Hub {
	return &Hub{
		dashboards: make(map[*dashboard]struct{}),
		events:     make(chan []byte, queueSize),
		join:       make(chan *dashboard),
		leave:      make(chan *dashboard),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case d := <-h.join:
			h.mu.Lock()
			h.dashboards[d] = struct{}{}
			h.mu.Unlock()
			log.Printf("Dashboard connected from %s", d.conn.RemoteAddr())
		case d := <-h.leave:
			h.drop(d)
		case payload := <-h.events:
			h.mu.RLock()
			var slow []*dashboard
			for d := range h.dashboards {
				select {
				case d.events <- payload:
				default:
					slow = append(slow, d)
				}
			}
			h.mu.RUnlock()
			for _, d := range slow {
				log.Printf("Dashboard %s is not keeping up, disconnecting", d.conn.RemoteAddr())
				h.drop(d)
			}
		}
	}
}

func (h *Hub) drop(d *dashboard) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.dashboards[d]; ok {
		delete(h.dashboards, d)
		close(d.events)
	}
}

// ClientCount returns the number of connected dashboards.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.dashboards)
}

type WSEvent struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// BroadcastEvent queues an event for every dashboard. Events are dropped
// when the queue is full so a send request never waits on the UI.
func (h *Hub) BroadcastEvent(eventType string, data interface{}) {
	payload, err := json.Marshal(WSEvent{Type: eventType, Data: data})
	if err != nil {
		log.Printf("Error marshaling WS event: %v", err)
		return
	}

	select {
	case h.events <- payload:
	default:
		log.Printf("WS event queue full, dropping %s event", eventType)
	}
}

// NotifyMessage publishes the outcome of one send.
func (h *Hub) NotifyMessage(msg models.Message) {
	eventType := EventMessageSent
	if msg.Status == models.StatusFailed {
		eventType = EventMessageFailed
	}
	h.BroadcastEvent(eventType, msg)
}

func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	d := &dashboard{conn: conn, events: make(chan []byte, queueSize)}
	h.join <- d

	go d.writeLoop()
	go d.readLoop(h)
}

// readLoop discards incoming frames and keeps the read deadline moving on
// pongs. It returns once the dashboard goes away.
func (d *dashboard) readLoop(h *Hub) {
	defer func() {
		h.leave <- d
		d.conn.Close()
	}()

	d.conn.SetReadLimit(maxReadBytes)
	d.conn.SetReadDeadline(time.Now().Add(pongWait))
	d.conn.SetPongHandler(func(string) error {
		return d.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := d.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writeLoop delivers queued events and pings the dashboard between them.
func (d *dashboard) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		d.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-d.events:
			d.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				d.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := d.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			d.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := d.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
