// Package events is an in-process broadcaster for booking lifecycle
// events, feeding the admin live feed over websockets.
package events

import (
	"sync"
	"time"

	"github.com/hanaa-nabil/Hotel-managment/internal/domain"

	"github.com/gorilla/websocket"
)

type EventType string

const (
	BookingCreatedEvent   EventType = "booking.created"
	BookingCancelledEvent EventType = "booking.cancelled"
	BookingStatusEvent    EventType = "booking.status_changed"
)

type Event struct {
	Type      EventType            `json:"type"`
	BookingID int64                `json:"booking_id"`
	RoomID    int64                `json:"room_id"`
	Status    domain.BookingStatus `json:"status"`
	Paid      bool                 `json:"is_paid"`
	At        time.Time            `json:"at"`
}

// subscriber wraps a connection with a write lock: events fan out from
// whichever request goroutine produced them, and gorilla/websocket
// forbids concurrent writers on one connection.
type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *subscriber) send(ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(ev)
}

type Hub struct {
	mu    sync.RWMutex
	conns map[*websocket.Conn]*subscriber
}

func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]*subscriber)}
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = &subscriber{conn: conn}
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[conn]; ok {
		_ = conn.Close()
		delete(h.conns, conn)
	}
}

func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

func (h *Hub) broadcast(ev Event) {
	h.mu.RLock()
	subs := make([]*subscriber, 0, len(h.conns))
	for _, s := range h.conns {
		subs = append(subs, s)
	}
	h.mu.RUnlock()

	for _, s := range subs {
		if err := s.send(ev); err != nil {
			h.Unregister(s.conn)
		}
	}
}

func (h *Hub) BookingCreated(b *domain.Booking) {
	h.broadcast(eventFrom(BookingCreatedEvent, b))
}

func (h *Hub) BookingCancelled(b *domain.Booking) {
	h.broadcast(eventFrom(BookingCancelledEvent, b))
}

func (h *Hub) BookingStatusChanged(b *domain.Booking) {
	h.broadcast(eventFrom(BookingStatusEvent, b))
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		_ = c.Close()
		delete(h.conns, c)
	}
}

func eventFrom(t EventType, b *domain.Booking) Event {
	return Event{
		Type:      t,
		BookingID: b.ID,
		RoomID:    b.RoomID,
		Status:    b.Status,
		Paid:      b.Paid,
		At:        time.Now().UTC(),
	}
}
