package events

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hanaa-nabil/Hotel-managment/internal/domain"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	up := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register(conn)
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.Eventually(t, func() bool { return hub.SubscriberCount() == 1 },
		time.Second, 10*time.Millisecond)
	return client
}

// Events fan out from whichever goroutine produced them; every message
// must still arrive intact on a single connection.
func TestHubConcurrentBroadcast(t *testing.T) {
	hub := NewHub()
	defer hub.Close()
	client := dialHub(t, hub)

	const n = 40
	var wg sync.WaitGroup
	for i := 1; i <= n; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			hub.BookingCreated(&domain.Booking{ID: id, RoomID: 1, Status: domain.BookingPending})
		}(int64(i))
	}
	wg.Wait()

	received := make(map[int64]bool)
	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	for i := 0; i < n; i++ {
		var ev Event
		require.NoError(t, client.ReadJSON(&ev))
		assert.Equal(t, BookingCreatedEvent, ev.Type)
		received[ev.BookingID] = true
	}
	assert.Len(t, received, n)
}

func TestHubUnregister(t *testing.T) {
	hub := NewHub()
	defer hub.Close()
	client := dialHub(t, hub)

	_ = client.Close()
	// Broadcasts against the closed connection eventually fail the write
	// and drop the subscriber.
	assert.Eventually(t, func() bool {
		hub.BookingCancelled(&domain.Booking{ID: 1, RoomID: 1, Status: domain.BookingCancelled})
		return hub.SubscriberCount() == 0
	}, time.Second, 10*time.Millisecond)
}
