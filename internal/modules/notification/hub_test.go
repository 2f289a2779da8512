package notification

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialTestHub(t *testing.T, hub *Hub, userID int64) (*websocket.Conn, *client) {
	t.Helper()

	upgrade := websocket.Upgrader{}
	registered := make(chan *client, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrade.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		registered <- hub.Register(userID, conn)
	}))
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn, <-registered
}

func TestHub_SendToUser(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	conn, _ := dialTestHub(t, hub, 7)

	assert.True(t, hub.IsOnline(7))
	assert.False(t, hub.SendToUser(99, map[string]string{"title": "nope"}))

	require.True(t, hub.SendToUser(7, map[string]string{"title": "Booking Approved!"}))

	var got map[string]string
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "Booking Approved!", got["title"])
}

// Pushes arrive from request goroutines while the keepalive loop pings
// on the same connection; both must serialize on the client lock.
// Run with -race to catch unserialized writes.
func TestHub_ConcurrentSendAndPing(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	conn, cl := dialTestHub(t, hub, 7)

	const sends = 50

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < sends; i++ {
			hub.SendToUser(7, map[string]int{"seq": i})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < sends; i++ {
			_ = cl.ping()
		}
	}()
	wg.Wait()

	// Pings are control frames the reader consumes transparently; all
	// data frames must still arrive intact.
	for i := 0; i < sends; i++ {
		var msg map[string]int
		require.NoError(t, conn.ReadJSON(&msg))
		assert.Equal(t, i, msg["seq"])
	}
}

func TestHub_ReplacesExistingConnection(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	dialTestHub(t, hub, 7)
	conn2, _ := dialTestHub(t, hub, 7)

	require.True(t, hub.SendToUser(7, map[string]string{"title": "New Reply"}))

	var got map[string]string
	require.NoError(t, conn2.ReadJSON(&got))
	assert.Equal(t, "New Reply", got["title"])
}
