package orderControllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guimac3do/chica-y-nino-sub000/models"
)

func wsClientHas(conn *websocket.Conn) bool {
	wsMu.Lock()
	defer wsMu.Unlock()
	_, ok := wsClients[conn]
	return ok
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestOrderFeed_BroadcastReachesConnectedClients(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/pedidos/ws", OrderFeedHandler)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/pedidos/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// the handler registers the connection after the handshake returns
	waitFor(t, func() bool {
		wsMu.Lock()
		defer wsMu.Unlock()
		return len(wsClients) > 0
	})

	broadcastNewOrder(models.Order{ID: 42, OrderRef: "ref-42"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(msg), "ref-42")
}

func TestBroadcast_DropsDeadConnections(t *testing.T) {
	connCh := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err == nil {
			connCh <- conn
		}
	}))
	defer srv.Close()

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer client.Close()

	serverConn := <-connCh
	wsMu.Lock()
	wsClients[serverConn] = true
	wsMu.Unlock()

	// kill the underlying connection so the next write fails
	require.NoError(t, serverConn.Close())

	broadcastNewOrder(models.Order{ID: 43, OrderRef: "ref-43"})

	assert.False(t, wsClientHas(serverConn))
}
