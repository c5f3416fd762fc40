package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/lawmasters-app/lawmasters/log"
	"github.com/lawmasters-app/lawmasters/notifications"
)

var wsLogger = log.GetLogger("ApiWS")

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Same-origin enforcement happens at the proxy; the API itself is
	// reachable only from the dashboard
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	wsWriteTimeout = 10 * time.Second
	wsPingInterval = 30 * time.Second
)

// AppStateWS handles GET /api/appstate/ws, a websocket mirror of the SSE
// stream for clients behind proxies that buffer event streams
func (h *Handlers) AppStateWS(c *gin.Context) {
	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		wsLogger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	// Gin's response writer is gone after the upgrade; keep the request
	// logger from touching it
	log.MarkHijacked(c)

	events, unsubscribe := h.notif.Subscribe()
	defer unsubscribe()

	// Drain client frames so close handshakes and pongs are processed
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// Initial connected event with the current snapshot
	connected := notifications.Event{
		Type:      notifications.EventConnected,
		Timestamp: time.Now().UnixMilli(),
		Data:      toPayload(h.store.Snapshot()),
	}
	if err := writeWSEvent(conn, connected); err != nil {
		return
	}

	wsLogger.Debug().Msg("client connected to appstate websocket")

	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
					time.Now().Add(wsWriteTimeout))
				return
			}
			if err := writeWSEvent(conn, event); err != nil {
				wsLogger.Debug().Err(err).Msg("websocket write failed, dropping client")
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.Request.Context().Done():
			wsLogger.Debug().Msg("client disconnected from appstate websocket")
			return
		}
	}
}

func writeWSEvent(conn *websocket.Conn, event notifications.Event) error {
	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteJSON(event)
}
