package service

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mmynk/pocketbook/internal/events"
	"github.com/mmynk/pocketbook/internal/middleware"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// ChangeFeed streams change notifications for the authenticated user over a
// WebSocket. Each message is a JSON events.Change; clients reload the kind of
// data named in it. The client never sends anything but control frames.
type ChangeFeed struct {
	hub      *events.Hub
	upgrader websocket.Upgrader
}

// NewChangeFeed creates the WebSocket handler over hub.
func NewChangeFeed(hub *events.Hub) *ChangeFeed {
	return &ChangeFeed{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (f *ChangeFeed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		http.Error(w, errNoUser.Error(), http.StatusUnauthorized)
		return
	}

	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("Failed to upgrade connection", "user_id", userID, "error", err)
		return
	}
	defer conn.Close()

	changes, cancel := f.hub.Subscribe(userID)
	defer cancel()

	slog.Info("Change feed connected", "user_id", userID, "remote_addr", r.RemoteAddr)

	closed := make(chan struct{})
	go f.readLoop(conn, userID, closed)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case change, ok := <-changes:
			if !ok {
				f.closeConn(conn, websocket.CloseGoingAway, "server shutting down")
				return
			}
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := conn.WriteJSON(change); err != nil {
				slog.Warn("Change feed write failed", "user_id", userID, "error", err)
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				slog.Debug("Change feed ping failed", "user_id", userID, "error", err)
				return
			}
		case <-closed:
			slog.Info("Change feed disconnected", "user_id", userID)
			return
		}
	}
}

// readLoop drains the connection so control frames are handled and closes
// done when the client goes away.
func (f *ChangeFeed) readLoop(conn *websocket.Conn, userID string, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("Change feed read error", "user_id", userID, "error", err)
			}
			return
		}
	}
}

func (f *ChangeFeed) closeConn(conn *websocket.Conn, code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}

// Health reports that the server is up.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}
