package handlers

import (
	"net/http"
	"sync"
	"time"

	"mechradii/middleware"
	"mechradii/models"
	"mechradii/services/notification"
	"mechradii/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const wsWriteTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect from the app origin; auth happens via the
	// bearer token, not the origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsSink adapts a websocket connection to the notification hub.
type wsSink struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *wsSink) Send(notice models.Notice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return s.conn.WriteJSON(notice)
}

func (s *wsSink) Close() error {
	return s.conn.Close()
}

// NotificationHandler exposes the live notification stream.
type NotificationHandler struct {
	Hub *notification.Hub
}

func NewNotificationHandler(hub *notification.Hub) *NotificationHandler {
	return &NotificationHandler{Hub: hub}
}

// StreamHandler handles GET /notifications/stream. It upgrades to a
// websocket and delivers booking notices for the signed-in user until the
// client disconnects.
func (h *NotificationHandler) StreamHandler(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.GetLogger().Warn("Websocket upgrade failed", zap.String("user_id", userID), zap.Error(err))
		return
	}

	sink := &wsSink{conn: conn}
	h.Hub.Subscribe(userID, sink)
	defer h.Hub.Unsubscribe(userID, sink)

	// Drain the read side so ping/close frames are processed; the first
	// read error means the client went away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
