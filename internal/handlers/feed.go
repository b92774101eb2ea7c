package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/jessupi/jessbook/internal/middleware"
	ws "github.com/jessupi/jessbook/internal/websocket"
)

// FeedHandler раздаёт websocket-ленту уведомлений подписчикам
type FeedHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

func NewFeedHandler(hub *ws.Hub) *FeedHandler {
	return &FeedHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// TODO: сверять origin с CLIENT_URL в prod
				return true
			},
		},
	}
}

// HandleFeed апгрейдит соединение и вешает его на hub
func (h *FeedHandler) HandleFeed(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := ws.NewClient(h.hub, conn, userID)

	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
