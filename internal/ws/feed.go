package ws

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/biloute593/GAMELLE-APP/internal/logger"
	"github.com/biloute593/GAMELLE-APP/internal/models"
)

// Feed message types.
const (
	MsgTypeConnected = "connected"
	MsgTypeDishAdded = "dish_added"
)

// WSMessage is the envelope for every message sent on the dish feed.
type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// PublishDish queues a dish_added event for every subscriber. It never
// blocks: when the broadcast buffer is full the event is dropped. A nil hub
// drops every event.
func (h *Hub) PublishDish(dish models.Dish) {
	if h == nil {
		return
	}
	log := logger.Get()

	payload, err := json.Marshal(dish)
	if err != nil {
		log.Error("failed to encode dish for feed", zap.Int("dish_id", dish.ID), zap.Error(err))
		return
	}
	message, err := json.Marshal(WSMessage{Type: MsgTypeDishAdded, Payload: payload})
	if err != nil {
		log.Error("failed to encode feed message", zap.Int("dish_id", dish.ID), zap.Error(err))
		return
	}

	select {
	case h.Broadcast <- message:
	default:
		log.Warn("feed broadcast buffer full, dropping event", zap.Int("dish_id", dish.ID))
	}
}

// FeedHandler upgrades storefront clients to the live dish feed.
type FeedHandler struct {
	Hub      *Hub
	upgrader websocket.Upgrader
}

// NewFeedHandler returns a FeedHandler accepting the given origins. An empty
// list accepts any origin.
func NewFeedHandler(hub *Hub, allowedOrigins []string) *FeedHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &FeedHandler{
		Hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if len(allowed) == 0 {
					return true
				}
				return allowed[r.Header.Get("Origin")]
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleDishFeed subscribes the caller to dish_added events.
func (fh *FeedHandler) HandleDishFeed(c *gin.Context) {
	log := logger.Get()

	conn, err := fh.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		Hub:  fh.Hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		ID:   uuid.New().String(),
	}
	connectedMsg, _ := json.Marshal(WSMessage{Type: MsgTypeConnected})
	client.Send <- connectedMsg
	fh.Hub.Register <- client

	log.Info("dish feed subscription started", zap.String("client_id", client.ID))

	go client.WritePump()
	go client.ReadPump()
}
