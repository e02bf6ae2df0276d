package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"synergysphere/internal/logger"
	"synergysphere/internal/model"
	"synergysphere/internal/storage"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound message size allowed
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Identity is payload-embedded; origins are not restricted.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// InboundMessage is the client→server chat frame. Identity arrives embedded
// in the payload; the socket itself is not authenticated.
type InboundMessage struct {
	Type      string `json:"type"`
	ProjectID string `json:"projectId"`
	UserID    string `json:"userId"`
	Content   string `json:"content"`
}

// OutboundMessage is the server→client frame. It goes to every connected
// socket, not only the originating project's; clients filter by ProjectID.
type OutboundMessage struct {
	Type      string             `json:"type"`
	ProjectID string             `json:"projectId"`
	Message   *model.ChatMessage `json:"message"`
}

// Hub tracks connected chat clients and fans broadcasts out to all of them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	store storage.Store
	log   *logger.Logger
}

// Client is one WebSocket connection with a buffered outbound queue.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

func NewHub(store storage.Store, log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		store:      store,
		log:        log,
	}
}

// Run owns the client set; all membership changes and broadcasts go through
// its channels, so no lock is needed.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer, drop the connection.
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// ServeWS upgrades the request and starts the client pumps.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("upgrading websocket connection", "error", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 256),
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

// handleChatMessage persists the message, then builds the broadcast frame
// from the stored history so the payload carries the sender. Persistence
// strictly precedes any broadcast.
func (h *Hub) handleChatMessage(ctx context.Context, in InboundMessage) ([]byte, error) {
	message, err := model.ValidateChatMessage(model.ChatMessageInput{
		ProjectID: in.ProjectID,
		UserID:    in.UserID,
		Content:   in.Content,
	})
	if err != nil {
		return nil, err
	}

	if err := h.store.CreateChatMessage(ctx, message); err != nil {
		return nil, err
	}

	history, err := h.store.GetChatMessages(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, errors.New("chat history empty after persist")
	}
	latest := history[len(history)-1]

	return json.Marshal(OutboundMessage{
		Type:      "new_message",
		ProjectID: in.ProjectID,
		Message:   &latest,
	})
}

// readPump pumps inbound frames from the socket into the hub.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Warn("websocket closed unexpectedly", "error", err)
			}
			break
		}

		var in InboundMessage
		if err := json.Unmarshal(raw, &in); err != nil {
			continue
		}
		if in.Type != "chat_message" {
			continue
		}

		payload, err := c.hub.handleChatMessage(context.Background(), in)
		if err != nil {
			c.hub.log.Error("handling chat message", "projectId", in.ProjectID, "error", err)
			continue
		}
		c.hub.broadcast <- payload
	}
}

// writePump pumps outbound frames from the hub to the socket and keeps the
// connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
