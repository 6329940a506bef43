package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS is enforced on the HTTP routes
	},
}

// Message represents a WebSocket message
type Message struct {
	Type   string      `json:"type"`
	GameID string      `json:"gameId,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

// Client represents a connected WebSocket client
type Client struct {
	conn   *websocket.Conn
	send   chan []byte
	gameID string
	hub    *Hub
}

// Hub maintains the set of active clients and routes game events to the
// clients watching that game
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	games      map[string]map[*Client]bool
	done       chan struct{}
	mu         sync.RWMutex
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		games:      make(map[string]map[*Client]bool),
		done:       make(chan struct{}),
	}
}

// Run processes client registrations until ctx is done
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for client := range h.clients {
				h.remove(client)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			if _, exists := h.games[client.gameID]; !exists {
				h.games[client.gameID] = make(map[*Client]bool)
			}
			h.games[client.gameID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				h.remove(client)
			}
			h.mu.Unlock()
		}
	}
}

// remove must be called with h.mu held
func (h *Hub) remove(client *Client) {
	delete(h.clients, client)
	close(client.send)

	if h.games[client.gameID] != nil {
		delete(h.games[client.gameID], client)
		// Clean up empty games
		if len(h.games[client.gameID]) == 0 {
			delete(h.games, client.gameID)
		}
	}
}

// BroadcastToGame sends a message to all clients watching a game
func (h *Hub) BroadcastToGame(gameID string, message Message) {
	message.GameID = gameID
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.games[gameID] {
		select {
		case client.send <- data:
		default:
			// Slow client, drop the event rather than block the game
			log.Printf("Dropping %s event for slow client of game %s", message.Type, gameID)
		}
	}
}

// Watchers returns the number of clients watching a game
func (h *Hub) Watchers(gameID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.games[gameID])
}

// WebSocketHandler handles WebSocket connections
func (h *Hub) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("gameId")
	if gameID == "" {
		http.Error(w, "gameId is required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	client := &Client{
		conn:   conn,
		send:   make(chan []byte, 256),
		gameID: gameID,
		hub:    h,
	}

	// Queue the welcome message before the hub can broadcast to the client
	welcomeData, _ := json.Marshal(Message{
		Type:   "welcome",
		GameID: gameID,
		Data: map[string]string{
			"message": "Connected to Blackjack game server",
		},
	})
	client.send <- welcomeData

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	// Start goroutines for reading and writing
	go client.readPump()
	go client.writePump()
}

// readPump drains the connection so pings, pongs and close frames are
// handled. Clients act through the HTTP routes.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4 * 1024)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
