package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/gramlet-dev/gramlet/internal/types"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// feedClient wraps a connection with a write lock. Broadcasts run on the
// request goroutine that created the post and pings run on a per-connection
// goroutine, while gorilla/websocket allows one concurrent writer, so every
// write goes through this lock.
type feedClient struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *feedClient) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}

	return c.conn.WriteJSON(v)
}

func (c *feedClient) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}

	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

// FeedHub fans new-post events out to connected feed clients. Delivery is
// best effort: a failed write drops the connection, never the request that
// created the post.
type FeedHub struct {
	mu      sync.RWMutex
	clients map[*feedClient]bool
}

func NewFeedHub() *FeedHub {
	return &FeedHub{clients: make(map[*feedClient]bool)}
}

func (h *FeedHub) register(client *feedClient) {
	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()
}

func (h *FeedHub) unregister(client *feedClient) {
	h.mu.Lock()
	delete(h.clients, client)
	h.mu.Unlock()
}

func (h *FeedHub) BroadcastNewPost(postID, userID uint) {
	h.mu.RLock()

	if len(h.clients) == 0 {
		h.mu.RUnlock()
		return
	}

	// Copy the set so the hub lock is not held while writing to sockets.
	clients := make([]*feedClient, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		err := client.writeJSON(map[string]interface{}{
			"type":    "new_post",
			"post_id": postID,
			"user_id": userID,
		})

		if err != nil {
			log.Printf("Failed to broadcast new post to client: %v", err)
			h.unregister(client)
			client.conn.Close()
		}
	}
}

// Handle upgrades the request to a websocket and keeps it registered until
// the client goes away.
func (h *FeedHub) Handle(c *gin.Context) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		conn.Close()
		return
	}
	conn.SetPongHandler(func(string) error {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline in pong handler: %v", err)
		}
		return nil
	})

	client := &feedClient{conn: conn}

	h.register(client)

	done := make(chan struct{})

	defer func() {
		close(done)
		h.unregister(client)
		conn.Close()
	}()

	err = client.writeJSON(map[string]string{
		"type":    "connected",
		"message": "Feed stream connected",
	})

	if err != nil {
		log.Printf("Failed to send welcome message: %v", err)
		return
	}

	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := client.ping(); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			break
		}

		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}
