package server

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/teranos/PVX/graph"
)

// WebSocket timeout constants following Gorilla best practices
// See: https://github.com/gorilla/websocket/blob/master/examples/chat/client.go
const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = 54 * time.Second

	// Maximum message size allowed from peer (limits are tiny JSON messages)
	maxMessageSize = 4096
)

// createErrorGraph creates an empty graph with error metadata for UI display
func createErrorGraph(err error) *graph.Graph {
	return &graph.Graph{
		Nodes: []graph.Node{},
		Links: []graph.Link{},
		Meta: graph.Meta{
			GeneratedAt: time.Now(),
			Config: map[string]string{
				"error": err.Error(),
			},
		},
	}
}

// Client represents a WebSocket client connection
type Client struct {
	server *GraphServer
	conn   *websocket.Conn
	send   chan *graph.Graph
	id     string

	// mu guards closed. Every send on the channel goes through trySend,
	// which holds mu, so close never races a send.
	mu     sync.Mutex
	closed bool
}

// trySend queues a graph for the write pump without blocking. Returns
// false when the client is closed or its queue is full.
func (c *Client) trySend(g *graph.Graph) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.send <- g:
		return true
	default:
		return false
	}
}

// readPump handles reading messages from the WebSocket connection
func (c *Client) readPump() {
	defer func() {
		// The hub may already be gone during shutdown
		select {
		case c.server.unregister <- c:
		case <-c.server.ctx.Done():
		}
		c.conn.Close()
	}()

	// Configure connection limits and timeouts per Gorilla best practices
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	c.server.logger.Debugw("Read pump started", "client_id", c.id)

	for {
		_, messageBytes, err := c.conn.ReadMessage()
		if err != nil {
			c.handleReadError(err)
			break
		}

		var msg ClientMessage
		if err := json.Unmarshal(messageBytes, &msg); err != nil {
			c.server.logger.Warnw("JSON unmarshal error",
				"error", err.Error(),
				"client_id", c.id,
			)
			continue
		}

		c.routeMessage(&msg)
	}
}

// handleReadError logs unexpected WebSocket read errors.
// Expected closure codes (going away, abnormal, no status) are silently ignored.
func (c *Client) handleReadError(err error) {
	if websocket.IsUnexpectedCloseError(err,
		websocket.CloseGoingAway,
		websocket.CloseAbnormalClosure,
		websocket.CloseNoStatusReceived,
	) {
		c.server.logger.Warnw("WebSocket read error",
			"error", err.Error(),
			"client_id", c.id,
		)
	}
}

// routeMessage dispatches incoming WebSocket messages to appropriate handlers
func (c *Client) routeMessage(msg *ClientMessage) {
	switch msg.Type {
	case "limit":
		c.handleSetLimit(msg.Limit)
	case "clear":
		c.handleClear()
	case "ping":
		// Just update deadline, handled by pong handler
	default:
		c.server.logger.Debugw("Unknown message type",
			"type", msg.Type,
			"client_id", c.id,
		)
	}
}

// handleSetLimit applies a client-requested sieve limit. The rebuilt
// graph is broadcast to every client, not just the requester.
func (c *Client) handleSetLimit(limit int64) {
	c.server.logger.Infow("Client requested new limit",
		"client_id", c.id,
		"limit", limit,
	)

	if err := c.server.SetLimit(limit); err != nil {
		c.server.logger.Warnw("Rejected client limit",
			"client_id", c.id,
			"limit", limit,
			"error", err,
		)

		// Tell the requester what went wrong without disturbing other clients
		c.trySend(createErrorGraph(err))
	}
}

// handleClear sends an empty graph to the requesting client
func (c *Client) handleClear() {
	c.server.logger.Debugw("Clearing graph", "client_id", c.id)

	g := &graph.Graph{
		Nodes: []graph.Node{},
		Links: []graph.Link{},
		Meta: graph.Meta{
			GeneratedAt: time.Now(),
			Config: map[string]string{
				"description": "Submit a limit to see the graph...",
			},
		},
	}

	if !c.trySend(g) {
		c.server.logger.Warnw("Client send channel full, dropping clear",
			"client_id", c.id,
		)
	}
}

// writePump writes graph updates to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	c.server.logger.Debugw("Write pump started", "client_id", c.id)

	for {
		select {
		case <-c.server.ctx.Done():
			c.server.logger.Debugw("Write pump stopping due to server shutdown", "client_id", c.id)
			return
		case g, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(g); err != nil {
				c.server.logger.Warnw("Graph write error",
					"error", err.Error(),
					"client_id", c.id,
				)
				return
			}

			c.server.logger.Debugw("Sent graph to client",
				"client_id", c.id,
				"nodes", len(g.Nodes),
				"links", len(g.Links),
			)

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// close marks the client closed and closes its send channel. Idempotent.
// trySend holds the same lock, so no send can hit the closed channel.
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	if c.send != nil {
		close(c.send)
	}
}
