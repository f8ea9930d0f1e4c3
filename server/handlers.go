package server

// HTTP handler methods for GraphServer:
// - WebSocket connections (HandleWebSocket)
// - Graph JSON API (HandleGraphAPI)
// - Health checks (HandleHealth)
// - Embedded index page (HandleIndex)

import (
	_ "embed"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/teranos/PVX/graph"
	"github.com/teranos/PVX/version"
)

//go:embed index.html
var indexHTML []byte

// HandleWebSocket upgrades the connection and starts the client pumps
func (s *GraphServer) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := newUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Errorw("WebSocket upgrade failed",
			"error", err.Error(),
			"remote_addr", r.RemoteAddr,
		)
		return
	}

	client := &Client{
		server: s,
		conn:   conn,
		send:   make(chan *graph.Graph, MaxClientMessageQueueSize),
		id:     uuid.NewString(),
	}

	// Send version info BEFORE starting writePump (avoid concurrent writes)
	versionInfo := version.Get()
	versionMsg := map[string]interface{}{
		"type":       "version",
		"version":    versionInfo.Version,
		"commit":     versionInfo.Short(),
		"build_time": versionInfo.BuildTime,
	}
	if err := conn.WriteJSON(versionMsg); err != nil {
		s.logger.Debugw("Failed to send version info",
			"client_id", client.id,
			"error", err,
		)
	}

	// The hub may already be gone if shutdown started during the upgrade
	select {
	case s.register <- client:
	case <-s.ctx.Done():
		conn.Close()
		return
	}

	// Start goroutines for reading and writing
	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		client.readPump()
	}()
	go func() {
		defer s.wg.Done()
		client.writePump()
	}()
}

// HandleGraphAPI serves the current graph as JSON
func (s *GraphServer) HandleGraphAPI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !s.apiLimiter.Allow() {
		s.logger.Warnw("Graph API rate limit exceeded",
			"remote_addr", r.RemoteAddr,
		)
		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
		return
	}

	g, err := s.lastBroadcastGraph()
	if err != nil {
		s.logger.Errorw("Failed to build graph for API request",
			"error", err,
		)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(g); err != nil {
		s.logger.Warnw("Failed to write graph API response",
			"error", err,
		)
	}
}

// HandleHealth reports server health and basic stats
func (s *GraphServer) HandleHealth(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":  stateString(s.getState()),
		"clients": s.clientCount(),
		"limit":   s.limit.Load(),
		"version": version.Get().Short(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(health); err != nil {
		s.logger.Warnw("Failed to write health response",
			"error", err,
		)
	}
}

// HandleIndex serves the embedded visualization page
func (s *GraphServer) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}
