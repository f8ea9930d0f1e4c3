// Package server provides a live-updating WebSocket visualization of the
// prime/composite graph. Clients connect over /ws, receive the current
// graph, and can submit a new sieve limit to rebuild it for everyone.
package server

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	appcfg "github.com/teranos/PVX/config"
	"github.com/teranos/PVX/composite"
	"github.com/teranos/PVX/errors"
	"github.com/teranos/PVX/graph"
	"github.com/teranos/PVX/prime"
	"github.com/teranos/PVX/vowel"
)

// GraphServer serves the prime/composite graph to connected clients
type GraphServer struct {
	builder       *graph.Builder
	configWatcher *appcfg.ConfigWatcher // nil when no config file is being watched

	clients    map[*Client]bool
	broadcast  chan *graph.Graph
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	lastGraph  *graph.Graph // Cache last broadcast graph for reconnecting clients

	limit     atomic.Int64 // Current sieve limit, updated by clients and config reloads
	verbosity atomic.Int32

	apiLimiter *rate.Limiter // Rate limit for the /api/graph endpoint

	httpServer *http.Server

	// Lifecycle management
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	state  atomic.Int32

	logger *zap.SugaredLogger
}

// New creates a graph server with the given initial sieve limit
func New(limit int64, verbosity int, logger *zap.SugaredLogger) *GraphServer {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	logger = logger.Named("server")

	ctx, cancel := context.WithCancel(context.Background())

	s := &GraphServer{
		builder:    graph.NewBuilder(verbosity, logger),
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *graph.Graph, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		apiLimiter: rate.NewLimiter(rate.Limit(10), 20), // 10 req/s, burst 20
		ctx:        ctx,
		cancel:     cancel,
		logger:     logger,
	}
	s.limit.Store(limit)
	s.verbosity.Store(int32(verbosity))

	return s
}

// Limit returns the current sieve limit
func (s *GraphServer) Limit() int64 {
	return s.limit.Load()
}

// buildGraph runs the full pipeline for the given limit
func (s *GraphServer) buildGraph(limit int64) (*graph.Graph, error) {
	primes, err := prime.Sieve(limit)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot build graph for limit %d", limit)
	}

	assignment := vowel.Assign(primes)
	composites := composite.Generate(assignment)

	return s.builder.Build(assignment, composites, limit), nil
}

// Rebuild rebuilds the graph at the current limit and broadcasts it
func (s *GraphServer) Rebuild() error {
	limit := s.limit.Load()

	g, err := s.buildGraph(limit)
	if err != nil {
		return err
	}

	s.logger.Infow("Graph rebuilt",
		"limit", limit,
		"nodes", len(g.Nodes),
		"links", len(g.Links),
	)

	select {
	case s.broadcast <- g:
	case <-s.ctx.Done():
	}
	return nil
}

// SetLimit validates and applies a new sieve limit, then rebuilds
func (s *GraphServer) SetLimit(limit int64) error {
	if limit < prime.MinLimit || limit > MaxGraphLimit {
		return errors.Newf("limit must be in [%d, %d], got %d", prime.MinLimit, MaxGraphLimit, limit)
	}

	old := s.limit.Swap(limit)
	if old != limit {
		s.logger.Infow("Sieve limit changed",
			"old_limit", old,
			"new_limit", limit,
		)
	}

	return s.Rebuild()
}

// handleClientRegister handles a new client connection
func (s *GraphServer) handleClientRegister(client *Client) {
	s.mu.Lock()

	if len(s.clients) >= MaxClients {
		s.mu.Unlock()
		s.logger.Warnw("Max clients reached, rejecting connection",
			"client_id", client.id,
			"max_clients", MaxClients,
		)
		client.close()
		return
	}

	s.clients[client] = true
	totalClients := len(s.clients)
	cachedGraph := s.lastGraph
	s.mu.Unlock()

	s.logger.Infow("Client connected",
		"client_id", client.id,
		"total_clients", totalClients,
	)

	// Send cached graph to newly connected client
	if cachedGraph != nil {
		if client.trySend(cachedGraph) {
			s.logger.Debugw("Sent cached graph to new client",
				"client_id", client.id,
				"nodes", len(cachedGraph.Nodes),
				"links", len(cachedGraph.Links),
			)
		} else {
			s.logger.Warnw("Client send channel full, skipping cached graph",
				"client_id", client.id,
			)
		}
	}
}

// handleClientUnregister handles a client disconnection
func (s *GraphServer) handleClientUnregister(client *Client) {
	s.mu.Lock()
	if _, ok := s.clients[client]; ok {
		delete(s.clients, client)
		totalClients := len(s.clients)
		s.mu.Unlock()

		client.close()

		s.logger.Infow("Client disconnected",
			"client_id", client.id,
			"total_clients", totalClients,
		)
	} else {
		s.mu.Unlock()
	}
}

// handleBroadcast sends a graph update to all connected clients
func (s *GraphServer) handleBroadcast(g *graph.Graph) {
	s.mu.Lock()
	s.lastGraph = g
	recipients := make([]*Client, 0, len(s.clients))
	for client := range s.clients {
		recipients = append(recipients, client)
	}
	s.mu.Unlock()

	for _, client := range recipients {
		if !client.trySend(g) {
			// Slow client: drop it rather than block the hub
			s.removeSlowClient(client)
		}
	}
}

// removeSlowClient removes a client that can't keep up with broadcasts
func (s *GraphServer) removeSlowClient(client *Client) {
	s.mu.Lock()
	if _, ok := s.clients[client]; ok {
		delete(s.clients, client)
		s.mu.Unlock()
	} else {
		s.mu.Unlock()
		return // Already removed
	}

	client.close()

	s.logger.Warnw("Client send channel full, removing client",
		"client_id", client.id,
	)
}

// Run starts the server hub event loop
func (s *GraphServer) Run() {
	for {
		select {
		case <-s.ctx.Done():
			s.logger.Debugw("Server hub stopping due to context cancellation")
			return
		case client := <-s.register:
			s.handleClientRegister(client)
		case client := <-s.unregister:
			s.handleClientUnregister(client)
		case g := <-s.broadcast:
			s.handleBroadcast(g)
		}
	}
}

// getState returns the current server state
func (s *GraphServer) getState() ServerState {
	return ServerState(s.state.Load())
}

// setState atomically updates the server state
func (s *GraphServer) setState(newState ServerState) {
	s.state.Store(int32(newState))
	s.logger.Infow("Server state changed", "new_state", stateString(newState))
}

// clientCount returns the number of connected clients
func (s *GraphServer) clientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// lastBroadcastGraph returns the most recently broadcast graph, building
// one on demand when nothing has been broadcast yet
func (s *GraphServer) lastBroadcastGraph() (*graph.Graph, error) {
	s.mu.RLock()
	g := s.lastGraph
	s.mu.RUnlock()

	if g != nil {
		return g, nil
	}
	return s.buildGraph(s.limit.Load())
}

// WatchConfig starts a config watcher on the given file. Reloads update
// the sieve limit from gen.limit and rebroadcast the graph.
func (s *GraphServer) WatchConfig(configPath string) error {
	watcher, err := appcfg.NewConfigWatcher(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to create config watcher")
	}

	watcher.OnReload(func(cfg *appcfg.Config) error {
		newLimit := cfg.GetGenLimit()
		if newLimit == s.limit.Load() {
			return nil
		}

		s.logger.Infow("Config reload changed sieve limit",
			"new_limit", newLimit,
		)
		return s.SetLimit(newLimit)
	})

	watcher.Start()
	appcfg.SetGlobalWatcher(watcher)
	s.configWatcher = watcher

	s.logger.Infow("Watching config for changes",
		"file", configPath,
	)
	return nil
}
