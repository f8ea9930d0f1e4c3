package server

import "time"

const (
	// MaxClients is the maximum number of concurrent WebSocket clients
	MaxClients = 100
	// MaxClientMessageQueueSize is the size of per-client message queues
	MaxClientMessageQueueSize = 256
	// ShutdownTimeout is how long to wait for graceful shutdown
	ShutdownTimeout = 10 * time.Second
	// MaxGraphLimit bounds client-requested sieve limits. Composite
	// generation is quadratic in the prime count and the power values grow
	// to hundreds of digits near this cap already; anything larger lets a
	// single unauthenticated message exhaust host memory.
	MaxGraphLimit = 300
)

// ServerState represents the server lifecycle state
type ServerState int

const (
	ServerStateRunning  ServerState = iota // Normal operation
	ServerStateDraining                    // Graceful shutdown in progress
	ServerStateStopped                     // Shutdown complete
)

// stateString returns human-readable state name
func stateString(state ServerState) string {
	switch state {
	case ServerStateRunning:
		return "running"
	case ServerStateDraining:
		return "draining"
	case ServerStateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// ClientMessage represents a message from a connected client
type ClientMessage struct {
	Type  string `json:"type"`  // "limit", "clear", "ping"
	Limit int64  `json:"limit"` // New sieve limit for "limit" messages
}
