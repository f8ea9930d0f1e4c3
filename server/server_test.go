package server

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/goleak"
	"golang.org/x/time/rate"

	"github.com/teranos/PVX/graph"
)

func TestBuildGraph(t *testing.T) {
	s := New(20, 0, nil)
	defer s.cancel()

	g, err := s.buildGraph(20)
	if err != nil {
		t.Fatalf("buildGraph(20) failed: %v", err)
	}

	// 8 primes up to 20 plus at least one composite node
	primeCount := 0
	for _, n := range g.Nodes {
		if n.Type == graph.NodeTypePrime {
			primeCount++
		}
	}
	if primeCount != 8 {
		t.Errorf("expected 8 prime nodes, got %d", primeCount)
	}
	if len(g.Nodes) <= primeCount {
		t.Error("expected composite nodes beyond the primes")
	}
	if g.Meta.Stats.TotalNodes != len(g.Nodes) {
		t.Errorf("stats node count %d != %d nodes", g.Meta.Stats.TotalNodes, len(g.Nodes))
	}
}

func TestBuildGraph_InvalidLimit(t *testing.T) {
	s := New(20, 0, nil)
	defer s.cancel()

	if _, err := s.buildGraph(1); err == nil {
		t.Error("buildGraph(1) should fail")
	}
}

func TestSetLimit_Bounds(t *testing.T) {
	s := New(20, 0, nil)
	defer s.cancel()

	// Hub must be running for Rebuild's broadcast send
	go s.Run()

	tests := []struct {
		limit   int64
		wantErr bool
	}{
		{30, false},
		{2, false},
		{1, true},
		{0, true},
		{-5, true},
		{MaxGraphLimit + 1, true},
	}

	for _, tt := range tests {
		err := s.SetLimit(tt.limit)
		if (err != nil) != tt.wantErr {
			t.Errorf("SetLimit(%d) error = %v, wantErr %v", tt.limit, err, tt.wantErr)
		}
	}

	if got := s.Limit(); got != 2 {
		t.Errorf("Limit() = %d, want last accepted limit 2", got)
	}
}

// readGraphMessage reads WebSocket messages until one parses as a graph
// document (the first message is the version handshake)
func readGraphMessage(t *testing.T, conn *websocket.Conn) *graph.Graph {
	t.Helper()

	for i := 0; i < 5; i++ {
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("failed to read message: %v", err)
		}

		var g graph.Graph
		if err := json.Unmarshal(data, &g); err == nil && len(g.Nodes) > 0 {
			return &g
		}
	}

	t.Fatal("no graph message received")
	return nil
}

func TestWebSocketEndToEnd(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	s := New(10, 0, nil)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.Run()
	}()

	if err := s.Rebuild(); err != nil {
		t.Fatalf("Rebuild() failed: %v", err)
	}

	ts := httptest.NewServer(s.setupRoutes())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("failed to dial WebSocket: %v", err)
	}

	// First message is the version handshake
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var hello map[string]interface{}
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatalf("failed to read version message: %v", err)
	}
	if hello["type"] != "version" {
		t.Errorf("expected version handshake, got %v", hello["type"])
	}

	// The cached graph for limit 10 follows (primes 2,3,5,7)
	g := readGraphMessage(t, conn)
	primeCount := 0
	for _, n := range g.Nodes {
		if n.Type == graph.NodeTypePrime {
			primeCount++
		}
	}
	if primeCount != 4 {
		t.Errorf("expected 4 prime nodes for limit 10, got %d", primeCount)
	}

	// Submitting a new limit rebuilds and broadcasts
	if err := conn.WriteJSON(ClientMessage{Type: "limit", Limit: 20}); err != nil {
		t.Fatalf("failed to send limit message: %v", err)
	}

	g = readGraphMessage(t, conn)
	primeCount = 0
	for _, n := range g.Nodes {
		if n.Type == graph.NodeTypePrime {
			primeCount++
		}
	}
	if primeCount != 8 {
		t.Errorf("expected 8 prime nodes after limit change, got %d", primeCount)
	}

	conn.Close()

	if err := s.Stop(); err != nil {
		t.Errorf("Stop() failed: %v", err)
	}
}

// A client evicted by the hub can still be processing an inbound message
// on its read side. Replies after eviction must be dropped, not panic.
func TestClientReplyAfterClose(t *testing.T) {
	s := New(20, 0, nil)
	defer s.cancel()

	c := &Client{
		server: s,
		send:   make(chan *graph.Graph, 1),
		id:     "test-client",
	}

	c.close()
	c.close() // idempotent

	c.handleClear()       // would send an empty graph
	c.handleSetLimit(1)   // rejected limit would send an error graph
	c.handleSetLimit(-42) // likewise

	if c.trySend(&graph.Graph{}) {
		t.Error("trySend should report false after close")
	}
}

func TestTrySend_QueueFull(t *testing.T) {
	s := New(20, 0, nil)
	defer s.cancel()

	c := &Client{
		server: s,
		send:   make(chan *graph.Graph, 1),
		id:     "test-client",
	}

	if !c.trySend(&graph.Graph{}) {
		t.Fatal("first send should fit the queue")
	}
	if c.trySend(&graph.Graph{}) {
		t.Error("second send should be dropped, not block")
	}
}

func TestSetLimit_RejectsOversizedLimit(t *testing.T) {
	s := New(20, 0, nil)
	defer s.cancel()

	// A single client message must not be able to trigger an unbounded
	// composite generation pass
	if err := s.SetLimit(10000); err == nil {
		t.Error("SetLimit(10000) should be rejected")
	}
	if got := s.Limit(); got != 20 {
		t.Errorf("rejected limit must not stick, Limit() = %d", got)
	}
}

// Stop while a client is still connected: the read pump's unregister must
// not block after the hub has exited.
func TestStopWithConnectedClient(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	s := New(10, 0, nil)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.Run()
	}()

	ts := httptest.NewServer(s.setupRoutes())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("failed to dial WebSocket: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var hello map[string]interface{}
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatalf("failed to read version message: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- s.Stop() }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Stop() failed: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Stop() did not finish with a connected client")
	}
}

// When the requested port is busy, onReady must report the port actually
// bound, not the requested one.
func TestStartReportsActualPort(t *testing.T) {
	busy, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("failed to occupy a port: %v", err)
	}
	defer busy.Close()
	busyPort := busy.Addr().(*net.TCPAddr).Port

	s := New(10, 0, nil)

	ready := make(chan string, 1)
	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Start(busyPort, func(url string) { ready <- url })
	}()

	var url string
	select {
	case url = <-ready:
	case err := <-errChan:
		t.Fatalf("Start() failed before ready: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("onReady was never called")
	}

	if strings.Contains(url, fmt.Sprintf(":%d", busyPort)) {
		t.Errorf("reported URL %q uses the busy port", url)
	}

	resp, err := http.Get(url + "/health")
	if err != nil {
		t.Fatalf("health check on reported URL failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d, want 200", resp.StatusCode)
	}

	if err := s.Stop(); err != nil {
		t.Errorf("Stop() failed: %v", err)
	}
	if err := <-errChan; err != nil {
		t.Errorf("Start() returned error after shutdown: %v", err)
	}
}

func TestHandleHealth(t *testing.T) {
	s := New(20, 0, nil)
	defer s.cancel()

	ts := httptest.NewServer(s.setupRoutes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d, want 200", resp.StatusCode)
	}

	var health map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}
	if health["status"] != "running" {
		t.Errorf("health status = %v, want running", health["status"])
	}
	if health["limit"] != float64(20) {
		t.Errorf("health limit = %v, want 20", health["limit"])
	}
}

func TestHandleGraphAPI(t *testing.T) {
	s := New(20, 0, nil)
	defer s.cancel()

	ts := httptest.NewServer(s.setupRoutes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/graph")
	if err != nil {
		t.Fatalf("graph API request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("graph API status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var g graph.Graph
	if err := json.NewDecoder(resp.Body).Decode(&g); err != nil {
		t.Fatalf("failed to decode graph: %v", err)
	}
	if len(g.Nodes) == 0 {
		t.Error("graph API returned no nodes")
	}
}

func TestHandleGraphAPI_RateLimit(t *testing.T) {
	s := New(20, 0, nil)
	defer s.cancel()

	// Tight limiter so the second request trips it
	s.apiLimiter = rate.NewLimiter(rate.Limit(0.001), 1)

	ts := httptest.NewServer(s.setupRoutes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/graph")
	if err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/api/graph")
	if err != nil {
		t.Fatalf("second request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", resp.StatusCode)
	}
}

func TestHandleIndex(t *testing.T) {
	s := New(20, 0, nil)
	defer s.cancel()

	ts := httptest.NewServer(s.setupRoutes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("index request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("index status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
}
