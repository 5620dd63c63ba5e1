// Package http exposes the chat API: POST /api/chat grounded in the
// financial brief, plus a health probe. Everything here is thin plumbing
// around the briefing builder and the reasoning client.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"digicfo/internal/amqp"
	"digicfo/internal/briefing"
)

// Responder is the reasoning service: one system document and one user
// message in, one text answer out.
type Responder interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type Server struct {
	http.Server

	builder   *briefing.Builder
	responder Responder
	publisher *amqp.Client // nil when auditing is disabled

	historyWindow int
	rateLimiter   *rateLimiter
}

// Simple per-IP rate limiter. Every chat request turns into a metered LLM
// call, so requests are capped per client and minute.
type rateLimiter struct {
	mu           sync.Mutex
	clients      map[string]*clientInfo
	limit        int
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

type clientInfo struct {
	lastRequest time.Time
	requests    int
}

func newRateLimiter(perMinute int) *rateLimiter {
	rl := &rateLimiter{
		clients:     make(map[string]*clientInfo),
		limit:       perMinute,
		stopCleanup: make(chan struct{}),
	}
	go rl.startCleanup()
	return rl
}

func (rl *rateLimiter) startCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupStaleEntries()
		case <-rl.stopCleanup:
			return
		}
	}
}

func (rl *rateLimiter) cleanupStaleEntries() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, client := range rl.clients {
		if client.lastRequest.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.shutdownOnce.Do(func() {
		close(rl.stopCleanup)
	})
}

func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	client, exists := rl.clients[clientIP]
	if !exists {
		rl.clients[clientIP] = &clientInfo{lastRequest: now, requests: 1}
		return true
	}

	if now.Sub(client.lastRequest) > time.Minute {
		client.requests = 1
		client.lastRequest = now
		return true
	}

	client.requests++
	client.lastRequest = now
	return client.requests <= rl.limit
}

// NewServer configures routes and returns a ready-to-run http.Server.
// responder may be nil when no credential is configured; chat requests then
// answer 503. publisher may be nil to disable audit events.
func NewServer(addr string, builder *briefing.Builder, responder Responder, publisher *amqp.Client, historyWindow int) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		builder:       builder,
		responder:     responder,
		publisher:     publisher,
		historyWindow: historyWindow,
		rateLimiter:   newRateLimiter(30),
	}

	mux.HandleFunc("/api/health", s.withMiddleware(s.handleHealth))
	mux.HandleFunc("/api/chat", s.withMiddleware(s.handleChat))

	return s
}

// withMiddleware applies security headers and the allow-all CORS policy the
// dashboard frontend relies on. Preflight requests stop here.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")

		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}

// Shutdown stops the HTTP server and the rate limiter's cleanup goroutine.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.rateLimiter != nil {
		s.rateLimiter.stop()
	}
	return s.Server.Shutdown(ctx)
}
