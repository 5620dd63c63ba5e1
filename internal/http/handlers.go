package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"digicfo/internal/amqp"
	"digicfo/internal/briefing"
)

type chatRequest struct {
	Message string          `json:"message"`
	History []briefing.Turn `json:"history"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleHealth is the static liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "DigiCFO Chat API",
	})
}

// handleChat answers one financial question: build the brief, fold the
// conversation, call the reasoning service. A degraded brief still gets
// sent; only a missing credential or a reasoning-service fault fails the
// request.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	if !s.rateLimiter.allow(clientIP(r)) {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "too many requests"})
		return
	}

	var req chatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "message is required"})
		return
	}

	// No reasoning credential means no meaningful answer is possible.
	if s.responder == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "reasoning service not configured"})
		return
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(r.Context(), 90*time.Second)
	defer cancel()

	result := s.builder.Build(ctx)
	if result.Degraded {
		slog.WarnContext(ctx, "Answering with degraded financial context", "reason", result.Reason)
	}

	prompt := briefing.AssembleConversation(req.Message, req.History, s.historyWindow)

	answer, err := s.responder.Complete(ctx, result.Document, prompt)
	if err != nil {
		slog.ErrorContext(ctx, "Chat completion failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	s.publishEvent(ctx, time.Since(start), len(req.Message), len(req.History), result.Degraded)

	slog.InfoContext(ctx, "Chat answered",
		"duration_ms", time.Since(start).Milliseconds(),
		"degraded", result.Degraded,
		"history_turns", len(req.History))
	writeJSON(w, http.StatusOK, chatResponse{Response: answer})
}

func (s *Server) publishEvent(ctx context.Context, duration time.Duration, messageChars, historyTurns int, degraded bool) {
	if s.publisher == nil {
		return
	}
	msg := amqp.NewChatEventMessage(duration, messageChars, historyTurns, degraded)
	if err := s.publisher.PublishChatEvent(ctx, msg); err != nil {
		slog.WarnContext(ctx, "Failed to publish chat audit event", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}
