/*
Copyright 2026.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package webconsole

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

const (
	maxRequestBody = 64 << 10
	maxQueryLength = 2000
)

type queryRequest struct {
	SessionID string `json:"sessionId"`
	Query     string `json:"query"`
}

type queryResponse struct {
	SessionID string    `json:"sessionId"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleQuery answers one question and records the exchange in the
// session's display history.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.limiter.Allow() {
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded, please slow down")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		writeError(w, http.StatusBadRequest, "query must not be empty")
		return
	}
	if len(query) > maxQueryLength {
		writeError(w, http.StatusBadRequest, "query too long")
		return
	}

	session, err := s.getOrCreateSession(req.SessionID)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	answer := s.answerer.Answer(r.Context(), query)
	now := time.Now()

	session.mu.Lock()
	session.LastAccessedAt = now
	session.History = append(session.History, Exchange{
		Query:     query,
		Response:  answer,
		Timestamp: now,
	})
	if len(session.History) > maxHistoryPerSession {
		session.History = session.History[len(session.History)-maxHistoryPerSession:]
	}
	session.mu.Unlock()

	log.V(1).Info("Answered query", "session", session.ID, "queryLength", len(query))

	writeJSON(w, http.StatusOK, queryResponse{
		SessionID: session.ID,
		Response:  answer,
		Timestamp: now,
	})
}

// handleHealth reports liveness, the active provider, and session count.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"provider": s.providerName,
		"sessions": s.sessionCount(),
	})
}

// handleExamples returns sample questions for the UI's suggestion chips.
func (s *Server) handleExamples(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{
		"examples": {
			"What namespaces are in the cluster?",
			"Show me all pods",
			"List pods in the kube-system namespace",
			"What nodes does the cluster have?",
			"Show me the services in the default namespace",
			"Give me a cluster overview",
		},
	})
}

// handleIndex serves the embedded chat page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexPage))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error(err, "Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
