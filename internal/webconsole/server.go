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

// Package webconsole serves the browser chat surface: a JSON query API,
// per-session display history, health and metrics endpoints, and an
// embedded single-page UI.
package webconsole

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
)

var log = logf.Log.WithName("webconsole")

// maxHistoryPerSession caps the exchanges kept per session for display.
const maxHistoryPerSession = 10

// Answerer is the query-answering capability the console fronts.
type Answerer interface {
	Answer(ctx context.Context, userInput string) string
}

// Config tunes the console server. Zero values pick the defaults.
type Config struct {
	MaxSessions int
	SessionTTL  time.Duration
	RateLimit   float64 // requests per second across all clients
	RateBurst   int
}

// Exchange is one query/response pair kept for session display history.
type Exchange struct {
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// Session holds display history for one browser session. The dispatch
// loop itself is stateless per query; this history is never fed back to
// the model.
type Session struct {
	ID             string
	CreatedAt      time.Time
	LastAccessedAt time.Time
	History        []Exchange
	mu             sync.Mutex
}

// Server is the web console HTTP server state.
type Server struct {
	answerer     Answerer
	providerName string
	limiter      *rate.Limiter

	sessionMu   sync.RWMutex
	sessions    map[string]*Session
	maxSessions int
	sessionTTL  time.Duration
}

// NewServer creates a console server fronting the given answerer.
func NewServer(answerer Answerer, providerName string, cfg Config) *Server {
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = 100
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * time.Minute
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 5
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = 10
	}
	return &Server{
		answerer:     answerer,
		providerName: providerName,
		limiter:      rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		sessions:     make(map[string]*Session),
		maxSessions:  cfg.MaxSessions,
		sessionTTL:   cfg.SessionTTL,
	}
}

// Routes returns the console's HTTP handler.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/query", s.handleQuery)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/examples", s.handleExamples)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// CleanupSessions periodically evicts sessions idle past the TTL. Run it
// in its own goroutine; it returns when ctx is cancelled.
func (s *Server) CleanupSessions(ctx context.Context) {
	ticker := time.NewTicker(60 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if evicted := s.evictIdleSessions(time.Now()); evicted > 0 {
				log.Info("Evicted idle sessions", "count", evicted)
			}
		}
	}
}

// evictIdleSessions removes sessions idle past the TTL and returns how
// many were dropped. Two-pass to keep the write lock short.
func (s *Server) evictIdleSessions(now time.Time) int {
	var expired []string
	s.sessionMu.RLock()
	for id, session := range s.sessions {
		session.mu.Lock()
		if now.Sub(session.LastAccessedAt) > s.sessionTTL {
			expired = append(expired, id)
		}
		session.mu.Unlock()
	}
	s.sessionMu.RUnlock()

	if len(expired) == 0 {
		return 0
	}
	s.sessionMu.Lock()
	for _, id := range expired {
		delete(s.sessions, id)
	}
	s.sessionMu.Unlock()
	return len(expired)
}

// getOrCreateSession returns an existing session or creates a new one.
func (s *Server) getOrCreateSession(sessionID string) (*Session, error) {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	if sessionID != "" {
		if session, ok := s.sessions[sessionID]; ok {
			return session, nil
		}
	}

	if len(s.sessions) >= s.maxSessions {
		return nil, fmt.Errorf("maximum concurrent sessions reached")
	}

	session := &Session{
		ID:             uuid.New().String(),
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}
	s.sessions[session.ID] = session
	return session, nil
}

func (s *Server) sessionCount() int {
	s.sessionMu.RLock()
	defer s.sessionMu.RUnlock()
	return len(s.sessions)
}
