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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// stubAnswerer echoes the question with a fixed prefix and counts calls.
type stubAnswerer struct {
	calls atomic.Int64
}

func (s *stubAnswerer) Answer(_ context.Context, userInput string) string {
	s.calls.Add(1)
	return "answer: " + userInput
}

func newTestServer(t *testing.T, cfg Config) (*Server, *httptest.Server, *stubAnswerer) {
	t.Helper()
	answerer := &stubAnswerer{}
	s := NewServer(answerer, "noop", cfg)
	ts := httptest.NewServer(s.Routes())
	t.Cleanup(ts.Close)
	return s, ts, answerer
}

func postQuery(t *testing.T, url, sessionID, query string) (*http.Response, queryResponse) {
	t.Helper()
	body, _ := json.Marshal(queryRequest{SessionID: sessionID, Query: query})
	resp, err := http.Post(url+"/api/query", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/query: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	var out queryResponse
	if resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp, out
}

func TestHandleQuery(t *testing.T) {
	_, ts, answerer := newTestServer(t, Config{})

	resp, out := postQuery(t, ts.URL, "", "what pods are running?")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if out.Response != "answer: what pods are running?" {
		t.Errorf("response = %q", out.Response)
	}
	if out.SessionID == "" {
		t.Error("no session id issued")
	}
	if answerer.calls.Load() != 1 {
		t.Errorf("answerer called %d times", answerer.calls.Load())
	}

	// A follow-up with the issued session id sticks to that session.
	resp2, out2 := postQuery(t, ts.URL, out.SessionID, "and nodes?")
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp2.StatusCode)
	}
	if out2.SessionID != out.SessionID {
		t.Errorf("session id changed: %q -> %q", out.SessionID, out2.SessionID)
	}
}

func TestHandleQueryRejectsBadInput(t *testing.T) {
	_, ts, answerer := newTestServer(t, Config{})

	tests := []struct {
		name  string
		query string
	}{
		{name: "empty", query: ""},
		{name: "whitespace only", query: "   \n\t "},
		{name: "too long", query: strings.Repeat("x", maxQueryLength+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := postQuery(t, ts.URL, "", tt.query)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
	if answerer.calls.Load() != 0 {
		t.Errorf("answerer called %d times for rejected input", answerer.calls.Load())
	}

	resp, err := http.Post(ts.URL+"/api/query", "application/json", strings.NewReader("{not json"))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, want 400", resp.StatusCode)
	}
}

func TestHandleQueryMethodNotAllowed(t *testing.T) {
	_, ts, _ := newTestServer(t, Config{})
	resp, err := http.Get(ts.URL + "/api/query")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestHandleQueryRateLimit(t *testing.T) {
	_, ts, _ := newTestServer(t, Config{RateLimit: 1, RateBurst: 2})

	var saw429 bool
	for i := 0; i < 5; i++ {
		resp, _ := postQuery(t, ts.URL, "", fmt.Sprintf("question %d", i))
		if resp.StatusCode == http.StatusTooManyRequests {
			saw429 = true
		}
	}
	if !saw429 {
		t.Error("rate limiter never fired")
	}
}

func TestSessionHistoryCapped(t *testing.T) {
	s, ts, _ := newTestServer(t, Config{})

	_, first := postQuery(t, ts.URL, "", "question 0")
	for i := 1; i < maxHistoryPerSession+5; i++ {
		postQuery(t, ts.URL, first.SessionID, fmt.Sprintf("question %d", i))
	}

	s.sessionMu.RLock()
	session := s.sessions[first.SessionID]
	s.sessionMu.RUnlock()
	if session == nil {
		t.Fatal("session not found")
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	if len(session.History) != maxHistoryPerSession {
		t.Fatalf("history length = %d, want %d", len(session.History), maxHistoryPerSession)
	}
	// Oldest entries were dropped.
	if session.History[0].Query != "question 5" {
		t.Errorf("oldest kept = %q, want question 5", session.History[0].Query)
	}
	last := session.History[len(session.History)-1]
	if last.Query != fmt.Sprintf("question %d", maxHistoryPerSession+4) {
		t.Errorf("newest kept = %q", last.Query)
	}
}

func TestMaxSessionsEnforced(t *testing.T) {
	_, ts, _ := newTestServer(t, Config{MaxSessions: 2})

	for i := 0; i < 2; i++ {
		resp, _ := postQuery(t, ts.URL, "", "hello")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("session %d status = %d", i, resp.StatusCode)
		}
	}
	resp, _ := postQuery(t, ts.URL, "", "one too many")
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}
}

func TestHandleHealth(t *testing.T) {
	_, ts, _ := newTestServer(t, Config{})
	postQuery(t, ts.URL, "", "warm up a session")

	resp, err := http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var health struct {
		Status   string `json:"status"`
		Provider string `json:"provider"`
		Sessions int    `json:"sessions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if health.Status != "ok" || health.Provider != "noop" || health.Sessions != 1 {
		t.Errorf("health = %+v", health)
	}
}

func TestHandleExamples(t *testing.T) {
	_, ts, _ := newTestServer(t, Config{})
	resp, err := http.Get(ts.URL + "/api/examples")
	if err != nil {
		t.Fatalf("GET /api/examples: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	var out struct {
		Examples []string `json:"examples"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Examples) == 0 {
		t.Error("no examples returned")
	}
}

func TestHandleIndex(t *testing.T) {
	_, ts, _ := newTestServer(t, Config{})

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}

	missing, err := http.Get(ts.URL + "/nope")
	if err != nil {
		t.Fatalf("GET /nope: %v", err)
	}
	defer func() { _ = missing.Body.Close() }()
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("unknown path status = %d, want 404", missing.StatusCode)
	}
}

func TestCleanupSessionsEvictsIdle(t *testing.T) {
	answerer := &stubAnswerer{}
	s := NewServer(answerer, "noop", Config{SessionTTL: time.Minute})

	session, err := s.getOrCreateSession("")
	if err != nil {
		t.Fatalf("getOrCreateSession() error = %v", err)
	}
	session.mu.Lock()
	session.LastAccessedAt = time.Now().Add(-2 * time.Minute)
	session.mu.Unlock()

	fresh, err := s.getOrCreateSession("")
	if err != nil {
		t.Fatalf("getOrCreateSession() error = %v", err)
	}

	if evicted := s.evictIdleSessions(time.Now()); evicted != 1 {
		t.Errorf("evicted %d sessions, want 1", evicted)
	}
	if s.sessionCount() != 1 {
		t.Errorf("session count = %d after sweep, want 1", s.sessionCount())
	}
	s.sessionMu.RLock()
	_, idleKept := s.sessions[session.ID]
	_, freshKept := s.sessions[fresh.ID]
	s.sessionMu.RUnlock()
	if idleKept {
		t.Error("idle session survived the sweep")
	}
	if !freshKept {
		t.Error("fresh session was evicted")
	}
}
