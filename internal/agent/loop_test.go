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

package agent

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/osagberg/kube-query-assist/internal/cluster"
	"github.com/osagberg/kube-query-assist/internal/tools"
)

// scriptedProvider returns canned replies in order and records every
// transcript it was sent.
type scriptedProvider struct {
	mu          sync.Mutex
	replies     []string
	err         error
	calls       int
	transcripts [][]Message
}

func (p *scriptedProvider) Name() string    { return "scripted" }
func (p *scriptedProvider) Available() bool { return true }

func (p *scriptedProvider) Send(_ context.Context, transcript []Message) (Message, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	snapshot := make([]Message, len(transcript))
	copy(snapshot, transcript)
	p.transcripts = append(p.transcripts, snapshot)
	if p.err != nil {
		return Message{}, p.err
	}
	if p.calls >= len(p.replies) {
		return Message{}, fmt.Errorf("no scripted reply for call %d", p.calls+1)
	}
	reply := p.replies[p.calls]
	p.calls++
	return Message{Role: RoleAssistant, Content: reply}, nil
}

func (p *scriptedProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// countingRegistry builds a registry with a single list_pods tool whose
// executions are counted.
func countingRegistry(t *testing.T, executions *atomic.Int64) *tools.Registry {
	t.Helper()
	r := tools.NewRegistry()
	err := r.Register(tools.Descriptor{
		Name:        "list_pods",
		Description: "List pods.",
		Parameters: map[string]tools.Param{
			"namespace": {Type: "string", Description: "Optional namespace filter."},
		},
		Run: func(_ context.Context, params map[string]string) (string, error) {
			executions.Add(1)
			if ns := params["namespace"]; ns != "" {
				return "pods in " + ns, nil
			}
			return "all pods", nil
		},
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	return r
}

func TestAnswerPlainReplyIsFinal(t *testing.T) {
	var executions atomic.Int64
	provider := &scriptedProvider{replies: []string{"Your cluster looks healthy."}}
	loop := NewLoop(provider, countingRegistry(t, &executions))

	got := loop.Answer(context.Background(), "how is the cluster?")
	if got != "Your cluster looks healthy." {
		t.Errorf("Answer() = %q", got)
	}
	if executions.Load() != 0 {
		t.Errorf("tool executed %d times, want 0", executions.Load())
	}
	if provider.callCount() != 1 {
		t.Errorf("model called %d times, want 1", provider.callCount())
	}
}

func TestAnswerToolRoundTrip(t *testing.T) {
	var executions atomic.Int64
	provider := &scriptedProvider{replies: []string{
		`{"tool": "list_pods", "parameters": {"namespace": "kube-system"}}`,
		"There are two pods in kube-system.",
	}}
	loop := NewLoop(provider, countingRegistry(t, &executions))

	got := loop.Answer(context.Background(), "what pods are in kube-system?")
	if got != "There are two pods in kube-system." {
		t.Errorf("Answer() = %q", got)
	}
	if executions.Load() != 1 {
		t.Errorf("tool executed %d times, want 1", executions.Load())
	}

	// Second model call must see the observation appended to the
	// transcript.
	if len(provider.transcripts) != 2 {
		t.Fatalf("model called %d times, want 2", len(provider.transcripts))
	}
	second := provider.transcripts[1]
	last := second[len(second)-1]
	if last.Role != RoleObservation {
		t.Errorf("last transcript role = %q, want %q", last.Role, RoleObservation)
	}
	if last.Content != "Tool list_pods result: pods in kube-system" {
		t.Errorf("observation = %q", last.Content)
	}
}

func TestAnswerIterationBound(t *testing.T) {
	var executions atomic.Int64
	// The model never produces a final answer.
	replies := make([]string, defaultMaxIterations)
	for i := range replies {
		replies[i] = `{"tool": "list_pods"}`
	}
	provider := &scriptedProvider{replies: replies}
	loop := NewLoop(provider, countingRegistry(t, &executions))

	got := loop.Answer(context.Background(), "loop forever")
	if got != fallbackAnswer {
		t.Errorf("Answer() = %q, want fallback", got)
	}
	if provider.callCount() != defaultMaxIterations {
		t.Errorf("model called %d times, want exactly %d", provider.callCount(), defaultMaxIterations)
	}
}

func TestAnswerCustomIterationBound(t *testing.T) {
	var executions atomic.Int64
	provider := &scriptedProvider{replies: []string{`{"tool": "list_pods"}`, `{"tool": "list_pods"}`}}
	loop := NewLoop(provider, countingRegistry(t, &executions))
	loop.SetMaxIterations(2)

	got := loop.Answer(context.Background(), "loop forever")
	if got != fallbackAnswer {
		t.Errorf("Answer() = %q, want fallback", got)
	}
	if provider.callCount() != 2 {
		t.Errorf("model called %d times, want 2", provider.callCount())
	}
}

func TestAnswerUnknownToolSelfCorrection(t *testing.T) {
	var executions atomic.Int64
	provider := &scriptedProvider{replies: []string{
		`{"tool": "list_foo"}`,
		"I don't have a tool for that.",
	}}
	loop := NewLoop(provider, countingRegistry(t, &executions))

	got := loop.Answer(context.Background(), "list the foos")
	if got != "I don't have a tool for that." {
		t.Errorf("Answer() = %q", got)
	}
	second := provider.transcripts[1]
	last := second[len(second)-1]
	if last.Content != "Unknown tool: list_foo" {
		t.Errorf("observation = %q, want unknown-tool notice", last.Content)
	}
}

func TestAnswerValidationFailureBecomesObservation(t *testing.T) {
	var executions atomic.Int64
	provider := &scriptedProvider{replies: []string{
		`{"tool": "list_pods", "parameters": {"label": "app=web"}}`,
		"Sorry, I used a parameter that doesn't exist.",
	}}
	loop := NewLoop(provider, countingRegistry(t, &executions))

	_ = loop.Answer(context.Background(), "pods with label app=web")
	if executions.Load() != 0 {
		t.Errorf("tool executed %d times, want 0 (validation rejects before run)", executions.Load())
	}
	second := provider.transcripts[1]
	last := second[len(second)-1]
	want := `Error executing list_pods: unknown parameter "label"`
	if last.Content != want {
		t.Errorf("observation = %q, want %q", last.Content, want)
	}
}

func TestAnswerModelError(t *testing.T) {
	var executions atomic.Int64
	provider := &scriptedProvider{err: fmt.Errorf("connection refused")}
	loop := NewLoop(provider, countingRegistry(t, &executions))

	got := loop.Answer(context.Background(), "anything")
	want := "I encountered an error while processing your request: connection refused"
	if got != want {
		t.Errorf("Answer() = %q, want %q", got, want)
	}
}

func TestAnswerEmptyModelReply(t *testing.T) {
	var executions atomic.Int64
	provider := &scriptedProvider{replies: []string{""}}
	loop := NewLoop(provider, countingRegistry(t, &executions))

	got := loop.Answer(context.Background(), "anything")
	if got != "I couldn't process your request." {
		t.Errorf("Answer() = %q", got)
	}
}

func TestAnswerEmptyInputStillAnswers(t *testing.T) {
	var executions atomic.Int64
	provider := &scriptedProvider{replies: []string{"Ask me about pods, nodes, or namespaces."}}
	loop := NewLoop(provider, countingRegistry(t, &executions))

	got := loop.Answer(context.Background(), "")
	if got == "" {
		t.Error("Answer() returned an empty string")
	}
}

// echoProvider answers every question immediately with a marker derived
// from the question, to detect state bleeding between concurrent queries.
type echoProvider struct{}

func (echoProvider) Name() string    { return "echo" }
func (echoProvider) Available() bool { return true }

func (echoProvider) Send(_ context.Context, transcript []Message) (Message, error) {
	for i := len(transcript) - 1; i >= 0; i-- {
		if transcript[i].Role == RoleUser {
			return Message{Role: RoleAssistant, Content: "answer to: " + transcript[i].Content}, nil
		}
	}
	return Message{}, fmt.Errorf("no user message")
}

func TestAnswerConcurrentQueriesIsolated(t *testing.T) {
	var executions atomic.Int64
	loop := NewLoop(echoProvider{}, countingRegistry(t, &executions))

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			question := fmt.Sprintf("question %d", n)
			got := loop.Answer(context.Background(), question)
			if got != "answer to: "+question {
				errs <- fmt.Errorf("worker %d: Answer() = %q", n, got)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestSystemPromptAdvertisesCatalogInOrder(t *testing.T) {
	loop := NewLoop(echoProvider{}, tools.NewCatalog(cluster.NewDemo()))

	prompt := loop.systemPrompt
	order := []string{"list_namespaces", "list_pods", "list_nodes", "list_services", "get_cluster_info"}
	pos := -1
	for _, name := range order {
		idx := strings.Index(prompt, "- "+name+":")
		if idx == -1 {
			t.Fatalf("prompt does not advertise %s", name)
		}
		if idx < pos {
			t.Errorf("%s appears out of registration order", name)
		}
		pos = idx
	}
	if !strings.Contains(prompt, `{"tool": "tool_name", "parameters": {"param": "value"}}`) {
		t.Error("prompt does not show the directive format")
	}
}
