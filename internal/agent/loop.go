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
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	logf "sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/osagberg/kube-query-assist/internal/tools"
)

var log = logf.Log.WithName("agent")

// defaultMaxIterations bounds the model invocations per query.
const defaultMaxIterations = 5

// fallbackAnswer is returned when a query exhausts its iteration budget
// without the model producing a final answer.
const fallbackAnswer = "I couldn't complete your request within the allowed number of steps. Please try a more specific question."

// dispatchPhase is the state of one query's dispatch loop.
type dispatchPhase int

const (
	phaseAwaitModel dispatchPhase = iota
	phaseHaveToolCall
	phaseDone
)

// dispatchState is created fresh per query, mutated in place through the
// loop, and discarded when the loop terminates. It is never shared
// between queries.
type dispatchState struct {
	transcript  []Message
	pendingCall *ToolCall
	finalAnswer string
	iterations  int
}

// Loop drives one user question to a final textual answer by alternating
// model calls and tool executions. A Loop is immutable after construction
// and safe for concurrent queries; all per-query state lives in a
// dispatchState.
type Loop struct {
	provider      Provider
	registry      *tools.Registry
	systemPrompt  string
	maxIterations int
}

// NewLoop creates a dispatch loop over the given provider and tool
// registry. The system prompt is rendered once, in registration order,
// so it is identical across queries and process runs.
func NewLoop(provider Provider, registry *tools.Registry) *Loop {
	return &Loop{
		provider:      provider,
		registry:      registry,
		systemPrompt:  buildSystemPrompt(registry.DescribeAll()),
		maxIterations: defaultMaxIterations,
	}
}

// SetMaxIterations overrides the default model-invocation bound per query.
func (l *Loop) SetMaxIterations(n int) {
	if n > 0 {
		l.maxIterations = n
	}
}

// Answer processes one user question and always returns a displayable
// string: the model's final answer, or an explanation of why the request
// could not be completed. It never panics or returns an error past this
// boundary, because every caller is a human-facing surface.
func (l *Loop) Answer(ctx context.Context, userInput string) string {
	start := time.Now()
	result := "ok"

	state := &dispatchState{
		transcript: []Message{
			{Role: RoleSystem, Content: l.systemPrompt},
			{Role: RoleUser, Content: userInput},
		},
	}
	defer func() {
		observeQuery(result, time.Since(start), state.iterations)
	}()

	phase := phaseAwaitModel
	for phase != phaseDone {
		switch phase {
		case phaseAwaitModel:
			if state.iterations >= l.maxIterations {
				log.Info("Iteration bound reached", "iterations", state.iterations)
				state.finalAnswer = fallbackAnswer
				result = "iteration_bound"
				phase = phaseDone
				continue
			}
			state.iterations++

			reply, err := l.provider.Send(ctx, state.transcript)
			recordModelCall(l.provider.Name(), err)
			if err != nil {
				log.Error(err, "Model call failed", "iteration", state.iterations)
				state.finalAnswer = fmt.Sprintf("I encountered an error while processing your request: %s", err)
				result = "model_error"
				phase = phaseDone
				continue
			}

			reply.Role = RoleAssistant
			state.transcript = append(state.transcript, reply)

			if call, ok := ParseToolCall(reply.Content); ok {
				state.pendingCall = &call
				phase = phaseHaveToolCall
			} else {
				state.finalAnswer = reply.Content
				phase = phaseDone
			}

		case phaseHaveToolCall:
			call := *state.pendingCall
			state.pendingCall = nil
			observation := l.executeCall(ctx, call)
			state.transcript = append(state.transcript, Message{
				Role:    RoleObservation,
				Content: observation,
			})
			phase = phaseAwaitModel
		}
	}

	if state.finalAnswer == "" {
		return "I couldn't process your request."
	}
	return state.finalAnswer
}

// executeCall runs one tool call and shapes every outcome, success or
// failure, into an observation string. The model is expected to read its
// own mistakes here and self-correct on the next turn.
func (l *Loop) executeCall(ctx context.Context, call ToolCall) string {
	output, err := l.registry.Execute(ctx, call.Name, call.Parameters)
	recordToolExecution(call.Name, err)
	switch {
	case errors.Is(err, tools.ErrUnknownTool):
		return fmt.Sprintf("Unknown tool: %s", call.Name)
	case err != nil:
		return fmt.Sprintf("Error executing %s: %s", call.Name, err)
	default:
		return fmt.Sprintf("Tool %s result: %s", call.Name, output)
	}
}

// buildSystemPrompt renders the fixed instructions, advertising the tools
// in registration order.
func buildSystemPrompt(descriptors []tools.Descriptor) string {
	var b strings.Builder
	b.WriteString(`You are KubeQuery, a helpful Kubernetes cluster information assistant. You answer questions about the cluster's workloads in natural language.

You have access to these tools:
`)
	for _, d := range descriptors {
		fmt.Fprintf(&b, "- %s: %s\n", d.Name, d.Description)
		names := make([]string, 0, len(d.Parameters))
		for name := range d.Parameters {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			param := d.Parameters[name]
			requirement := "optional"
			if param.Required {
				requirement = "required"
			}
			fmt.Fprintf(&b, "    %s (%s, %s): %s\n", name, param.Type, requirement, param.Description)
		}
	}
	b.WriteString(`
To use a tool, respond with JSON in this format:
{"tool": "tool_name", "parameters": {"param": "value"}}

Guidelines:
1. Be conversational and helpful
2. Use the appropriate tool based on the user's question
3. Format responses clearly using markdown
4. If a user asks a vague question, use get_cluster_info for an overview
5. If there are issues or no resources found, explain this clearly
`)
	return b.String()
}
