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
	"regexp"
	"strings"
)

// ProviderNameNoop is the constant for the NoOp provider name
const ProviderNameNoop = "noop"

// NoOpProvider answers without a real model: it routes the question to a
// tool by keyword, then relays the observation as the final answer. It is
// stateless across calls (all state is read from the transcript), always
// available, and used by demo mode and tests.
type NoOpProvider struct{}

// NewNoOpProvider creates a new NoOp provider.
func NewNoOpProvider() *NoOpProvider {
	return &NoOpProvider{}
}

// Name returns the provider identifier.
func (p *NoOpProvider) Name() string {
	return ProviderNameNoop
}

// Available always returns true for NoOp.
func (p *NoOpProvider) Available() bool {
	return true
}

var namespaceHintPattern = regexp.MustCompile(`(?:in|from)\s+(?:the\s+)?['"]?([a-z0-9][a-z0-9-]*)['"]?\s+namespace|namespace\s+['"]?([a-z0-9][a-z0-9-]*)['"]?`)

// Send inspects the transcript: after an observation it produces the
// final answer; otherwise it emits a tool-call directive chosen by
// keyword from the user's question.
func (p *NoOpProvider) Send(_ context.Context, transcript []Message) (Message, error) {
	if len(transcript) == 0 {
		return Message{}, fmt.Errorf("empty transcript")
	}

	last := transcript[len(transcript)-1]
	if last.Role == RoleObservation {
		return Message{Role: RoleAssistant, Content: finalAnswerFromObservation(last.Content)}, nil
	}

	question := ""
	for i := len(transcript) - 1; i >= 0; i-- {
		if transcript[i].Role == RoleUser {
			question = transcript[i].Content
			break
		}
	}

	return Message{Role: RoleAssistant, Content: routeQuestion(question)}, nil
}

// routeQuestion maps a question to a tool-call directive by keyword.
// Vague questions fall back to the cluster overview.
func routeQuestion(question string) string {
	q := strings.ToLower(question)

	namespace := ""
	if m := namespaceHintPattern.FindStringSubmatch(q); m != nil {
		namespace = m[1]
		if namespace == "" {
			namespace = m[2]
		}
	}

	switch {
	case strings.Contains(q, "pod"):
		return directive("list_pods", namespace)
	case strings.Contains(q, "service"):
		return directive("list_services", namespace)
	case strings.Contains(q, "node"):
		return directive("list_nodes", "")
	case strings.Contains(q, "namespace"):
		return directive("list_namespaces", "")
	default:
		return directive("get_cluster_info", "")
	}
}

func directive(tool, namespace string) string {
	if namespace != "" {
		return fmt.Sprintf(`{"tool": %q, "parameters": {"namespace": %q}}`, tool, namespace)
	}
	return fmt.Sprintf(`{"tool": %q}`, tool)
}

// finalAnswerFromObservation strips the "Tool <name> result: " framing so
// the demo answer reads like a summary, and passes error observations
// through unchanged.
func finalAnswerFromObservation(observation string) string {
	if strings.HasPrefix(observation, "Tool ") {
		if idx := strings.Index(observation, " result: "); idx != -1 {
			return observation[idx+len(" result: "):]
		}
	}
	return observation
}
