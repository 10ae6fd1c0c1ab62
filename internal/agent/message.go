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

// Package agent implements the tool-dispatch loop that turns one natural
// language question into zero or more read-only cluster queries and a
// final answer, plus the model providers the loop talks to.
package agent

// Role identifies who a transcript message is attributed to.
type Role string

const (
	// RoleSystem carries the fixed instructions; exactly one system
	// message exists per transcript, always first.
	RoleSystem Role = "system"
	// RoleUser is the human question.
	RoleUser Role = "user"
	// RoleAssistant is a model response.
	RoleAssistant Role = "assistant"
	// RoleObservation is a tool result fed back into the conversation,
	// attributed to the assistant side. How it is encoded on the wire is
	// provider-specific.
	RoleObservation Role = "observation"
)

// Message is one entry of a query's transcript.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ToolCall is the parsed intent of an assistant message that requests a
// tool execution. It lives for a single dispatch step.
type ToolCall struct {
	Name       string
	Parameters map[string]string
}
