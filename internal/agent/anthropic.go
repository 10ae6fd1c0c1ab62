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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultAnthropicEndpoint = "https://api.anthropic.com/v1/messages"
	defaultAnthropicModel    = "claude-3-haiku-20240307"
	anthropicAPIVersion      = "2023-06-01"
)

// ProviderNameAnthropic is the constant for the Anthropic provider name
const ProviderNameAnthropic = "anthropic"

// AnthropicProvider implements Provider against the Anthropic messages
// API.
type AnthropicProvider struct {
	apiKey    string
	endpoint  string
	model     string
	maxTokens int
	client    *http.Client
}

// NewAnthropicProvider creates a new Anthropic provider.
func NewAnthropicProvider(config Config) *AnthropicProvider {
	endpoint := config.Endpoint
	if endpoint == "" {
		endpoint = defaultAnthropicEndpoint
	}
	model := config.Model
	if model == "" {
		model = defaultAnthropicModel
	}
	maxTokens := config.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}
	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 90 * time.Second
	}
	return &AnthropicProvider{
		apiKey:    config.APIKey,
		endpoint:  endpoint,
		model:     model,
		maxTokens: maxTokens,
		client:    &http.Client{Timeout: timeout},
	}
}

// Name returns the provider identifier.
func (p *AnthropicProvider) Name() string {
	return ProviderNameAnthropic
}

// Available returns true when an API key is configured.
func (p *AnthropicProvider) Available() bool {
	return p.apiKey != ""
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text,omitempty"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Send posts the transcript and returns the assistant's next message.
func (p *AnthropicProvider) Send(ctx context.Context, transcript []Message) (Message, error) {
	system, msgs := buildAnthropicMessages(transcript)

	reqBody := anthropicRequest{
		Model:     p.model,
		MaxTokens: p.maxTokens,
		System:    system,
		Messages:  msgs,
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return Message{}, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return Message{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", p.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicAPIVersion)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return Message{}, fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Message{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Message{}, fmt.Errorf("API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 500))
	}

	var anthResp anthropicResponse
	if err := json.Unmarshal(respBody, &anthResp); err != nil {
		return Message{}, fmt.Errorf("parse response: %w", err)
	}
	if anthResp.Error != nil {
		return Message{}, fmt.Errorf("API error: %s", anthResp.Error.Message)
	}

	recordTokens(ProviderNameAnthropic, anthResp.Usage.InputTokens+anthResp.Usage.OutputTokens)

	var text string
	for _, block := range anthResp.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	return Message{Role: RoleAssistant, Content: text}, nil
}

// buildAnthropicMessages converts a transcript into Anthropic API
// messages. The system message becomes the top-level system field.
// Observations are sent as user messages because the API requires
// strictly alternating user/assistant roles and a user message last;
// consecutive same-role messages are merged for the same reason.
func buildAnthropicMessages(transcript []Message) (string, []anthropicMessage) {
	var system string
	var msgs []anthropicMessage

	appendOrMerge := func(role, content string) {
		if n := len(msgs); n > 0 && msgs[n-1].Role == role {
			msgs[n-1].Content += "\n\n" + content
			return
		}
		msgs = append(msgs, anthropicMessage{Role: role, Content: content})
	}

	for _, m := range transcript {
		switch m.Role {
		case RoleSystem:
			system = m.Content
		case RoleUser:
			appendOrMerge("user", m.Content)
		case RoleAssistant:
			appendOrMerge("assistant", m.Content)
		case RoleObservation:
			appendOrMerge("user", m.Content)
		}
	}
	return system, msgs
}
