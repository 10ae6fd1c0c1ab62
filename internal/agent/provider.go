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

import "context"

// Provider is the language-model capability: given a conversation
// transcript, produce the next assistant message. Calls are synchronous
// and blocking from the loop's point of view; any provider-specific
// configuration (model id, credentials, endpoints) is opaque here.
type Provider interface {
	// Name returns the provider identifier (e.g., "openai", "anthropic", "noop")
	Name() string

	// Send produces the model's next message for the transcript.
	Send(ctx context.Context, transcript []Message) (Message, error)

	// Available returns true if the provider is configured and ready.
	Available() bool
}

// Config holds model provider configuration.
type Config struct {
	// Provider is the provider to use ("openai", "anthropic", "noop")
	Provider string `json:"provider"`

	// APIKey is the API key for the provider. A value of the form "$VAR"
	// is resolved from the environment at construction time.
	APIKey string `json:"apiKey,omitempty"`

	// Endpoint is an optional custom API endpoint
	Endpoint string `json:"endpoint,omitempty"`

	// Model is the model to use (e.g., "gpt-4o-mini", "claude-3-haiku")
	Model string `json:"model,omitempty"`

	// MaxTokens is the maximum tokens for responses
	MaxTokens int `json:"maxTokens,omitempty"`

	// Timeout is the request timeout in seconds
	Timeout int `json:"timeout,omitempty"`
}

// DefaultConfig returns a configuration using the offline NoOp provider.
func DefaultConfig() Config {
	return Config{
		Provider:  ProviderNameNoop,
		MaxTokens: 4096,
		Timeout:   90,
	}
}
