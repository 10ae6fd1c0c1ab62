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
	"fmt"
	"os"
	"strings"
)

// NewProvider creates a provider based on the configuration.
func NewProvider(config Config) (Provider, error) {
	// Resolve API key from environment if it looks like an env var reference
	apiKey := config.APIKey
	if strings.HasPrefix(apiKey, "$") {
		apiKey = os.Getenv(strings.TrimPrefix(apiKey, "$"))
	}

	resolvedConfig := config
	resolvedConfig.APIKey = apiKey

	switch strings.ToLower(config.Provider) {
	case ProviderNameOpenAI:
		return NewOpenAIProvider(resolvedConfig), nil
	case ProviderNameAnthropic:
		return NewAnthropicProvider(resolvedConfig), nil
	case ProviderNameNoop, "":
		return NewNoOpProvider(), nil
	default:
		return nil, fmt.Errorf("unknown model provider: %s", config.Provider)
	}
}

// ConfigFromEnv creates a config from environment variables.
// Environment variables:
//   - KUBE_QUERY_AI_PROVIDER: Provider name (openai, anthropic, noop)
//   - KUBE_QUERY_AI_API_KEY: API key
//   - KUBE_QUERY_AI_ENDPOINT: Custom endpoint (optional)
//   - KUBE_QUERY_AI_MODEL: Model name (optional)
func ConfigFromEnv() Config {
	config := DefaultConfig()

	if provider := os.Getenv("KUBE_QUERY_AI_PROVIDER"); provider != "" {
		config.Provider = provider
	}
	if apiKey := os.Getenv("KUBE_QUERY_AI_API_KEY"); apiKey != "" {
		config.APIKey = apiKey
	}
	if endpoint := os.Getenv("KUBE_QUERY_AI_ENDPOINT"); endpoint != "" {
		config.Endpoint = endpoint
	}
	if model := os.Getenv("KUBE_QUERY_AI_MODEL"); model != "" {
		config.Model = model
	}
	return config
}
