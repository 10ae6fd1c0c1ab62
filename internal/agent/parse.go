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
	"encoding/json"
	"fmt"
	"strings"
)

// ParseToolCall extracts a tool-call directive from a model response.
//
// The model signals intent by embedding a JSON object with a "tool" field
// (and an optional flat "parameters" object) anywhere in its otherwise
// free-text reply. The first decodable object carrying a "tool" field
// wins; later fragments are ignored. Objects without a "tool" field and
// fragments that fail to decode are skipped, so a response with no usable
// directive is treated as a final answer by the caller.
func ParseToolCall(content string) (ToolCall, bool) {
	for i := 0; i < len(content); i++ {
		if content[i] != '{' {
			continue
		}

		var raw map[string]json.RawMessage
		dec := json.NewDecoder(strings.NewReader(content[i:]))
		if err := dec.Decode(&raw); err != nil {
			continue
		}

		toolField, ok := raw["tool"]
		if !ok {
			continue
		}
		var name string
		if err := json.Unmarshal(toolField, &name); err != nil || name == "" {
			continue
		}

		call := ToolCall{Name: name, Parameters: map[string]string{}}
		if paramsField, ok := raw["parameters"]; ok {
			var params map[string]any
			if err := json.Unmarshal(paramsField, &params); err == nil {
				for key, value := range params {
					if s, ok := value.(string); ok {
						call.Parameters[key] = s
					} else {
						call.Parameters[key] = fmt.Sprintf("%v", value)
					}
				}
			}
		}
		return call, true
	}
	return ToolCall{}, false
}
