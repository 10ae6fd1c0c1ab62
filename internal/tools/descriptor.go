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

// Package tools holds the registry of read-only cluster tools the model
// may request, their parameter schemas, and the plain-text formatting of
// their results.
package tools

import "context"

// Param declares one parameter of a tool.
type Param struct {
	Type        string
	Description string
	Required    bool
}

// RunFunc executes a tool with validated parameters and returns the
// formatted result text.
type RunFunc func(ctx context.Context, params map[string]string) (string, error)

// Descriptor is the immutable description of one tool: its name, a
// human-readable description advertised to the model, its parameter
// schema, and the capability that executes it.
type Descriptor struct {
	Name        string
	Description string
	Parameters  map[string]Param
	Run         RunFunc
}
