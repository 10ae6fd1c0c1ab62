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

package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownTool is returned by Execute when the requested name is not
// registered. The dispatch loop shapes it into an observation the model
// can self-correct from.
var ErrUnknownTool = errors.New("unknown tool")

// Registry maps tool names to descriptors. Registration happens once at
// process start; after that the registry is read-only and safe for
// concurrent use by any number of queries. DescribeAll preserves
// registration order so prompt construction is deterministic.
type Registry struct {
	order  []string
	byName map[string]*Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Descriptor)}
}

// Register adds a descriptor. Duplicate or empty names are rejected.
func (r *Registry) Register(d Descriptor) error {
	if d.Name == "" {
		return fmt.Errorf("tool name is empty")
	}
	if d.Run == nil {
		return fmt.Errorf("tool %s has no run function", d.Name)
	}
	if _, exists := r.byName[d.Name]; exists {
		return fmt.Errorf("tool %s already registered", d.Name)
	}
	r.byName[d.Name] = &d
	r.order = append(r.order, d.Name)
	return nil
}

// DescribeAll returns all descriptors in registration order.
func (r *Registry) DescribeAll() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, *r.byName[name])
	}
	return out
}

// Execute resolves name, validates params against the tool's schema, and
// runs the tool. Every failure is an explicit error return; the caller
// owns the single conversion to a user- or model-facing string.
func (r *Registry) Execute(ctx context.Context, name string, params map[string]string) (string, error) {
	d, ok := r.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	if err := validateParams(d, params); err != nil {
		return "", err
	}
	return d.Run(ctx, params)
}

// validateParams enforces the declared schema at the registry boundary:
// required parameters must be present and non-empty, and undeclared
// parameters are rejected so a confused model gets one uniform
// validation error instead of a late backend failure.
func validateParams(d *Descriptor, params map[string]string) error {
	for name, spec := range d.Parameters {
		if !spec.Required {
			continue
		}
		if v, ok := params[name]; !ok || v == "" {
			return fmt.Errorf("missing required parameter %q", name)
		}
	}

	var unknown []string
	for name := range params {
		if _, ok := d.Parameters[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown parameter %q", unknown[0])
	}
	return nil
}
