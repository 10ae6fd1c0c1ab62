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
	"testing"
)

func echoDescriptor(name string, params map[string]Param) Descriptor {
	return Descriptor{
		Name:        name,
		Description: name + " tool",
		Parameters:  params,
		Run: func(_ context.Context, p map[string]string) (string, error) {
			return fmt.Sprintf("%s ran", name), nil
		},
	}
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(echoDescriptor("alpha", nil)); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := r.Register(echoDescriptor("alpha", nil)); err == nil {
		t.Error("duplicate registration accepted")
	}
	if err := r.Register(echoDescriptor("", nil)); err == nil {
		t.Error("empty name accepted")
	}
	if err := r.Register(Descriptor{Name: "no-run"}); err == nil {
		t.Error("descriptor without run function accepted")
	}
}

func TestRegistryDescribeAllPreservesOrder(t *testing.T) {
	r := NewRegistry()
	names := []string{"zeta", "alpha", "mid"}
	for _, n := range names {
		if err := r.Register(echoDescriptor(n, nil)); err != nil {
			t.Fatalf("Register(%s) error = %v", n, err)
		}
	}
	got := r.DescribeAll()
	if len(got) != len(names) {
		t.Fatalf("DescribeAll() returned %d descriptors", len(got))
	}
	for i, n := range names {
		if got[i].Name != n {
			t.Errorf("descriptor %d = %q, want %q (registration order)", i, got[i].Name, n)
		}
	}
}

func TestRegistryExecuteUnknownTool(t *testing.T) {
	r := NewRegistry()
	_, err := r.Execute(context.Background(), "nope", nil)
	if !errors.Is(err, ErrUnknownTool) {
		t.Errorf("error = %v, want ErrUnknownTool", err)
	}
}

func TestRegistryExecuteValidation(t *testing.T) {
	r := NewRegistry()
	err := r.Register(echoDescriptor("needs", map[string]Param{
		"target":  {Type: "string", Description: "what to hit", Required: true},
		"verbose": {Type: "string", Description: "optional detail"},
	}))
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name    string
		params  map[string]string
		wantErr string
	}{
		{name: "missing required", params: nil, wantErr: `missing required parameter "target"`},
		{name: "empty required", params: map[string]string{"target": ""}, wantErr: `missing required parameter "target"`},
		{name: "unknown parameter", params: map[string]string{"target": "x", "bogus": "y"}, wantErr: `unknown parameter "bogus"`},
		{name: "valid", params: map[string]string{"target": "x", "verbose": "yes"}},
		{name: "optional omitted", params: map[string]string{"target": "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Execute(context.Background(), "needs", tt.params)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Execute() error = %v", err)
				}
				if out != "needs ran" {
					t.Errorf("output = %q", out)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("error = %v, want %q", err, tt.wantErr)
			}
			if errors.Is(err, ErrUnknownTool) {
				t.Error("validation error must not wrap ErrUnknownTool")
			}
		})
	}
}

func TestRegistryExecutePropagatesRunError(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("backend unavailable")
	err := r.Register(Descriptor{
		Name:        "failing",
		Description: "always fails",
		Run: func(_ context.Context, _ map[string]string) (string, error) {
			return "", boom
		},
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	_, err = r.Execute(context.Background(), "failing", nil)
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want the run error", err)
	}
}
