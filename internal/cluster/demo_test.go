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

package cluster

import (
	"context"
	"testing"
)

func TestDemoSourceFilters(t *testing.T) {
	s := NewDemo()
	ctx := context.Background()

	pods, err := s.ListPods(ctx, "kube-system")
	if err != nil {
		t.Fatalf("ListPods() error = %v", err)
	}
	if len(pods) != 2 {
		t.Errorf("kube-system pods = %d, want 2", len(pods))
	}
	for _, p := range pods {
		if p.Namespace != "kube-system" {
			t.Errorf("pod %s leaked from namespace %s", p.Name, p.Namespace)
		}
	}

	services, err := s.ListServices(ctx, "monitoring")
	if err != nil {
		t.Fatalf("ListServices() error = %v", err)
	}
	if len(services) != 1 || services[0].Name != "prometheus" {
		t.Errorf("monitoring services = %v", services)
	}

	none, err := s.ListPods(ctx, "does-not-exist")
	if err != nil {
		t.Fatalf("ListPods() error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("got %d pods for a namespace that does not exist", len(none))
	}
}

func TestDemoSourceClusterInfo(t *testing.T) {
	s := NewDemo()
	info, err := s.ClusterInfo(context.Background())
	if err != nil {
		t.Fatalf("ClusterInfo() error = %v", err)
	}
	if info.TotalNamespaces != 4 {
		t.Errorf("TotalNamespaces = %d", info.TotalNamespaces)
	}
	if info.TotalPods != 7 || info.RunningPods != 5 {
		t.Errorf("pods = %d total, %d running", info.TotalPods, info.RunningPods)
	}
	if info.TotalNodes != 1 || info.ReadyNodes != 1 {
		t.Errorf("nodes = %d total, %d ready", info.TotalNodes, info.ReadyNodes)
	}
	if info.TotalServices != 4 {
		t.Errorf("TotalServices = %d", info.TotalServices)
	}
	if len(info.NodeVersions) != 1 || info.NodeVersions[0] != "v1.31.4" {
		t.Errorf("NodeVersions = %v", info.NodeVersions)
	}
}
