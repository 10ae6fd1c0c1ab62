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

import "context"

// StaticSource is a Source backed by a fixed in-memory snapshot of a small
// cluster. It powers demo mode so the assistant can be exercised without a
// kubeconfig or API server.
type StaticSource struct {
	Namespaces []NamespaceInfo
	Pods       []PodInfo
	Nodes      []NodeInfo
	Services   []ServiceInfo
}

// NewDemo returns a StaticSource resembling a single-node development
// cluster.
func NewDemo() *StaticSource {
	return &StaticSource{
		Namespaces: []NamespaceInfo{
			{Name: "default", Status: "Active", Created: "2026-01-05T09:00:00Z"},
			{Name: "kube-system", Status: "Active", Created: "2026-01-05T09:00:00Z"},
			{Name: "kube-public", Status: "Active", Created: "2026-01-05T09:00:00Z"},
			{Name: "monitoring", Status: "Active", Created: "2026-01-12T14:30:00Z"},
		},
		Pods: []PodInfo{
			{Name: "web-frontend-6d8f4b9c77-x2kpl", Namespace: "default", Status: "Running", Ready: true, Node: "demo-control-plane"},
			{Name: "web-frontend-6d8f4b9c77-9qwzr", Namespace: "default", Status: "Running", Ready: true, Node: "demo-control-plane"},
			{Name: "api-server-7c9d5f6b48-lm3np", Namespace: "default", Status: "Running", Ready: true, Restarts: 2, Node: "demo-control-plane"},
			{Name: "batch-import-29817364-fj6tw", Namespace: "default", Status: "Succeeded", Ready: false, Node: "demo-control-plane"},
			{Name: "coredns-76f75df574-plx8h", Namespace: "kube-system", Status: "Running", Ready: true, Node: "demo-control-plane"},
			{Name: "etcd-demo-control-plane", Namespace: "kube-system", Status: "Running", Ready: true, Node: "demo-control-plane"},
			{Name: "prometheus-0", Namespace: "monitoring", Status: "Pending", Ready: false, Node: ""},
		},
		Nodes: []NodeInfo{
			{
				Name:              "demo-control-plane",
				Ready:             true,
				Roles:             []string{"control-plane"},
				Version:           "v1.31.4",
				OS:                "linux",
				Architecture:      "amd64",
				AllocatableCPU:    "8",
				AllocatableMemory: "16Gi",
			},
		},
		Services: []ServiceInfo{
			{Name: "kubernetes", Namespace: "default", Type: "ClusterIP", ClusterIP: "10.96.0.1", Ports: []ServicePort{{Port: 443, Protocol: "TCP"}}},
			{Name: "web-frontend", Namespace: "default", Type: "LoadBalancer", ClusterIP: "10.96.14.22", Ports: []ServicePort{{Port: 80, Protocol: "TCP"}}, ExternalIPs: []string{"203.0.113.10"}},
			{Name: "kube-dns", Namespace: "kube-system", Type: "ClusterIP", ClusterIP: "10.96.0.10", Ports: []ServicePort{{Port: 53, Protocol: "UDP"}, {Port: 53, Protocol: "TCP"}}},
			{Name: "prometheus", Namespace: "monitoring", Type: "NodePort", ClusterIP: "10.96.33.7", Ports: []ServicePort{{Port: 9090, Protocol: "TCP"}}},
		},
	}
}

func (s *StaticSource) ListNamespaces(_ context.Context) ([]NamespaceInfo, error) {
	return s.Namespaces, nil
}

func (s *StaticSource) ListPods(_ context.Context, namespace string) ([]PodInfo, error) {
	if namespace == "" {
		return s.Pods, nil
	}
	var pods []PodInfo
	for _, pod := range s.Pods {
		if pod.Namespace == namespace {
			pods = append(pods, pod)
		}
	}
	return pods, nil
}

func (s *StaticSource) ListNodes(_ context.Context) ([]NodeInfo, error) {
	return s.Nodes, nil
}

func (s *StaticSource) ListServices(_ context.Context, namespace string) ([]ServiceInfo, error) {
	if namespace == "" {
		return s.Services, nil
	}
	var services []ServiceInfo
	for _, svc := range s.Services {
		if svc.Namespace == namespace {
			services = append(services, svc)
		}
	}
	return services, nil
}

func (s *StaticSource) ClusterInfo(_ context.Context) (Info, error) {
	return Summarize(s.Namespaces, s.Pods, s.Nodes, s.Services), nil
}
