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

// Package cluster provides read-only access to workload information in a
// Kubernetes cluster: namespaces, pods, nodes, services, and an aggregate
// summary. All operations are idempotent reads against the API server.
package cluster

// NamespaceInfo describes a single namespace.
type NamespaceInfo struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Created string `json:"created,omitempty"`
}

// PodInfo describes a single pod.
type PodInfo struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
	Status    string `json:"status"`
	Ready     bool   `json:"ready"`
	Restarts  int    `json:"restarts"`
	Node      string `json:"node,omitempty"`
	Created   string `json:"created,omitempty"`
}

// NodeInfo describes a single node.
type NodeInfo struct {
	Name              string   `json:"name"`
	Ready             bool     `json:"ready"`
	Roles             []string `json:"roles"`
	Version           string   `json:"version"`
	OS                string   `json:"os"`
	Architecture      string   `json:"architecture"`
	AllocatableCPU    string   `json:"allocatableCpu,omitempty"`
	AllocatableMemory string   `json:"allocatableMemory,omitempty"`
}

// ServicePort describes one exposed port of a service.
type ServicePort struct {
	Port     int32  `json:"port"`
	Protocol string `json:"protocol"`
}

// ServiceInfo describes a single service.
type ServiceInfo struct {
	Name        string        `json:"name"`
	Namespace   string        `json:"namespace"`
	Type        string        `json:"type"`
	ClusterIP   string        `json:"clusterIp"`
	Ports       []ServicePort `json:"ports,omitempty"`
	ExternalIPs []string      `json:"externalIps,omitempty"`
}

// Info is the aggregate cluster summary. The zero value is the valid
// summary of an empty cluster.
type Info struct {
	TotalNamespaces int      `json:"totalNamespaces"`
	TotalPods       int      `json:"totalPods"`
	RunningPods     int      `json:"runningPods"`
	TotalNodes      int      `json:"totalNodes"`
	ReadyNodes      int      `json:"readyNodes"`
	TotalServices   int      `json:"totalServices"`
	NodeVersions    []string `json:"nodeVersions,omitempty"`
	Namespaces      []string `json:"namespaces,omitempty"`
}
