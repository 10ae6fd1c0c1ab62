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
	"fmt"
	"sort"
	"strings"
	"time"

	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// nodeRoleLabelPrefix marks the labels that carry node roles.
const nodeRoleLabelPrefix = "node-role.kubernetes.io/"

// KubernetesSource implements Source by delegating to a controller-runtime
// client.Reader.
type KubernetesSource struct {
	reader client.Reader
}

// NewKubernetes creates a Source backed by a controller-runtime Reader.
func NewKubernetes(reader client.Reader) *KubernetesSource {
	return &KubernetesSource{reader: reader}
}

func (k *KubernetesSource) ListNamespaces(ctx context.Context) ([]NamespaceInfo, error) {
	var list corev1.NamespaceList
	if err := k.reader.List(ctx, &list); err != nil {
		return nil, fmt.Errorf("list namespaces: %w", err)
	}

	namespaces := make([]NamespaceInfo, 0, len(list.Items))
	for _, ns := range list.Items {
		info := NamespaceInfo{
			Name:   ns.Name,
			Status: string(ns.Status.Phase),
		}
		if !ns.CreationTimestamp.IsZero() {
			info.Created = ns.CreationTimestamp.Format(time.RFC3339)
		}
		namespaces = append(namespaces, info)
	}
	return namespaces, nil
}

func (k *KubernetesSource) ListPods(ctx context.Context, namespace string) ([]PodInfo, error) {
	var list corev1.PodList
	opts := []client.ListOption{}
	if namespace != "" {
		opts = append(opts, client.InNamespace(namespace))
	}
	if err := k.reader.List(ctx, &list, opts...); err != nil {
		return nil, fmt.Errorf("list pods: %w", err)
	}

	pods := make([]PodInfo, 0, len(list.Items))
	for _, pod := range list.Items {
		restarts := 0
		for _, cs := range pod.Status.ContainerStatuses {
			restarts += int(cs.RestartCount)
		}
		info := PodInfo{
			Name:      pod.Name,
			Namespace: pod.Namespace,
			Status:    string(pod.Status.Phase),
			Ready:     isPodReady(&pod),
			Restarts:  restarts,
			Node:      pod.Spec.NodeName,
		}
		if !pod.CreationTimestamp.IsZero() {
			info.Created = pod.CreationTimestamp.Format(time.RFC3339)
		}
		pods = append(pods, info)
	}
	return pods, nil
}

func (k *KubernetesSource) ListNodes(ctx context.Context) ([]NodeInfo, error) {
	var list corev1.NodeList
	if err := k.reader.List(ctx, &list); err != nil {
		return nil, fmt.Errorf("list nodes: %w", err)
	}

	nodes := make([]NodeInfo, 0, len(list.Items))
	for _, node := range list.Items {
		info := NodeInfo{
			Name:         node.Name,
			Ready:        isNodeReady(&node),
			Roles:        nodeRoles(&node),
			Version:      node.Status.NodeInfo.KubeletVersion,
			OS:           node.Status.NodeInfo.OperatingSystem,
			Architecture: node.Status.NodeInfo.Architecture,
		}
		if cpu, ok := node.Status.Allocatable[corev1.ResourceCPU]; ok {
			info.AllocatableCPU = cpu.String()
		}
		if mem, ok := node.Status.Allocatable[corev1.ResourceMemory]; ok {
			info.AllocatableMemory = mem.String()
		}
		nodes = append(nodes, info)
	}
	return nodes, nil
}

func (k *KubernetesSource) ListServices(ctx context.Context, namespace string) ([]ServiceInfo, error) {
	var list corev1.ServiceList
	opts := []client.ListOption{}
	if namespace != "" {
		opts = append(opts, client.InNamespace(namespace))
	}
	if err := k.reader.List(ctx, &list, opts...); err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}

	services := make([]ServiceInfo, 0, len(list.Items))
	for _, svc := range list.Items {
		info := ServiceInfo{
			Name:        svc.Name,
			Namespace:   svc.Namespace,
			Type:        string(svc.Spec.Type),
			ClusterIP:   svc.Spec.ClusterIP,
			ExternalIPs: svc.Spec.ExternalIPs,
		}
		for _, port := range svc.Spec.Ports {
			info.Ports = append(info.Ports, ServicePort{
				Port:     port.Port,
				Protocol: string(port.Protocol),
			})
		}
		services = append(services, info)
	}
	return services, nil
}

// ClusterInfo aggregates the four listings into a summary. The zero-valued
// summary is returned for an empty cluster, never an error-free nil.
func (k *KubernetesSource) ClusterInfo(ctx context.Context) (Info, error) {
	namespaces, err := k.ListNamespaces(ctx)
	if err != nil {
		return Info{}, err
	}
	pods, err := k.ListPods(ctx, "")
	if err != nil {
		return Info{}, err
	}
	nodes, err := k.ListNodes(ctx)
	if err != nil {
		return Info{}, err
	}
	services, err := k.ListServices(ctx, "")
	if err != nil {
		return Info{}, err
	}
	return Summarize(namespaces, pods, nodes, services), nil
}

// Summarize computes the aggregate Info from the individual listings.
// Node versions are de-duplicated and sorted so the summary is stable
// across runs.
func Summarize(namespaces []NamespaceInfo, pods []PodInfo, nodes []NodeInfo, services []ServiceInfo) Info {
	info := Info{
		TotalNamespaces: len(namespaces),
		TotalPods:       len(pods),
		TotalNodes:      len(nodes),
		TotalServices:   len(services),
	}
	for _, pod := range pods {
		if pod.Status == string(corev1.PodRunning) {
			info.RunningPods++
		}
	}

	seen := make(map[string]bool)
	for _, node := range nodes {
		if node.Ready {
			info.ReadyNodes++
		}
		if node.Version != "" && !seen[node.Version] {
			seen[node.Version] = true
			info.NodeVersions = append(info.NodeVersions, node.Version)
		}
	}
	sort.Strings(info.NodeVersions)

	for _, ns := range namespaces {
		info.Namespaces = append(info.Namespaces, ns.Name)
	}
	return info
}

func isPodReady(pod *corev1.Pod) bool {
	for _, cond := range pod.Status.Conditions {
		if cond.Type == corev1.PodReady {
			return cond.Status == corev1.ConditionTrue
		}
	}
	return false
}

func isNodeReady(node *corev1.Node) bool {
	for _, cond := range node.Status.Conditions {
		if cond.Type == corev1.NodeReady {
			return cond.Status == corev1.ConditionTrue
		}
	}
	return false
}

// nodeRoles extracts roles from node-role.kubernetes.io/* labels.
// Nodes without role labels report as workers.
func nodeRoles(node *corev1.Node) []string {
	var roles []string
	for key := range node.Labels {
		if role := strings.TrimPrefix(key, nodeRoleLabelPrefix); role != key && role != "" {
			roles = append(roles, role)
		}
	}
	if len(roles) == 0 {
		return []string{"worker"}
	}
	sort.Strings(roles)
	return roles
}
