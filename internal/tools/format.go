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
	"fmt"
	"strings"

	"github.com/osagberg/kube-query-assist/internal/cluster"
)

// maxListedNamespaces caps the namespace names shown in the cluster
// overview; the remainder collapses into an overflow count.
const maxListedNamespaces = 10

// The formatters render backend results as markdown-flavoured text for
// the model to summarize. Empty results always produce an explicit
// "not found" sentence, never an empty string.

func formatNamespaces(namespaces []cluster.NamespaceInfo) string {
	if len(namespaces) == 0 {
		return "No namespaces found in the cluster."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d namespaces:\n\n", len(namespaces))
	for _, ns := range namespaces {
		fmt.Fprintf(&b, "• **%s** (Status: %s)\n", ns.Name, ns.Status)
		if ns.Created != "" {
			fmt.Fprintf(&b, "  Created: %s\n", ns.Created)
		}
	}
	return b.String()
}

func formatPods(pods []cluster.PodInfo, namespace string) string {
	nsText := ""
	if namespace != "" {
		nsText = fmt.Sprintf(" in namespace '%s'", namespace)
	}
	if len(pods) == 0 {
		return fmt.Sprintf("No pods found%s.", nsText)
	}

	// Group by status, preserving first-seen order so output is stable.
	var statuses []string
	groups := make(map[string][]cluster.PodInfo)
	for _, pod := range pods {
		if _, seen := groups[pod.Status]; !seen {
			statuses = append(statuses, pod.Status)
		}
		groups[pod.Status] = append(groups[pod.Status], pod)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d pods%s:\n\n", len(pods), nsText)
	for _, status := range statuses {
		fmt.Fprintf(&b, "**%s (%d pods):**\n", status, len(groups[status]))
		for _, pod := range groups[status] {
			fmt.Fprintf(&b, "• %s (%s) %s", pod.Name, pod.Namespace, readyMark(pod.Ready))
			if pod.Restarts > 0 {
				fmt.Fprintf(&b, " [Restarts: %d]", pod.Restarts)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatNodes(nodes []cluster.NodeInfo) string {
	if len(nodes) == 0 {
		return "No nodes found in the cluster."
	}

	ready := 0
	for _, node := range nodes {
		if node.Ready {
			ready++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d nodes (%d ready):\n\n", len(nodes), ready)
	for _, node := range nodes {
		roles := "worker"
		if len(node.Roles) > 0 {
			roles = strings.Join(node.Roles, ", ")
		}
		fmt.Fprintf(&b, "• **%s** %s\n", node.Name, readyMark(node.Ready))
		fmt.Fprintf(&b, "  Roles: %s\n", roles)
		fmt.Fprintf(&b, "  Version: %s\n", node.Version)
		fmt.Fprintf(&b, "  OS: %s (%s)\n", node.OS, node.Architecture)
		if node.AllocatableCPU != "" && node.AllocatableMemory != "" {
			fmt.Fprintf(&b, "  Resources: %s CPU, %s memory\n", node.AllocatableCPU, node.AllocatableMemory)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatServices(services []cluster.ServiceInfo, namespace string) string {
	nsText := ""
	if namespace != "" {
		nsText = fmt.Sprintf(" in namespace '%s'", namespace)
	}
	if len(services) == 0 {
		return fmt.Sprintf("No services found%s.", nsText)
	}

	var types []string
	groups := make(map[string][]cluster.ServiceInfo)
	for _, svc := range services {
		if _, seen := groups[svc.Type]; !seen {
			types = append(types, svc.Type)
		}
		groups[svc.Type] = append(groups[svc.Type], svc)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d services%s:\n\n", len(services), nsText)
	for _, svcType := range types {
		fmt.Fprintf(&b, "**%s (%d services):**\n", svcType, len(groups[svcType]))
		for _, svc := range groups[svcType] {
			fmt.Fprintf(&b, "• **%s** (%s)\n", svc.Name, svc.Namespace)
			fmt.Fprintf(&b, "  Cluster IP: %s\n", svc.ClusterIP)
			if len(svc.Ports) > 0 {
				ports := make([]string, 0, len(svc.Ports))
				for _, p := range svc.Ports {
					ports = append(ports, fmt.Sprintf("%d/%s", p.Port, p.Protocol))
				}
				fmt.Fprintf(&b, "  Ports: %s\n", strings.Join(ports, ", "))
			}
			if len(svc.ExternalIPs) > 0 {
				fmt.Fprintf(&b, "  External IPs: %s\n", strings.Join(svc.ExternalIPs, ", "))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// formatClusterInfo renders the aggregate overview. It is never empty:
// an empty cluster renders the zero-valued counts.
func formatClusterInfo(info cluster.Info) string {
	var b strings.Builder
	b.WriteString("**Cluster Overview:**\n\n")
	fmt.Fprintf(&b, "• **Namespaces:** %d\n", info.TotalNamespaces)
	fmt.Fprintf(&b, "• **Pods:** %d total, %d running\n", info.TotalPods, info.RunningPods)
	fmt.Fprintf(&b, "• **Nodes:** %d total, %d ready\n", info.TotalNodes, info.ReadyNodes)
	fmt.Fprintf(&b, "• **Services:** %d\n\n", info.TotalServices)

	if len(info.NodeVersions) > 0 {
		fmt.Fprintf(&b, "**Kubernetes Versions:** %s\n\n", strings.Join(info.NodeVersions, ", "))
	}

	if len(info.Namespaces) > 0 {
		listed := info.Namespaces
		overflow := 0
		if len(listed) > maxListedNamespaces {
			overflow = len(listed) - maxListedNamespaces
			listed = listed[:maxListedNamespaces]
		}
		nsList := strings.Join(listed, ", ")
		if overflow > 0 {
			nsList += fmt.Sprintf(" (and %d more)", overflow)
		}
		fmt.Fprintf(&b, "**Namespaces:** %s\n", nsList)
	}
	return b.String()
}

func readyMark(ready bool) string {
	if ready {
		return "✓"
	}
	return "✗"
}
