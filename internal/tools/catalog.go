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

	"github.com/osagberg/kube-query-assist/internal/cluster"
)

// namespaceParam is the shared optional namespace filter declaration.
func namespaceParam(what string) map[string]Param {
	return map[string]Param{
		"namespace": {
			Type:        "string",
			Description: "Optional namespace to filter " + what + ". If not provided, lists all " + what + " in all namespaces.",
		},
	}
}

// NewCatalog builds the registry of the five cluster tools, all backed by
// the given Source. Registration order is the advertised order, so it is
// fixed here.
func NewCatalog(source cluster.Source) *Registry {
	r := NewRegistry()

	mustRegister(r, Descriptor{
		Name:        "list_namespaces",
		Description: "List all namespaces in the Kubernetes cluster with their status and creation time.",
		Run: func(ctx context.Context, _ map[string]string) (string, error) {
			namespaces, err := source.ListNamespaces(ctx)
			if err != nil {
				return "", err
			}
			return formatNamespaces(namespaces), nil
		},
	})

	mustRegister(r, Descriptor{
		Name:        "list_pods",
		Description: "List pods in the cluster, optionally filtered by namespace. Shows status, readiness and restart counts.",
		Parameters:  namespaceParam("pods"),
		Run: func(ctx context.Context, params map[string]string) (string, error) {
			namespace := params["namespace"]
			pods, err := source.ListPods(ctx, namespace)
			if err != nil {
				return "", err
			}
			return formatPods(pods, namespace), nil
		},
	})

	mustRegister(r, Descriptor{
		Name:        "list_nodes",
		Description: "List all nodes in the Kubernetes cluster with readiness, roles, versions and capacity.",
		Run: func(ctx context.Context, _ map[string]string) (string, error) {
			nodes, err := source.ListNodes(ctx)
			if err != nil {
				return "", err
			}
			return formatNodes(nodes), nil
		},
	})

	mustRegister(r, Descriptor{
		Name:        "list_services",
		Description: "List services in the cluster, optionally filtered by namespace. Shows types, IPs and ports.",
		Parameters:  namespaceParam("services"),
		Run: func(ctx context.Context, params map[string]string) (string, error) {
			namespace := params["namespace"]
			services, err := source.ListServices(ctx, namespace)
			if err != nil {
				return "", err
			}
			return formatServices(services, namespace), nil
		},
	})

	mustRegister(r, Descriptor{
		Name:        "get_cluster_info",
		Description: "Get general cluster overview and statistics: counts of namespaces, pods, nodes and services.",
		Run: func(ctx context.Context, _ map[string]string) (string, error) {
			info, err := source.ClusterInfo(ctx)
			if err != nil {
				return "", err
			}
			return formatClusterInfo(info), nil
		},
	})

	return r
}

// mustRegister panics on registration conflicts. The catalog is built
// from literals at startup, so a conflict is a programming error.
func mustRegister(r *Registry, d Descriptor) {
	if err := r.Register(d); err != nil {
		panic(err)
	}
}
