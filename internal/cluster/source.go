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

// Source is the cluster-query capability consumed by the tool catalog.
// A Source is constructed once at process start and shared by all
// concurrent queries; implementations must be safe for concurrent use.
//
// An empty namespace means "all namespaces" for the namespaced listings.
type Source interface {
	ListNamespaces(ctx context.Context) ([]NamespaceInfo, error)
	ListPods(ctx context.Context, namespace string) ([]PodInfo, error)
	ListNodes(ctx context.Context) ([]NodeInfo, error)
	ListServices(ctx context.Context, namespace string) ([]ServiceInfo, error)
	ClusterInfo(ctx context.Context) (Info, error)
}
