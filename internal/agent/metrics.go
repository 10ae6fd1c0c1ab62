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

package agent

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	queriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kubequery_queries_total",
			Help: "Total number of user queries processed by the dispatch loop",
		},
		[]string{"result"},
	)

	queryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "kubequery_query_duration_seconds",
			Help:    "Duration of full query dispatch loops",
			Buckets: prometheus.DefBuckets,
		},
	)

	queryIterations = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "kubequery_query_iterations",
			Help:    "Model invocations used per query",
			Buckets: []float64{1, 2, 3, 4, 5, 6, 8, 10},
		},
	)

	modelCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kubequery_model_calls_total",
			Help: "Total number of model provider calls",
		},
		[]string{"provider", "result"},
	)

	modelTokensUsedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kubequery_model_tokens_used_total",
			Help: "Total tokens consumed by model calls",
		},
		[]string{"provider"},
	)

	toolExecutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kubequery_tool_executions_total",
			Help: "Total number of tool executions requested by the model",
		},
		[]string{"tool", "result"},
	)
)

func init() {
	prometheus.MustRegister(
		queriesTotal,
		queryDuration,
		queryIterations,
		modelCallsTotal,
		modelTokensUsedTotal,
		toolExecutionsTotal,
	)
}

func observeQuery(result string, duration time.Duration, iterations int) {
	queriesTotal.WithLabelValues(result).Inc()
	queryDuration.Observe(duration.Seconds())
	queryIterations.Observe(float64(iterations))
}

func recordModelCall(provider string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	modelCallsTotal.WithLabelValues(provider, result).Inc()
}

func recordTokens(provider string, tokens int) {
	if tokens > 0 {
		modelTokensUsedTotal.WithLabelValues(provider).Add(float64(tokens))
	}
}

func recordToolExecution(tool string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	toolExecutionsTotal.WithLabelValues(tool, result).Inc()
}
