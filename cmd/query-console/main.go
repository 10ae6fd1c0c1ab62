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

// query-console is a standalone HTTP server that exposes the cluster
// query assistant as a browser chat page and a JSON API.
//
// Usage:
//
//	go run ./cmd/query-console/ --addr=:8080
//	go run ./cmd/query-console/ --demo
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/config"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/osagberg/kube-query-assist/internal/agent"
	"github.com/osagberg/kube-query-assist/internal/cluster"
	"github.com/osagberg/kube-query-assist/internal/tools"
	"github.com/osagberg/kube-query-assist/internal/webconsole"
)

// serverConfig holds console settings read from KUBE_QUERY_* env vars.
type serverConfig struct {
	MaxSessions   int     `envconfig:"MAX_SESSIONS" default:"100"`
	SessionTTLMin int     `envconfig:"SESSION_TTL_MINUTES" default:"30"`
	RateLimit     float64 `envconfig:"RATE_LIMIT" default:"5"`
	RateBurst     int     `envconfig:"RATE_BURST" default:"10"`
	MaxIterations int     `envconfig:"MAX_ITERATIONS" default:"0"`
}

func main() {
	var addr string
	var demoMode bool
	var devLogging bool
	flag.StringVar(&addr, "addr", ":8080", "HTTP listen address.")
	flag.BoolVar(&demoMode, "demo", false, "Answer from a canned demo cluster instead of a live one.")
	flag.BoolVar(&devLogging, "dev-logging", false, "Human-readable log output.")
	flag.Parse()

	// .env is optional; real env vars win
	_ = godotenv.Load()

	ctrl.SetLogger(zap.New(zap.UseDevMode(devLogging)))

	var cfg serverConfig
	if err := envconfig.Process("KUBE_QUERY", &cfg); err != nil {
		slog.Error("Failed to read environment configuration", "error", err)
		os.Exit(1)
	}

	providerCfg := agent.ConfigFromEnv()
	provider, err := agent.NewProvider(providerCfg)
	if err != nil {
		slog.Error("Failed to create model provider", "error", err)
		os.Exit(1)
	}
	if !provider.Available() {
		slog.Error("Provider is not configured; set KUBE_QUERY_AI_API_KEY or use --demo", "provider", provider.Name())
		os.Exit(1)
	}

	var source cluster.Source
	if demoMode {
		source = cluster.NewDemo()
	} else {
		restCfg, err := config.GetConfig()
		if err != nil {
			slog.Error("Failed to load kubeconfig", "error", err)
			os.Exit(1)
		}
		c, err := client.New(restCfg, client.Options{Scheme: clientgoscheme.Scheme})
		if err != nil {
			slog.Error("Failed to create cluster client", "error", err)
			os.Exit(1)
		}
		source = cluster.NewKubernetes(c)
	}

	loop := agent.NewLoop(provider, tools.NewCatalog(source))
	if cfg.MaxIterations > 0 {
		loop.SetMaxIterations(cfg.MaxIterations)
	}

	console := webconsole.NewServer(loop, provider.Name(), webconsole.Config{
		MaxSessions: cfg.MaxSessions,
		SessionTTL:  time.Duration(cfg.SessionTTLMin) * time.Minute,
		RateLimit:   cfg.RateLimit,
		RateBurst:   cfg.RateBurst,
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           console.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go console.CleanupSessions(ctx)

	go func() {
		slog.Info("Query console starting", "addr", addr, "provider", provider.Name(), "demo", demoMode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
