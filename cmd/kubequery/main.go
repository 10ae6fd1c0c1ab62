/*
kubequery - ask questions about a Kubernetes cluster in plain English

Usage:

	kubequery                                # Interactive shell
	kubequery "what pods are in kube-system" # One-shot question
	kubequery --demo                         # Canned cluster, no kubeconfig needed
	kubequery --provider openai              # Pick the model provider
*/
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/config"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/osagberg/kube-query-assist/internal/agent"
	"github.com/osagberg/kube-query-assist/internal/cluster"
	"github.com/osagberg/kube-query-assist/internal/tools"
)

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorGreen = "\033[32m"
	colorCyan  = "\033[36m"
	colorBold  = "\033[1m"
	colorDim   = "\033[2m"
)

var version = "dev"

var (
	providerName  string
	modelName     string
	endpoint      string
	maxIterations int
	demoMode      bool
	verbose       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "kubequery [question]",
		Short: "Natural-language queries against a Kubernetes cluster",
		Long: "kubequery answers plain-English questions about a cluster by letting\n" +
			"a model drive read-only cluster tools. Run it with no arguments for an\n" +
			"interactive shell, or pass a question for a one-shot answer.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&providerName, "provider", "", "Model provider: openai, anthropic, or noop (default from KUBE_QUERY_AI_PROVIDER)")
	rootCmd.PersistentFlags().StringVar(&modelName, "model", "", "Model name override")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "Model API endpoint override")
	rootCmd.PersistentFlags().IntVar(&maxIterations, "max-iterations", 0, "Maximum model invocations per question")
	rootCmd.PersistentFlags().BoolVar(&demoMode, "demo", false, "Answer from a canned demo cluster instead of a live one")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the kubequery version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("kubequery %s\n", version)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	// .env is optional; real env vars win
	_ = godotenv.Load()

	if verbose {
		ctrl.SetLogger(zap.New(zap.UseDevMode(true)))
	} else {
		ctrl.SetLogger(logr.Discard())
	}

	loop, provider, err := buildLoop()
	if err != nil {
		return err
	}

	if len(args) > 0 {
		fmt.Println(loop.Answer(ctx, strings.Join(args, " ")))
		return nil
	}
	return runShell(ctx, loop, provider)
}

// buildLoop wires the cluster source, tool catalog, and model provider
// into a ready dispatch loop.
func buildLoop() (*agent.Loop, agent.Provider, error) {
	cfg := agent.ConfigFromEnv()
	if providerName != "" {
		cfg.Provider = providerName
	}
	if modelName != "" {
		cfg.Model = modelName
	}
	if endpoint != "" {
		cfg.Endpoint = endpoint
	}

	provider, err := agent.NewProvider(cfg)
	if err != nil {
		return nil, nil, err
	}
	if !provider.Available() {
		return nil, nil, fmt.Errorf("provider %q is not configured; set KUBE_QUERY_AI_API_KEY or use --demo", provider.Name())
	}

	var source cluster.Source
	if demoMode {
		source = cluster.NewDemo()
	} else {
		restCfg, err := config.GetConfig()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load kubeconfig: %w", err)
		}
		c, err := client.New(restCfg, client.Options{Scheme: clientgoscheme.Scheme})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create cluster client: %w", err)
		}
		source = cluster.NewKubernetes(c)
	}

	loop := agent.NewLoop(provider, tools.NewCatalog(source))
	if maxIterations > 0 {
		loop.SetMaxIterations(maxIterations)
	}
	return loop, provider, nil
}

func runShell(ctx context.Context, loop *agent.Loop, provider agent.Provider) error {
	printBanner(provider.Name())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("%s%skubequery>%s ", colorBold, colorCyan, colorReset)
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit":
			fmt.Printf("%sGoodbye!%s\n", colorDim, colorReset)
			return nil
		case "help":
			printHelp()
			continue
		case "examples":
			printExamples()
			continue
		}

		fmt.Printf("%s%s%s\n\n", colorGreen, loop.Answer(ctx, line), colorReset)
	}
}

func printBanner(providerName string) {
	fmt.Printf("\n%s%s╔══════════════════════════════════════════════════════════════╗%s\n", colorBold, colorCyan, colorReset)
	fmt.Printf("%s%s║            🔍 KubeQuery Cluster Assistant                    ║%s\n", colorBold, colorCyan, colorReset)
	fmt.Printf("%s%s╚══════════════════════════════════════════════════════════════╝%s\n", colorBold, colorCyan, colorReset)
	fmt.Printf("%sProvider: %s — type 'help' for commands, 'exit' to quit%s\n\n", colorDim, providerName, colorReset)
}

func printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  help       Show this help")
	fmt.Println("  examples   Show example questions")
	fmt.Println("  exit       Leave the shell")
	fmt.Println()
	fmt.Println("Anything else is answered as a question about the cluster.")
	fmt.Println()
}

func printExamples() {
	examples := []string{
		"What namespaces are in the cluster?",
		"Show me all pods",
		"List pods in the kube-system namespace",
		"What nodes does the cluster have?",
		"Show me the services in the default namespace",
		"Give me a cluster overview",
	}
	fmt.Println("Example questions:")
	for _, e := range examples {
		fmt.Printf("  %s•%s %s\n", colorCyan, colorReset, e)
	}
	fmt.Println()
}
