package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/alpha-hack-program/cluster-insights-mcp/internal/instrumentation"
	"github.com/alpha-hack-program/cluster-insights-mcp/internal/k8s"
	"github.com/alpha-hack-program/cluster-insights-mcp/internal/logging"
	"github.com/alpha-hack-program/cluster-insights-mcp/internal/server"
	"github.com/alpha-hack-program/cluster-insights-mcp/internal/tools/insights"
)

// Transport type constants for the MCP server.
const (
	transportStdio          = "stdio"
	transportSSE            = "sse"
	transportStreamableHTTP = "streamable-http"
)

// serverInstructions is sent to MCP clients during initialization so models
// know what the server offers before listing tools.
const serverInstructions = "Kubernetes Cluster Insights providing resource analysis functions:" +
	"\n\n1. get_cluster_capacity - Get total cluster capacity, allocated resources, and availability" +
	"\n2. check_resource_fit - Check if specified resources can fit in the cluster" +
	"\n3. get_node_breakdown - Get detailed breakdown of each node's resources" +
	"\n4. get_namespace_usage - Get resource usage per namespace" +
	"\n5. get_pod_resource_stats - Get top pods by resource consumption" +
	"\n6. check_replica_capacity - Check if cluster can accommodate additional application replicas" +
	"\n\nAll functions query live Kubernetes cluster data via kubeconfig."

// newServeCmd creates the Cobra command for starting the MCP server.
func newServeCmd() *cobra.Command {
	var (
		kubeconfigPath string
		kubeContext    string
		qpsLimit       float32
		burstLimit     int
		debugMode      bool
		inCluster      bool
		logLevel       string
		logFormat      string

		// Transport options
		transport       string
		httpAddr        string
		sseEndpoint     string
		messageEndpoint string
		httpEndpoint    string

		// Metrics options
		enableMetrics bool
		metricsAddr   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP cluster insights server",
		Long: `Start the MCP cluster insights server to provide read-only capacity
analysis tools for Kubernetes clusters via the Model Context Protocol.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - sse: Server-Sent Events over HTTP
  - streamable-http: Streamable HTTP transport

Authentication modes:
  - Kubeconfig (default): Uses standard kubeconfig file authentication
  - In-cluster: Uses service account token when running inside a Kubernetes pod`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := ServeConfig{
				Transport:       transport,
				HTTPAddr:        httpAddr,
				SSEEndpoint:     sseEndpoint,
				MessageEndpoint: messageEndpoint,
				HTTPEndpoint:    httpEndpoint,
				KubeconfigPath:  kubeconfigPath,
				KubeContext:     kubeContext,
				QPSLimit:        qpsLimit,
				BurstLimit:      burstLimit,
				DebugMode:       debugMode,
				InCluster:       inCluster,
				LogLevel:        logLevel,
				LogFormat:       logFormat,
				Metrics: MetricsServeConfig{
					Enabled: enableMetrics,
					Addr:    metricsAddr,
				},
			}
			return runServe(config)
		},
	}

	// Add flags for configuring the server
	cmd.Flags().StringVar(&kubeconfigPath, "kubeconfig", "", "Path to the kubeconfig file (default: standard discovery via KUBECONFIG or ~/.kube/config)")
	cmd.Flags().StringVar(&kubeContext, "kube-context", "", "Kubeconfig context to use (default: current context)")
	cmd.Flags().Float32Var(&qpsLimit, "qps-limit", 20.0, "QPS limit for Kubernetes API calls (default: 20.0)")
	cmd.Flags().IntVar(&burstLimit, "burst-limit", 30, "Burst limit for Kubernetes API calls (default: 30)")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging (default: false)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, or error")
	cmd.Flags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")
	cmd.Flags().BoolVar(&inCluster, "in-cluster", false, "Use in-cluster authentication (service account token) instead of kubeconfig (default: false)")

	// Transport flags
	cmd.Flags().StringVar(&transport, "transport", transportStdio, "Transport type: stdio, sse, or streamable-http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", ":8080", "HTTP server address (for sse and streamable-http transports)")
	cmd.Flags().StringVar(&sseEndpoint, "sse-endpoint", "/sse", "SSE endpoint path (for sse transport)")
	cmd.Flags().StringVar(&messageEndpoint, "message-endpoint", "/message", "Message endpoint path (for sse transport)")
	cmd.Flags().StringVar(&httpEndpoint, "http-endpoint", "/mcp", "HTTP endpoint path (for streamable-http transport)")

	// Metrics flags
	metricsDefaults := defaultMetricsConfig()
	cmd.Flags().BoolVar(&enableMetrics, "enable-metrics-server", metricsDefaults.Enabled, "Serve Prometheus metrics on a dedicated listener (requires instrumentation to be enabled)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", metricsDefaults.Addr, "Listen address for the dedicated metrics server")

	return cmd
}

// runServe wires up the Kubernetes client, instrumentation, server context
// and MCP tools, then blocks serving the selected transport.
func runServe(config ServeConfig) error {
	logLevel := config.LogLevel
	if logLevel == "" {
		logLevel = "info"
	}
	if config.DebugMode {
		logLevel = "debug"
	}
	logFormat := config.LogFormat
	if logFormat == "" {
		logFormat = "text"
	}
	// stderr keeps stdout free for the stdio MCP transport
	logger := logging.New(os.Stderr, logLevel, logFormat)

	// Setup graceful shutdown - listen for both SIGINT and SIGTERM
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize OpenTelemetry instrumentation provider
	instrumentationConfig := instrumentation.DefaultConfig()
	instrumentationConfig.ServiceVersion = rootCmd.Version
	instrumentationProvider, err := instrumentation.NewProvider(shutdownCtx, instrumentationConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if shutdownErr := instrumentationProvider.Shutdown(context.Background()); shutdownErr != nil {
			if config.Transport != transportStdio {
				log.Printf("Error during instrumentation shutdown: %v", shutdownErr)
			}
		}
	}()

	if instrumentationProvider.Enabled() {
		logger.Info("OpenTelemetry instrumentation enabled",
			"metrics_exporter", instrumentationConfig.MetricsExporter,
			"tracing_exporter", instrumentationConfig.TracingExporter)
	}

	k8sConfig := &k8s.ClientConfig{
		KubeconfigPath: config.KubeconfigPath,
		Context:        config.KubeContext,
		InCluster:      config.InCluster,
		QPSLimit:       config.QPSLimit,
		BurstLimit:     config.BurstLimit,
		Timeout:        30 * time.Second,
		Logger:         logger,
		Metrics:        instrumentationProvider.Metrics(),
	}

	k8sClient, err := k8s.NewClient(k8sConfig)
	if err != nil {
		return fmt.Errorf("failed to create Kubernetes client: %w", err)
	}

	// Create server context with kubernetes client and shutdown context
	serverContextOptions := []server.Option{
		server.WithK8sClient(k8sClient),
		server.WithLogger(logger),
		server.WithVersion(rootCmd.Version),
		server.WithKubeconfig(config.KubeconfigPath, config.KubeContext),
		server.WithLogLevel(logLevel),
		server.WithInstrumentationProvider(instrumentationProvider),
	}
	if config.InCluster {
		serverContextOptions = append(serverContextOptions, server.WithInCluster(true))
	}

	serverContext, err := server.NewServerContext(shutdownCtx, serverContextOptions...)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		if err := serverContext.Shutdown(); err != nil {
			// Only log shutdown errors for non-stdio transports to avoid output interference
			if config.Transport != transportStdio {
				log.Printf("Error during server context shutdown: %v", err)
			}
		}
	}()

	// Create MCP server
	mcpSrv := mcpserver.NewMCPServer("cluster-insights-mcp", rootCmd.Version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithInstructions(serverInstructions),
	)

	// Register the capacity analysis tools
	if err := insights.RegisterInsightsTools(mcpSrv, serverContext); err != nil {
		return fmt.Errorf("failed to register insights tools: %w", err)
	}

	if config.Metrics.Addr == "" {
		config.Metrics.Addr = server.DefaultMetricsAddr
	}

	// Start the appropriate server based on transport type
	switch config.Transport {
	case transportStdio:
		// Don't print startup message for stdio mode as it interferes with MCP communication
		return runStdioServer(mcpSrv, config.Metrics, instrumentationProvider)
	case transportSSE:
		fmt.Printf("Starting MCP cluster insights server with %s transport...\n", config.Transport)
		return runSSEServer(mcpSrv, config.HTTPAddr, config.SSEEndpoint, config.MessageEndpoint, shutdownCtx, config.DebugMode, config.Metrics, instrumentationProvider)
	case transportStreamableHTTP:
		fmt.Printf("Starting MCP cluster insights server with %s transport...\n", config.Transport)
		return runStreamableHTTPServer(mcpSrv, config.HTTPAddr, config.HTTPEndpoint, shutdownCtx, instrumentationProvider, serverContext, config.Metrics)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, sse, streamable-http)", config.Transport)
	}
}
