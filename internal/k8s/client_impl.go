package k8s

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/alpha-hack-program/cluster-insights-mcp/internal/capacity"
	"github.com/alpha-hack-program/cluster-insights-mcp/internal/instrumentation"
)

// kubernetesClient implements the Client interface using client-go.
type kubernetesClient struct {
	clientset kubernetes.Interface
	config    *ClientConfig
}

// NewClient creates a Kubernetes client with the given configuration.
func NewClient(config *ClientConfig) (Client, error) {
	if config == nil {
		return nil, fmt.Errorf("client configuration is required")
	}

	// Set defaults
	if config.QPSLimit == 0 {
		config.QPSLimit = DefaultQPSLimit
	}
	if config.BurstLimit == 0 {
		config.BurstLimit = DefaultBurstLimit
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout * time.Second
	}

	var restConfig *rest.Config
	var err error
	if config.InCluster {
		if err := validateInClusterEnvironment(); err != nil {
			return nil, fmt.Errorf("in-cluster authentication not available: %w", err)
		}
		restConfig, err = rest.InClusterConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load in-cluster config: %w", err)
		}
		if config.Logger != nil {
			config.Logger.Info("Using in-cluster authentication")
		}
	} else {
		restConfig, err = loadKubeconfig(config.KubeconfigPath, config.Context)
		if err != nil {
			return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
		}
		if config.Logger != nil {
			config.Logger.Info("Using kubeconfig authentication", "context", config.Context)
		}
	}

	restConfig.QPS = config.QPSLimit
	restConfig.Burst = config.BurstLimit
	restConfig.Timeout = config.Timeout

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create clientset: %w", err)
	}

	return &kubernetesClient{clientset: clientset, config: config}, nil
}

// NewClientFromClientset wraps an existing clientset, mainly for tests
// using the client-go fake.
func NewClientFromClientset(clientset kubernetes.Interface) Client {
	return &kubernetesClient{clientset: clientset, config: &ClientConfig{}}
}

// validateInClusterEnvironment checks that the service account files the
// in-cluster config needs are present.
func validateInClusterEnvironment() error {
	if _, err := os.Stat(DefaultTokenPath); os.IsNotExist(err) {
		return fmt.Errorf("service account token not found at %s", DefaultTokenPath)
	}
	if _, err := os.Stat(DefaultCACertPath); os.IsNotExist(err) {
		return fmt.Errorf("service account CA certificate not found at %s", DefaultCACertPath)
	}
	return nil
}

// loadKubeconfig resolves the kubeconfig path (explicit flag, then
// KUBECONFIG, then default loading rules) and builds a rest.Config for
// the selected context.
func loadKubeconfig(path, contextName string) (*rest.Config, error) {
	if path == "" {
		if kconf := os.Getenv("KUBECONFIG"); kconf != "" {
			if strings.HasPrefix(kconf, "~/") {
				uhd, _ := os.UserHomeDir()
				kconf = filepath.Join(uhd, kconf[2:])
			}
			path = kconf
		}
	}

	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	if path != "" {
		loadingRules.ExplicitPath = path
	}

	overrides := &clientcmd.ConfigOverrides{}
	if contextName != "" {
		overrides.CurrentContext = contextName
	}

	return clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, overrides).ClientConfig()
}

// instrumentList wraps an inventory list call with a client span and,
// when metrics are configured, a list counter and duration histogram.
func (c *kubernetesClient) instrumentList(ctx context.Context, resource string, fn func(context.Context) error) error {
	ctx, span := instrumentation.StartListSpan(ctx, resource)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	duration := time.Since(start)

	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
		instrumentation.SetSpanError(span, err)
	} else {
		instrumentation.SetSpanSuccess(span)
	}
	if c.config.Metrics != nil {
		c.config.Metrics.RecordSnapshotList(ctx, resource, status, duration)
	}
	return err
}

// ListNodes returns the node inventory as plain records.
func (c *kubernetesClient) ListNodes(ctx context.Context) ([]capacity.NodeData, error) {
	var nodes []capacity.NodeData
	err := c.instrumentList(ctx, "nodes", func(ctx context.Context) error {
		nodeList, err := c.clientset.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
		if err != nil {
			return fmt.Errorf("failed to list nodes: %w", err)
		}

		nodes = make([]capacity.NodeData, 0, len(nodeList.Items))
		for i := range nodeList.Items {
			nodes = append(nodes, toNodeData(&nodeList.Items[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

// ListPods returns every pod across all namespaces as plain records.
func (c *kubernetesClient) ListPods(ctx context.Context) ([]capacity.PodData, error) {
	var pods []capacity.PodData
	err := c.instrumentList(ctx, "pods", func(ctx context.Context) error {
		podList, err := c.clientset.CoreV1().Pods(metav1.NamespaceAll).List(ctx, metav1.ListOptions{})
		if err != nil {
			return fmt.Errorf("failed to list pods: %w", err)
		}

		pods = make([]capacity.PodData, 0, len(podList.Items))
		for i := range podList.Items {
			pods = append(pods, toPodData(&podList.Items[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pods, nil
}

// ListNamespaces returns all namespace names.
func (c *kubernetesClient) ListNamespaces(ctx context.Context) ([]string, error) {
	var names []string
	err := c.instrumentList(ctx, "namespaces", func(ctx context.Context) error {
		nsList, err := c.clientset.CoreV1().Namespaces().List(ctx, metav1.ListOptions{})
		if err != nil {
			return fmt.Errorf("failed to list namespaces: %w", err)
		}

		names = make([]string, 0, len(nsList.Items))
		for _, ns := range nsList.Items {
			names = append(names, ns.Name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// GetClusterHealth summarizes node readiness.
func (c *kubernetesClient) GetClusterHealth(ctx context.Context) (*ClusterHealth, error) {
	nodeList, err := c.clientset.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}

	health := &ClusterHealth{TotalNodes: len(nodeList.Items)}
	for _, node := range nodeList.Items {
		for _, cond := range node.Status.Conditions {
			if cond.Type == corev1.NodeReady && cond.Status == corev1.ConditionTrue {
				health.ReadyNodes++
				break
			}
		}
	}

	switch {
	case health.TotalNodes == 0:
		health.Status = "unknown"
	case health.ReadyNodes == health.TotalNodes:
		health.Status = "healthy"
	case health.ReadyNodes > 0:
		health.Status = "degraded"
	default:
		health.Status = "unhealthy"
	}
	return health, nil
}
