// Package k8s provides the read-only cluster-access layer.
//
// It wraps client-go to list nodes, pods, and namespaces and converts the
// API objects into the plain inventory records the capacity engine
// consumes. Authentication supports both kubeconfig (with optional context
// selection) and in-cluster service account mode; QPS, burst, and request
// timeout are configurable to keep the server a polite API client.
//
// The client never mutates cluster state.
package k8s
