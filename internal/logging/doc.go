// Package logging provides structured logging utilities for the
// cluster-insights-mcp server.
//
// It centralizes logging patterns around the standard library's slog
// package: a constructor selecting level and output format, attribute
// helpers for consistent key naming, and host/URL sanitization so that
// API server addresses never leak network topology into logs.
//
// Create a logger with standard attributes:
//
//	logger := logging.WithTool(slog.Default(), "get_cluster_capacity")
//	logger.Info("tool invoked", logging.Namespace("default"))
package logging
