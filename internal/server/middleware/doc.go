// Package middleware provides HTTP middleware for the cluster insights MCP
// server. These middleware functions handle security headers, request size
// limits, metrics collection, and other cross-cutting concerns.
package middleware
