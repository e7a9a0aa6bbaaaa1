// Package mcp provides an MCP (Model Context Protocol) server adapter for wsbridge.
// It publishes the workspace resources as tools an assistant can call.
package mcp

import "errors"

// ErrMissingLifecycle is returned when the workspace lifecycle is not provided.
var ErrMissingLifecycle = errors.New("mcp: workspace lifecycle is required")

// ErrNoResourceServices is returned when no resource service is provided.
var ErrNoResourceServices = errors.New("mcp: at least one resource service is required")
