// Package connectors groups the provider adapters. Each subpackage talks to
// one external API family and implements the driven provider ports.
//
// Adapters are created once at startup over a shared client and handed to
// services.NewWorkspace.
package connectors
