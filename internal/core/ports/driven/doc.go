// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DriveProvider, CalendarProvider, MailProvider, ContactsProvider,
//     TasksProvider: one per provider API surface
//   - Initializer: one-time client preparation (discovery documents)
//   - TokenProvider: the bearer credential read by every transport
//   - Cache: per-kind record cache (documents, events, messages)
//   - ConfigStore: application configuration
//
// # Optional Interfaces
//
//   - Metrics: operational counters. NopMetrics is used when disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
