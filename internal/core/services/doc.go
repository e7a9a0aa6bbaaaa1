// Package services implements the driving port interfaces.
// Services contain the core logic of the integration layer: the session
// that owns the credential, read-through caching, cursor pagination and
// cache-aware batching. Provider calls go out through driven ports.
package services
