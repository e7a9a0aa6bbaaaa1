package google

import (
	"context"
	"fmt"

	"google.golang.org/api/discovery/v1"

	"github.com/custodia-labs/wsbridge/internal/core/ports/driven"
	"github.com/custodia-labs/wsbridge/internal/logger"
)

// Ensure DiscoveryInitializer implements the interface.
var _ driven.Initializer = (*DiscoveryInitializer)(nil)

// API names a provider API and version.
type API struct {
	Name    string
	Version string
}

// RequiredAPIs are the APIs the layer talks to.
var RequiredAPIs = []API{
	{Name: "drive", Version: "v3"},
	{Name: "calendar", Version: "v3"},
	{Name: "gmail", Version: "v1"},
	{Name: "people", Version: "v1"},
	{Name: "tasks", Version: "v1"},
}

// DiscoveryInitializer checks, once per workspace, that each required API
// is published and answers with the expected description. It uses the API
// key, not the user's token, so it succeeds before sign-in.
type DiscoveryInitializer struct {
	client *Client
	apiKey string
	apis   []API
}

// NewDiscoveryInitializer creates an initializer for RequiredAPIs.
func NewDiscoveryInitializer(client *Client, apiKey string) *DiscoveryInitializer {
	return &DiscoveryInitializer{client: client, apiKey: apiKey, apis: RequiredAPIs}
}

// Init fetches each discovery document through the throttle.
func (d *DiscoveryInitializer) Init(ctx context.Context) error {
	svc, err := NewDiscoveryService(ctx, d.client, d.apiKey)
	if err != nil {
		return NormalizeError("discovery.init", err)
	}

	for _, api := range d.apis {
		op := fmt.Sprintf("discovery.apis.getRest(%s.%s)", api.Name, api.Version)
		doc, err := Call(ctx, d.client, op, func(ctx context.Context) (*discovery.RestDescription, error) {
			return svc.Apis.GetRest(api.Name, api.Version).Context(ctx).Do()
		})
		if err != nil {
			return err
		}
		if doc.Name != api.Name || doc.Version != api.Version {
			return MalformedResponse(op, fmt.Sprintf("got %s.%s", doc.Name, doc.Version))
		}
		logger.Debug("discovered %s %s (%s)", doc.Name, doc.Version, doc.Title)
	}
	return nil
}
