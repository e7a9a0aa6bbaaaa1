// Package people adapts the Google People API to the contacts port.
package people

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/people/v1"

	"github.com/custodia-labs/wsbridge/internal/connectors/google"
	"github.com/custodia-labs/wsbridge/internal/core/domain"
	"github.com/custodia-labs/wsbridge/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.ContactsProvider = (*Provider)(nil)

const (
	// self is the resource name of the signed-in user.
	self = "people/me"

	// resourcePrefix qualifies bare person ids.
	resourcePrefix = "people/"

	// maxSearchSize is the largest page searchContacts accepts.
	maxSearchSize = 30
)

// Provider reads contacts through the People API.
type Provider struct {
	client *google.Client
	svc    *people.Service
}

// New creates a People provider on client.
func New(ctx context.Context, client *google.Client) (*Provider, error) {
	svc, err := google.NewPeopleService(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("create people service: %w", err)
	}
	return &Provider{client: client, svc: svc}, nil
}

// ListContacts fetches one page of the user's connections.
func (p *Provider) ListContacts(ctx context.Context, pageSize int, cursor string) (domain.Page[domain.Contact], error) {
	const op = "people.connections.list"

	resp, err := google.Call(ctx, p.client, op, func(ctx context.Context) (*people.ListConnectionsResponse, error) {
		call := p.svc.People.Connections.List(self).
			PersonFields(contactFields).
			PageSize(int64(domain.PageSizeOr(pageSize, domain.DefaultContactPageSize))).
			Context(ctx)
		if cursor != "" {
			call = call.PageToken(cursor)
		}
		return call.Do()
	})
	if err != nil {
		return domain.Page[domain.Contact]{}, err
	}

	contacts, err := toContacts(op, resp.Connections)
	if err != nil {
		return domain.Page[domain.Contact]{}, err
	}
	return domain.Page[domain.Contact]{Items: contacts, NextCursor: resp.NextPageToken}, nil
}

// GetContact fetches one person. A bare id is qualified with "people/".
func (p *Provider) GetContact(ctx context.Context, resourceName string) (domain.Contact, error) {
	const op = "people.get"
	if !strings.HasPrefix(resourceName, resourcePrefix) {
		resourceName = resourcePrefix + resourceName
	}

	person, err := google.Call(ctx, p.client, op, func(ctx context.Context) (*people.Person, error) {
		return p.svc.People.Get(resourceName).PersonFields(contactFields).Context(ctx).Do()
	})
	if err != nil {
		return domain.Contact{}, err
	}
	return toContact(op, person)
}

// SearchContacts runs the provider's prefix search over names, emails
// and phone numbers.
func (p *Provider) SearchContacts(ctx context.Context, text string) ([]domain.Contact, error) {
	const op = "people.searchContacts"

	resp, err := google.Call(ctx, p.client, op, func(ctx context.Context) (*people.SearchResponse, error) {
		return p.svc.People.SearchContacts().
			Query(text).
			ReadMask(contactFields).
			PageSize(maxSearchSize).
			Context(ctx).
			Do()
	})
	if err != nil {
		return nil, err
	}

	persons := make([]*people.Person, 0, len(resp.Results))
	for _, r := range resp.Results {
		if r != nil && r.Person != nil {
			persons = append(persons, r.Person)
		}
	}
	return toContacts(op, persons)
}

// GetProfile returns the signed-in user's profile.
func (p *Provider) GetProfile(ctx context.Context) (domain.UserProfile, error) {
	const op = "people.get.profile"

	person, err := google.Call(ctx, p.client, op, func(ctx context.Context) (*people.Person, error) {
		return p.svc.People.Get(self).PersonFields(profileFields).Context(ctx).Do()
	})
	if err != nil {
		return domain.UserProfile{}, err
	}
	return toProfile(person), nil
}
