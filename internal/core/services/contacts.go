package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/wsbridge/internal/core/domain"
	"github.com/custodia-labs/wsbridge/internal/core/ports/driven"
	"github.com/custodia-labs/wsbridge/internal/core/ports/driving"
)

// Ensure ContactsService implements the interface.
var _ driving.ContactsService = (*ContactsService)(nil)

// ContactsService serves address-book records. Nothing is cached.
type ContactsService struct {
	provider driven.ContactsProvider
	opts     ServiceOptions
}

// NewContactsService creates a new contacts service.
func NewContactsService(provider driven.ContactsProvider, opts ServiceOptions) *ContactsService {
	return &ContactsService{provider: provider, opts: opts.withDefaults()}
}

// List fetches one page of contacts.
func (s *ContactsService) List(ctx context.Context, pageSize int, cursor string) (domain.Page[domain.Contact], error) {
	if err := s.opts.Ready(); err != nil {
		return domain.Page[domain.Contact]{}, err
	}
	return s.provider.ListContacts(ctx, domain.PageSizeOr(pageSize, domain.DefaultContactPageSize), cursor)
}

// ListAll follows cursors until every contact is listed.
func (s *ContactsService) ListAll(ctx context.Context) ([]domain.Contact, error) {
	return CollectPages(ctx, "people.connections.list", func(ctx context.Context, cursor string) (domain.Page[domain.Contact], error) {
		return s.List(ctx, domain.DefaultContactPageSize, cursor)
	}, contactKey)
}

// Get returns one contact. Bare ids are qualified with "people/".
func (s *ContactsService) Get(ctx context.Context, resourceName string) (domain.Contact, error) {
	if err := s.opts.Ready(); err != nil {
		return domain.Contact{}, err
	}
	resourceName = strings.TrimSpace(resourceName)
	if resourceName == "" {
		return domain.Contact{}, fmt.Errorf("%w: resource name is required", domain.ErrInvalidInput)
	}
	if !strings.HasPrefix(resourceName, "people/") {
		resourceName = "people/" + resourceName
	}
	return s.provider.GetContact(ctx, resourceName)
}

// Search runs the provider's prefix search over names, emails and phones.
func (s *ContactsService) Search(ctx context.Context, text string) ([]domain.Contact, error) {
	if err := s.opts.Ready(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: search text is required", domain.ErrInvalidInput)
	}
	return s.provider.SearchContacts(ctx, text)
}

// Profile returns the signed-in user's profile.
func (s *ContactsService) Profile(ctx context.Context) (domain.UserProfile, error) {
	if err := s.opts.Ready(); err != nil {
		return domain.UserProfile{}, err
	}
	return s.provider.GetProfile(ctx)
}

func contactKey(c domain.Contact) string { return c.ResourceName }
