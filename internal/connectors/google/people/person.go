package people

import (
	"google.golang.org/api/people/v1"

	"github.com/custodia-labs/wsbridge/internal/connectors/google"
	"github.com/custodia-labs/wsbridge/internal/core/domain"
)

// Person field masks.
const (
	contactFields = "names,emailAddresses,phoneNumbers,photos"
	profileFields = "names,emailAddresses,photos"
)

// toContact converts an API person to the domain record.
func toContact(op string, p *people.Person) (domain.Contact, error) {
	if p == nil || p.ResourceName == "" {
		return domain.Contact{}, google.MalformedResponse(op, "person without resource name")
	}

	out := domain.Contact{
		ResourceName: p.ResourceName,
		ETag:         p.Etag,
		PhotoURL:     firstPhoto(p.Photos),
	}
	if n := firstName(p.Names); n != nil {
		out.DisplayName = n.DisplayName
		out.GivenName = n.GivenName
		out.FamilyName = n.FamilyName
	}
	for _, e := range p.EmailAddresses {
		if e != nil && e.Value != "" {
			out.Emails = append(out.Emails, domain.ContactValue{Value: e.Value, Type: e.Type})
		}
	}
	for _, ph := range p.PhoneNumbers {
		if ph != nil && ph.Value != "" {
			out.Phones = append(out.Phones, domain.ContactValue{Value: ph.Value, Type: ph.Type})
		}
	}
	return out, nil
}

func toContacts(op string, ps []*people.Person) ([]domain.Contact, error) {
	out := make([]domain.Contact, 0, len(ps))
	for _, p := range ps {
		c, err := toContact(op, p)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// toProfile reduces a person to the profile shape.
func toProfile(p *people.Person) domain.UserProfile {
	var out domain.UserProfile
	if p == nil {
		return out
	}
	if n := firstName(p.Names); n != nil {
		out.DisplayName = n.DisplayName
	}
	for _, e := range p.EmailAddresses {
		if e != nil && e.Value != "" {
			out.Email = e.Value
			break
		}
	}
	out.PhotoURL = firstPhoto(p.Photos)
	return out
}

func firstName(names []*people.Name) *people.Name {
	for _, n := range names {
		if n != nil {
			return n
		}
	}
	return nil
}

func firstPhoto(photos []*people.Photo) string {
	for _, ph := range photos {
		if ph != nil && ph.Url != "" {
			return ph.Url
		}
	}
	return ""
}
