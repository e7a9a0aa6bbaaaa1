package domain

// Contact is a normalised address-book record.
// ResourceName ("people/c123") is its identifier.
type Contact struct {
	ResourceName string
	ETag         string
	DisplayName  string
	GivenName    string
	FamilyName   string
	Emails       []ContactValue
	Phones       []ContactValue
	PhotoURL     string
}

// ContactValue is a typed email address or phone number.
type ContactValue struct {
	Value string
	Type  string
}

// PrimaryEmail returns the first email address, if any.
func (c Contact) PrimaryEmail() string {
	if len(c.Emails) == 0 {
		return ""
	}
	return c.Emails[0].Value
}

// UserProfile is the signed-in user's basic profile.
type UserProfile struct {
	DisplayName string
	Email       string
	PhotoURL    string
}
