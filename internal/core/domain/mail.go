package domain

// Well-known mail label ids.
const (
	LabelUnread = "UNREAD"
	LabelInbox  = "INBOX"
)

// Default mail queries.
const (
	DefaultMailQuery    = "is:unread"
	DefaultMailAllQuery = "is:inbox"
)

// MailSummary is what a message listing returns before details are fetched.
type MailSummary struct {
	ID       string
	ThreadID string
	Snippet  string
}

// MailMessage is a normalised mail record.
type MailMessage struct {
	ID             string
	ThreadID       string
	Snippet        string
	From           string
	To             string
	Subject        string
	Date           string
	LabelIDs       []string
	Unread         bool
	HasAttachments bool
	// HasBody is true when the message was fetched with its body.
	HasBody     bool
	Body        string
	Attachments []Attachment
}

// Attachment describes an attachment without its bytes.
type Attachment struct {
	Filename string
	MimeType string
	Size     int64
}

// MailLabel is a mailbox label.
type MailLabel struct {
	ID             string
	Name           string
	Type           string
	MessagesTotal  int64
	MessagesUnread int64
}

// MailFilter narrows a message listing.
type MailFilter struct {
	// Query is a provider search expression. Defaults to "is:unread".
	Query    string
	LabelIDs []string
	// IncludeBody resolves full bodies and attachment metadata.
	IncludeBody bool
}

// MailGetOptions controls a single message fetch.
type MailGetOptions struct {
	ForceRefresh bool
	IncludeBody  bool
}
