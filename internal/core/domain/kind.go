package domain

// ResourceKind identifies a resource family served by one adapter.
type ResourceKind string

// Resource kinds.
const (
	KindDocuments      ResourceKind = "documents"
	KindCalendarEvents ResourceKind = "calendar_events"
	KindMailMessages   ResourceKind = "mail_messages"
	KindContacts       ResourceKind = "contacts"
	KindTasks          ResourceKind = "tasks"
)

// AllKinds lists every resource kind in adapter order.
func AllKinds() []ResourceKind {
	return []ResourceKind{KindDocuments, KindCalendarEvents, KindMailMessages, KindContacts, KindTasks}
}

// Cached returns true for kinds the layer keeps a cache for.
// Contacts and tasks are always read fresh.
func (k ResourceKind) Cached() bool {
	switch k {
	case KindDocuments, KindCalendarEvents, KindMailMessages:
		return true
	default:
		return false
	}
}

// IsValid returns true if the kind is recognised.
func (k ResourceKind) IsValid() bool {
	switch k {
	case KindDocuments, KindCalendarEvents, KindMailMessages, KindContacts, KindTasks:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k ResourceKind) String() string {
	return string(k)
}
