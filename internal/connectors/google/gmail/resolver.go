package gmail

// ResolveWebURL returns the browser URL of a message.
func ResolveWebURL(messageID string) string {
	if messageID == "" {
		return ""
	}
	return "https://mail.google.com/mail/u/0/#all/" + messageID
}
