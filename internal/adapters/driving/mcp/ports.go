package mcp

import (
	"github.com/custodia-labs/wsbridge/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server exposes.
// Tools are registered only for the resource services that are set.
type Ports struct {
	// Lifecycle initialises the workspace before the first tool call.
	Lifecycle driving.Lifecycle

	Drive    driving.DriveService
	Calendar driving.CalendarService
	Mail     driving.MailService
	Contacts driving.ContactsService
	Tasks    driving.TasksService
}

// Validate ensures the lifecycle and at least one resource service are set.
func (p *Ports) Validate() error {
	if p.Lifecycle == nil {
		return ErrMissingLifecycle
	}
	if p.Drive == nil && p.Calendar == nil && p.Mail == nil && p.Contacts == nil && p.Tasks == nil {
		return ErrNoResourceServices
	}
	return nil
}
