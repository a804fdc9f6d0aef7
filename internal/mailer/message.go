package mailer

import (
	"fmt"
	"strings"

	"notifysvc/internal/event"
)

type Message struct {
	Subject string
	Body    string
}

// Build maps an event type and entity id to the message sent to every
// recipient of the job.
func Build(eventType event.Type, entityID string) Message {
	var verb string
	switch eventType {
	case event.TypeCreated:
		verb = "Created"
	case event.TypeUpdated:
		verb = "Updated"
	case event.TypeDeleted:
		verb = "Deleted"
	default:
		verb = "Event"
	}

	subject := fmt.Sprintf("Passport %s: %s", verb, entityID)

	var body string
	if eventType == event.TypeDeleted {
		body = fmt.Sprintf("Passport %s has been deleted.", entityID)
	} else {
		body = fmt.Sprintf("A passport %s has been %s successfully.", entityID, strings.ToLower(verb))
	}

	return Message{Subject: subject, Body: body}
}
