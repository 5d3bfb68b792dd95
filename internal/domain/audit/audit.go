package audit

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Resource names the kind of entity an audit event is about.
type Resource string

const (
	ResourceCustomer    Resource = "cliente"
	ResourceKart        Resource = "kart"
	ResourceReservation Resource = "reserva"
	ResourceReport      Resource = "reporte"
)

// Action represents the console action that occurred.
type Action string

const (
	ActionCreate      Action = "create"
	ActionUpdate      Action = "update"
	ActionDelete      Action = "delete"
	ActionSendReceipt Action = "send_receipt"
	ActionEmailReport Action = "email_report"
	ActionExport      Action = "export"
)

// ErrInvalidEvent is returned when an event lacks its action or resource.
var ErrInvalidEvent = errors.New("audit event requires action and resource")

// Event is a single console audit log entry. Only the console's own actions
// are recorded; customers, karts and reservations live in the collaborator.
type Event struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Action       Action    `json:"action"`
	ResourceType Resource  `json:"resource_type"`
	ResourceID   string    `json:"resource_id"`
	Description  string    `json:"description"`
	IPAddress    string    `json:"ip_address"`
	UserAgent    string    `json:"user_agent"`
}

// NewEvent creates an event stamped at now.
// PRE: action and resource are non-empty
// POST: Returns an Event with a fresh UUID
func NewEvent(action Action, resource Resource, now time.Time) Event {
	return Event{
		ID:           uuid.NewString(),
		Timestamp:    now,
		Action:       action,
		ResourceType: resource,
	}
}

// WithResourceID sets the collaborator id of the affected entity.
func (e Event) WithResourceID(id string) Event {
	e.ResourceID = id
	return e
}

// WithDescription sets the human-readable description.
func (e Event) WithDescription(desc string) Event {
	e.Description = desc
	return e
}

// WithRequest sets IP address and user agent from the HTTP request.
func (e Event) WithRequest(ipAddress, userAgent string) Event {
	e.IPAddress = ipAddress
	e.UserAgent = userAgent
	return e
}

// Validate checks the event can be stored.
func (e Event) Validate() error {
	if e.ID == "" || e.Action == "" || e.ResourceType == "" {
		return ErrInvalidEvent
	}
	return nil
}

// ActionLabel returns the Spanish label shown in the audit log.
func (e Event) ActionLabel() string {
	switch e.Action {
	case ActionCreate:
		return "Creación"
	case ActionUpdate:
		return "Modificación"
	case ActionDelete:
		return "Eliminación"
	case ActionSendReceipt:
		return "Envío de comprobante"
	case ActionEmailReport:
		return "Envío de reporte"
	case ActionExport:
		return "Exportación"
	}
	return string(e.Action)
}
