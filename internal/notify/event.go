package notify

import "time"

type EventType string

const (
	AppointmentCreated EventType = "appointment.created"
	ReminderRequested  EventType = "appointment.reminder_requested"
	StatusChanged      EventType = "appointment.status_changed"
)

// Event is the notification trigger emitted by the scheduling core.
type Event struct {
	ID   string    `json:"id"`
	Type EventType `json:"type"`

	BarbershopID  uint   `json:"barbershop_id"`
	AppointmentID uint   `json:"appointment_id"`
	BarberID      uint   `json:"barber_id"`
	CustomerID    uint   `json:"customer_id"`
	ActorID       uint   `json:"actor_id"`
	ActorRole     string `json:"actor_role"`

	Start time.Time `json:"start"`

	// Set for StatusChanged only.
	FromStatus string `json:"from_status,omitempty"`
	ToStatus   string `json:"to_status,omitempty"`

	OccurredAt time.Time `json:"occurred_at"`
}
