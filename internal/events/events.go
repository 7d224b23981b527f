// Package events publishes marketplace domain events to RabbitMQ.
// Publishing is best effort: callers log failures and carry on, the database stays the record.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types, also used as queue names.
const (
	TypeUserRegistered           = "user.registered"
	TypeUserDeleted              = "user.deleted"
	TypeJobPosted                = "job.posted"
	TypeApplicationSubmitted     = "job.application_submitted"
	TypeAppointmentStatusChanged = "appointment.status_changed"
)

// Event is the envelope written to the broker.
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// New wraps payload in an envelope with a fresh id.
func New(eventType string, payload interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// Publisher delivers events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Noop discards every event. Used when AMQP_URL is empty.
type Noop struct{}

// Publish implements Publisher.
func (Noop) Publish(context.Context, Event) error { return nil }

// UserRegistered is published after a registration commits.
type UserRegistered struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// UserDeleted is published after a user and its dependent rows are removed.
type UserDeleted struct {
	UserID uint `json:"user_id"`
}

// JobPosted is published after a member posts a job.
type JobPosted struct {
	JobID        uint   `json:"job_id"`
	MemberUserID uint   `json:"member_user_id"`
	Category     string `json:"category"`
}

// ApplicationSubmitted is published when a caregiver applies to a job for the first time.
type ApplicationSubmitted struct {
	CaregiverUserID uint `json:"caregiver_user_id"`
	JobID           uint `json:"job_id"`
}

// AppointmentStatusChanged is published when an appointment moves between statuses.
type AppointmentStatusChanged struct {
	AppointmentID uint   `json:"appointment_id"`
	From          string `json:"from"`
	To            string `json:"to"`
}
