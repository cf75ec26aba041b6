package model

import "time"

type NotificationEvent string

const (
	NotificationBookingCreated   NotificationEvent = "booking.created"
	NotificationBookingCancelled NotificationEvent = "booking.cancelled"
)

// Verb is the past-tense word used in message subjects.
func (e NotificationEvent) Verb() string {
	switch e {
	case NotificationBookingCreated:
		return "created"
	case NotificationBookingCancelled:
		return "cancelled"
	default:
		return string(e)
	}
}

type Notification struct {
	EventType      NotificationEvent   `json:"eventType" validate:"required,oneof=booking.created booking.cancelled"`
	RecipientEmail string              `json:"recipientEmail" validate:"required,email"`
	TemplateID     string              `json:"templateId" validate:"required"`
	BookingID      string              `json:"bookingId" validate:"required"`
	Payload        NotificationPayload `json:"payload" validate:"required"`
}

type NotificationPayload struct {
	CounterpartyEmail string    `json:"counterpartyEmail" validate:"required,email"`
	StartTime         time.Time `json:"startTime" validate:"required"`
	EndTime           time.Time `json:"endTime" validate:"required,gtfield=StartTime"`
}
