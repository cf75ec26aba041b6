package service

import (
	"context"
	"errors"
	"fmt"

	bookingserrors "mentorbooking/internal/bookings/errors"
	apperrors "mentorbooking/pkg/errors"
	"mentorbooking/pkg/model"
)

// bookingNotifications shapes the mentor-facing and student-facing
// messages for one booking event. Each names the other party.
func (s *bookingService) bookingNotifications(event model.NotificationEvent, booking *model.Booking) []model.Notification {
	return []model.Notification{
		{
			EventType:      event,
			RecipientEmail: booking.MentorEmail,
			TemplateID:     s.cfg.MentorBookingTemplate,
			BookingID:      booking.ID,
			Payload: model.NotificationPayload{
				CounterpartyEmail: booking.StudentEmail,
				StartTime:         booking.StartTime,
				EndTime:           booking.EndTime,
			},
		},
		{
			EventType:      event,
			RecipientEmail: booking.StudentEmail,
			TemplateID:     s.cfg.StudentBookingTemplate,
			BookingID:      booking.ID,
			Payload: model.NotificationPayload{
				CounterpartyEmail: booking.MentorEmail,
				StartTime:         booking.StartTime,
				EndTime:           booking.EndTime,
			},
		},
	}
}

// notify attempts every notification even after one fails. Booking state is
// never rolled back here.
func (s *bookingService) notify(ctx context.Context, event model.NotificationEvent, booking *model.Booking) error {
	var errs []error
	for _, n := range s.bookingNotifications(event, booking) {
		if err := s.dispatcher.Dispatch(ctx, n); err != nil {
			errs = append(errs, fmt.Errorf("notify %s: %w", n.RecipientEmail, err))
		}
	}
	if len(errs) == 0 {
		return nil
	}

	err := errors.Join(errs...)
	s.cfg.Log.Error("Failed to dispatch booking notifications",
		"booking_id", booking.ID,
		"event", event,
		"failed", len(errs),
		"error", err,
	)
	return apperrors.DependencyFailure("Notification dispatch", errors.Join(bookingserrors.ErrNotificationFailed, err)).
		WithReason("NOTIFICATION_DISPATCH_FAILED", nil).
		WithDetails(map[string]any{"booking_id": booking.ID})
}
