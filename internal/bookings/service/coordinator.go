package service

import (
	"context"
	"errors"

	bookingserrors "mentorbooking/internal/bookings/errors"
	mentorserrors "mentorbooking/internal/mentors/errors"
	timeslotserrors "mentorbooking/internal/timeslots/errors"
	apperrors "mentorbooking/pkg/errors"
	"mentorbooking/pkg/model"
	"mentorbooking/pkg/sanitizer"
	"mentorbooking/pkg/validation"
)

func (s *bookingService) Create(ctx context.Context, mentorID, timeSlotID, studentEmail string) (*model.Booking, error) {
	studentEmail = sanitizer.NormalizeEmail(studentEmail)

	req := model.CreateBookingRequest{MentorID: mentorID, TimeSlotID: timeSlotID}
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.InvalidInput("Invalid booking request", err)
	}

	mentor, err := s.getMentor(ctx, mentorID)
	if err != nil {
		return nil, err
	}

	slot, err := s.getTimeSlot(ctx, timeSlotID)
	if err != nil {
		return nil, err
	}

	if slot.MentorID != mentor.ID {
		return nil, apperrors.BusinessRule("Time slot does not belong to the requested mentor").
			WithReason("MENTOR_TIME_SLOT_MISMATCH", bookingserrors.ErrMentorTimeSlotMismatch)
	}
	if slot.Booked {
		return nil, apperrors.BusinessRule("Time slot already booked").
			WithReason("TIME_SLOT_ALREADY_BOOKED", bookingserrors.ErrTimeSlotAlreadyBooked)
	}
	now := s.now().UTC()
	if now.After(slot.StartTime) {
		return nil, apperrors.BusinessRule("Time slot has already started").
			WithReason("TIME_SLOT_EXPIRED", bookingserrors.ErrTimeSlotExpired)
	}

	if err := s.setBooked(ctx, slot.ID, true); err != nil {
		return nil, err
	}

	booking := &model.Booking{
		ID:           s.newID(),
		MentorID:     mentor.ID,
		TimeSlotID:   slot.ID,
		StartTime:    slot.StartTime,
		EndTime:      slot.EndTime,
		MentorEmail:  mentor.Email,
		StudentEmail: studentEmail,
		CreatedAt:    now,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to store booking after reserving time slot",
			"booking_id", booking.ID,
			"time_slot_id", slot.ID,
			"student_email", studentEmail,
			"reconciliation_required", true,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"booking_id", booking.ID,
		"mentor_id", booking.MentorID,
		"time_slot_id", booking.TimeSlotID,
		"start_time", booking.StartTime,
	)

	if err := s.notify(ctx, model.NotificationBookingCreated, booking); err != nil {
		return nil, err
	}

	return booking, nil
}

func (s *bookingService) Cancel(ctx context.Context, bookingID, requesterEmail string) error {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return s.bookingLookupError(bookingID, err)
	}

	if booking.StudentEmail != sanitizer.NormalizeEmail(requesterEmail) {
		s.cfg.Log.Warn("Booking cancellation rejected",
			"booking_id", bookingID,
			"requester_email", requesterEmail,
		)
		return apperrors.Forbidden("Only the student who booked can cancel").
			WithReason("NOT_BOOKING_OWNER", bookingserrors.ErrNotBookingOwner)
	}

	if _, err := s.getMentor(ctx, booking.MentorID); err != nil {
		return err
	}
	if _, err := s.getTimeSlot(ctx, booking.TimeSlotID); err != nil {
		return err
	}

	if err := s.setBooked(ctx, booking.TimeSlotID, false); err != nil {
		return err
	}

	if err := s.bookings.Delete(ctx, bookingID); err != nil {
		s.cfg.Log.Error("Failed to delete booking after releasing time slot",
			"booking_id", bookingID,
			"time_slot_id", booking.TimeSlotID,
			"reconciliation_required", true,
			"error", err,
		)
		return apperrors.WriteConflict("Failed to delete booking", errors.Join(bookingserrors.ErrBookingDeleteFailed, err)).
			WithReason("BOOKING_DELETE_FAILED", nil)
	}

	s.cfg.Log.Info("Booking cancelled successfully",
		"booking_id", bookingID,
		"time_slot_id", booking.TimeSlotID,
	)

	return s.notify(ctx, model.NotificationBookingCancelled, booking)
}

func (s *bookingService) getMentor(ctx context.Context, id string) (*model.Mentor, error) {
	mentor, err := s.mentors.GetByID(ctx, id)
	if err == nil {
		return mentor, nil
	}
	if errors.Is(err, mentorserrors.ErrNotFound) {
		return nil, apperrors.NotFoundWithID("Mentor", id).
			WithReason("MENTOR_NOT_FOUND", errors.Join(bookingserrors.ErrMentorNotFound, err))
	}
	s.cfg.Log.Error("Failed to get mentor", "mentor_id", id, "error", err)
	return nil, apperrors.Internal("Failed to retrieve mentor", err)
}

func (s *bookingService) getTimeSlot(ctx context.Context, id string) (*model.TimeSlot, error) {
	slot, err := s.timeSlots.GetByID(ctx, id)
	if err == nil {
		return slot, nil
	}
	if errors.Is(err, timeslotserrors.ErrNotFound) {
		return nil, apperrors.NotFoundWithID("Time slot", id).
			WithReason("TIME_SLOT_NOT_FOUND", errors.Join(bookingserrors.ErrTimeSlotNotFound, err))
	}
	s.cfg.Log.Error("Failed to get time slot", "time_slot_id", id, "error", err)
	return nil, apperrors.Internal("Failed to retrieve time slot", err)
}

// setBooked flips the slot flag with a conditional write. A write that is
// not applied is final for this call.
func (s *bookingService) setBooked(ctx context.Context, id string, booked bool) error {
	_, err := s.timeSlots.UpdateBooked(ctx, id, booked)
	if err == nil {
		return nil
	}
	if errors.Is(err, timeslotserrors.ErrUpdateNotApplied) {
		s.cfg.Log.Warn("Time slot update not applied",
			"time_slot_id", id,
			"booked", booked,
		)
		return apperrors.WriteConflict("Time slot could not be updated", errors.Join(bookingserrors.ErrTimeSlotUpdateFailed, err)).
			WithReason("TIME_SLOT_UPDATE_FAILED", nil)
	}
	s.cfg.Log.Error("Failed to update time slot", "time_slot_id", id, "booked", booked, "error", err)
	return apperrors.Internal("Failed to update time slot", err)
}
