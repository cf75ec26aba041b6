package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrMentorNotFound         = errors.New("mentor not found")
	ErrTimeSlotNotFound       = errors.New("time slot not found")
	ErrMentorTimeSlotMismatch = errors.New("time slot does not belong to mentor")
	ErrTimeSlotAlreadyBooked  = errors.New("time slot already booked")
	ErrTimeSlotExpired        = errors.New("time slot already started")
	ErrTimeSlotUpdateFailed   = errors.New("time slot update failed")
	ErrBookingDeleteFailed    = errors.New("booking delete failed")
	ErrNotBookingOwner        = errors.New("requester does not own booking")
	ErrNotificationFailed     = errors.New("notification dispatch failed")
)
