package model

import (
	"time"
)

type Booking struct {
	ID           string    `json:"id" bson:"_id"`
	MentorID     string    `json:"mentorId" bson:"mentor_id"`
	TimeSlotID   string    `json:"timeSlotId" bson:"time_slot_id"`
	StartTime    time.Time `json:"startTime" bson:"start_time"`
	EndTime      time.Time `json:"endTime" bson:"end_time"`
	MentorEmail  string    `json:"mentorEmail" bson:"mentor_email"`
	StudentEmail string    `json:"studentEmail" bson:"student_email"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
}

type CreateBookingRequest struct {
	MentorID   string `json:"mentorId" validate:"required,uuid"`
	TimeSlotID string `json:"timeSlotId" validate:"required,uuid"`
}

type BookingPeriod string

const (
	BookingPeriodAll        BookingPeriod = ""
	BookingPeriodUpcoming   BookingPeriod = "upcoming"
	BookingPeriodHistorical BookingPeriod = "historical"
)

type BookingFilter struct {
	Period BookingPeriod `json:"date" validate:"omitempty,oneof=upcoming historical"`
	// StudentEmail restricts results to one student when set.
	StudentEmail string `json:"studentEmail" validate:"omitempty,email"`
}
