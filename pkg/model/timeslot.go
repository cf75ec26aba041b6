package model

import "time"

type TimeSlot struct {
	ID        string    `json:"id" bson:"_id" validate:"required"`
	MentorID  string    `json:"mentorId" bson:"mentor_id" validate:"required"`
	StartTime time.Time `json:"startTime" bson:"start_time" validate:"required"`
	EndTime   time.Time `json:"endTime" bson:"end_time" validate:"required,gtfield=StartTime"`
	Booked    bool      `json:"booked" bson:"booked"`
}

// IsActive reports whether the slot can still be offered at now.
func (s *TimeSlot) IsActive(now time.Time) bool {
	return !s.Booked && !s.StartTime.Before(now)
}
