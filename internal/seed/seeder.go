package seed

import (
	"context"
	"fmt"

	"mentorbooking/pkg/logger"
	"mentorbooking/pkg/model"
)

type MentorWriter interface {
	Put(ctx context.Context, mentor *model.Mentor) error
}

type TimeSlotWriter interface {
	Put(ctx context.Context, slot *model.TimeSlot) error
}

type Seeder struct {
	mentors MentorWriter
	slots   TimeSlotWriter
	log     *logger.Logger
}

func NewSeeder(mentors MentorWriter, slots TimeSlotWriter, log *logger.Logger) *Seeder {
	return &Seeder{mentors: mentors, slots: slots, log: log}
}

// Write stores mentors before their slots and stops at the first failure.
func (s *Seeder) Write(ctx context.Context, data *Dataset) error {
	for _, m := range data.Mentors {
		if err := s.mentors.Put(ctx, m); err != nil {
			return fmt.Errorf("seed mentor %s: %w", m.ID, err)
		}
	}
	for _, slot := range data.TimeSlots {
		if err := s.slots.Put(ctx, slot); err != nil {
			return fmt.Errorf("seed time slot %s: %w", slot.ID, err)
		}
	}

	s.log.Info("Seed data written successfully",
		"mentors", len(data.Mentors),
		"time_slots", len(data.TimeSlots),
	)
	return nil
}
