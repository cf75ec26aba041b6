package service

import (
	"context"
	"time"

	"mentorbooking/internal/timeslots/repository"
	"mentorbooking/pkg/config"
	apperrors "mentorbooking/pkg/errors"
	"mentorbooking/pkg/model"
)

// MentorReader resolves the owning mentor so an unknown id reports 404
// instead of an empty list.
type MentorReader interface {
	GetByID(ctx context.Context, id string) (*model.Mentor, error)
}

type TimeSlotService interface {
	GetActiveByMentorID(ctx context.Context, mentorID string) ([]*model.TimeSlot, error)
}

type timeSlotService struct {
	repo    repository.TimeSlotRepository
	mentors MentorReader
	cfg     *config.Config
	now     func() time.Time
}

func NewTimeSlotService(
	repo repository.TimeSlotRepository,
	mentors MentorReader,
	cfg *config.Config,
) TimeSlotService {
	return &timeSlotService{
		repo:    repo,
		mentors: mentors,
		cfg:     cfg,
		now:     time.Now,
	}
}

func (s *timeSlotService) GetActiveByMentorID(ctx context.Context, mentorID string) ([]*model.TimeSlot, error) {
	if _, err := s.mentors.GetByID(ctx, mentorID); err != nil {
		return nil, err
	}

	slots, err := s.repo.GetActiveByMentor(ctx, mentorID, s.now().UTC())
	if err != nil {
		s.cfg.Log.Error("Failed to list active time slots",
			"mentor_id", mentorID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve time slots", err)
	}

	return slots, nil
}
