package service

import (
	"context"
	"errors"

	mentorserrors "mentorbooking/internal/mentors/errors"
	"mentorbooking/internal/mentors/repository"
	"mentorbooking/pkg/config"
	apperrors "mentorbooking/pkg/errors"
	"mentorbooking/pkg/model"
	"mentorbooking/pkg/sanitizer"
	"mentorbooking/pkg/validation"
)

type MentorService interface {
	GetAll(ctx context.Context, filter model.MentorFilter) ([]*model.Mentor, error)
	GetByID(ctx context.Context, id string) (*model.Mentor, error)
}

type mentorService struct {
	repo      repository.MentorRepository
	validator *validation.Validator
	cfg       *config.Config
}

func NewMentorService(
	repo repository.MentorRepository,
	validator *validation.Validator,
	cfg *config.Config,
) MentorService {
	return &mentorService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *mentorService) GetAll(ctx context.Context, filter model.MentorFilter) ([]*model.Mentor, error) {
	filter.Skills = sanitizer.NormalizeSkills(filter.Skills)

	if err := s.validator.Struct(filter); err != nil {
		s.cfg.Log.Warn("Mentor filter validation failed",
			"skills", filter.Skills,
			"error", err,
		)
		return nil, validation.InvalidInput("Invalid mentor filter", err)
	}

	var (
		mentors []*model.Mentor
		err     error
	)
	if filter.IsEmpty() {
		mentors, err = s.repo.GetAll(ctx)
	} else {
		mentors, err = s.repo.GetAllFiltered(ctx, filter)
	}
	if err != nil {
		s.cfg.Log.Error("Failed to list mentors",
			"skills", filter.Skills,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve mentors", err)
	}

	return mentors, nil
}

func (s *mentorService) GetByID(ctx context.Context, id string) (*model.Mentor, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Mentor ID cannot be empty")
	}

	mentor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mentorserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Mentor", id).WithReason("MENTOR_NOT_FOUND", err)
		}
		s.cfg.Log.Error("Failed to get mentor by ID",
			"id", id,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve mentor", err)
	}

	return mentor, nil
}
