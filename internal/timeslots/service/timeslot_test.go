package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"mentorbooking/pkg/config"
	apperrors "mentorbooking/pkg/errors"
	"mentorbooking/pkg/logger"
	"mentorbooking/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockTimeSlotRepository struct {
	getActiveFunc func(ctx context.Context, mentorID string, now time.Time) ([]*model.TimeSlot, error)
}

func (m *mockTimeSlotRepository) GetAll(ctx context.Context) ([]*model.TimeSlot, error) {
	return []*model.TimeSlot{}, nil
}

func (m *mockTimeSlotRepository) GetByID(ctx context.Context, id string) (*model.TimeSlot, error) {
	return nil, nil
}

func (m *mockTimeSlotRepository) GetActiveByMentor(ctx context.Context, mentorID string, now time.Time) ([]*model.TimeSlot, error) {
	if m.getActiveFunc != nil {
		return m.getActiveFunc(ctx, mentorID, now)
	}
	return []*model.TimeSlot{}, nil
}

func (m *mockTimeSlotRepository) UpdateBooked(ctx context.Context, id string, booked bool) (*model.TimeSlot, error) {
	return nil, nil
}

func (m *mockTimeSlotRepository) Put(ctx context.Context, slot *model.TimeSlot) error {
	return nil
}

type mentorReaderFunc func(ctx context.Context, id string) (*model.Mentor, error)

func (f mentorReaderFunc) GetByID(ctx context.Context, id string) (*model.Mentor, error) {
	return f(ctx, id)
}

func newTestService(repo *mockTimeSlotRepository, mentors MentorReader, now time.Time) *timeSlotService {
	cfg := &config.Config{
		Log: logger.New(logger.Config{
			Level:   "info",
			Format:  logger.JSON,
			Service: "test",
		}),
	}
	svc := NewTimeSlotService(repo, mentors, cfg).(*timeSlotService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestGetActiveByMentorID_UsesCurrentTime(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	var gotMentor string
	var gotNow time.Time

	repo := &mockTimeSlotRepository{
		getActiveFunc: func(ctx context.Context, mentorID string, at time.Time) ([]*model.TimeSlot, error) {
			gotMentor, gotNow = mentorID, at
			return []*model.TimeSlot{{ID: "s-1", MentorID: mentorID}}, nil
		},
	}
	mentors := mentorReaderFunc(func(ctx context.Context, id string) (*model.Mentor, error) {
		return &model.Mentor{ID: id}, nil
	})

	slots, err := newTestService(repo, mentors, now).GetActiveByMentorID(context.Background(), "m-1")
	require.NoError(t, err)
	assert.Len(t, slots, 1)
	assert.Equal(t, "m-1", gotMentor)
	assert.True(t, gotNow.Equal(now))
}

func TestGetActiveByMentorID_UnknownMentor(t *testing.T) {
	listed := false
	repo := &mockTimeSlotRepository{
		getActiveFunc: func(ctx context.Context, mentorID string, at time.Time) ([]*model.TimeSlot, error) {
			listed = true
			return nil, nil
		},
	}
	mentors := mentorReaderFunc(func(ctx context.Context, id string) (*model.Mentor, error) {
		return nil, apperrors.NotFoundWithID("Mentor", id).WithReason("MENTOR_NOT_FOUND", nil)
	})

	_, err := newTestService(repo, mentors, time.Now()).GetActiveByMentorID(context.Background(), "m-9")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.False(t, listed)
}

func TestGetActiveByMentorID_StoreFailure(t *testing.T) {
	repo := &mockTimeSlotRepository{
		getActiveFunc: func(ctx context.Context, mentorID string, at time.Time) ([]*model.TimeSlot, error) {
			return nil, errors.New("server selection timeout")
		},
	}
	mentors := mentorReaderFunc(func(ctx context.Context, id string) (*model.Mentor, error) {
		return &model.Mentor{ID: id}, nil
	})

	_, err := newTestService(repo, mentors, time.Now()).GetActiveByMentorID(context.Background(), "m-1")
	assert.Equal(t, apperrors.CodeInternal, apperrors.AsAppError(err).Code)
}
