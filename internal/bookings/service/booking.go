package service

import (
	"context"
	"errors"
	"time"

	bookingserrors "mentorbooking/internal/bookings/errors"
	"mentorbooking/internal/bookings/repository"
	"mentorbooking/pkg/config"
	apperrors "mentorbooking/pkg/errors"
	"mentorbooking/pkg/model"
	"mentorbooking/pkg/sanitizer"
	"mentorbooking/pkg/validation"

	"github.com/google/uuid"
)

type MentorReader interface {
	GetByID(ctx context.Context, id string) (*model.Mentor, error)
}

type TimeSlotStore interface {
	GetByID(ctx context.Context, id string) (*model.TimeSlot, error)
	UpdateBooked(ctx context.Context, id string, booked bool) (*model.TimeSlot, error)
}

type NotificationDispatcher interface {
	Dispatch(ctx context.Context, notification model.Notification) error
}

// Requester identifies the authenticated caller of a read.
type Requester struct {
	Email string
	Admin bool
}

type BookingService interface {
	Create(ctx context.Context, mentorID, timeSlotID, studentEmail string) (*model.Booking, error)
	Cancel(ctx context.Context, bookingID, requesterEmail string) error
	GetAll(ctx context.Context, filter model.BookingFilter, requester Requester) ([]*model.Booking, error)
	GetByID(ctx context.Context, id string, requester Requester) (*model.Booking, error)
}

// bookingService is the only component that touches more than one
// collection. It holds no state between calls and takes no locks; the
// conditional slot update is the sole guard against racing creates.
type bookingService struct {
	mentors    MentorReader
	timeSlots  TimeSlotStore
	bookings   repository.BookingRepository
	dispatcher NotificationDispatcher
	validator  *validation.Validator
	cfg        *config.Config

	now   func() time.Time
	newID func() string
}

func NewBookingService(
	mentors MentorReader,
	timeSlots TimeSlotStore,
	bookings repository.BookingRepository,
	dispatcher NotificationDispatcher,
	validator *validation.Validator,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		mentors:    mentors,
		timeSlots:  timeSlots,
		bookings:   bookings,
		dispatcher: dispatcher,
		validator:  validator,
		cfg:        cfg,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

func (s *bookingService) GetAll(ctx context.Context, filter model.BookingFilter, requester Requester) ([]*model.Booking, error) {
	if !requester.Admin {
		filter.StudentEmail = requester.Email
	}
	filter.StudentEmail = sanitizer.NormalizeEmail(filter.StudentEmail)

	if err := s.validator.Struct(filter); err != nil {
		return nil, validation.InvalidInput("Invalid booking filter", err)
	}

	var (
		bookings []*model.Booking
		err      error
	)
	if filter.Period == model.BookingPeriodAll && filter.StudentEmail == "" {
		bookings, err = s.bookings.GetAll(ctx)
	} else {
		bookings, err = s.bookings.GetAllFiltered(ctx, filter, s.now().UTC())
	}
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings",
			"period", filter.Period,
			"student_email", filter.StudentEmail,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	return bookings, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string, requester Requester) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, s.bookingLookupError(id, err)
	}

	if !requester.Admin && booking.StudentEmail != sanitizer.NormalizeEmail(requester.Email) {
		return nil, apperrors.Forbidden("Only the student who booked can view this booking").
			WithReason("NOT_BOOKING_OWNER", bookingserrors.ErrNotBookingOwner)
	}

	return booking, nil
}

func (s *bookingService) bookingLookupError(id string, err error) error {
	if errors.Is(err, bookingserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Booking", id).WithReason("BOOKING_NOT_FOUND", err)
	}
	s.cfg.Log.Error("Failed to get booking by ID", "booking_id", id, "error", err)
	return apperrors.Internal("Failed to retrieve booking", err)
}
