package service

import (
	"context"
	"errors"
	"sync"
	"time"

	bookingserrors "mentorbooking/internal/bookings/errors"
	mentorserrors "mentorbooking/internal/mentors/errors"
	timeslotserrors "mentorbooking/internal/timeslots/errors"
	"mentorbooking/pkg/config"
	"mentorbooking/pkg/logger"
	"mentorbooking/pkg/model"
	"mentorbooking/pkg/validation"
)

type fakeMentors struct {
	mentors map[string]*model.Mentor
	err     error
}

func (f *fakeMentors) GetByID(ctx context.Context, id string) (*model.Mentor, error) {
	if f.err != nil {
		return nil, f.err
	}
	m, ok := f.mentors[id]
	if !ok {
		return nil, mentorserrors.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

// fakeTimeSlots applies UpdateBooked atomically under its mutex, the same
// guarantee a single-document conditional update gives.
type fakeTimeSlots struct {
	mu        sync.Mutex
	slots     map[string]*model.TimeSlot
	updateErr error
	// beforeUpdate runs between the read checks and the conditional write.
	beforeUpdate func()
}

func (f *fakeTimeSlots) GetByID(ctx context.Context, id string) (*model.TimeSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[id]
	if !ok {
		return nil, timeslotserrors.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeTimeSlots) UpdateBooked(ctx context.Context, id string, booked bool) (*model.TimeSlot, error) {
	if f.beforeUpdate != nil {
		f.beforeUpdate()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	s, ok := f.slots[id]
	if !ok || s.Booked == booked {
		return nil, timeslotserrors.ErrUpdateNotApplied
	}
	s.Booked = booked
	cp := *s
	return &cp, nil
}

func (f *fakeTimeSlots) booked(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.slots[id].Booked
}

type fakeBookings struct {
	mu        sync.Mutex
	bookings  map[string]*model.Booking
	createErr error
	deleteErr error
	filters   []model.BookingFilter
}

func (f *fakeBookings) Create(ctx context.Context, booking *model.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	cp := *booking
	f.bookings[booking.ID] = &cp
	return nil
}

func (f *fakeBookings) GetAll(ctx context.Context) ([]*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookings) GetAllFiltered(ctx context.Context, filter model.BookingFilter, now time.Time) ([]*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, filter)
	out := make([]*model.Booking, 0)
	for _, b := range f.bookings {
		if filter.StudentEmail != "" && b.StudentEmail != filter.StudentEmail {
			continue
		}
		switch filter.Period {
		case model.BookingPeriodUpcoming:
			if b.StartTime.Before(now) {
				continue
			}
		case model.BookingPeriodHistorical:
			if !b.StartTime.Before(now) {
				continue
			}
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookings) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingserrors.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookings) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.bookings[id]; !ok {
		return bookingserrors.ErrNotFound
	}
	delete(f.bookings, id)
	return nil
}

func (f *fakeBookings) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bookings)
}

func (f *fakeBookings) bySlot(slotID string) []*model.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Booking
	for _, b := range f.bookings {
		if b.TimeSlotID == slotID {
			out = append(out, b)
		}
	}
	return out
}

type fakeDispatcher struct {
	mu   sync.Mutex
	sent []model.Notification
	// failFor makes Dispatch fail for this recipient.
	failFor string
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, n model.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor != "" && n.RecipientEmail == f.failFor {
		return errors.New("kafka: leader not available")
	}
	f.sent = append(f.sent, n)
	return nil
}

func (f *fakeDispatcher) notifications() []model.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Notification(nil), f.sent...)
}

const (
	mentorOneID   = "6f1b7c1e-8d0f-4b4a-9c43-0d7f4f3c2a11"
	mentorTwoID   = "0a8e5d9b-2f64-4c1e-b7a3-51d9e2c84f22"
	slotOneID     = "b3c2d1e0-7a6b-4c5d-8e9f-a0b1c2d3e4f5"
	slotOtherID   = "c4d3e2f1-8b7c-4d6e-9f0a-b1c2d3e4f5a6"
	slotPastID    = "d5e4f3a2-9c8d-4e7f-a01b-c2d3e4f5a6b7"
	studentA      = "a@x.com"
	studentB      = "b@x.com"
	mentorOneMail = "m1@mentors.io"
)

var (
	testNow   = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	slotStart = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
)

type fixture struct {
	svc        *bookingService
	mentors    *fakeMentors
	slots      *fakeTimeSlots
	bookings   *fakeBookings
	dispatcher *fakeDispatcher
}

func newFixture() *fixture {
	mentors := &fakeMentors{mentors: map[string]*model.Mentor{
		mentorOneID: {ID: mentorOneID, Name: "Mentor One", Email: mentorOneMail},
		mentorTwoID: {ID: mentorTwoID, Name: "Mentor Two", Email: "m2@mentors.io"},
	}}
	slots := &fakeTimeSlots{slots: map[string]*model.TimeSlot{
		slotOneID: {
			ID: slotOneID, MentorID: mentorOneID,
			StartTime: slotStart, EndTime: slotStart.Add(30 * time.Minute),
		},
		slotOtherID: {
			ID: slotOtherID, MentorID: mentorTwoID,
			StartTime: slotStart, EndTime: slotStart.Add(30 * time.Minute),
		},
		slotPastID: {
			ID: slotPastID, MentorID: mentorOneID,
			StartTime: testNow.Add(-time.Hour), EndTime: testNow.Add(-30 * time.Minute),
		},
	}}
	bookings := &fakeBookings{bookings: map[string]*model.Booking{}}
	dispatcher := &fakeDispatcher{}

	cfg := &config.Config{
		MentorBookingTemplate:  "MentorBookingTemplate",
		StudentBookingTemplate: "StudentBookingTemplate",
		Log: logger.New(logger.Config{
			Level:   "info",
			Format:  logger.JSON,
			Service: "test",
		}),
	}

	svc := NewBookingService(mentors, slots, bookings, dispatcher, validation.New(), cfg).(*bookingService)
	svc.now = func() time.Time { return testNow }

	return &fixture{
		svc:        svc,
		mentors:    mentors,
		slots:      slots,
		bookings:   bookings,
		dispatcher: dispatcher,
	}
}
