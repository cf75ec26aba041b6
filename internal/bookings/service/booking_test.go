package service

import (
	"context"
	"testing"
	"time"

	apperrors "mentorbooking/pkg/errors"
	"mentorbooking/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBookings(f *fixture) {
	f.bookings.bookings["past-a"] = &model.Booking{ID: "past-a", StudentEmail: studentA, StartTime: testNow.Add(-24 * time.Hour)}
	f.bookings.bookings["next-a"] = &model.Booking{ID: "next-a", StudentEmail: studentA, StartTime: testNow.Add(time.Hour)}
	f.bookings.bookings["next-b"] = &model.Booking{ID: "next-b", StudentEmail: studentB, StartTime: testNow.Add(2 * time.Hour)}
}

func ids(bookings []*model.Booking) []string {
	out := make([]string, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.ID)
	}
	return out
}

func TestGetAll_StudentSeesOwnBookings(t *testing.T) {
	f := newFixture()
	seedBookings(f)

	tests := []struct {
		name   string
		period model.BookingPeriod
		want   []string
	}{
		{name: "all", period: model.BookingPeriodAll, want: []string{"past-a", "next-a"}},
		{name: "upcoming", period: model.BookingPeriodUpcoming, want: []string{"next-a"}},
		{name: "historical", period: model.BookingPeriodHistorical, want: []string{"past-a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// A student cannot widen the scope by naming someone else.
			filter := model.BookingFilter{Period: tt.period, StudentEmail: studentB}
			got, err := f.svc.GetAll(context.Background(), filter, Requester{Email: studentA})
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, ids(got))
		})
	}
}

func TestGetAll_AdminSeesEveryone(t *testing.T) {
	f := newFixture()
	seedBookings(f)
	admin := Requester{Email: "ops@x.com", Admin: true}

	all, err := f.svc.GetAll(context.Background(), model.BookingFilter{}, admin)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	upcoming, err := f.svc.GetAll(context.Background(), model.BookingFilter{Period: model.BookingPeriodUpcoming}, admin)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"next-a", "next-b"}, ids(upcoming))
}

func TestGetAll_UnknownPeriod(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetAll(context.Background(), model.BookingFilter{Period: "tomorrow"}, Requester{Email: studentA})
	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, 400, appErr.StatusCode())
	assert.Equal(t, apperrors.KindValidation, appErr.Kind())
}

func TestGetByID_Access(t *testing.T) {
	f := newFixture()
	seedBookings(f)

	got, err := f.svc.GetByID(context.Background(), "next-a", Requester{Email: studentA})
	require.NoError(t, err)
	assert.Equal(t, "next-a", got.ID)

	_, err = f.svc.GetByID(context.Background(), "next-a", Requester{Email: studentB})
	assert.Equal(t, 403, apperrors.AsAppError(err).StatusCode())

	got, err = f.svc.GetByID(context.Background(), "next-a", Requester{Email: "ops@x.com", Admin: true})
	require.NoError(t, err)
	assert.Equal(t, studentA, got.StudentEmail)

	_, err = f.svc.GetByID(context.Background(), "missing", Requester{Email: studentA})
	assert.Equal(t, "BOOKING_NOT_FOUND", apperrors.AsAppError(err).Reason)
}
