package seed

import (
	"context"
	"errors"
	"testing"
	"time"

	"mentorbooking/pkg/logger"
	"mentorbooking/pkg/model"
	"mentorbooking/pkg/validation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2027, 4, 15, 17, 45, 0, 0, time.UTC)

func TestSlotStarts_IncludesWindowEnd(t *testing.T) {
	base := time.Date(2027, 4, 15, 0, 0, 0, 0, time.UTC)

	starts, err := slotStarts(base, [2]int{10, 12})
	require.NoError(t, err)

	require.Len(t, starts, 5)
	assert.Equal(t, base.Add(10*time.Hour), starts[0])
	assert.Equal(t, base.Add(12*time.Hour), starts[4])
}

func TestGenerate(t *testing.T) {
	data, err := NewGenerator(7).Generate(Options{Mentors: 5, Days: 2, Day: day})
	require.NoError(t, err)
	require.Len(t, data.Mentors, 5)

	v := validation.New()
	mentorIDs := map[string]bool{}
	for _, m := range data.Mentors {
		require.NoError(t, v.Struct(m))
		assert.GreaterOrEqual(t, m.Experience, 2)
		assert.LessOrEqual(t, m.Experience, 8)
		assert.GreaterOrEqual(t, len(m.Skills), 2)
		assert.LessOrEqual(t, len(m.Skills), 4)
		mentorIDs[m.ID] = true
	}

	perMentor := map[string]int{}
	for _, s := range data.TimeSlots {
		require.True(t, mentorIDs[s.MentorID])
		_, err := uuid.Parse(s.ID)
		require.NoError(t, err)
		assert.False(t, s.Booked)
		assert.Equal(t, 30*time.Minute, s.EndTime.Sub(s.StartTime))
		assert.Equal(t, 0, s.StartTime.Minute()%30)
		assert.True(t, s.StartTime.Hour() >= 10 && s.StartTime.Hour() <= 16)

		y, m, d := s.StartTime.Date()
		assert.Equal(t, 2027, y)
		assert.Equal(t, time.April, m)
		assert.Contains(t, []int{15, 16}, d)
		perMentor[s.MentorID]++
	}
	for id, n := range perMentor {
		assert.Equal(t, 10, n, "mentor %s", id)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a, err := NewGenerator(42).Generate(Options{Mentors: 3, Day: day})
	require.NoError(t, err)
	b, err := NewGenerator(42).Generate(Options{Mentors: 3, Day: day})
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGenerate_RejectsZeroMentors(t *testing.T) {
	_, err := NewGenerator(1).Generate(Options{Day: day})
	assert.Error(t, err)
}

type putRecorder[T any] struct {
	items []*T
	err   error
}

func (p *putRecorder[T]) Put(ctx context.Context, item *T) error {
	if p.err != nil {
		return p.err
	}
	p.items = append(p.items, item)
	return nil
}

func TestSeeder_Write(t *testing.T) {
	data, err := NewGenerator(3).Generate(Options{Mentors: 2, Day: day})
	require.NoError(t, err)

	mentors := &putRecorder[model.Mentor]{}
	slots := &putRecorder[model.TimeSlot]{}
	require.NoError(t, NewSeeder(mentors, slots, logger.NewNop()).Write(context.Background(), data))
	assert.Len(t, mentors.items, 2)
	assert.Len(t, slots.items, len(data.TimeSlots))

	failing := &putRecorder[model.Mentor]{err: errors.New("down")}
	slots = &putRecorder[model.TimeSlot]{}
	err = NewSeeder(failing, slots, logger.NewNop()).Write(context.Background(), data)
	assert.Error(t, err)
	assert.Empty(t, slots.items)
}
