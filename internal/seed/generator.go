package seed

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"mentorbooking/pkg/model"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
)

const slotLength = 30 * time.Minute

var (
	firstNames = []string{"Ada", "Alan", "Barbara", "Edsger", "Grace", "Katherine", "Ken", "Linus", "Margaret", "Radia", "Tim", "Donald"}
	lastNames  = []string{"Lovelace", "Turing", "Liskov", "Dijkstra", "Hopper", "Johnson", "Thompson", "Torvalds", "Hamilton", "Perlman", "Berners-Lee", "Knuth"}
	skillPool  = []string{"nextjs", "reactjs", "nodejs", "aws"}
	// Availability windows as [start, end] UTC hours.
	windows = [][2]int{{10, 12}, {12, 14}, {14, 16}}
)

type Options struct {
	Mentors int
	// Days is the number of consecutive days that get slots, starting at Day.
	Days int
	// Day is any instant on the first seeded day; only the date is used.
	Day time.Time
}

type Dataset struct {
	Mentors   []*model.Mentor
	TimeSlots []*model.TimeSlot
}

// Generator produces random but reproducible seed data for a given seed.
type Generator struct {
	src *rand.ChaCha8
	rng *rand.Rand
}

func NewGenerator(seed uint64) *Generator {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	src := rand.NewChaCha8(key)
	return &Generator{src: src, rng: rand.New(src)}
}

func DefaultDay(now time.Time) time.Time {
	return now.UTC().AddDate(0, 6, 0)
}

func (g *Generator) Generate(opts Options) (*Dataset, error) {
	if opts.Mentors <= 0 {
		return nil, fmt.Errorf("mentor count must be positive, got %d", opts.Mentors)
	}
	if opts.Days <= 0 {
		opts.Days = 1
	}

	days, err := seedDays(opts.Day, opts.Days)
	if err != nil {
		return nil, err
	}

	data := &Dataset{}
	for i := 0; i < opts.Mentors; i++ {
		mentor, err := g.mentor()
		if err != nil {
			return nil, err
		}
		data.Mentors = append(data.Mentors, mentor)

		window := windows[g.rng.IntN(len(windows))]
		for _, day := range days {
			starts, err := slotStarts(day, window)
			if err != nil {
				return nil, err
			}
			for _, start := range starts {
				id, err := g.id()
				if err != nil {
					return nil, err
				}
				data.TimeSlots = append(data.TimeSlots, &model.TimeSlot{
					ID:        id,
					MentorID:  mentor.ID,
					StartTime: start,
					EndTime:   start.Add(slotLength),
					Booked:    false,
				})
			}
		}
	}
	return data, nil
}

func (g *Generator) mentor() (*model.Mentor, error) {
	id, err := g.id()
	if err != nil {
		return nil, err
	}
	first := firstNames[g.rng.IntN(len(firstNames))]
	last := lastNames[g.rng.IntN(len(lastNames))]

	return &model.Mentor{
		ID:         id,
		Name:       first + " " + last,
		Email:      strings.ToLower(first+"."+strings.ReplaceAll(last, "-", "")) + "@mentors.example.com",
		Skills:     g.skills(),
		Experience: 2 + g.rng.IntN(7),
	}, nil
}

// skills picks 2 to 4 distinct skills.
func (g *Generator) skills() []string {
	n := 2 + g.rng.IntN(len(skillPool)-1)
	perm := g.rng.Perm(len(skillPool))
	out := make([]string, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, skillPool[idx])
	}
	return out
}

func (g *Generator) id() (string, error) {
	id, err := uuid.NewRandomFromReader(g.src)
	if err != nil {
		return "", fmt.Errorf("failed to generate id: %w", err)
	}
	return id.String(), nil
}

func seedDays(day time.Time, count int) ([]time.Time, error) {
	y, m, d := day.UTC().Date()
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.DAILY,
		Count:   count,
		Dtstart: time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build day rule: %w", err)
	}
	return r.All(), nil
}

// slotStarts lists every half hour from the window start up to and including
// the window end.
func slotStarts(day time.Time, window [2]int) ([]time.Time, error) {
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:     rrule.MINUTELY,
		Interval: int(slotLength / time.Minute),
		Dtstart:  day.Add(time.Duration(window[0]) * time.Hour),
		Until:    day.Add(time.Duration(window[1]) * time.Hour),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build slot rule: %w", err)
	}
	return r.All(), nil
}
