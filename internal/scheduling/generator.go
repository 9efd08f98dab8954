package scheduling

import (
	"fmt"
	"time"

	"github.com/obaturn/Property-Managment-Backend/internal/entity"
)

// DefaultLookaheadDays bounds forward scans for "next available" slots.
const DefaultLookaheadDays = 7

// Generator produces candidate viewing windows from an agent's working
// calendar configuration. It knows nothing about busy events; that is the
// oracle's job.
type Generator struct {
	LookaheadDays int
}

func NewGenerator() *Generator {
	return &Generator{LookaheadDays: DefaultLookaheadDays}
}

// SlotsForDay emits the ordered candidate windows for one calendar day in the
// agent's timezone. Non-working weekdays and malformed working-hours ranges
// (end <= start) yield an empty sequence.
func (g *Generator) SlotsForDay(agent *entity.Agent, day time.Time) []Slot {
	loc := agent.Location()
	day = day.In(loc)

	if !agent.WorksOn(day.Weekday()) {
		return nil
	}

	startMin, err := parseClock(agent.WorkingHoursStart)
	if err != nil {
		return nil
	}
	endMin, err := parseClock(agent.WorkingHoursEnd)
	if err != nil {
		return nil
	}
	if endMin <= startMin {
		return nil
	}

	duration := clampMinutes(agent.MeetingDurationMinutes,
		entity.MinMeetingDurationMinutes, entity.MaxMeetingDurationMinutes,
		entity.DefaultMeetingDurationMinutes)
	buffer := clampMinutes(agent.BufferMinutes,
		entity.MinBufferMinutes, entity.MaxBufferMinutes,
		entity.DefaultBufferMinutes)

	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	cursor := midnight.Add(time.Duration(startMin) * time.Minute)
	dayEnd := midnight.Add(time.Duration(endMin) * time.Minute)

	var slots []Slot
	for {
		slotEnd := cursor.Add(time.Duration(duration) * time.Minute)
		if slotEnd.After(dayEnd) {
			break
		}
		slots = append(slots, Slot{
			AgentID:   agent.ID,
			AgentName: agent.Name,
			Start:     cursor,
			End:       slotEnd,
		})
		cursor = cursor.Add(time.Duration(duration+buffer) * time.Minute)
	}
	return slots
}

// UpcomingSlots scans forward from the given instant across the lookahead
// window, emitting only windows whose start is strictly after it. The scan
// advances day by day so a fully booked or non-working day just moves the
// cursor to the next midnight.
func (g *Generator) UpcomingSlots(agent *entity.Agent, from time.Time) []Slot {
	days := g.LookaheadDays
	if days <= 0 {
		days = DefaultLookaheadDays
	}

	from = from.In(agent.Location())

	var slots []Slot
	for d := 0; d < days; d++ {
		day := from.AddDate(0, 0, d)
		for _, s := range g.SlotsForDay(agent, day) {
			if s.Start.After(from) {
				slots = append(slots, s)
			}
		}
	}
	return slots
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	return h*60 + m, nil
}

func clampMinutes(v, min, max, fallback int) int {
	if v == 0 {
		return fallback
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
