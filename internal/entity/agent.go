package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Defaults and bounds for an agent's meeting configuration.
const (
	DefaultMeetingDurationMinutes = 60
	MinMeetingDurationMinutes     = 15
	MaxMeetingDurationMinutes     = 240

	DefaultBufferMinutes = 15
	MinBufferMinutes     = 0
	MaxBufferMinutes     = 60
)

type Agent struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"` // unique
	Phone string `json:"phone,omitempty"`

	// CalendarID is the external calendar the agent linked. Empty means the
	// agent has no calendar integration and cannot be auto-booked.
	CalendarID string `json:"calendar_id,omitempty"`

	WorkingDays            []string `json:"working_days"`  // weekday names, e.g. "Monday"
	WorkingHoursStart      string   `json:"working_hours_start"` // "HH:MM" local time
	WorkingHoursEnd        string   `json:"working_hours_end"`
	MeetingDurationMinutes int      `json:"meeting_duration_minutes"`
	BufferMinutes          int      `json:"buffer_minutes"`
	Timezone               string   `json:"timezone"`

	IsActive          bool `json:"is_active"`
	TotalMeetings     int  `json:"total_meetings"`
	CompletedMeetings int  `json:"completed_meetings"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewAgent(name, email string) *Agent {
	now := time.Now()
	return &Agent{
		ID:                     uuid.New().String(),
		Name:                   name,
		Email:                  NormalizeEmail(email),
		WorkingDays:            []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		WorkingHoursStart:      "09:00",
		WorkingHoursEnd:        "17:00",
		MeetingDurationMinutes: DefaultMeetingDurationMinutes,
		BufferMinutes:          DefaultBufferMinutes,
		Timezone:               "UTC",
		IsActive:               true,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
}

// Bookable reports whether the booking engine may schedule meetings for this
// agent: active and calendar-linked.
func (a *Agent) Bookable() bool {
	return a.IsActive && a.CalendarID != ""
}

// SuccessRate is derived, never stored.
func (a *Agent) SuccessRate() float64 {
	if a.TotalMeetings == 0 {
		return 0
	}
	return float64(a.CompletedMeetings) / float64(a.TotalMeetings)
}

// WorksOn reports whether weekday is in the agent's working-day set.
func (a *Agent) WorksOn(weekday time.Weekday) bool {
	for _, d := range a.WorkingDays {
		if d == weekday.String() {
			return true
		}
	}
	return false
}

// Location resolves the agent's timezone, falling back to UTC when the name
// is empty or unknown.
func (a *Agent) Location() *time.Location {
	if a.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type AgentRepositoryInterface interface {
	Create(ctx context.Context, agent *Agent) error
	FindByID(ctx context.Context, id string) (*Agent, error)
	FindByName(ctx context.Context, name string) (*Agent, error)
	List(ctx context.Context) ([]*Agent, error)

	// FindBookable returns active, calendar-linked agents in store order.
	// The booking engine's first-fit selection depends on that order being
	// stable, not on any ranking.
	FindBookable(ctx context.Context) ([]*Agent, error)

	Update(ctx context.Context, agent *Agent) error
	IncrementTotalMeetings(ctx context.Context, id string) error
	IncrementCompletedMeetings(ctx context.Context, id string) error
}
