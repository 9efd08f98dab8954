// Package scheduling implements the availability-matching core: candidate
// slot generation from an agent's working calendar, free/busy resolution
// against the external calendar provider, and first-fit agent selection.
package scheduling

import (
	"context"
	"time"
)

// Slot is a candidate viewing window on one agent's calendar. Slots are
// ephemeral: they live for the duration of one booking attempt and only the
// chosen one survives, as fields on the Meeting record.
type Slot struct {
	AgentID   string    `json:"agent_id"`
	AgentName string    `json:"agent_name"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

// EventDetails describes the calendar event to reserve for a booked viewing.
type EventDetails struct {
	Title         string
	Description   string
	Start         time.Time
	End           time.Time
	AttendeeEmail string
	AttendeeName  string
}

// EventRef points at a reserved external calendar event.
type EventRef struct {
	EventID string `json:"event_id"`
	Link    string `json:"link,omitempty"`
}

// Event is an upcoming entry read back from an agent's calendar.
type Event struct {
	ID      string    `json:"id"`
	Summary string    `json:"summary"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}

// CalendarProvider is the external calendar integration the scheduling core
// consumes. Credential refresh and the OAuth handshake are the provider's
// internal concern.
type CalendarProvider interface {
	IsSlotFree(ctx context.Context, calendarID string, start, end time.Time) (bool, error)
	ReserveEvent(ctx context.Context, calendarID string, details EventDetails) (*EventRef, error)
	ListUpcoming(ctx context.Context, calendarID string, max int) ([]Event, error)
}
