package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	MeetingStatusScheduled = "Scheduled"
	MeetingStatusCompleted = "Completed"
	MeetingStatusMissed    = "Missed"
)

// Meeting is a historical record. LeadName, LeadEmail, PropertyAddress and
// AssignedTo are snapshots copied at creation time, not references: the
// meeting reads the same years later even if the lead is renamed or the
// agent reassigned, and the reminder worker never has to resolve a lead row.
type Meeting struct {
	ID              string    `json:"id"`
	LeadName        string    `json:"lead_name"`
	LeadEmail       string    `json:"lead_email,omitempty"`
	PropertyAddress string    `json:"property_address"`
	DateTime        time.Time `json:"date_time"`
	Status          string    `json:"status"`
	AssignedTo      string    `json:"assigned_to"`
	Notes           string    `json:"notes,omitempty"`

	// External calendar event, when reservation succeeded. Both empty when
	// the calendar provider was unavailable at booking time.
	CalendarEventID   string `json:"calendar_event_id,omitempty"`
	CalendarEventLink string `json:"calendar_event_link,omitempty"`

	RemindedAt *time.Time `json:"reminded_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func NewMeeting(leadName, leadEmail, propertyAddress, assignedTo string, dateTime time.Time) *Meeting {
	now := time.Now()
	return &Meeting{
		ID:              uuid.New().String(),
		LeadName:        leadName,
		LeadEmail:       NormalizeEmail(leadEmail),
		PropertyAddress: propertyAddress,
		DateTime:        dateTime,
		Status:          MeetingStatusScheduled,
		AssignedTo:      assignedTo,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func ValidMeetingStatus(status string) bool {
	switch status {
	case MeetingStatusScheduled, MeetingStatusCompleted, MeetingStatusMissed:
		return true
	}
	return false
}

type MeetingFilter struct {
	Status     string
	AssignedTo string
	Limit      int
	Offset     int
}

type MeetingRepositoryInterface interface {
	Create(ctx context.Context, meeting *Meeting) error
	FindByID(ctx context.Context, id string) (*Meeting, error)
	List(ctx context.Context, filter MeetingFilter) ([]*Meeting, error)
	Update(ctx context.Context, meeting *Meeting) error

	// FindScheduledInWindow returns Scheduled meetings for the given agent
	// name whose start falls inside [from, to). Used by the manual-scheduling
	// overlap pre-check.
	FindScheduledInWindow(ctx context.Context, assignedTo string, from, to time.Time) ([]*Meeting, error)

	// FindDueForReminder returns Scheduled meetings starting within the
	// window that have no reminder recorded yet.
	FindDueForReminder(ctx context.Context, from, to time.Time) ([]*Meeting, error)
	MarkReminded(ctx context.Context, id string, at time.Time) error
}
