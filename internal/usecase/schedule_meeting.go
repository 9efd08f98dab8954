package usecase

import (
	"context"
	"time"

	"github.com/obaturn/Property-Managment-Backend/internal/entity"
)

// ScheduleMeetingUseCase creates meetings outside the automated booking flow.
// It enforces the per-agent overlap rule: no two Scheduled meetings for the
// same assignee may have intersecting 60-minute windows. The pre-check scans
// ±1 hour around the requested time.
type ScheduleMeetingUseCase struct {
	Meetings entity.MeetingRepositoryInterface
	Notifier Notifier

	now func() time.Time
}

func NewScheduleMeetingUseCase(meetings entity.MeetingRepositoryInterface, notifier Notifier) *ScheduleMeetingUseCase {
	return &ScheduleMeetingUseCase{Meetings: meetings, Notifier: notifier, now: time.Now}
}

func (uc *ScheduleMeetingUseCase) Execute(ctx context.Context, input ScheduleMeetingInput) (*entity.Meeting, error) {
	if verrs := ValidateScheduleMeetingInput(input); len(verrs) > 0 {
		return nil, &DomainError{Code: CodeInvalidInput, Message: validationMessage(verrs)}
	}

	dateTime, err := time.Parse(time.RFC3339, input.DateTime)
	if err != nil {
		return nil, &DomainError{Code: CodeInvalidInput, Message: "date_time must be RFC3339"}
	}
	if !dateTime.After(uc.now()) {
		return nil, &DomainError{Code: CodeInvalidInput, Message: "date_time must be in the future"}
	}

	window := time.Duration(entity.DefaultMeetingDurationMinutes) * time.Minute
	nearby, err := uc.Meetings.FindScheduledInWindow(ctx, input.AssignedTo,
		dateTime.Add(-time.Hour), dateTime.Add(time.Hour))
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "overlap check failed", Err: err}
	}

	var conflicting []*entity.Meeting
	for _, m := range nearby {
		if m.DateTime.Before(dateTime.Add(window)) && m.DateTime.Add(window).After(dateTime) {
			conflicting = append(conflicting, m)
		}
	}
	if len(conflicting) > 0 {
		return nil, &DomainError{
			Code:    CodeConflict,
			Message: "the agent already has a scheduled meeting overlapping this time",
			Details: conflicting,
		}
	}

	meeting := entity.NewMeeting(input.LeadName, input.LeadEmail, input.PropertyAddress, input.AssignedTo, dateTime)
	meeting.Notes = input.Notes

	if err := uc.Meetings.Create(ctx, meeting); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "meeting create failed", Err: err}
	}

	uc.Notifier.MeetingScheduled(meeting)
	return meeting, nil
}
