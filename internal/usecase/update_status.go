package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/obaturn/Property-Managment-Backend/internal/entity"
)

// UpdateLeadStatusUseCase moves a lead along its lifecycle and records the
// contact moment.
type UpdateLeadStatusUseCase struct {
	Leads entity.LeadRepositoryInterface
}

func NewUpdateLeadStatusUseCase(leads entity.LeadRepositoryInterface) *UpdateLeadStatusUseCase {
	return &UpdateLeadStatusUseCase{Leads: leads}
}

func (uc *UpdateLeadStatusUseCase) Execute(ctx context.Context, id, status string) (*entity.Lead, error) {
	if !entity.ValidLeadStatus(status) {
		return nil, &DomainError{Code: CodeInvalidInput, Message: "invalid lead status: " + status}
	}

	lead, err := uc.Leads.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, &DomainError{Code: CodeNotFound, Message: "lead not found"}
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "lead lookup failed", Err: err}
	}

	now := time.Now()
	lead.Status = status
	lead.LastContactedAt = now
	lead.UpdatedAt = now

	if err := uc.Leads.Update(ctx, lead); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "lead update failed", Err: err}
	}
	return lead, nil
}

// UpdateMeetingStatusUseCase transitions a meeting to Completed or Missed.
// Transitions are explicit only, nothing here fires on the clock. Completing
// a meeting bumps the assigned agent's completed counter.
type UpdateMeetingStatusUseCase struct {
	Meetings entity.MeetingRepositoryInterface
	Agents   entity.AgentRepositoryInterface
}

func NewUpdateMeetingStatusUseCase(
	meetings entity.MeetingRepositoryInterface,
	agents entity.AgentRepositoryInterface,
) *UpdateMeetingStatusUseCase {
	return &UpdateMeetingStatusUseCase{Meetings: meetings, Agents: agents}
}

func (uc *UpdateMeetingStatusUseCase) Execute(ctx context.Context, id, status string) (*entity.Meeting, error) {
	if !entity.ValidMeetingStatus(status) {
		return nil, &DomainError{Code: CodeInvalidInput, Message: "invalid meeting status: " + status}
	}

	meeting, err := uc.Meetings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrMeetingNotFound) {
			return nil, &DomainError{Code: CodeNotFound, Message: "meeting not found"}
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "meeting lookup failed", Err: err}
	}

	completing := status == entity.MeetingStatusCompleted && meeting.Status != entity.MeetingStatusCompleted

	meeting.Status = status
	meeting.UpdatedAt = time.Now()
	if err := uc.Meetings.Update(ctx, meeting); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "meeting update failed", Err: err}
	}

	if completing {
		// AssignedTo is a name snapshot; the agent may have been removed
		// since. Losing the counter bump is fine, losing the status is not.
		agent, err := uc.Agents.FindByName(ctx, meeting.AssignedTo)
		if err != nil {
			log.Printf("completed-meeting counter skipped, agent %q not found: %v", meeting.AssignedTo, err)
			return meeting, nil
		}
		if err := uc.Agents.IncrementCompletedMeetings(ctx, agent.ID); err != nil {
			log.Printf("completed-meeting counter update failed for agent %s: %v", agent.Name, err)
		}
	}

	return meeting, nil
}
