package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/obaturn/Property-Managment-Backend/internal/entity"
	"github.com/obaturn/Property-Managment-Backend/internal/metrics"
	"github.com/obaturn/Property-Managment-Backend/internal/scheduling"
)

// BookViewingUseCase pairs an inbound lead with an agent's free calendar slot
// and books a viewing. Lead, meeting and agent-counter writes happen inside
// one atomic unit; the external calendar reservation is attempted inside the
// flow but is non-fatal, and notifications fire only after commit.
type BookViewingUseCase struct {
	Properties entity.PropertyRepositoryInterface
	Unit       UnitOfWork
	Selector   *scheduling.Selector
	Calendar   scheduling.CalendarProvider
	Notifier   Notifier

	// now is swappable in tests.
	now func() time.Time
}

func NewBookViewingUseCase(
	properties entity.PropertyRepositoryInterface,
	unit UnitOfWork,
	selector *scheduling.Selector,
	calendar scheduling.CalendarProvider,
	notifier Notifier,
) *BookViewingUseCase {
	return &BookViewingUseCase{
		Properties: properties,
		Unit:       unit,
		Selector:   selector,
		Calendar:   calendar,
		Notifier:   notifier,
		now:        time.Now,
	}
}

func (uc *BookViewingUseCase) Execute(ctx context.Context, input BookViewingInput) (*BookViewingOutput, error) {
	if verrs := ValidateBookViewingInput(input); len(verrs) > 0 {
		metrics.BookingsTotal.WithLabelValues("invalid").Inc()
		return nil, &DomainError{Code: CodeInvalidInput, Message: validationMessage(verrs)}
	}

	preferred, err := uc.parsePreferred(input)
	if err != nil {
		metrics.BookingsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	property, err := uc.Properties.FindByID(ctx, input.PropertyID)
	if err != nil {
		if errors.Is(err, entity.ErrPropertyNotFound) {
			metrics.BookingsTotal.WithLabelValues("not_found").Inc()
			return nil, &DomainError{Code: CodeNotFound, Message: "property not found"}
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "property lookup failed", Err: err}
	}

	var (
		out         *BookViewingOutput
		bookedAgent *entity.Agent
	)
	err = uc.Unit.Do(ctx, func(ctx context.Context, r RepoSet) error {
		email := entity.NormalizeEmail(input.Email)

		existing, err := r.Leads.FindByEmail(ctx, email)
		if err != nil && !errors.Is(err, entity.ErrLeadNotFound) {
			return fmt.Errorf("lead lookup failed: %w", err)
		}
		if existing != nil {
			return &DomainError{
				Code:    CodeConflict,
				Message: "a lead with this email already exists",
				Details: existing,
			}
		}

		lead := entity.NewLead(input.Name, email)
		lead.Phone = input.Phone
		lead.Source = input.Source
		lead.Budget = input.Budget
		lead.PropertyTypePreference = input.PropertyTypePreference
		lead.Timeline = input.Timeline
		lead.Notes = input.Notes

		if err := r.Leads.Create(ctx, lead); err != nil {
			if errors.Is(err, entity.ErrEmailAlreadyExists) {
				// Lost the unique-constraint race to a concurrent request.
				return &DomainError{Code: CodeConflict, Message: "a lead with this email already exists"}
			}
			return fmt.Errorf("lead create failed: %w", err)
		}

		agents, err := r.Agents.FindBookable(ctx)
		if err != nil {
			return fmt.Errorf("agent discovery failed: %w", err)
		}
		if len(agents) == 0 {
			out = uc.leadOnly(lead, property, "lead captured; no bookable agents available")
			return nil
		}

		agent, slot := uc.Selector.Select(ctx, agents, preferred, uc.now())
		if agent == nil {
			out = uc.leadOnly(lead, property, "lead captured; no open slot found")
			return nil
		}

		// Optimistic recheck against our own committed meetings before the
		// write. Two concurrent requests can still both see the provider as
		// free, but they cannot both get past this query and commit without
		// one of them seeing the other's row.
		conflicts, err := r.Meetings.FindScheduledInWindow(ctx, agent.Name,
			slot.Start.Add(-time.Hour), slot.End.Add(time.Hour))
		if err != nil {
			log.Printf("⚠️ overlap recheck failed for agent %s, proceeding without it: %v", agent.Name, err)
		}
		for _, m := range conflicts {
			if overlaps(m.DateTime, slot.Start, slot.End) {
				out = uc.leadOnly(lead, property, "lead captured; slot was taken by a concurrent booking")
				return nil
			}
		}

		lead.AssignedAgent = agent.Name
		lead.UpdatedAt = uc.now()
		if err := r.Leads.Update(ctx, lead); err != nil {
			return fmt.Errorf("lead assignment failed: %w", err)
		}

		meeting := entity.NewMeeting(lead.Name, lead.Email, property.Address, agent.Name, slot.Start)
		meeting.Notes = "Auto-booked by availability engine"
		if err := r.Meetings.Create(ctx, meeting); err != nil {
			return fmt.Errorf("meeting create failed: %w", err)
		}

		// External reservation. Provider flakiness must not lose a slot that
		// already passed the double-booking checks, so failure here only
		// leaves the event reference empty.
		if agent.CalendarID != "" {
			ref, err := uc.Calendar.ReserveEvent(ctx, agent.CalendarID, scheduling.EventDetails{
				Title:         fmt.Sprintf("Property viewing: %s", property.Address),
				Description:   fmt.Sprintf("Viewing with %s", lead.Name),
				Start:         slot.Start,
				End:           slot.End,
				AttendeeEmail: lead.Email,
				AttendeeName:  lead.Name,
			})
			if err != nil {
				log.Printf("⚠️ calendar reservation failed for agent %s: %v", agent.Name, err)
				metrics.IntegrationErrors.WithLabelValues("calendar").Inc()
			} else if ref != nil {
				meeting.CalendarEventID = ref.EventID
				meeting.CalendarEventLink = ref.Link
				meeting.UpdatedAt = uc.now()
				if err := r.Meetings.Update(ctx, meeting); err != nil {
					return fmt.Errorf("meeting event-ref update failed: %w", err)
				}
			}
		}

		if err := r.Agents.IncrementTotalMeetings(ctx, agent.ID); err != nil {
			return fmt.Errorf("agent counter update failed: %w", err)
		}

		bookedAgent = agent
		out = &BookViewingOutput{
			BookingStatus: BookingStatusFullyBooked,
			Lead:          lead,
			Meeting:       meeting,
			Agent:         agentSummary(agent),
			Property:      propertySummary(property),
			CalendarLink:  meeting.CalendarEventLink,
			Message:       "viewing booked",
		}
		return nil
	})

	if err != nil {
		if de, ok := AsDomainError(err); ok {
			metrics.BookingsTotal.WithLabelValues("conflict").Inc()
			return nil, de
		}
		metrics.BookingsTotal.WithLabelValues("error").Inc()
		return nil, &TechnicalError{Code: "BOOKING_FAILED", Message: "booking transaction aborted", Err: err}
	}

	metrics.BookingsTotal.WithLabelValues(out.BookingStatus).Inc()

	// Strictly outside the transaction boundary. The notifier is best-effort
	// and non-blocking; nothing it does can unwind the booking.
	if out.BookingStatus == BookingStatusFullyBooked {
		uc.Notifier.BookingConfirmed(BookingNotification{
			Lead:         out.Lead,
			Meeting:      out.Meeting,
			Property:     property,
			CalendarLink: out.CalendarLink,
			Agent:        bookedAgent,
		})
	} else {
		uc.Notifier.LeadCaptured(out.Lead)
	}

	return out, nil
}

func (uc *BookViewingUseCase) leadOnly(lead *entity.Lead, property *entity.Property, msg string) *BookViewingOutput {
	return &BookViewingOutput{
		BookingStatus: BookingStatusLeadOnly,
		Lead:          lead,
		Property:      propertySummary(property),
		Message:       msg,
	}
}

// parsePreferred resolves the optional preferred time in the caller's
// timezone. A preferred time in the past is invalid input.
func (uc *BookViewingUseCase) parsePreferred(input BookViewingInput) (*time.Time, error) {
	if input.PreferredDateTime == "" {
		return nil, nil
	}

	loc := time.UTC
	if input.Timezone != "" {
		l, err := time.LoadLocation(input.Timezone)
		if err != nil {
			return nil, &DomainError{Code: CodeInvalidInput, Message: "unknown timezone: " + input.Timezone}
		}
		loc = l
	}

	t, err := time.Parse(time.RFC3339, input.PreferredDateTime)
	if err != nil {
		t, err = time.ParseInLocation("2006-01-02T15:04", input.PreferredDateTime, loc)
	}
	if err != nil {
		return nil, &DomainError{Code: CodeInvalidInput, Message: "preferred_date_time must be RFC3339 or YYYY-MM-DDTHH:MM"}
	}
	if !t.After(uc.now()) {
		return nil, &DomainError{Code: CodeInvalidInput, Message: "preferred_date_time must be in the future"}
	}
	return &t, nil
}

// overlaps reports whether an existing meeting starting at existing (with the
// default 60-minute window) intersects [start, end).
func overlaps(existing, start, end time.Time) bool {
	existingEnd := existing.Add(time.Duration(entity.DefaultMeetingDurationMinutes) * time.Minute)
	return existing.Before(end) && existingEnd.After(start)
}
