package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/obaturn/Property-Managment-Backend/internal/entity"
	"github.com/obaturn/Property-Managment-Backend/internal/scheduling"
)

// ListAvailabilityUseCase answers the public availability query: all free
// windows across bookable agents for one day, merged and sorted by start.
type ListAvailabilityUseCase struct {
	Properties entity.PropertyRepositoryInterface
	Agents     entity.AgentRepositoryInterface
	Oracle     *scheduling.Oracle
}

func NewListAvailabilityUseCase(
	properties entity.PropertyRepositoryInterface,
	agents entity.AgentRepositoryInterface,
	oracle *scheduling.Oracle,
) *ListAvailabilityUseCase {
	return &ListAvailabilityUseCase{Properties: properties, Agents: agents, Oracle: oracle}
}

func (uc *ListAvailabilityUseCase) Execute(ctx context.Context, input ListAvailabilityInput) (*ListAvailabilityOutput, error) {
	if input.PropertyID == "" || input.Date == "" {
		return nil, &DomainError{Code: CodeInvalidInput, Message: "property_id and date are required"}
	}

	loc := time.UTC
	if input.Timezone != "" {
		l, err := time.LoadLocation(input.Timezone)
		if err != nil {
			return nil, &DomainError{Code: CodeInvalidInput, Message: "unknown timezone: " + input.Timezone}
		}
		loc = l
	}

	day, err := time.ParseInLocation("2006-01-02", input.Date, loc)
	if err != nil {
		return nil, &DomainError{Code: CodeInvalidInput, Message: "date must be YYYY-MM-DD"}
	}

	if _, err := uc.Properties.FindByID(ctx, input.PropertyID); err != nil {
		if errors.Is(err, entity.ErrPropertyNotFound) {
			return nil, &DomainError{Code: CodeNotFound, Message: "property not found"}
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "property lookup failed", Err: err}
	}

	agents, err := uc.Agents.FindBookable(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "agent discovery failed", Err: err}
	}

	type agentSlot struct {
		slot  scheduling.Slot
		agent *entity.Agent
	}

	var merged []agentSlot
	for _, agent := range agents {
		for _, s := range uc.Oracle.FreeSlotsForDay(ctx, agent, day, 0) {
			merged = append(merged, agentSlot{slot: s, agent: agent})
		}
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].slot.Start.Before(merged[j].slot.Start)
	})

	slots := make([]AvailabilitySlot, 0, len(merged))
	for _, as := range merged {
		slots = append(slots, AvailabilitySlot{
			Start: as.slot.Start.In(loc).Format(time.RFC3339),
			End:   as.slot.End.In(loc).Format(time.RFC3339),
			Agent: AgentSummary{ID: as.agent.ID, Name: as.agent.Name, Email: as.agent.Email},
		})
	}

	return &ListAvailabilityOutput{
		PropertyID: input.PropertyID,
		Date:       day.Format("2006-01-02"),
		Slots:      slots,
	}, nil
}
