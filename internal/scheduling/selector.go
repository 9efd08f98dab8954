package scheduling

import (
	"context"
	"time"

	"github.com/obaturn/Property-Managment-Backend/internal/entity"
)

// Selector picks an agent and a slot for a booking request.
//
// Tie-break policy: candidates are tried in the order given and the first
// sufficiently-available agent wins. No load balancing; callers that need
// fairness must pre-sort the candidate list.
type Selector struct {
	Oracle *Oracle
}

func NewSelector(oracle *Oracle) *Selector {
	return &Selector{Oracle: oracle}
}

// Select returns the first agent/slot pair satisfying the request, or
// (nil, nil) when no agent has an open window.
//
// With a preferred time, each agent is checked for that exact window first;
// the first free one wins. Otherwise (or when nobody is free at the preferred
// time) each agent's soonest upcoming slot is tried in turn.
func (s *Selector) Select(ctx context.Context, agents []*entity.Agent, preferred *time.Time, searchFrom time.Time) (*entity.Agent, *Slot) {
	if preferred != nil {
		for _, agent := range agents {
			// Same clamp as the generator, so a misconfigured duration can
			// never produce an out-of-bounds window on this path either.
			duration := time.Duration(clampMinutes(agent.MeetingDurationMinutes,
				entity.MinMeetingDurationMinutes, entity.MaxMeetingDurationMinutes,
				entity.DefaultMeetingDurationMinutes)) * time.Minute
			end := preferred.Add(duration)
			if s.Oracle.IsFree(ctx, agent, *preferred, end) {
				return agent, &Slot{
					AgentID:   agent.ID,
					AgentName: agent.Name,
					Start:     *preferred,
					End:       end,
				}
			}
		}
	}

	for _, agent := range agents {
		slots := s.Oracle.NextFreeSlots(ctx, agent, searchFrom, 1)
		if len(slots) > 0 {
			return agent, &slots[0]
		}
	}

	return nil, nil
}
