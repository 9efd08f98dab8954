package scheduling

import (
	"context"
	"log"
	"time"

	"github.com/obaturn/Property-Managment-Backend/internal/entity"
	"github.com/obaturn/Property-Managment-Backend/internal/metrics"
)

// Oracle answers free/busy questions by intersecting generated candidates
// with the calendar provider's busy data.
//
// It fails open: a provider error, or an agent without calendar integration,
// is treated as available. A calendar-integration outage must degrade to
// manual coordination, not deny all bookings. The tradeoff is a double-booking
// risk during provider outages; failures are logged and counted so operators
// can see when the oracle is flying blind.
type Oracle struct {
	Provider CalendarProvider
	Gen      *Generator
}

func NewOracle(provider CalendarProvider, gen *Generator) *Oracle {
	return &Oracle{Provider: provider, Gen: gen}
}

// IsFree reports whether the exact window is open on the agent's calendar.
func (o *Oracle) IsFree(ctx context.Context, agent *entity.Agent, start, end time.Time) bool {
	if agent.CalendarID == "" {
		return true
	}

	free, err := o.Provider.IsSlotFree(ctx, agent.CalendarID, start, end)
	if err != nil {
		log.Printf("⚠️ calendar lookup failed for agent %s, assuming free: %v", agent.Name, err)
		metrics.CalendarLookupErrors.Inc()
		return true
	}
	return free
}

// FreeSlotsForDay returns up to limit free windows on the given day, in
// generated order. limit <= 0 means all.
func (o *Oracle) FreeSlotsForDay(ctx context.Context, agent *entity.Agent, day time.Time, limit int) []Slot {
	return o.filterFree(ctx, agent, o.Gen.SlotsForDay(agent, day), limit)
}

// NextFreeSlots scans forward from the given instant and returns up to limit
// free windows. limit <= 0 means all within the lookahead window.
func (o *Oracle) NextFreeSlots(ctx context.Context, agent *entity.Agent, from time.Time, limit int) []Slot {
	return o.filterFree(ctx, agent, o.Gen.UpcomingSlots(agent, from), limit)
}

// filterFree checks candidates one by one, in order. Sequential by design:
// the selection tie-break contract depends on generated order, and a day
// holds few enough slots that batching buys nothing.
func (o *Oracle) filterFree(ctx context.Context, agent *entity.Agent, candidates []Slot, limit int) []Slot {
	var free []Slot
	scanned := 0
	for _, c := range candidates {
		scanned++
		if o.IsFree(ctx, agent, c.Start, c.End) {
			free = append(free, c)
			if limit > 0 && len(free) >= limit {
				break
			}
		}
	}
	metrics.SlotsScanned.Observe(float64(scanned))
	return free
}
