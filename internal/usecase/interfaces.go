package usecase

import (
	"context"

	"github.com/obaturn/Property-Managment-Backend/internal/entity"
)

// RepoSet bundles the repositories bound to one atomic unit.
type RepoSet struct {
	Leads    entity.LeadRepositoryInterface
	Agents   entity.AgentRepositoryInterface
	Meetings entity.MeetingRepositoryInterface
}

// UnitOfWork runs fn against repositories sharing one transaction. All writes
// made inside fn become visible together on commit, or not at all: a non-nil
// error from fn aborts the unit.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, repos RepoSet) error) error
}

// BookingNotification is everything the fan-out needs to confirm a booking.
type BookingNotification struct {
	Lead         *entity.Lead
	Agent        *entity.Agent
	Meeting      *entity.Meeting
	Property     *entity.Property
	CalendarLink string
}

// Notifier dispatches best-effort messages after a commit. Implementations
// must never block the caller and must swallow their own failures; a lost
// notification is acceptable, an unwound booking is not.
type Notifier interface {
	BookingConfirmed(n BookingNotification)
	LeadCaptured(lead *entity.Lead)
	MeetingScheduled(meeting *entity.Meeting)
}
