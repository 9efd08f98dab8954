package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/obaturn/Property-Managment-Backend/internal/entity"
	"github.com/obaturn/Property-Managment-Backend/internal/scheduling"
)

// MockLeadRepository - Mock for entity.LeadRepositoryInterface
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if l := args.Get(0); l != nil {
		return l.(*entity.Lead), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLeadRepository) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	args := m.Called(ctx, email)
	if l := args.Get(0); l != nil {
		return l.(*entity.Lead), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	args := m.Called(ctx, filter)
	if l := args.Get(0); l != nil {
		return l.([]*entity.Lead), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

// MockAgentRepository - Mock for entity.AgentRepositoryInterface
type MockAgentRepository struct {
	mock.Mock
}

func (m *MockAgentRepository) Create(ctx context.Context, agent *entity.Agent) error {
	args := m.Called(ctx, agent)
	return args.Error(0)
}

func (m *MockAgentRepository) FindByID(ctx context.Context, id string) (*entity.Agent, error) {
	args := m.Called(ctx, id)
	if a := args.Get(0); a != nil {
		return a.(*entity.Agent), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAgentRepository) FindByName(ctx context.Context, name string) (*entity.Agent, error) {
	args := m.Called(ctx, name)
	if a := args.Get(0); a != nil {
		return a.(*entity.Agent), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAgentRepository) List(ctx context.Context) ([]*entity.Agent, error) {
	args := m.Called(ctx)
	if a := args.Get(0); a != nil {
		return a.([]*entity.Agent), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAgentRepository) FindBookable(ctx context.Context) ([]*entity.Agent, error) {
	args := m.Called(ctx)
	if a := args.Get(0); a != nil {
		return a.([]*entity.Agent), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAgentRepository) Update(ctx context.Context, agent *entity.Agent) error {
	args := m.Called(ctx, agent)
	return args.Error(0)
}

func (m *MockAgentRepository) IncrementTotalMeetings(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAgentRepository) IncrementCompletedMeetings(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMeetingRepository - Mock for entity.MeetingRepositoryInterface
type MockMeetingRepository struct {
	mock.Mock
}

func (m *MockMeetingRepository) Create(ctx context.Context, meeting *entity.Meeting) error {
	args := m.Called(ctx, meeting)
	return args.Error(0)
}

func (m *MockMeetingRepository) FindByID(ctx context.Context, id string) (*entity.Meeting, error) {
	args := m.Called(ctx, id)
	if mt := args.Get(0); mt != nil {
		return mt.(*entity.Meeting), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMeetingRepository) List(ctx context.Context, filter entity.MeetingFilter) ([]*entity.Meeting, error) {
	args := m.Called(ctx, filter)
	if mt := args.Get(0); mt != nil {
		return mt.([]*entity.Meeting), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMeetingRepository) Update(ctx context.Context, meeting *entity.Meeting) error {
	args := m.Called(ctx, meeting)
	return args.Error(0)
}

func (m *MockMeetingRepository) FindScheduledInWindow(ctx context.Context, assignedTo string, from, to time.Time) ([]*entity.Meeting, error) {
	args := m.Called(ctx, assignedTo, from, to)
	if mt := args.Get(0); mt != nil {
		return mt.([]*entity.Meeting), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMeetingRepository) FindDueForReminder(ctx context.Context, from, to time.Time) ([]*entity.Meeting, error) {
	args := m.Called(ctx, from, to)
	if mt := args.Get(0); mt != nil {
		return mt.([]*entity.Meeting), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMeetingRepository) MarkReminded(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// MockPropertyRepository - Mock for entity.PropertyRepositoryInterface
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) Create(ctx context.Context, property *entity.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) FindByID(ctx context.Context, id string) (*entity.Property, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*entity.Property), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPropertyRepository) List(ctx context.Context, filter entity.PropertyFilter) ([]*entity.Property, error) {
	args := m.Called(ctx, filter)
	if p := args.Get(0); p != nil {
		return p.([]*entity.Property), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPropertyRepository) Update(ctx context.Context, property *entity.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

// MockCalendarProvider - Mock for scheduling.CalendarProvider
type MockCalendarProvider struct {
	mock.Mock
}

func (m *MockCalendarProvider) IsSlotFree(ctx context.Context, calendarID string, start, end time.Time) (bool, error) {
	args := m.Called(ctx, calendarID, start, end)
	return args.Bool(0), args.Error(1)
}

func (m *MockCalendarProvider) ReserveEvent(ctx context.Context, calendarID string, details scheduling.EventDetails) (*scheduling.EventRef, error) {
	args := m.Called(ctx, calendarID, details)
	if ref := args.Get(0); ref != nil {
		return ref.(*scheduling.EventRef), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCalendarProvider) ListUpcoming(ctx context.Context, calendarID string, max int) ([]scheduling.Event, error) {
	args := m.Called(ctx, calendarID, max)
	if ev := args.Get(0); ev != nil {
		return ev.([]scheduling.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

// fakeUnit runs the unit body directly against a fixed repo set. No
// transaction semantics, just the plumbing the usecases need in tests.
type fakeUnit struct {
	repos RepoSet
	calls int
}

func (u *fakeUnit) Do(ctx context.Context, fn func(ctx context.Context, repos RepoSet) error) error {
	u.calls++
	return fn(ctx, u.repos)
}

// recordingNotifier captures fan-out calls synchronously.
type recordingNotifier struct {
	bookings  []BookingNotification
	captured  []*entity.Lead
	scheduled []*entity.Meeting
}

func (n *recordingNotifier) BookingConfirmed(b BookingNotification) { n.bookings = append(n.bookings, b) }
func (n *recordingNotifier) LeadCaptured(lead *entity.Lead)         { n.captured = append(n.captured, lead) }
func (n *recordingNotifier) MeetingScheduled(m *entity.Meeting)     { n.scheduled = append(n.scheduled, m) }
