package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/obaturn/Property-Managment-Backend/internal/entity"
	"github.com/obaturn/Property-Managment-Backend/internal/scheduling"
)

// Fixed clock: Sunday noon. The first bookable window for a Mon-Fri agent is
// Monday 09:00.
var (
	sundayNoon = time.Date(2026, 9, 6, 12, 0, 0, 0, time.UTC)
	monday9am  = time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
)

type bookingFixture struct {
	leads      *MockLeadRepository
	agents     *MockAgentRepository
	meetings   *MockMeetingRepository
	properties *MockPropertyRepository
	calendar   *MockCalendarProvider
	unit       *fakeUnit
	notifier   *recordingNotifier
	uc         *BookViewingUseCase
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		leads:      new(MockLeadRepository),
		agents:     new(MockAgentRepository),
		meetings:   new(MockMeetingRepository),
		properties: new(MockPropertyRepository),
		calendar:   new(MockCalendarProvider),
		notifier:   new(recordingNotifier),
	}
	f.unit = &fakeUnit{repos: RepoSet{Leads: f.leads, Agents: f.agents, Meetings: f.meetings}}

	oracle := scheduling.NewOracle(f.calendar, scheduling.NewGenerator())
	f.uc = NewBookViewingUseCase(f.properties, f.unit, scheduling.NewSelector(oracle), f.calendar, f.notifier)
	f.uc.now = func() time.Time { return sundayNoon }
	return f
}

func testAgent() *entity.Agent {
	agent := entity.NewAgent("Jane Doe", "jane@realty.test")
	agent.CalendarID = "jane-cal"
	return agent
}

func testProperty() *entity.Property {
	return entity.NewProperty("12 Baker Street", 450000)
}

func TestBookViewingHappyPath(t *testing.T) {
	f := newBookingFixture()
	property := testProperty()
	jane := testAgent()

	f.properties.On("FindByID", mock.Anything, property.ID).Return(property, nil)
	f.leads.On("FindByEmail", mock.Anything, "lead@example.com").Return(nil, entity.ErrLeadNotFound)
	f.leads.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.agents.On("FindBookable", mock.Anything).Return([]*entity.Agent{jane}, nil)
	f.calendar.On("IsSlotFree", mock.Anything, "jane-cal", mock.Anything, mock.Anything).Return(true, nil)
	f.meetings.On("FindScheduledInWindow", mock.Anything, "Jane Doe", mock.Anything, mock.Anything).Return(nil, nil)
	f.leads.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.meetings.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.calendar.On("ReserveEvent", mock.Anything, "jane-cal", mock.Anything).
		Return(&scheduling.EventRef{EventID: "evt-1", Link: "https://calendar.test/evt-1"}, nil)
	f.meetings.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.agents.On("IncrementTotalMeetings", mock.Anything, jane.ID).Return(nil)

	out, err := f.uc.Execute(context.Background(), BookViewingInput{
		Name:       "Lead Person",
		Email:      "lead@example.com",
		PropertyID: property.ID,
	})

	assert.NoError(t, err)
	assert.Equal(t, BookingStatusFullyBooked, out.BookingStatus)
	assert.Equal(t, monday9am, out.Meeting.DateTime)
	assert.Equal(t, "Jane Doe", out.Lead.AssignedAgent)
	assert.Equal(t, "https://calendar.test/evt-1", out.CalendarLink)

	assert.Len(t, f.notifier.bookings, 1)
	assert.Equal(t, jane, f.notifier.bookings[0].Agent)
	assert.Empty(t, f.notifier.captured)
}

func TestBookViewingNoBookableAgents(t *testing.T) {
	f := newBookingFixture()
	property := testProperty()

	f.properties.On("FindByID", mock.Anything, property.ID).Return(property, nil)
	f.leads.On("FindByEmail", mock.Anything, "lead@example.com").Return(nil, entity.ErrLeadNotFound)
	f.leads.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.agents.On("FindBookable", mock.Anything).Return([]*entity.Agent{}, nil)

	out, err := f.uc.Execute(context.Background(), BookViewingInput{
		Name:       "Lead Person",
		Email:      "lead@example.com",
		PropertyID: property.ID,
	})

	assert.NoError(t, err)
	assert.Equal(t, BookingStatusLeadOnly, out.BookingStatus)
	assert.Equal(t, entity.AutoAssignedPlaceholder, out.Lead.AssignedAgent)
	assert.Nil(t, out.Meeting)

	// The lead is still captured and announced.
	assert.Len(t, f.notifier.captured, 1)
	assert.Empty(t, f.notifier.bookings)
	f.meetings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookViewingDuplicateEmail(t *testing.T) {
	f := newBookingFixture()
	property := testProperty()
	existing := entity.NewLead("Bob", "bob@x.com")

	f.properties.On("FindByID", mock.Anything, property.ID).Return(property, nil)
	// Input arrives with different casing; lookup must use the canonical form.
	f.leads.On("FindByEmail", mock.Anything, "bob@x.com").Return(existing, nil)

	out, err := f.uc.Execute(context.Background(), BookViewingInput{
		Name:       "Bob Again",
		Email:      "Bob@X.com",
		PropertyID: property.ID,
	})

	assert.Nil(t, out)
	de, ok := AsDomainError(err)
	assert.True(t, ok)
	assert.Equal(t, CodeConflict, de.Code)
	assert.Equal(t, existing, de.Details)

	// Nothing was written.
	f.leads.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.meetings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Empty(t, f.notifier.captured)
}

func TestBookViewingUniqueConstraintRace(t *testing.T) {
	f := newBookingFixture()
	property := testProperty()

	f.properties.On("FindByID", mock.Anything, property.ID).Return(property, nil)
	f.leads.On("FindByEmail", mock.Anything, "lead@example.com").Return(nil, entity.ErrLeadNotFound)
	f.leads.On("Create", mock.Anything, mock.Anything).Return(entity.ErrEmailAlreadyExists)

	_, err := f.uc.Execute(context.Background(), BookViewingInput{
		Name:       "Lead Person",
		Email:      "lead@example.com",
		PropertyID: property.ID,
	})

	de, ok := AsDomainError(err)
	assert.True(t, ok)
	assert.Equal(t, CodeConflict, de.Code)
}

func TestBookViewingCalendarReservationFailure(t *testing.T) {
	f := newBookingFixture()
	property := testProperty()
	jane := testAgent()

	f.properties.On("FindByID", mock.Anything, property.ID).Return(property, nil)
	f.leads.On("FindByEmail", mock.Anything, "lead@example.com").Return(nil, entity.ErrLeadNotFound)
	f.leads.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.agents.On("FindBookable", mock.Anything).Return([]*entity.Agent{jane}, nil)
	f.calendar.On("IsSlotFree", mock.Anything, "jane-cal", mock.Anything, mock.Anything).Return(true, nil)
	f.meetings.On("FindScheduledInWindow", mock.Anything, "Jane Doe", mock.Anything, mock.Anything).Return(nil, nil)
	f.leads.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.meetings.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.calendar.On("ReserveEvent", mock.Anything, "jane-cal", mock.Anything).
		Return(nil, errors.New("provider timeout"))
	f.agents.On("IncrementTotalMeetings", mock.Anything, jane.ID).Return(nil)

	out, err := f.uc.Execute(context.Background(), BookViewingInput{
		Name:       "Lead Person",
		Email:      "lead@example.com",
		PropertyID: property.ID,
	})

	// Reservation failure is non-fatal: the booking stands without an event ref.
	assert.NoError(t, err)
	assert.Equal(t, BookingStatusFullyBooked, out.BookingStatus)
	assert.Empty(t, out.CalendarLink)
	assert.Empty(t, out.Meeting.CalendarEventID)
	f.meetings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestBookViewingConcurrentSlotTaken(t *testing.T) {
	f := newBookingFixture()
	property := testProperty()
	jane := testAgent()
	taken := entity.NewMeeting("Other Lead", "other@example.com", "9 Elm Road", "Jane Doe", monday9am)

	f.properties.On("FindByID", mock.Anything, property.ID).Return(property, nil)
	f.leads.On("FindByEmail", mock.Anything, "lead@example.com").Return(nil, entity.ErrLeadNotFound)
	f.leads.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.agents.On("FindBookable", mock.Anything).Return([]*entity.Agent{jane}, nil)
	f.calendar.On("IsSlotFree", mock.Anything, "jane-cal", mock.Anything, mock.Anything).Return(true, nil)
	f.meetings.On("FindScheduledInWindow", mock.Anything, "Jane Doe", mock.Anything, mock.Anything).
		Return([]*entity.Meeting{taken}, nil)

	out, err := f.uc.Execute(context.Background(), BookViewingInput{
		Name:       "Lead Person",
		Email:      "lead@example.com",
		PropertyID: property.ID,
	})

	assert.NoError(t, err)
	assert.Equal(t, BookingStatusLeadOnly, out.BookingStatus)
	f.meetings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookViewingRecheckQueryFailureDoesNotAbort(t *testing.T) {
	f := newBookingFixture()
	property := testProperty()
	jane := testAgent()

	f.properties.On("FindByID", mock.Anything, property.ID).Return(property, nil)
	f.leads.On("FindByEmail", mock.Anything, "lead@example.com").Return(nil, entity.ErrLeadNotFound)
	f.leads.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.agents.On("FindBookable", mock.Anything).Return([]*entity.Agent{jane}, nil)
	f.calendar.On("IsSlotFree", mock.Anything, "jane-cal", mock.Anything, mock.Anything).Return(true, nil)
	f.meetings.On("FindScheduledInWindow", mock.Anything, "Jane Doe", mock.Anything, mock.Anything).
		Return(nil, errors.New("connection reset"))
	f.leads.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.meetings.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.calendar.On("ReserveEvent", mock.Anything, "jane-cal", mock.Anything).
		Return(&scheduling.EventRef{EventID: "evt-3", Link: "https://calendar.test/evt-3"}, nil)
	f.meetings.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.agents.On("IncrementTotalMeetings", mock.Anything, jane.ID).Return(nil)

	out, err := f.uc.Execute(context.Background(), BookViewingInput{
		Name:       "Lead Person",
		Email:      "lead@example.com",
		PropertyID: property.ID,
	})

	// A failed recheck query degrades to "no recheck", it never aborts the
	// committed work that already passed the calendar check.
	assert.NoError(t, err)
	assert.Equal(t, BookingStatusFullyBooked, out.BookingStatus)
}

func TestBookViewingMeetingCarriesLeadEmailSnapshot(t *testing.T) {
	f := newBookingFixture()
	property := testProperty()
	jane := testAgent()

	f.properties.On("FindByID", mock.Anything, property.ID).Return(property, nil)
	f.leads.On("FindByEmail", mock.Anything, "lead@example.com").Return(nil, entity.ErrLeadNotFound)
	f.leads.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.agents.On("FindBookable", mock.Anything).Return([]*entity.Agent{jane}, nil)
	f.calendar.On("IsSlotFree", mock.Anything, "jane-cal", mock.Anything, mock.Anything).Return(true, nil)
	f.meetings.On("FindScheduledInWindow", mock.Anything, "Jane Doe", mock.Anything, mock.Anything).Return(nil, nil)
	f.leads.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.meetings.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.calendar.On("ReserveEvent", mock.Anything, "jane-cal", mock.Anything).
		Return(&scheduling.EventRef{EventID: "evt-4", Link: "https://calendar.test/evt-4"}, nil)
	f.meetings.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.agents.On("IncrementTotalMeetings", mock.Anything, jane.ID).Return(nil)

	out, err := f.uc.Execute(context.Background(), BookViewingInput{
		Name:       "Lead Person",
		Email:      "Lead@Example.com",
		PropertyID: property.ID,
	})

	assert.NoError(t, err)
	assert.Equal(t, "lead@example.com", out.Meeting.LeadEmail)
}

func TestBookViewingPropertyNotFound(t *testing.T) {
	f := newBookingFixture()

	f.properties.On("FindByID", mock.Anything, "missing").Return(nil, entity.ErrPropertyNotFound)

	out, err := f.uc.Execute(context.Background(), BookViewingInput{
		Name:       "Lead Person",
		Email:      "lead@example.com",
		PropertyID: "missing",
	})

	assert.Nil(t, out)
	de, ok := AsDomainError(err)
	assert.True(t, ok)
	assert.Equal(t, CodeNotFound, de.Code)

	// No unit was opened, so no lead exists for a missing property.
	assert.Equal(t, 0, f.unit.calls)
}

func TestBookViewingPreferredTime(t *testing.T) {
	t.Run("Past Preferred Time Rejected", func(t *testing.T) {
		f := newBookingFixture()

		_, err := f.uc.Execute(context.Background(), BookViewingInput{
			Name:              "Lead Person",
			Email:             "lead@example.com",
			PropertyID:        "prop-1",
			PreferredDateTime: sundayNoon.Add(-time.Hour).Format(time.RFC3339),
		})

		de, ok := AsDomainError(err)
		assert.True(t, ok)
		assert.Equal(t, CodeInvalidInput, de.Code)
		assert.Equal(t, 0, f.unit.calls)
	})

	t.Run("Free Preferred Window Is Booked Exactly", func(t *testing.T) {
		f := newBookingFixture()
		property := testProperty()
		jane := testAgent()
		preferred := time.Date(2026, 9, 7, 14, 0, 0, 0, time.UTC)

		f.properties.On("FindByID", mock.Anything, property.ID).Return(property, nil)
		f.leads.On("FindByEmail", mock.Anything, "lead@example.com").Return(nil, entity.ErrLeadNotFound)
		f.leads.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.agents.On("FindBookable", mock.Anything).Return([]*entity.Agent{jane}, nil)
		f.calendar.On("IsSlotFree", mock.Anything, "jane-cal", preferred, preferred.Add(time.Hour)).Return(true, nil)
		f.meetings.On("FindScheduledInWindow", mock.Anything, "Jane Doe", mock.Anything, mock.Anything).Return(nil, nil)
		f.leads.On("Update", mock.Anything, mock.Anything).Return(nil)
		f.meetings.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.calendar.On("ReserveEvent", mock.Anything, "jane-cal", mock.Anything).
			Return(&scheduling.EventRef{EventID: "evt-2", Link: "https://calendar.test/evt-2"}, nil)
		f.meetings.On("Update", mock.Anything, mock.Anything).Return(nil)
		f.agents.On("IncrementTotalMeetings", mock.Anything, jane.ID).Return(nil)

		out, err := f.uc.Execute(context.Background(), BookViewingInput{
			Name:              "Lead Person",
			Email:             "lead@example.com",
			PropertyID:        property.ID,
			PreferredDateTime: preferred.Format(time.RFC3339),
		})

		assert.NoError(t, err)
		assert.Equal(t, BookingStatusFullyBooked, out.BookingStatus)
		assert.True(t, out.Meeting.DateTime.Equal(preferred))
	})
}

func TestBookViewingInvalidInput(t *testing.T) {
	f := newBookingFixture()

	_, err := f.uc.Execute(context.Background(), BookViewingInput{
		Name:       "",
		Email:      "not-an-email",
		PropertyID: "",
	})

	de, ok := AsDomainError(err)
	assert.True(t, ok)
	assert.Equal(t, CodeInvalidInput, de.Code)
	f.properties.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}
