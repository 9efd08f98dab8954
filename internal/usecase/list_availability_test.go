package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/obaturn/Property-Managment-Backend/internal/entity"
	"github.com/obaturn/Property-Managment-Backend/internal/scheduling"
)

func newAvailabilityFixture() (*MockPropertyRepository, *MockAgentRepository, *MockCalendarProvider, *ListAvailabilityUseCase) {
	properties := new(MockPropertyRepository)
	agents := new(MockAgentRepository)
	calendar := new(MockCalendarProvider)
	oracle := scheduling.NewOracle(calendar, scheduling.NewGenerator())
	return properties, agents, calendar, NewListAvailabilityUseCase(properties, agents, oracle)
}

func TestListAvailability(t *testing.T) {
	t.Run("Merged Slots Are Sorted By Start", func(t *testing.T) {
		properties, agents, calendar, uc := newAvailabilityFixture()
		property := testProperty()

		early := testAgent()
		late := entity.NewAgent("Late Starter", "late@realty.test")
		late.CalendarID = "late-cal"
		late.WorkingHoursStart = "10:00"
		late.WorkingHoursEnd = "12:00"

		properties.On("FindByID", mock.Anything, property.ID).Return(property, nil)
		// Store order puts the late starter first; output must not.
		agents.On("FindBookable", mock.Anything).Return([]*entity.Agent{late, early}, nil)
		calendar.On("IsSlotFree", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(true, nil)

		out, err := uc.Execute(context.Background(), ListAvailabilityInput{
			PropertyID: property.ID,
			Date:       "2026-09-07",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, out.Slots)
		assert.Equal(t, "Jane Doe", out.Slots[0].Agent.Name)

		prev := time.Time{}
		for _, s := range out.Slots {
			start, perr := time.Parse(time.RFC3339, s.Start)
			assert.NoError(t, perr)
			assert.False(t, start.Before(prev), "slots out of order at %s", s.Start)
			prev = start
		}
	})

	t.Run("Empty Day", func(t *testing.T) {
		properties, agents, _, uc := newAvailabilityFixture()
		property := testProperty()

		properties.On("FindByID", mock.Anything, property.ID).Return(property, nil)
		agents.On("FindBookable", mock.Anything).Return([]*entity.Agent{}, nil)

		out, err := uc.Execute(context.Background(), ListAvailabilityInput{
			PropertyID: property.ID,
			Date:       "2026-09-07",
		})

		assert.NoError(t, err)
		assert.Empty(t, out.Slots)
		assert.Equal(t, "2026-09-07", out.Date)
	})

	t.Run("Unknown Property", func(t *testing.T) {
		properties, _, _, uc := newAvailabilityFixture()

		properties.On("FindByID", mock.Anything, "missing").Return(nil, entity.ErrPropertyNotFound)

		_, err := uc.Execute(context.Background(), ListAvailabilityInput{
			PropertyID: "missing",
			Date:       "2026-09-07",
		})

		de, ok := AsDomainError(err)
		assert.True(t, ok)
		assert.Equal(t, CodeNotFound, de.Code)
	})

	t.Run("Bad Inputs", func(t *testing.T) {
		_, _, _, uc := newAvailabilityFixture()

		cases := []ListAvailabilityInput{
			{PropertyID: "", Date: "2026-09-07"},
			{PropertyID: "p1", Date: ""},
			{PropertyID: "p1", Date: "07/09/2026"},
			{PropertyID: "p1", Date: "2026-09-07", Timezone: "Mars/Olympus"},
		}
		for _, input := range cases {
			_, err := uc.Execute(context.Background(), input)
			de, ok := AsDomainError(err)
			assert.True(t, ok)
			assert.Equal(t, CodeInvalidInput, de.Code)
		}
	})
}
