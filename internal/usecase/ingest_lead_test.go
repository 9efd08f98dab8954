package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/obaturn/Property-Managment-Backend/internal/entity"
)

func TestIngestLead(t *testing.T) {
	t.Run("Captures New Lead", func(t *testing.T) {
		leads := new(MockLeadRepository)
		notifier := new(recordingNotifier)
		uc := NewIngestLeadUseCase(leads, notifier)

		leads.On("Upsert", mock.Anything, mock.Anything).Return(nil)

		lead, err := uc.Execute(context.Background(), IngestLeadInput{
			Name:   "Web Visitor",
			Email:  "Visitor@Example.COM",
			Source: "landing-page",
		})

		assert.NoError(t, err)
		assert.Equal(t, "visitor@example.com", lead.Email)
		assert.Equal(t, entity.LeadStatusNew, lead.Status)
		assert.Equal(t, entity.AutoAssignedPlaceholder, lead.AssignedAgent)
		assert.Len(t, notifier.captured, 1)
	})

	t.Run("Resubmission Goes Through Upsert Not Create", func(t *testing.T) {
		leads := new(MockLeadRepository)
		notifier := new(recordingNotifier)
		uc := NewIngestLeadUseCase(leads, notifier)

		leads.On("Upsert", mock.Anything, mock.Anything).Return(nil)

		for i := 0; i < 2; i++ {
			_, err := uc.Execute(context.Background(), IngestLeadInput{
				Name:  "Web Visitor",
				Email: "visitor@example.com",
			})
			assert.NoError(t, err)
		}

		// Merge semantics live in the repository; the usecase never calls
		// Create, so a repeat email can never surface a conflict here.
		leads.AssertNumberOfCalls(t, "Upsert", 2)
		leads.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Rejects Missing Fields", func(t *testing.T) {
		leads := new(MockLeadRepository)
		uc := NewIngestLeadUseCase(leads, new(recordingNotifier))

		_, err := uc.Execute(context.Background(), IngestLeadInput{Email: "visitor@example.com"})

		de, ok := AsDomainError(err)
		assert.True(t, ok)
		assert.Equal(t, CodeInvalidInput, de.Code)
		leads.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})
}
