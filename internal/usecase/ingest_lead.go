package usecase

import (
	"context"
	"fmt"

	"github.com/obaturn/Property-Managment-Backend/internal/entity"
	"github.com/obaturn/Property-Managment-Backend/internal/metrics"
)

// IngestLeadUseCase captures leads from the public webhook. Unlike the
// booking flow, a duplicate email here is not a conflict: the existing lead
// is updated in place. Re-submissions are idempotent.
type IngestLeadUseCase struct {
	Leads    entity.LeadRepositoryInterface
	Notifier Notifier
}

func NewIngestLeadUseCase(leads entity.LeadRepositoryInterface, notifier Notifier) *IngestLeadUseCase {
	return &IngestLeadUseCase{Leads: leads, Notifier: notifier}
}

func (uc *IngestLeadUseCase) Execute(ctx context.Context, input IngestLeadInput) (*entity.Lead, error) {
	if verrs := ValidateIngestLeadInput(input); len(verrs) > 0 {
		return nil, &DomainError{Code: CodeInvalidInput, Message: validationMessage(verrs)}
	}

	lead := entity.NewLead(input.Name, input.Email)
	lead.Phone = input.Phone
	lead.Source = input.Source
	lead.Budget = input.Budget
	lead.PropertyTypePreference = input.PropertyTypePreference
	lead.Timeline = input.Timeline
	lead.Notes = input.Notes

	if err := uc.Leads.Upsert(ctx, lead); err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: fmt.Sprintf("failed to ingest lead %s", lead.Email),
			Err:     err,
		}
	}

	metrics.LeadsIngested.Inc()
	uc.Notifier.LeadCaptured(lead)

	return lead, nil
}
