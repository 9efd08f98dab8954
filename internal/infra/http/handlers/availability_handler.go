package handlers

import (
	"context"
	"net/http"

	"github.com/obaturn/Property-Managment-Backend/internal/usecase"
)

type ListAvailabilityExecutor interface {
	Execute(ctx context.Context, input usecase.ListAvailabilityInput) (*usecase.ListAvailabilityOutput, error)
}

type AvailabilityHandler struct {
	ListAvailability ListAvailabilityExecutor
}

func NewAvailabilityHandler(listAvailability ListAvailabilityExecutor) *AvailabilityHandler {
	return &AvailabilityHandler{ListAvailability: listAvailability}
}

// Handle answers GET /availability?propertyId=...&date=YYYY-MM-DD&timezone=...
func (h *AvailabilityHandler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := usecase.ListAvailabilityInput{
		PropertyID: q.Get("propertyId"),
		Date:       q.Get("date"),
		Timezone:   q.Get("timezone"),
	}

	out, err := h.ListAvailability.Execute(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, "", out)
}
