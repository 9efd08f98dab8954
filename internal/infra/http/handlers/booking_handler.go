package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/obaturn/Property-Managment-Backend/internal/usecase"
)

// BookViewingExecutor lets tests stand in for the real orchestrator.
type BookViewingExecutor interface {
	Execute(ctx context.Context, input usecase.BookViewingInput) (*usecase.BookViewingOutput, error)
}

type BookingHandler struct {
	BookViewing BookViewingExecutor
}

func NewBookingHandler(bookViewing BookViewingExecutor) *BookingHandler {
	return &BookingHandler{BookViewing: bookViewing}
}

// Handle is the public booking entry point.
//
//	201: lead + meeting booked (fully_booked)
//	200: lead created, no meeting (lead_only)
//	400/404/409: invalid input / unknown property / duplicate lead
func (h *BookingHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input usecase.BookViewingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: "invalid JSON"})
		return
	}

	out, err := h.BookViewing.Execute(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusOK
	if out.BookingStatus == usecase.BookingStatusFullyBooked {
		status = http.StatusCreated
	}
	writeData(w, status, out.Message, out)
}
