package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/obaturn/Property-Managment-Backend/internal/entity"
	"github.com/obaturn/Property-Managment-Backend/internal/usecase"
)

// MockBookViewingUseCase - Mock for the booking orchestrator.
type MockBookViewingUseCase struct {
	mock.Mock
}

func (m *MockBookViewingUseCase) Execute(ctx context.Context, input usecase.BookViewingInput) (*usecase.BookViewingOutput, error) {
	args := m.Called(ctx, input)
	if out := args.Get(0); out != nil {
		return out.(*usecase.BookViewingOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func postBooking(t *testing.T, handler *BookingHandler, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/bookings", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.Handle(w, req)
	return w
}

func TestBookingHandlerStatusMapping(t *testing.T) {
	input := usecase.BookViewingInput{
		Name:       "Lead Person",
		Email:      "lead@example.com",
		PropertyID: "prop-1",
	}

	t.Run("Fully Booked Returns 201", func(t *testing.T) {
		uc := new(MockBookViewingUseCase)
		handler := NewBookingHandler(uc)

		uc.On("Execute", mock.Anything, input).Return(&usecase.BookViewingOutput{
			BookingStatus: usecase.BookingStatusFullyBooked,
			Lead:          entity.NewLead("Lead Person", "lead@example.com"),
			Message:       "viewing booked",
		}, nil)

		w := postBooking(t, handler, input)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "fully_booked")
	})

	t.Run("Lead Only Returns 200", func(t *testing.T) {
		uc := new(MockBookViewingUseCase)
		handler := NewBookingHandler(uc)

		uc.On("Execute", mock.Anything, input).Return(&usecase.BookViewingOutput{
			BookingStatus: usecase.BookingStatusLeadOnly,
			Lead:          entity.NewLead("Lead Person", "lead@example.com"),
			Message:       "lead captured; no bookable agents available",
		}, nil)

		w := postBooking(t, handler, input)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "lead_only")
	})

	t.Run("Duplicate Lead Returns 409 With Existing Record", func(t *testing.T) {
		uc := new(MockBookViewingUseCase)
		handler := NewBookingHandler(uc)

		existing := entity.NewLead("Bob", "bob@x.com")
		uc.On("Execute", mock.Anything, mock.Anything).Return(nil, &usecase.DomainError{
			Code:    usecase.CodeConflict,
			Message: "a lead with this email already exists",
			Details: existing,
		})

		w := postBooking(t, handler, input)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "bob@x.com")
	})

	t.Run("Unknown Property Returns 404", func(t *testing.T) {
		uc := new(MockBookViewingUseCase)
		handler := NewBookingHandler(uc)

		uc.On("Execute", mock.Anything, mock.Anything).Return(nil, &usecase.DomainError{
			Code:    usecase.CodeNotFound,
			Message: "property not found",
		})

		w := postBooking(t, handler, input)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Invalid Input Returns 400", func(t *testing.T) {
		uc := new(MockBookViewingUseCase)
		handler := NewBookingHandler(uc)

		uc.On("Execute", mock.Anything, mock.Anything).Return(nil, &usecase.DomainError{
			Code:    usecase.CodeInvalidInput,
			Message: "validation failed: email: is invalid",
		})

		w := postBooking(t, handler, input)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Technical Failure Returns 500", func(t *testing.T) {
		uc := new(MockBookViewingUseCase)
		handler := NewBookingHandler(uc)

		uc.On("Execute", mock.Anything, mock.Anything).Return(nil, &usecase.TechnicalError{
			Code:    "BOOKING_FAILED",
			Message: "booking transaction aborted",
			Err:     errors.New("connection reset"),
		})

		w := postBooking(t, handler, input)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("Malformed JSON Returns 400 Without Executing", func(t *testing.T) {
		uc := new(MockBookViewingUseCase)
		handler := NewBookingHandler(uc)

		req := httptest.NewRequest("POST", "/bookings", strings.NewReader("{not json"))
		w := httptest.NewRecorder()
		handler.Handle(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
	})
}
