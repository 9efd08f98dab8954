package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/obaturn/Property-Managment-Backend/internal/entity"
	"github.com/obaturn/Property-Managment-Backend/internal/usecase"
)

type ScheduleMeetingExecutor interface {
	Execute(ctx context.Context, input usecase.ScheduleMeetingInput) (*entity.Meeting, error)
}

type UpdateMeetingStatusExecutor interface {
	Execute(ctx context.Context, id, status string) (*entity.Meeting, error)
}

type MeetingHandler struct {
	Meetings     entity.MeetingRepositoryInterface
	Schedule     ScheduleMeetingExecutor
	UpdateStatus UpdateMeetingStatusExecutor
}

func NewMeetingHandler(
	meetings entity.MeetingRepositoryInterface,
	schedule ScheduleMeetingExecutor,
	updateStatus UpdateMeetingStatusExecutor,
) *MeetingHandler {
	return &MeetingHandler{Meetings: meetings, Schedule: schedule, UpdateStatus: updateStatus}
}

func (h *MeetingHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.ScheduleMeetingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: "invalid JSON"})
		return
	}

	meeting, err := h.Schedule.Execute(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, "meeting scheduled", meeting)
}

func (h *MeetingHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	meetings, err := h.Meetings.List(r.Context(), entity.MeetingFilter{
		Status:     q.Get("status"),
		AssignedTo: q.Get("assignedTo"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, "", meetings)
}

func (h *MeetingHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: "invalid JSON"})
		return
	}

	meeting, err := h.UpdateStatus.Execute(r.Context(), chi.URLParam(r, "id"), body.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, "meeting status updated", meeting)
}
