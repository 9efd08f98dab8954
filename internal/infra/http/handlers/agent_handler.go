package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/obaturn/Property-Managment-Backend/internal/entity"
	"github.com/obaturn/Property-Managment-Backend/internal/scheduling"
)

type AgentHandler struct {
	Agents   entity.AgentRepositoryInterface
	Calendar scheduling.CalendarProvider
}

func NewAgentHandler(agents entity.AgentRepositoryInterface, calendar scheduling.CalendarProvider) *AgentHandler {
	return &AgentHandler{Agents: agents, Calendar: calendar}
}

type createAgentRequest struct {
	Name                   string   `json:"name"`
	Email                  string   `json:"email"`
	Phone                  string   `json:"phone"`
	CalendarID             string   `json:"calendar_id"`
	WorkingDays            []string `json:"working_days"`
	WorkingHoursStart      string   `json:"working_hours_start"`
	WorkingHoursEnd        string   `json:"working_hours_end"`
	MeetingDurationMinutes int      `json:"meeting_duration_minutes"`
	BufferMinutes          int      `json:"buffer_minutes"`
	Timezone               string   `json:"timezone"`
}

func (h *AgentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: "invalid JSON"})
		return
	}
	if req.Name == "" || req.Email == "" {
		writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: "name and email are required"})
		return
	}

	agent := entity.NewAgent(req.Name, req.Email)
	agent.Phone = req.Phone
	agent.CalendarID = req.CalendarID
	if len(req.WorkingDays) > 0 {
		agent.WorkingDays = req.WorkingDays
	}
	if req.WorkingHoursStart != "" {
		agent.WorkingHoursStart = req.WorkingHoursStart
	}
	if req.WorkingHoursEnd != "" {
		agent.WorkingHoursEnd = req.WorkingHoursEnd
	}
	if req.MeetingDurationMinutes != 0 {
		agent.MeetingDurationMinutes = req.MeetingDurationMinutes
	}
	if req.BufferMinutes != 0 {
		agent.BufferMinutes = req.BufferMinutes
	}
	if req.Timezone != "" {
		agent.Timezone = req.Timezone
	}

	if msg := invalidAgentConfig(agent); msg != "" {
		writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: msg})
		return
	}

	if err := h.Agents.Create(r.Context(), agent); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			writeJSON(w, http.StatusConflict, APIResponse{Success: false, Message: "an agent with this email already exists"})
			return
		}
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, "agent created", agent)
}

// invalidAgentConfig enforces the scheduling config bounds at the write
// boundary, so the booking engine never sees an agent it would have to clamp.
func invalidAgentConfig(agent *entity.Agent) string {
	if agent.MeetingDurationMinutes < entity.MinMeetingDurationMinutes ||
		agent.MeetingDurationMinutes > entity.MaxMeetingDurationMinutes {
		return fmt.Sprintf("meeting_duration_minutes must be between %d and %d",
			entity.MinMeetingDurationMinutes, entity.MaxMeetingDurationMinutes)
	}
	if agent.BufferMinutes < entity.MinBufferMinutes ||
		agent.BufferMinutes > entity.MaxBufferMinutes {
		return fmt.Sprintf("buffer_minutes must be between %d and %d",
			entity.MinBufferMinutes, entity.MaxBufferMinutes)
	}

	start, err := time.Parse("15:04", agent.WorkingHoursStart)
	if err != nil {
		return "working_hours_start must be HH:MM"
	}
	end, err := time.Parse("15:04", agent.WorkingHoursEnd)
	if err != nil {
		return "working_hours_end must be HH:MM"
	}
	if !end.After(start) {
		return "working_hours_end must be after working_hours_start"
	}
	return ""
}

func (h *AgentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	agents, err := h.Agents.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, "", agents)
}

func (h *AgentHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	agent, err := h.Agents.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, entity.ErrAgentNotFound) {
			writeJSON(w, http.StatusNotFound, APIResponse{Success: false, Message: "agent not found"})
			return
		}
		writeError(w, err)
		return
	}

	var req struct {
		Name                   *string   `json:"name"`
		Phone                  *string   `json:"phone"`
		CalendarID             *string   `json:"calendar_id"`
		WorkingDays            *[]string `json:"working_days"`
		WorkingHoursStart      *string   `json:"working_hours_start"`
		WorkingHoursEnd        *string   `json:"working_hours_end"`
		MeetingDurationMinutes *int      `json:"meeting_duration_minutes"`
		BufferMinutes          *int      `json:"buffer_minutes"`
		Timezone               *string   `json:"timezone"`
		IsActive               *bool     `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: "invalid JSON"})
		return
	}

	if req.Name != nil {
		agent.Name = *req.Name
	}
	if req.Phone != nil {
		agent.Phone = *req.Phone
	}
	if req.CalendarID != nil {
		agent.CalendarID = *req.CalendarID
	}
	if req.WorkingDays != nil {
		agent.WorkingDays = *req.WorkingDays
	}
	if req.WorkingHoursStart != nil {
		agent.WorkingHoursStart = *req.WorkingHoursStart
	}
	if req.WorkingHoursEnd != nil {
		agent.WorkingHoursEnd = *req.WorkingHoursEnd
	}
	if req.MeetingDurationMinutes != nil {
		agent.MeetingDurationMinutes = *req.MeetingDurationMinutes
	}
	if req.BufferMinutes != nil {
		agent.BufferMinutes = *req.BufferMinutes
	}
	if req.Timezone != nil {
		agent.Timezone = *req.Timezone
	}
	if req.IsActive != nil {
		agent.IsActive = *req.IsActive
	}

	if msg := invalidAgentConfig(agent); msg != "" {
		writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: msg})
		return
	}
	agent.UpdatedAt = time.Now()

	if err := h.Agents.Update(r.Context(), agent); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, "agent updated", agent)
}

// HandleUpcoming proxies the agent's next calendar events, mostly for the
// admin dashboard.
func (h *AgentHandler) HandleUpcoming(w http.ResponseWriter, r *http.Request) {
	agent, err := h.Agents.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, entity.ErrAgentNotFound) {
			writeJSON(w, http.StatusNotFound, APIResponse{Success: false, Message: "agent not found"})
			return
		}
		writeError(w, err)
		return
	}
	if agent.CalendarID == "" {
		writeJSON(w, http.StatusConflict, APIResponse{Success: false, Message: "agent has no calendar integration"})
		return
	}

	events, err := h.Calendar.ListUpcoming(r.Context(), agent.CalendarID, 10)
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, APIResponse{Success: false, Message: "calendar provider unavailable"})
		return
	}
	writeData(w, http.StatusOK, "", events)
}
