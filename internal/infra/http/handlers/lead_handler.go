package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/obaturn/Property-Managment-Backend/internal/entity"
)

type UpdateLeadStatusExecutor interface {
	Execute(ctx context.Context, id, status string) (*entity.Lead, error)
}

type LeadHandler struct {
	Leads        entity.LeadRepositoryInterface
	UpdateStatus UpdateLeadStatusExecutor
}

func NewLeadHandler(leads entity.LeadRepositoryInterface, updateStatus UpdateLeadStatusExecutor) *LeadHandler {
	return &LeadHandler{Leads: leads, UpdateStatus: updateStatus}
}

// HandleCreate is the back-office creation path. Unlike the webhook, a
// duplicate email here is rejected rather than merged.
func (h *LeadHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name                   string `json:"name"`
		Email                  string `json:"email"`
		Phone                  string `json:"phone"`
		Source                 string `json:"source"`
		Budget                 string `json:"budget"`
		PropertyTypePreference string `json:"property_type_preference"`
		Timeline               string `json:"timeline"`
		Notes                  string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: "invalid JSON"})
		return
	}
	if req.Name == "" || req.Email == "" {
		writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: "name and email are required"})
		return
	}

	lead := entity.NewLead(req.Name, req.Email)
	lead.Phone = req.Phone
	lead.Source = req.Source
	lead.Budget = req.Budget
	lead.PropertyTypePreference = req.PropertyTypePreference
	lead.Timeline = req.Timeline
	lead.Notes = req.Notes

	if err := h.Leads.Create(r.Context(), lead); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			writeJSON(w, http.StatusConflict, APIResponse{Success: false, Message: "a lead with this email already exists"})
			return
		}
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, "lead created", lead)
}

func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	leads, err := h.Leads.List(r.Context(), entity.LeadFilter{
		Status: q.Get("status"),
		Source: q.Get("source"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, "", leads)
}

func (h *LeadHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	lead, err := h.Leads.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			writeJSON(w, http.StatusNotFound, APIResponse{Success: false, Message: "lead not found"})
			return
		}
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, "", lead)
}

func (h *LeadHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: "invalid JSON"})
		return
	}

	lead, err := h.UpdateStatus.Execute(r.Context(), chi.URLParam(r, "id"), body.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, "lead status updated", lead)
}
