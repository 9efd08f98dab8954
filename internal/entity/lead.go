package entity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Lead status lifecycle. A lead starts as New and moves forward as agents
// work it.
const (
	LeadStatusNew       = "New"
	LeadStatusContacted = "Contacted"
	LeadStatusNurturing = "Nurturing"
	LeadStatusClosed    = "Closed"
)

// AutoAssignedPlaceholder is written to AssignedAgent before an agent is
// actually selected by the booking flow.
const AutoAssignedPlaceholder = "Auto-assigned"

type Lead struct {
	ID                     string    `json:"id"`
	Name                   string    `json:"name"`
	Email                  string    `json:"email"` // unique, stored lowercase
	Phone                  string    `json:"phone,omitempty"`
	Status                 string    `json:"status"`
	Source                 string    `json:"source,omitempty"`
	AssignedAgent          string    `json:"assigned_agent"`
	Budget                 string    `json:"budget,omitempty"`
	PropertyTypePreference string    `json:"property_type_preference,omitempty"`
	Timeline               string    `json:"timeline,omitempty"`
	Notes                  string    `json:"notes,omitempty"`
	LastContactedAt        time.Time `json:"last_contacted_at"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// NewLead builds a lead in its initial state. Email is normalized here so the
// unique index on the store always sees the canonical form.
func NewLead(name, email string) *Lead {
	now := time.Now()
	return &Lead{
		ID:              uuid.New().String(),
		Name:            name,
		Email:           NormalizeEmail(email),
		Status:          LeadStatusNew,
		AssignedAgent:   AutoAssignedPlaceholder,
		LastContactedAt: now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// NormalizeEmail lowercases and trims an address. Lead identity is
// case-insensitive on email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidLeadStatus(status string) bool {
	switch status {
	case LeadStatusNew, LeadStatusContacted, LeadStatusNurturing, LeadStatusClosed:
		return true
	}
	return false
}

type LeadFilter struct {
	Status string
	Source string
	Limit  int
	Offset int
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	FindByEmail(ctx context.Context, email string) (*Lead, error)
	List(ctx context.Context, filter LeadFilter) ([]*Lead, error)
	Update(ctx context.Context, lead *Lead) error

	// Upsert merges by email: an existing lead is updated in place, never
	// duplicated. Used by the webhook ingestion path only.
	Upsert(ctx context.Context, lead *Lead) error
}
