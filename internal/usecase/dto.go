package usecase

import (
	"github.com/obaturn/Property-Managment-Backend/internal/entity"
)

// Booking outcome tiers.
const (
	BookingStatusLeadOnly    = "lead_only"
	BookingStatusFullyBooked = "fully_booked"
)

type BookViewingInput struct {
	Name                   string `json:"name"`
	Email                  string `json:"email"`
	Phone                  string `json:"phone"`
	Source                 string `json:"source"`
	Budget                 string `json:"budget"`
	PropertyTypePreference string `json:"property_type_preference"`
	Timeline               string `json:"timeline"`
	Notes                  string `json:"notes"`
	PropertyID             string `json:"property_id"`

	// Optional. RFC3339, or "2006-01-02T15:04" interpreted in Timezone.
	PreferredDateTime string `json:"preferred_date_time"`
	Timezone          string `json:"timezone"`
}

type AgentSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type PropertySummary struct {
	ID      string  `json:"id"`
	Address string  `json:"address"`
	Price   float64 `json:"price"`
}

type BookViewingOutput struct {
	BookingStatus string           `json:"booking_status"`
	Lead          *entity.Lead     `json:"lead"`
	Meeting       *entity.Meeting  `json:"meeting,omitempty"`
	Agent         *AgentSummary    `json:"agent,omitempty"`
	Property      *PropertySummary `json:"property,omitempty"`
	CalendarLink  string           `json:"calendar_link,omitempty"`
	Message       string           `json:"message"`
}

type IngestLeadInput struct {
	Name                   string `json:"name"`
	Email                  string `json:"email"`
	Phone                  string `json:"phone"`
	Source                 string `json:"source"`
	Budget                 string `json:"budget"`
	PropertyTypePreference string `json:"property_type_preference"`
	Timeline               string `json:"timeline"`
	Notes                  string `json:"notes"`
}

type ListAvailabilityInput struct {
	PropertyID string
	Date       string // "2006-01-02"
	Timezone   string
}

type AvailabilitySlot struct {
	Start string       `json:"start"`
	End   string       `json:"end"`
	Agent AgentSummary `json:"agent"`
}

type ListAvailabilityOutput struct {
	PropertyID string             `json:"property_id"`
	Date       string             `json:"date"`
	Slots      []AvailabilitySlot `json:"slots"`
}

type ScheduleMeetingInput struct {
	LeadName        string `json:"lead_name"`
	LeadEmail       string `json:"lead_email"`
	PropertyAddress string `json:"property_address"`
	AssignedTo      string `json:"assigned_to"`
	DateTime        string `json:"date_time"` // RFC3339
	Notes           string `json:"notes"`
}

func agentSummary(a *entity.Agent) *AgentSummary {
	return &AgentSummary{ID: a.ID, Name: a.Name, Email: a.Email, Phone: a.Phone}
}

func propertySummary(p *entity.Property) *PropertySummary {
	return &PropertySummary{ID: p.ID, Address: p.Address, Price: p.Price}
}
