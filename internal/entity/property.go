package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	PropertyStatusAvailable = "Available"
	PropertyStatusPending   = "Pending"
	PropertyStatusSold      = "Sold"
	PropertyStatusOffMarket = "Off Market"
)

type Property struct {
	ID           string    `json:"id"`
	Address      string    `json:"address"`
	Price        float64   `json:"price"`
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    int       `json:"bathrooms"`
	Sqft         int       `json:"sqft"`
	Media        []string  `json:"media,omitempty"`
	PropertyType string    `json:"property_type"`
	Status       string    `json:"status"`
	YearBuilt    int       `json:"year_built,omitempty"`
	Features     []string  `json:"features,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewProperty(address string, price float64) *Property {
	now := time.Now()
	return &Property{
		ID:        uuid.New().String(),
		Address:   address,
		Price:     price,
		Status:    PropertyStatusAvailable,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func ValidPropertyStatus(status string) bool {
	switch status {
	case PropertyStatusAvailable, PropertyStatusPending, PropertyStatusSold, PropertyStatusOffMarket:
		return true
	}
	return false
}

type PropertyFilter struct {
	Status       string
	PropertyType string
	MinPrice     float64
	MaxPrice     float64
	Limit        int
	Offset       int
}

type PropertyRepositoryInterface interface {
	Create(ctx context.Context, property *Property) error
	FindByID(ctx context.Context, id string) (*Property, error)
	List(ctx context.Context, filter PropertyFilter) ([]*Property, error)
	Update(ctx context.Context, property *Property) error
}
