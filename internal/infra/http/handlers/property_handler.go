package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/obaturn/Property-Managment-Backend/internal/entity"
)

type PropertyHandler struct {
	Properties entity.PropertyRepositoryInterface
}

func NewPropertyHandler(properties entity.PropertyRepositoryInterface) *PropertyHandler {
	return &PropertyHandler{Properties: properties}
}

type createPropertyRequest struct {
	Address      string   `json:"address"`
	Price        float64  `json:"price"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    int      `json:"bathrooms"`
	Sqft         int      `json:"sqft"`
	Media        []string `json:"media"`
	PropertyType string   `json:"property_type"`
	YearBuilt    int      `json:"year_built"`
	Features     []string `json:"features"`
}

func (h *PropertyHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createPropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: "invalid JSON"})
		return
	}
	if req.Address == "" {
		writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: "address is required"})
		return
	}
	if req.Price < 0 {
		writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: "price must be >= 0"})
		return
	}
	if req.Bedrooms < 0 || req.Bathrooms < 0 || req.Sqft < 0 {
		writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: "bedrooms, bathrooms and sqft must be >= 0"})
		return
	}

	property := entity.NewProperty(req.Address, req.Price)
	property.Bedrooms = req.Bedrooms
	property.Bathrooms = req.Bathrooms
	property.Sqft = req.Sqft
	property.Media = req.Media
	property.PropertyType = req.PropertyType
	property.YearBuilt = req.YearBuilt
	property.Features = req.Features

	if err := h.Properties.Create(r.Context(), property); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, "property created", property)
}

func (h *PropertyHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	minPrice, _ := strconv.ParseFloat(q.Get("minPrice"), 64)
	maxPrice, _ := strconv.ParseFloat(q.Get("maxPrice"), 64)

	properties, err := h.Properties.List(r.Context(), entity.PropertyFilter{
		Status:       q.Get("status"),
		PropertyType: q.Get("propertyType"),
		MinPrice:     minPrice,
		MaxPrice:     maxPrice,
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, "", properties)
}

func (h *PropertyHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	property, err := h.Properties.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, entity.ErrPropertyNotFound) {
			writeJSON(w, http.StatusNotFound, APIResponse{Success: false, Message: "property not found"})
			return
		}
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, "", property)
}

func (h *PropertyHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	property, err := h.Properties.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, entity.ErrPropertyNotFound) {
			writeJSON(w, http.StatusNotFound, APIResponse{Success: false, Message: "property not found"})
			return
		}
		writeError(w, err)
		return
	}

	var req struct {
		Address      *string   `json:"address"`
		Price        *float64  `json:"price"`
		Bedrooms     *int      `json:"bedrooms"`
		Bathrooms    *int      `json:"bathrooms"`
		Sqft         *int      `json:"sqft"`
		Media        *[]string `json:"media"`
		PropertyType *string   `json:"property_type"`
		Status       *string   `json:"status"`
		YearBuilt    *int      `json:"year_built"`
		Features     *[]string `json:"features"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: "invalid JSON"})
		return
	}

	if req.Status != nil && !entity.ValidPropertyStatus(*req.Status) {
		writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: "invalid property status"})
		return
	}
	if req.Price != nil && *req.Price < 0 {
		writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: "price must be >= 0"})
		return
	}

	if req.Address != nil {
		property.Address = *req.Address
	}
	if req.Price != nil {
		property.Price = *req.Price
	}
	if req.Bedrooms != nil {
		property.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		property.Bathrooms = *req.Bathrooms
	}
	if req.Sqft != nil {
		property.Sqft = *req.Sqft
	}
	if req.Media != nil {
		property.Media = *req.Media
	}
	if req.PropertyType != nil {
		property.PropertyType = *req.PropertyType
	}
	if req.Status != nil {
		property.Status = *req.Status
	}
	if req.YearBuilt != nil {
		property.YearBuilt = *req.YearBuilt
	}
	if req.Features != nil {
		property.Features = *req.Features
	}
	property.UpdatedAt = time.Now()

	if err := h.Properties.Update(r.Context(), property); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, "property updated", property)
}
