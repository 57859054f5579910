package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ticket-ledger/internal/dto/request"
	"ticket-ledger/internal/usecase"
	"ticket-ledger/pkg/utils"
)

type VenueHandler struct {
	service usecase.VenueService
	log     *zap.Logger
}

func NewVenueHandler(service usecase.VenueService, log *zap.Logger) *VenueHandler {
	return &VenueHandler{
		service: service,
		log:     log.With(zap.String("handler", "venue")),
	}
}

// CreateVenue handles POST /api/venues (identity required)
func (h *VenueHandler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	caller, ok := utils.GetCallerFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Caller identity required")
		return
	}

	var req request.CreateVenueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	venue, err := h.service.CreateVenue(r.Context(), caller, &req)
	if err != nil {
		respondServiceError(w, h.log, err, "create venue")
		return
	}

	utils.ResponseCreated(w, "success", venue)
}

// AddTier handles POST /api/venues/{id}/tiers (identity required, owner only)
func (h *VenueHandler) AddTier(w http.ResponseWriter, r *http.Request) {
	caller, ok := utils.GetCallerFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Caller identity required")
		return
	}

	venueID := chi.URLParam(r, "id")
	if venueID == "" {
		utils.ResponseBadRequest(w, "Venue ID is required", nil)
		return
	}

	var req request.AddTierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	venue, err := h.service.AddTier(r.Context(), caller, venueID, &req)
	if err != nil {
		respondServiceError(w, h.log, err, "add tier")
		return
	}

	utils.ResponseCreated(w, "success", venue)
}

// GetVenue handles GET /api/venues/{id} (public)
func (h *VenueHandler) GetVenue(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "id")
	if venueID == "" {
		utils.ResponseBadRequest(w, "Venue ID is required", nil)
		return
	}

	venue, err := h.service.FetchVenue(r.Context(), venueID)
	if err != nil {
		respondServiceError(w, h.log, err, "get venue")
		return
	}

	utils.ResponseSuccess(w, "success", venue)
}
