package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ticket-ledger/internal/dto/request"
	"ticket-ledger/internal/usecase"
	"ticket-ledger/pkg/address"
	"ticket-ledger/pkg/utils"
)

type PurchaseHandler struct {
	service usecase.PurchaseService
	log     *zap.Logger
}

func NewPurchaseHandler(service usecase.PurchaseService, log *zap.Logger) *PurchaseHandler {
	return &PurchaseHandler{
		service: service,
		log:     log.With(zap.String("handler", "purchase")),
	}
}

// Purchase handles POST /api/purchase (identity required; caller is the buyer)
func (h *PurchaseHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	buyer, ok := utils.GetCallerFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Caller identity required")
		return
	}

	var req request.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	receipt, err := h.service.Purchase(r.Context(), buyer, &req)
	if err != nil {
		respondServiceError(w, h.log, err, "purchase")
		return
	}

	utils.ResponseCreated(w, "success", receipt)
}

// GetReceipt handles GET /api/venues/{id}/receipts/{buyer} (public)
func (h *PurchaseHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "id")
	if venueID == "" {
		utils.ResponseBadRequest(w, "Venue ID is required", nil)
		return
	}

	buyer, err := address.Parse(chi.URLParam(r, "buyer"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid buyer address", nil)
		return
	}

	receipt, err := h.service.FetchReceipt(r.Context(), venueID, buyer)
	if err != nil {
		respondServiceError(w, h.log, err, "get receipt")
		return
	}

	utils.ResponseSuccess(w, "success", receipt)
}
