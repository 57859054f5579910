package adaptor

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"ticket-ledger/internal/dto/request"
	"ticket-ledger/internal/usecase"
	"ticket-ledger/pkg/utils"
)

type TokenHandler struct {
	service usecase.TokenService
	log     *zap.Logger
}

func NewTokenHandler(service usecase.TokenService, log *zap.Logger) *TokenHandler {
	return &TokenHandler{
		service: service,
		log:     log.With(zap.String("handler", "token")),
	}
}

// CreateAccount handles POST /api/token/accounts
func (h *TokenHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTokenAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	account, err := h.service.CreateAccount(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "create token account")
		return
	}

	utils.ResponseCreated(w, "success", account)
}

// Mint handles POST /api/token/mint (dev faucet)
func (h *TokenHandler) Mint(w http.ResponseWriter, r *http.Request) {
	var req request.MintTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	account, err := h.service.Mint(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "mint tokens")
		return
	}

	utils.ResponseSuccess(w, "success", account)
}

// GetBalance handles GET /api/token/balance?mint=...&holder=...
func (h *TokenHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	mint := query.Get("mint")
	holder := query.Get("holder")
	if mint == "" || holder == "" {
		utils.ResponseBadRequest(w, "mint and holder query parameters are required", nil)
		return
	}

	account, err := h.service.Balance(r.Context(), mint, holder)
	if err != nil {
		respondServiceError(w, h.log, err, "get balance")
		return
	}

	utils.ResponseSuccess(w, "success", account)
}
