package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ticket-ledger/internal/adaptor"
	"ticket-ledger/pkg/middleware"
)

func wirePurchase(
	r chi.Router,
	purchaseHandler *adaptor.PurchaseHandler,
	log *zap.Logger,
) {
	// ==================== IDENTIFIED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(log))

		// POST /api/purchase - Buy tickets (caller is the buyer)
		r.Post("/api/purchase", purchaseHandler.Purchase)
	})

	// ==================== PUBLIC ROUTES ====================
	// GET /api/venues/{id}/receipts/{buyer} - Buyer's holdings at a venue
	r.Get("/api/venues/{id}/receipts/{buyer}", purchaseHandler.GetReceipt)
}
