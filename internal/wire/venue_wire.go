package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ticket-ledger/internal/adaptor"
	"ticket-ledger/pkg/middleware"
)

func wireVenue(
	r chi.Router,
	venueHandler *adaptor.VenueHandler,
	log *zap.Logger,
) {
	// ==================== IDENTIFIED ROUTES ====================
	// Mutations need a caller identity; proof of it is verified upstream.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(log))

		// POST /api/venues - Register a venue (caller becomes owner)
		r.Post("/api/venues", venueHandler.CreateVenue)

		// POST /api/venues/{id}/tiers - Add a ticket tier (owner only)
		r.Post("/api/venues/{id}/tiers", venueHandler.AddTier)
	})

	// ==================== PUBLIC ROUTES ====================
	// GET /api/venues/{id} - Venue state including tier inventory
	r.Get("/api/venues/{id}", venueHandler.GetVenue)
}
