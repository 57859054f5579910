package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ticket-ledger/internal/adaptor"
)

func wireToken(
	r chi.Router,
	tokenHandler *adaptor.TokenHandler,
	log *zap.Logger,
) {
	// Funding endpoints. Minting is a dev faucet; in a production
	// deployment these sit behind the operator's own gateway.
	r.Route("/api/token", func(r chi.Router) {
		// POST /api/token/accounts - Open a token account
		r.Post("/accounts", tokenHandler.CreateAccount)

		// POST /api/token/mint - Fund an account
		r.Post("/mint", tokenHandler.Mint)

		// GET /api/token/balance - Query a balance
		r.Get("/balance", tokenHandler.GetBalance)
	})
}
