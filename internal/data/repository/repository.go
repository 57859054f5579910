package repository

import (
	"go.uber.org/zap"

	"ticket-ledger/internal/data/store"
)

// Namespaces for address derivation. Venue and receipt match the
// original on-chain seeds; token covers the fungible-token accounts.
const (
	NamespaceVenue  = "venue"
	NamespaceTicket = "ticket"
	NamespaceToken  = "token"
)

type Repository struct {
	Venue        VenueRepository
	Receipt      ReceiptRepository
	TokenAccount TokenAccountRepository
}

func NewRepository(s store.AccountStore, log *zap.Logger) *Repository {
	return &Repository{
		Venue:        NewVenueRepository(s, log),
		Receipt:      NewReceiptRepository(s, log),
		TokenAccount: NewTokenAccountRepository(s, log),
	}
}
