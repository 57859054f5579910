package usecase

import (
	"go.uber.org/zap"

	"ticket-ledger/internal/data/repository"
	"ticket-ledger/internal/token"
	"ticket-ledger/pkg/utils"
)

type Service struct {
	Venue    VenueService
	Purchase PurchaseService
	Token    TokenService
}

func NewService(repo *repository.Repository, ledger token.Ledger, config *utils.Config, logger *zap.Logger) *Service {
	return &Service{
		Venue:    NewVenueService(repo, logger),
		Purchase: NewPurchaseService(repo, ledger, logger),
		Token:    NewTokenService(repo, ledger, logger),
	}
}
