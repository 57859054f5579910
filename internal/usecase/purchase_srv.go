package usecase

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"ticket-ledger/internal/data/entity"
	"ticket-ledger/internal/data/repository"
	"ticket-ledger/internal/dto/request"
	"ticket-ledger/internal/dto/response"
	"ticket-ledger/internal/token"
	"ticket-ledger/pkg/address"
	"ticket-ledger/pkg/utils"
)

type PurchaseService interface {
	// Purchase executes the full sale: validate against the tier, take
	// payment, decrement supply, and record the buyer's holding.
	// Everything before the payment is a clean no-op on failure.
	Purchase(ctx context.Context, buyer address.Address, req *request.PurchaseRequest) (*response.PurchaseResponse, error)

	// FetchReceipt fails entity.ErrNotFound before the buyer's first
	// successful purchase at the venue.
	FetchReceipt(ctx context.Context, venueID string, buyer address.Address) (*response.ReceiptResponse, error)
}

type purchaseService struct {
	repo   *repository.Repository
	ledger token.Ledger
	log    *zap.Logger

	// Purchases against one venue are strictly ordered; the per-venue
	// mutex is the single-writer boundary.
	mu         sync.Mutex
	venueLocks map[string]*sync.Mutex
}

func NewPurchaseService(repo *repository.Repository, ledger token.Ledger, log *zap.Logger) PurchaseService {
	return &purchaseService{
		repo:       repo,
		ledger:     ledger,
		log:        log.With(zap.String("service", "purchase")),
		venueLocks: make(map[string]*sync.Mutex),
	}
}

func (s *purchaseService) lockVenue(venueID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.venueLocks[venueID]
	if !ok {
		lock = &sync.Mutex{}
		s.venueLocks[venueID] = lock
	}
	return lock
}

func (s *purchaseService) Purchase(ctx context.Context, buyer address.Address, req *request.PurchaseRequest) (*response.PurchaseResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Purchase validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidArgument, utils.FormatValidationErrors(errs))
	}

	lock := s.lockVenue(req.VenueID)
	lock.Lock()
	defer lock.Unlock()

	venue, err := s.repo.Venue.FindByIdentifier(ctx, req.VenueID)
	if err != nil {
		return nil, err
	}

	tier := venue.FindTier(req.TierName)
	if tier == nil {
		return nil, fmt.Errorf("venue %s tier %q: %w", req.VenueID, req.TierName, entity.ErrTierNotFound)
	}

	if req.Quantity == 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", entity.ErrInvalidArgument)
	}
	if req.Quantity > tier.RemainingSupply {
		return nil, fmt.Errorf("tier %q has %d left, wanted %d: %w",
			req.TierName, tier.RemainingSupply, req.Quantity, entity.ErrInsufficientSupply)
	}

	if tier.UnitPrice > 0 && req.Quantity > math.MaxUint64/tier.UnitPrice {
		return nil, fmt.Errorf("%w: total cost overflows", entity.ErrInvalidArgument)
	}
	totalCost := req.Quantity * tier.UnitPrice

	venueAddr, err := s.repo.Venue.Address(req.VenueID)
	if err != nil {
		return nil, err
	}

	receipt, stored, err := s.repo.Receipt.FindOrInit(ctx, req.VenueID, venueAddr, buyer)
	if err != nil {
		return nil, err
	}

	// Payment first. If the transfer is rejected no ledger state has
	// been touched; if it succeeds, the state commit below must land.
	// Free tiers skip the transfer entirely.
	var transferRef string
	if totalCost > 0 {
		transferRef, err = s.ledger.Transfer(ctx, venue.PaymentMint, buyer, venue.Owner, totalCost, buyer)
		if err != nil {
			s.log.Warn("Purchase payment rejected",
				zap.Error(err),
				zap.String("identifier", req.VenueID),
				zap.String("buyer", buyer.String()),
				zap.Uint64("total_cost", totalCost),
			)
			return nil, err
		}
	}

	tier.RemainingSupply -= req.Quantity
	venue.UpdatedAt = time.Now().Unix()
	receipt.Holdings[req.TierName] += req.Quantity
	receipt.LastPurchaseAt = venue.UpdatedAt

	if err := s.repo.Venue.CommitPurchase(ctx, venue, receipt, !stored); err != nil {
		// Payment went through but the state write did not. This is the
		// one fault that cannot be rolled back here; hand the operator
		// everything needed to reconcile.
		fault := &entity.ConsistencyFaultError{
			Venue:       venueAddr,
			Buyer:       buyer,
			Tier:        req.TierName,
			Quantity:    req.Quantity,
			TransferRef: transferRef,
			Err:         err,
		}
		s.log.Error("CONSISTENCY FAULT: payment committed, state write failed",
			zap.Error(err),
			zap.String("identifier", req.VenueID),
			zap.String("venue_address", venueAddr.String()),
			zap.String("buyer", buyer.String()),
			zap.String("tier", req.TierName),
			zap.Uint64("quantity", req.Quantity),
			zap.Uint64("total_cost", totalCost),
			zap.String("transfer_ref", transferRef),
		)
		return nil, fault
	}

	s.log.Info("Purchase committed",
		zap.String("identifier", req.VenueID),
		zap.String("buyer", buyer.String()),
		zap.String("tier", req.TierName),
		zap.Uint64("quantity", req.Quantity),
		zap.Uint64("total_cost", totalCost),
		zap.Uint64("remaining", tier.RemainingSupply),
		zap.String("transfer_ref", transferRef),
	)

	return &response.PurchaseResponse{
		TransferRef: transferRef,
		TierName:    req.TierName,
		Quantity:    req.Quantity,
		TotalCost:   totalCost,
		Remaining:   tier.RemainingSupply,
		Receipt:     response.ReceiptToResponse(receipt),
	}, nil
}

func (s *purchaseService) FetchReceipt(ctx context.Context, venueID string, buyer address.Address) (*response.ReceiptResponse, error) {
	receipt, err := s.repo.Receipt.Find(ctx, venueID, buyer)
	if err != nil {
		return nil, err
	}

	resp := response.ReceiptToResponse(receipt)
	return &resp, nil
}
