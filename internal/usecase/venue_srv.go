package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ticket-ledger/internal/data/entity"
	"ticket-ledger/internal/data/repository"
	"ticket-ledger/internal/dto/request"
	"ticket-ledger/internal/dto/response"
	"ticket-ledger/pkg/address"
	"ticket-ledger/pkg/utils"
)

type VenueService interface {
	// CreateVenue registers a new venue owned by the caller. Duplicate
	// identifiers are rejected, never merged.
	CreateVenue(ctx context.Context, owner address.Address, req *request.CreateVenueRequest) (*response.VenueResponse, error)

	// AddTier appends a ticket tier; owner-only. Re-using a tier name
	// fails entity.ErrAlreadyExists (strict policy, no overwrite).
	AddTier(ctx context.Context, caller address.Address, venueID string, req *request.AddTierRequest) (*response.VenueResponse, error)

	FetchVenue(ctx context.Context, venueID string) (*response.VenueResponse, error)
}

type venueService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewVenueService(repo *repository.Repository, log *zap.Logger) VenueService {
	return &venueService{
		repo: repo,
		log:  log.With(zap.String("service", "venue")),
	}
}

func (s *venueService) CreateVenue(ctx context.Context, owner address.Address, req *request.CreateVenueRequest) (*response.VenueResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create venue validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidArgument, utils.FormatValidationErrors(errs))
	}

	mint, err := address.Parse(req.PaymentMint)
	if err != nil {
		return nil, fmt.Errorf("%w: payment mint: %v", entity.ErrInvalidArgument, err)
	}

	payout, err := address.Parse(req.PayoutAccount)
	if err != nil {
		return nil, fmt.Errorf("%w: payout account: %v", entity.ErrInvalidArgument, err)
	}

	// The payout account must be the owner's token account for the
	// venue's mint, and it must already exist so proceeds have a home.
	expectedPayout, err := s.repo.TokenAccount.Address(mint, owner)
	if err != nil {
		return nil, err
	}
	if payout != expectedPayout {
		return nil, fmt.Errorf("%w: payout account does not belong to owner for this mint", entity.ErrInvalidArgument)
	}
	if _, err := s.repo.TokenAccount.Find(ctx, mint, owner); err != nil {
		return nil, fmt.Errorf("%w: payout token account does not exist", entity.ErrInvalidArgument)
	}

	now := time.Now().Unix()
	venue := &entity.VenueRecord{
		Identifier:    req.Identifier,
		Owner:         owner,
		PaymentMint:   mint,
		PayoutAccount: payout,
		Tiers:         []entity.TicketTier{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Venue.Create(ctx, venue); err != nil {
		return nil, err
	}

	addr, err := s.repo.Venue.Address(venue.Identifier)
	if err != nil {
		return nil, err
	}

	s.log.Info("Venue created",
		zap.String("identifier", venue.Identifier),
		zap.String("address", addr.String()),
		zap.String("owner", owner.String()),
	)

	return response.VenueToResponse(venue, addr), nil
}

func (s *venueService) AddTier(ctx context.Context, caller address.Address, venueID string, req *request.AddTierRequest) (*response.VenueResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add tier validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidArgument, utils.FormatValidationErrors(errs))
	}

	venue, err := s.repo.Venue.FindByIdentifier(ctx, venueID)
	if err != nil {
		return nil, err
	}

	if caller != venue.Owner {
		s.log.Warn("Tier mutation by non-owner",
			zap.String("identifier", venueID),
			zap.String("caller", caller.String()),
		)
		return nil, fmt.Errorf("venue %s: %w", venueID, entity.ErrUnauthorized)
	}

	initialRemaining := req.TotalSupply
	if req.InitialRemaining != nil {
		initialRemaining = *req.InitialRemaining
	}
	if initialRemaining > req.TotalSupply {
		return nil, fmt.Errorf("%w: initial remaining %d exceeds total supply %d",
			entity.ErrInvalidArgument, initialRemaining, req.TotalSupply)
	}

	if venue.HasTier(req.Name) {
		return nil, fmt.Errorf("tier %q: %w", req.Name, entity.ErrAlreadyExists)
	}

	venue.Tiers = append(venue.Tiers, entity.TicketTier{
		Name:            req.Name,
		UnitPrice:       req.UnitPrice,
		TotalSupply:     req.TotalSupply,
		RemainingSupply: initialRemaining,
	})
	venue.UpdatedAt = time.Now().Unix()

	if err := s.repo.Venue.Update(ctx, venue); err != nil {
		return nil, err
	}

	addr, err := s.repo.Venue.Address(venueID)
	if err != nil {
		return nil, err
	}

	s.log.Info("Tier added",
		zap.String("identifier", venueID),
		zap.String("tier", req.Name),
		zap.Uint64("unit_price", req.UnitPrice),
		zap.Uint64("total_supply", req.TotalSupply),
	)

	return response.VenueToResponse(venue, addr), nil
}

func (s *venueService) FetchVenue(ctx context.Context, venueID string) (*response.VenueResponse, error) {
	venue, err := s.repo.Venue.FindByIdentifier(ctx, venueID)
	if err != nil {
		return nil, err
	}

	addr, err := s.repo.Venue.Address(venueID)
	if err != nil {
		return nil, err
	}

	return response.VenueToResponse(venue, addr), nil
}
