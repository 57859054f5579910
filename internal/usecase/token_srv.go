package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ticket-ledger/internal/data/entity"
	"ticket-ledger/internal/data/repository"
	"ticket-ledger/internal/dto/request"
	"ticket-ledger/internal/dto/response"
	"ticket-ledger/internal/token"
	"ticket-ledger/pkg/address"
	"ticket-ledger/pkg/utils"
)

// TokenService exposes the funding side of the token ledger: account
// creation, minting (the dev faucet), and balance queries. Transfers
// happen only inside purchases.
type TokenService interface {
	CreateAccount(ctx context.Context, req *request.CreateTokenAccountRequest) (*response.TokenAccountResponse, error)
	Mint(ctx context.Context, req *request.MintTokenRequest) (*response.TokenAccountResponse, error)
	Balance(ctx context.Context, mint, holder string) (*response.TokenAccountResponse, error)
}

type tokenService struct {
	repo   *repository.Repository
	ledger token.Ledger
	log    *zap.Logger
}

func NewTokenService(repo *repository.Repository, ledger token.Ledger, log *zap.Logger) TokenService {
	return &tokenService{
		repo:   repo,
		ledger: ledger,
		log:    log.With(zap.String("service", "token")),
	}
}

func (s *tokenService) parsePair(mintRaw, holderRaw string) (mint, holder address.Address, err error) {
	mint, err = address.Parse(mintRaw)
	if err != nil {
		return address.Zero, address.Zero, fmt.Errorf("%w: mint: %v", entity.ErrInvalidArgument, err)
	}
	holder, err = address.Parse(holderRaw)
	if err != nil {
		return address.Zero, address.Zero, fmt.Errorf("%w: holder: %v", entity.ErrInvalidArgument, err)
	}
	return mint, holder, nil
}

func (s *tokenService) accountResponse(ctx context.Context, mint, holder address.Address) (*response.TokenAccountResponse, error) {
	addr, err := s.repo.TokenAccount.Address(mint, holder)
	if err != nil {
		return nil, err
	}

	balance, err := s.ledger.Balance(ctx, mint, holder)
	if err != nil {
		return nil, err
	}

	return &response.TokenAccountResponse{
		Mint:    mint.String(),
		Holder:  holder.String(),
		Address: addr.String(),
		Balance: balance,
	}, nil
}

func (s *tokenService) CreateAccount(ctx context.Context, req *request.CreateTokenAccountRequest) (*response.TokenAccountResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidArgument, utils.FormatValidationErrors(errs))
	}

	mint, holder, err := s.parsePair(req.Mint, req.Holder)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.CreateAccount(ctx, mint, holder); err != nil {
		return nil, err
	}

	return s.accountResponse(ctx, mint, holder)
}

func (s *tokenService) Mint(ctx context.Context, req *request.MintTokenRequest) (*response.TokenAccountResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidArgument, utils.FormatValidationErrors(errs))
	}

	mint, holder, err := s.parsePair(req.Mint, req.Holder)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.MintTo(ctx, mint, holder, req.Amount); err != nil {
		return nil, err
	}

	return s.accountResponse(ctx, mint, holder)
}

func (s *tokenService) Balance(ctx context.Context, mint, holder string) (*response.TokenAccountResponse, error) {
	mintAddr, holderAddr, err := s.parsePair(mint, holder)
	if err != nil {
		return nil, err
	}

	return s.accountResponse(ctx, mintAddr, holderAddr)
}
