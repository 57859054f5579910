// Package token is the fungible-token ledger backing purchase payments.
// The purchase engine only depends on the Transfer contract; the rest
// (account creation, minting, balance queries) exists so venues can be
// funded and settled without an external chain.
package token

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ticket-ledger/internal/data/entity"
	"ticket-ledger/internal/data/repository"
	"ticket-ledger/pkg/address"
)

type Ledger interface {
	// CreateAccount opens a zero-balance account for (mint, holder).
	CreateAccount(ctx context.Context, mint, holder address.Address) error
	// MintTo credits freshly minted units to an existing account.
	MintTo(ctx context.Context, mint, holder address.Address, amount uint64) error
	Balance(ctx context.Context, mint, holder address.Address) (uint64, error)
	// Transfer moves amount between two existing accounts of the same
	// mint. Authority must equal the source holder. On success it
	// returns a transfer reference for audit; on failure neither
	// balance changes.
	Transfer(ctx context.Context, mint, from, to address.Address, amount uint64, authority address.Address) (string, error)
}

type ledger struct {
	accounts repository.TokenAccountRepository
	log      *zap.Logger
}

func NewLedger(accounts repository.TokenAccountRepository, log *zap.Logger) Ledger {
	return &ledger{
		accounts: accounts,
		log:      log.With(zap.String("service", "token_ledger")),
	}
}

func (l *ledger) CreateAccount(ctx context.Context, mint, holder address.Address) error {
	if mint.IsZero() || holder.IsZero() {
		return fmt.Errorf("%w: mint and holder are required", entity.ErrInvalidArgument)
	}

	account := &entity.TokenAccount{Mint: mint, Holder: holder}
	if err := l.accounts.Create(ctx, account); err != nil {
		return err
	}

	l.log.Info("Token account created",
		zap.String("mint", mint.String()),
		zap.String("holder", holder.String()),
	)
	return nil
}

func (l *ledger) MintTo(ctx context.Context, mint, holder address.Address, amount uint64) error {
	account, err := l.accounts.Find(ctx, mint, holder)
	if err != nil {
		return err
	}

	if account.Balance > math.MaxUint64-amount {
		return fmt.Errorf("%w: mint overflows balance of holder %s", entity.ErrInvalidArgument, holder)
	}
	account.Balance += amount

	if err := l.accounts.Save(ctx, account); err != nil {
		return err
	}

	l.log.Info("Minted",
		zap.String("mint", mint.String()),
		zap.String("holder", holder.String()),
		zap.Uint64("amount", amount),
		zap.Uint64("balance", account.Balance),
	)
	return nil
}

func (l *ledger) Balance(ctx context.Context, mint, holder address.Address) (uint64, error) {
	account, err := l.accounts.Find(ctx, mint, holder)
	if err != nil {
		return 0, err
	}
	return account.Balance, nil
}

func (l *ledger) Transfer(ctx context.Context, mint, from, to address.Address, amount uint64, authority address.Address) (string, error) {
	if amount == 0 {
		return "", fmt.Errorf("%w: transfer amount must be positive", entity.ErrInvalidArgument)
	}
	if from == to {
		return "", fmt.Errorf("%w: transfer to self", entity.ErrInvalidArgument)
	}
	if authority != from {
		return "", fmt.Errorf("authority %s does not hold source account %s: %w", authority, from, entity.ErrUnauthorized)
	}

	source, err := l.accounts.Find(ctx, mint, from)
	if err != nil {
		return "", err
	}
	dest, err := l.accounts.Find(ctx, mint, to)
	if err != nil {
		return "", err
	}

	if source.Balance < amount {
		return "", fmt.Errorf("holder %s has %d, needs %d: %w", from, source.Balance, amount, entity.ErrPaymentFailed)
	}
	if dest.Balance > math.MaxUint64-amount {
		return "", fmt.Errorf("%w: credit overflows balance of holder %s", entity.ErrInvalidArgument, to)
	}

	source.Balance -= amount
	dest.Balance += amount

	// Debit and credit land together or not at all.
	if err := l.accounts.SavePair(ctx, source, dest); err != nil {
		return "", fmt.Errorf("%w: %v", entity.ErrPaymentFailed, err)
	}

	ref := uuid.New().String()
	l.log.Info("Transfer committed",
		zap.String("ref", ref),
		zap.String("mint", mint.String()),
		zap.String("from", from.String()),
		zap.String("to", to.String()),
		zap.Uint64("amount", amount),
	)

	return ref, nil
}
