package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"ticket-ledger/internal/data/entity"
	"ticket-ledger/internal/data/store"
	"ticket-ledger/pkg/address"
)

type ReceiptRepository interface {
	// Address derives the storage address of the (venue, buyer) receipt.
	Address(venueIdentifier string, buyer address.Address) (address.Address, error)
	// Find fails entity.ErrNotFound before the buyer's first purchase.
	Find(ctx context.Context, venueIdentifier string, buyer address.Address) (*entity.ReceiptRecord, error)
	// FindOrInit returns the stored receipt, or a fresh unpersisted one
	// along with created=false when none exists yet.
	FindOrInit(ctx context.Context, venueIdentifier string, venueAddr, buyer address.Address) (receipt *entity.ReceiptRecord, stored bool, err error)
}

type receiptRepository struct {
	store store.AccountStore
	log   *zap.Logger
}

func NewReceiptRepository(s store.AccountStore, log *zap.Logger) ReceiptRepository {
	return &receiptRepository{
		store: s,
		log:   log.With(zap.String("repository", "receipt")),
	}
}

func (r *receiptRepository) Address(venueIdentifier string, buyer address.Address) (address.Address, error) {
	addr, err := address.Derive(NamespaceTicket, []byte(venueIdentifier), buyer.Bytes())
	if err != nil {
		return address.Zero, fmt.Errorf("%w: receipt for venue %q: %v", entity.ErrInvalidArgument, venueIdentifier, err)
	}
	return addr, nil
}

func (r *receiptRepository) Find(ctx context.Context, venueIdentifier string, buyer address.Address) (*entity.ReceiptRecord, error) {
	addr, err := r.Address(venueIdentifier, buyer)
	if err != nil {
		return nil, err
	}

	acc, err := r.store.Read(ctx, addr)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("receipt for venue %s buyer %s: %w", venueIdentifier, buyer, entity.ErrNotFound)
		}
		r.log.Error("Failed to read receipt",
			zap.Error(err),
			zap.String("identifier", venueIdentifier),
			zap.String("buyer", buyer.String()),
		)
		return nil, fmt.Errorf("read receipt for venue %s: %w", venueIdentifier, err)
	}

	var receipt entity.ReceiptRecord
	if err := store.Unmarshal(acc.Data, &receipt); err != nil {
		return nil, fmt.Errorf("decode receipt for venue %s: %w", venueIdentifier, err)
	}
	if receipt.Holdings == nil {
		receipt.Holdings = make(map[string]uint64)
	}

	return &receipt, nil
}

func (r *receiptRepository) FindOrInit(ctx context.Context, venueIdentifier string, venueAddr, buyer address.Address) (*entity.ReceiptRecord, bool, error) {
	receipt, err := r.Find(ctx, venueIdentifier, buyer)
	if err == nil {
		return receipt, true, nil
	}
	if errors.Is(err, entity.ErrNotFound) {
		return entity.NewReceiptRecord(venueAddr, buyer), false, nil
	}
	return nil, false, err
}
