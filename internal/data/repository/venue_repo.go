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

type VenueRepository interface {
	// Address derives the storage address for a venue identifier.
	Address(identifier string) (address.Address, error)
	// Create persists a fresh venue; fails entity.ErrAlreadyExists when
	// an account already sits at the derived address.
	Create(ctx context.Context, venue *entity.VenueRecord) error
	// FindByIdentifier fails entity.ErrNotFound for unknown venues.
	FindByIdentifier(ctx context.Context, identifier string) (*entity.VenueRecord, error)
	// Update overwrites an existing venue record.
	Update(ctx context.Context, venue *entity.VenueRecord) error
	// CommitPurchase atomically writes the decremented venue and the
	// buyer receipt; createReceipt marks a first-purchase receipt.
	CommitPurchase(ctx context.Context, venue *entity.VenueRecord, receipt *entity.ReceiptRecord, createReceipt bool) error
}

type venueRepository struct {
	store store.AccountStore
	log   *zap.Logger
}

func NewVenueRepository(s store.AccountStore, log *zap.Logger) VenueRepository {
	return &venueRepository{
		store: s,
		log:   log.With(zap.String("repository", "venue")),
	}
}

func (r *venueRepository) Address(identifier string) (address.Address, error) {
	addr, err := address.Derive(NamespaceVenue, []byte(identifier))
	if err != nil {
		return address.Zero, fmt.Errorf("%w: venue identifier %q: %v", entity.ErrInvalidArgument, identifier, err)
	}
	return addr, nil
}

func (r *venueRepository) Create(ctx context.Context, venue *entity.VenueRecord) error {
	addr, err := r.Address(venue.Identifier)
	if err != nil {
		return err
	}

	data, err := store.Marshal(venue)
	if err != nil {
		return fmt.Errorf("marshal venue %s: %w", venue.Identifier, err)
	}

	if err := r.store.Create(ctx, addr, venue.Owner, data); err != nil {
		if errors.Is(err, entity.ErrAlreadyExists) {
			return fmt.Errorf("venue %s: %w", venue.Identifier, entity.ErrAlreadyExists)
		}
		r.log.Error("Failed to create venue",
			zap.Error(err),
			zap.String("identifier", venue.Identifier),
			zap.String("address", addr.String()),
		)
		return fmt.Errorf("create venue %s: %w", venue.Identifier, err)
	}

	return nil
}

func (r *venueRepository) FindByIdentifier(ctx context.Context, identifier string) (*entity.VenueRecord, error) {
	addr, err := r.Address(identifier)
	if err != nil {
		return nil, err
	}

	acc, err := r.store.Read(ctx, addr)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("venue %s: %w", identifier, entity.ErrNotFound)
		}
		r.log.Error("Failed to read venue",
			zap.Error(err),
			zap.String("identifier", identifier),
		)
		return nil, fmt.Errorf("read venue %s: %w", identifier, err)
	}

	var venue entity.VenueRecord
	if err := store.Unmarshal(acc.Data, &venue); err != nil {
		return nil, fmt.Errorf("decode venue %s: %w", identifier, err)
	}

	return &venue, nil
}

func (r *venueRepository) Update(ctx context.Context, venue *entity.VenueRecord) error {
	addr, err := r.Address(venue.Identifier)
	if err != nil {
		return err
	}

	data, err := store.Marshal(venue)
	if err != nil {
		return fmt.Errorf("marshal venue %s: %w", venue.Identifier, err)
	}

	if err := r.store.Write(ctx, addr, data); err != nil {
		r.log.Error("Failed to update venue",
			zap.Error(err),
			zap.String("identifier", venue.Identifier),
		)
		return fmt.Errorf("update venue %s: %w", venue.Identifier, err)
	}

	return nil
}

func (r *venueRepository) CommitPurchase(ctx context.Context, venue *entity.VenueRecord, receipt *entity.ReceiptRecord, createReceipt bool) error {
	venueAddr, err := r.Address(venue.Identifier)
	if err != nil {
		return err
	}

	receiptAddr, err := address.Derive(NamespaceTicket, []byte(venue.Identifier), receipt.Buyer.Bytes())
	if err != nil {
		return fmt.Errorf("%w: receipt address for venue %q: %v", entity.ErrInvalidArgument, venue.Identifier, err)
	}

	venueData, err := store.Marshal(venue)
	if err != nil {
		return fmt.Errorf("marshal venue %s: %w", venue.Identifier, err)
	}

	receiptData, err := store.Marshal(receipt)
	if err != nil {
		return fmt.Errorf("marshal receipt for venue %s: %w", venue.Identifier, err)
	}

	ops := []store.Op{store.WriteOp(venueAddr, venueData)}
	if createReceipt {
		ops = append(ops, store.CreateOp(receiptAddr, receipt.Buyer, receiptData))
	} else {
		ops = append(ops, store.WriteOp(receiptAddr, receiptData))
	}

	if err := r.store.Commit(ctx, ops...); err != nil {
		r.log.Error("Failed to commit purchase state",
			zap.Error(err),
			zap.String("identifier", venue.Identifier),
			zap.String("buyer", receipt.Buyer.String()),
		)
		return fmt.Errorf("commit purchase for venue %s: %w", venue.Identifier, err)
	}

	return nil
}
