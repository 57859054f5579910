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

type TokenAccountRepository interface {
	Address(mint, holder address.Address) (address.Address, error)
	Create(ctx context.Context, account *entity.TokenAccount) error
	Find(ctx context.Context, mint, holder address.Address) (*entity.TokenAccount, error)
	Save(ctx context.Context, account *entity.TokenAccount) error
	// SavePair writes a debit/credit pair in one atomic batch.
	SavePair(ctx context.Context, from, to *entity.TokenAccount) error
}

type tokenAccountRepository struct {
	store store.AccountStore
	log   *zap.Logger
}

func NewTokenAccountRepository(s store.AccountStore, log *zap.Logger) TokenAccountRepository {
	return &tokenAccountRepository{
		store: s,
		log:   log.With(zap.String("repository", "token_account")),
	}
}

func (r *tokenAccountRepository) Address(mint, holder address.Address) (address.Address, error) {
	addr, err := address.Derive(NamespaceToken, mint.Bytes(), holder.Bytes())
	if err != nil {
		return address.Zero, fmt.Errorf("%w: token account: %v", entity.ErrInvalidArgument, err)
	}
	return addr, nil
}

func (r *tokenAccountRepository) Create(ctx context.Context, account *entity.TokenAccount) error {
	addr, err := r.Address(account.Mint, account.Holder)
	if err != nil {
		return err
	}

	data, err := store.Marshal(account)
	if err != nil {
		return fmt.Errorf("marshal token account: %w", err)
	}

	if err := r.store.Create(ctx, addr, account.Holder, data); err != nil {
		if errors.Is(err, entity.ErrAlreadyExists) {
			return fmt.Errorf("token account for holder %s: %w", account.Holder, entity.ErrAlreadyExists)
		}
		r.log.Error("Failed to create token account",
			zap.Error(err),
			zap.String("holder", account.Holder.String()),
			zap.String("mint", account.Mint.String()),
		)
		return fmt.Errorf("create token account for holder %s: %w", account.Holder, err)
	}

	return nil
}

func (r *tokenAccountRepository) Find(ctx context.Context, mint, holder address.Address) (*entity.TokenAccount, error) {
	addr, err := r.Address(mint, holder)
	if err != nil {
		return nil, err
	}

	acc, err := r.store.Read(ctx, addr)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("token account for holder %s: %w", holder, entity.ErrNotFound)
		}
		r.log.Error("Failed to read token account",
			zap.Error(err),
			zap.String("holder", holder.String()),
			zap.String("mint", mint.String()),
		)
		return nil, fmt.Errorf("read token account for holder %s: %w", holder, err)
	}

	var account entity.TokenAccount
	if err := store.Unmarshal(acc.Data, &account); err != nil {
		return nil, fmt.Errorf("decode token account for holder %s: %w", holder, err)
	}

	return &account, nil
}

func (r *tokenAccountRepository) Save(ctx context.Context, account *entity.TokenAccount) error {
	addr, err := r.Address(account.Mint, account.Holder)
	if err != nil {
		return err
	}

	data, err := store.Marshal(account)
	if err != nil {
		return fmt.Errorf("marshal token account: %w", err)
	}

	if err := r.store.Write(ctx, addr, data); err != nil {
		return fmt.Errorf("save token account for holder %s: %w", account.Holder, err)
	}

	return nil
}

func (r *tokenAccountRepository) SavePair(ctx context.Context, from, to *entity.TokenAccount) error {
	fromAddr, err := r.Address(from.Mint, from.Holder)
	if err != nil {
		return err
	}
	toAddr, err := r.Address(to.Mint, to.Holder)
	if err != nil {
		return err
	}

	fromData, err := store.Marshal(from)
	if err != nil {
		return fmt.Errorf("marshal token account: %w", err)
	}
	toData, err := store.Marshal(to)
	if err != nil {
		return fmt.Errorf("marshal token account: %w", err)
	}

	err = r.store.Commit(ctx,
		store.WriteOp(fromAddr, fromData),
		store.WriteOp(toAddr, toData),
	)
	if err != nil {
		r.log.Error("Failed to commit balance pair",
			zap.Error(err),
			zap.String("from", from.Holder.String()),
			zap.String("to", to.Holder.String()),
		)
		return fmt.Errorf("commit balance pair: %w", err)
	}

	return nil
}
