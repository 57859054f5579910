package store

import (
	"context"
	"errors"
	"fmt"

	badgerdb "github.com/dgraph-io/badger/v3"
	"go.uber.org/zap"

	"ticket-ledger/internal/data/entity"
	"ticket-ledger/pkg/address"
)

// BadgerStore is the default AccountStore driver: an embedded BadgerDB
// keyed by raw address bytes, with each value a CBOR envelope of the
// account. A Commit batch runs inside one badger transaction, which
// gives the atomic multi-address semantics the purchase engine needs.
type BadgerStore struct {
	db  *badgerdb.DB
	log *zap.Logger
}

func NewBadgerStore(db *badgerdb.DB, log *zap.Logger) *BadgerStore {
	return &BadgerStore{
		db:  db,
		log: log.With(zap.String("store", "badger")),
	}
}

func (s *BadgerStore) Exists(ctx context.Context, addr address.Address) (bool, error) {
	var exists bool
	err := s.db.View(func(txn *badgerdb.Txn) error {
		_, err := txn.Get(addr.Bytes())
		if errors.Is(err, badgerdb.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		exists = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("check account %s: %w", addr, err)
	}
	return exists, nil
}

func (s *BadgerStore) Create(ctx context.Context, addr, owner address.Address, data []byte) error {
	return s.Commit(ctx, CreateOp(addr, owner, data))
}

func (s *BadgerStore) Read(ctx context.Context, addr address.Address) (*Account, error) {
	var acc Account
	err := s.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get(addr.Bytes())
		if errors.Is(err, badgerdb.ErrKeyNotFound) {
			return fmt.Errorf("account %s: %w", addr, entity.ErrNotFound)
		}
		if err != nil {
			return err
		}

		raw, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		return Unmarshal(raw, &acc)
	})
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, err
		}
		s.log.Error("Failed to read account",
			zap.Error(err),
			zap.String("address", addr.String()),
		)
		return nil, fmt.Errorf("read account %s: %w", addr, err)
	}

	return &acc, nil
}

func (s *BadgerStore) Write(ctx context.Context, addr address.Address, data []byte) error {
	return s.Commit(ctx, WriteOp(addr, data))
}

func (s *BadgerStore) Commit(ctx context.Context, ops ...Op) error {
	err := s.db.Update(func(txn *badgerdb.Txn) error {
		for _, op := range ops {
			key := op.Addr.Bytes()

			item, err := txn.Get(key)
			switch {
			case errors.Is(err, badgerdb.ErrKeyNotFound):
				if !op.Create {
					return fmt.Errorf("account %s: %w", op.Addr, entity.ErrNotFound)
				}
			case err != nil:
				return err
			default:
				if op.Create {
					return fmt.Errorf("account %s: %w", op.Addr, entity.ErrAlreadyExists)
				}
			}

			acc := Account{Owner: op.Owner, Data: op.Data}
			if !op.Create {
				// Keep the original owner on overwrite.
				var existing Account
				raw, err := item.ValueCopy(nil)
				if err != nil {
					return err
				}
				if err := Unmarshal(raw, &existing); err != nil {
					return err
				}
				acc.Owner = existing.Owner
			}

			raw, err := Marshal(&acc)
			if err != nil {
				return err
			}
			if err := txn.Set(key, raw); err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, entity.ErrNotFound) || errors.Is(err, entity.ErrAlreadyExists) {
			return err
		}
		s.log.Error("Failed to commit account batch",
			zap.Error(err),
			zap.Int("ops", len(ops)),
		)
		return fmt.Errorf("commit %d account ops: %w", len(ops), err)
	}

	return nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
