package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"ticket-ledger/internal/data/entity"
	"ticket-ledger/pkg/address"
	"ticket-ledger/pkg/database"
)

// PostgresStore is the AccountStore driver for shared deployments: one
// accounts table keyed by address bytes, with Commit batches running in
// a single SQL transaction.
type PostgresStore struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPostgresStore(ctx context.Context, db database.PgxIface, log *zap.Logger) (*PostgresStore, error) {
	s := &PostgresStore{
		db:  db,
		log: log.With(zap.String("store", "postgres")),
	}

	if err := s.ensureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure accounts schema: %w", err)
	}

	return s, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS accounts (
			addr BYTEA PRIMARY KEY,
			owner BYTEA NOT NULL,
			data BYTEA NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`

	_, err := s.db.Exec(ctx, query)
	return err
}

func (s *PostgresStore) Exists(ctx context.Context, addr address.Address) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE addr = $1)`

	var exists bool
	if err := s.db.QueryRow(ctx, query, addr.Bytes()).Scan(&exists); err != nil {
		s.log.Error("Failed to check account existence",
			zap.Error(err),
			zap.String("address", addr.String()),
		)
		return false, fmt.Errorf("check account %s: %w", addr, err)
	}

	return exists, nil
}

func (s *PostgresStore) Create(ctx context.Context, addr, owner address.Address, data []byte) error {
	return s.Commit(ctx, CreateOp(addr, owner, data))
}

func (s *PostgresStore) Read(ctx context.Context, addr address.Address) (*Account, error) {
	query := `SELECT owner, data FROM accounts WHERE addr = $1`

	var ownerRaw, data []byte
	err := s.db.QueryRow(ctx, query, addr.Bytes()).Scan(&ownerRaw, &data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("account %s: %w", addr, entity.ErrNotFound)
	}
	if err != nil {
		s.log.Error("Failed to read account",
			zap.Error(err),
			zap.String("address", addr.String()),
		)
		return nil, fmt.Errorf("read account %s: %w", addr, err)
	}

	var acc Account
	if len(ownerRaw) == address.Size {
		copy(acc.Owner[:], ownerRaw)
	}
	acc.Data = data
	return &acc, nil
}

func (s *PostgresStore) Write(ctx context.Context, addr address.Address, data []byte) error {
	return s.Commit(ctx, WriteOp(addr, data))
}

func (s *PostgresStore) Commit(ctx context.Context, ops ...Op) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin account commit: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, op := range ops {
		if op.Create {
			query := `
				INSERT INTO accounts (addr, owner, data)
				VALUES ($1, $2, $3)
				ON CONFLICT (addr) DO NOTHING
			`
			tag, err := tx.Exec(ctx, query, op.Addr.Bytes(), op.Owner.Bytes(), op.Data)
			if err != nil {
				return fmt.Errorf("create account %s: %w", op.Addr, err)
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("account %s: %w", op.Addr, entity.ErrAlreadyExists)
			}
			continue
		}

		query := `UPDATE accounts SET data = $2, updated_at = NOW() WHERE addr = $1`
		tag, err := tx.Exec(ctx, query, op.Addr.Bytes(), op.Data)
		if err != nil {
			return fmt.Errorf("write account %s: %w", op.Addr, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("account %s: %w", op.Addr, entity.ErrNotFound)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit account batch",
			zap.Error(err),
			zap.Int("ops", len(ops)),
		)
		return fmt.Errorf("commit %d account ops: %w", len(ops), err)
	}

	return nil
}

func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}
