// Package store is the account-store adapter: a small key-value account
// abstraction (exists / create / read / write plus an atomic multi-address
// commit) that the ledger core depends on, with interchangeable badger,
// postgres, and in-memory drivers.
package store

import (
	"context"

	"ticket-ledger/pkg/address"
)

// Account is one stored account: who owns it and its payload bytes.
type Account struct {
	Owner address.Address `cbor:"owner"`
	Data  []byte          `cbor:"data"`
}

// Op is a single write inside an atomic Commit batch.
type Op struct {
	Addr   address.Address
	Owner  address.Address
	Data   []byte
	Create bool // create-exclusive: fail the whole batch if the address exists
}

// CreateOp builds a create-exclusive batch entry.
func CreateOp(addr, owner address.Address, data []byte) Op {
	return Op{Addr: addr, Owner: owner, Data: data, Create: true}
}

// WriteOp builds an overwrite batch entry for an existing account.
func WriteOp(addr address.Address, data []byte) Op {
	return Op{Addr: addr, Data: data}
}

// AccountStore is the persistence contract for ledger accounts. Commit
// applies all ops or none; concurrent commits touching the same address
// are serialized by the driver.
type AccountStore interface {
	Exists(ctx context.Context, addr address.Address) (bool, error)
	// Create fails with entity.ErrAlreadyExists when the address is taken.
	Create(ctx context.Context, addr, owner address.Address, data []byte) error
	// Read fails with entity.ErrNotFound for missing accounts.
	Read(ctx context.Context, addr address.Address) (*Account, error)
	// Write overwrites the payload of an existing account; fails with
	// entity.ErrNotFound when the account was never created.
	Write(ctx context.Context, addr address.Address, data []byte) error
	Commit(ctx context.Context, ops ...Op) error
	Close() error
}
