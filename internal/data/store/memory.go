package store

import (
	"context"
	"fmt"
	"sync"

	"ticket-ledger/internal/data/entity"
	"ticket-ledger/pkg/address"
)

// MemoryStore is a map-backed AccountStore for tests and local
// development. The single mutex gives it the same serialized-commit
// semantics as the durable drivers.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[address.Address]Account
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts: make(map[address.Address]Account),
	}
}

func (s *MemoryStore) Exists(ctx context.Context, addr address.Address) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.accounts[addr]
	return ok, nil
}

func (s *MemoryStore) Create(ctx context.Context, addr, owner address.Address, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[addr]; ok {
		return fmt.Errorf("account %s: %w", addr, entity.ErrAlreadyExists)
	}

	s.accounts[addr] = Account{Owner: owner, Data: cloneBytes(data)}
	return nil
}

func (s *MemoryStore) Read(ctx context.Context, addr address.Address) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[addr]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", addr, entity.ErrNotFound)
	}

	return &Account{Owner: acc.Owner, Data: cloneBytes(acc.Data)}, nil
}

func (s *MemoryStore) Write(ctx context.Context, addr address.Address, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[addr]
	if !ok {
		return fmt.Errorf("account %s: %w", addr, entity.ErrNotFound)
	}

	acc.Data = cloneBytes(data)
	s.accounts[addr] = acc
	return nil
}

func (s *MemoryStore) Commit(ctx context.Context, ops ...Op) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate the whole batch before touching anything, so a failed
	// commit leaves no partial state.
	for _, op := range ops {
		_, exists := s.accounts[op.Addr]
		if op.Create && exists {
			return fmt.Errorf("account %s: %w", op.Addr, entity.ErrAlreadyExists)
		}
		if !op.Create && !exists {
			return fmt.Errorf("account %s: %w", op.Addr, entity.ErrNotFound)
		}
	}

	for _, op := range ops {
		if op.Create {
			s.accounts[op.Addr] = Account{Owner: op.Owner, Data: cloneBytes(op.Data)}
			continue
		}
		acc := s.accounts[op.Addr]
		acc.Data = cloneBytes(op.Data)
		s.accounts[op.Addr] = acc
	}

	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
