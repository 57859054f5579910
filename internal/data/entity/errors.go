package entity

import (
	"errors"
	"fmt"

	"ticket-ledger/pkg/address"
)

// Ledger error taxonomy. Every expected failure mode has its own
// sentinel so callers branch with errors.Is instead of matching strings.
var (
	ErrNotFound           = errors.New("record not found")
	ErrAlreadyExists      = errors.New("record already exists")
	ErrUnauthorized       = errors.New("caller is not the record authority")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrTierNotFound       = errors.New("ticket tier not found")
	ErrInsufficientSupply = errors.New("insufficient ticket supply")
	ErrPaymentFailed      = errors.New("payment transfer failed")
)

// ConsistencyFaultError reports the one non-retryable failure mode: the
// payment transfer succeeded but persisting the venue/receipt state did
// not. It carries everything a reconciliation process needs.
type ConsistencyFaultError struct {
	Venue       address.Address
	Buyer       address.Address
	Tier        string
	Quantity    uint64
	TransferRef string
	Err         error
}

func (e *ConsistencyFaultError) Error() string {
	return fmt.Sprintf(
		"consistency fault: payment %s committed but state write failed for venue %s buyer %s tier %q qty %d: %v",
		e.TransferRef, e.Venue, e.Buyer, e.Tier, e.Quantity, e.Err,
	)
}

func (e *ConsistencyFaultError) Unwrap() error {
	return e.Err
}
