package entity

import (
	"ticket-ledger/pkg/address"
)

// TokenAccount holds one holder's balance of one mint. Balances live in
// the same account store as venues and receipts, at addresses derived
// from (mint, holder).
type TokenAccount struct {
	Mint    address.Address `cbor:"mint"`
	Holder  address.Address `cbor:"holder"`
	Balance uint64          `cbor:"balance"`
}
