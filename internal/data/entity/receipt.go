package entity

import (
	"ticket-ledger/pkg/address"
)

// ReceiptRecord is the per-(venue, buyer) holding record. It is created
// on the buyer's first successful purchase and accumulates afterwards;
// it is never deleted.
type ReceiptRecord struct {
	Venue          address.Address   `cbor:"venue"`
	Buyer          address.Address   `cbor:"buyer"`
	Holdings       map[string]uint64 `cbor:"holdings"`
	LastPurchaseAt int64             `cbor:"last_purchase_at"`
}

// NewReceiptRecord prepares an empty receipt. It is not persisted until
// the first purchase commits.
func NewReceiptRecord(venue, buyer address.Address) *ReceiptRecord {
	return &ReceiptRecord{
		Venue:    venue,
		Buyer:    buyer,
		Holdings: make(map[string]uint64),
	}
}

// TotalHeld sums holdings across all tiers.
func (r *ReceiptRecord) TotalHeld() uint64 {
	var total uint64
	for _, qty := range r.Holdings {
		total += qty
	}
	return total
}
