package entity

import (
	"ticket-ledger/pkg/address"
)

// TicketTier is one named class of ticket inside a venue. Remaining
// never exceeds TotalSupply; only successful purchases decrement it.
type TicketTier struct {
	Name            string `cbor:"name"`
	UnitPrice       uint64 `cbor:"unit_price"`
	TotalSupply     uint64 `cbor:"total_supply"`
	RemainingSupply uint64 `cbor:"remaining_supply"`
}

// VenueRecord is the per-venue ledger account. Tier order is insertion
// order; lookups take the first name match.
type VenueRecord struct {
	Identifier    string          `cbor:"identifier"`
	Owner         address.Address `cbor:"owner"`
	PaymentMint   address.Address `cbor:"payment_mint"`
	PayoutAccount address.Address `cbor:"payout_account"`
	Tiers         []TicketTier    `cbor:"tiers"`
	CreatedAt     int64           `cbor:"created_at"`
	UpdatedAt     int64           `cbor:"updated_at"`
}

// FindTier returns a pointer into Tiers for the first tier with the
// given name, or nil.
func (v *VenueRecord) FindTier(name string) *TicketTier {
	for i := range v.Tiers {
		if v.Tiers[i].Name == name {
			return &v.Tiers[i]
		}
	}
	return nil
}

// HasTier reports whether a tier with the given name exists.
func (v *VenueRecord) HasTier(name string) bool {
	return v.FindTier(name) != nil
}
