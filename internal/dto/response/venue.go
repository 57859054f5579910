package response

import (
	"ticket-ledger/internal/data/entity"
	"ticket-ledger/pkg/address"
)

type TierResponse struct {
	Name            string `json:"name"`
	UnitPrice       uint64 `json:"unit_price"`
	TotalSupply     uint64 `json:"total_supply"`
	RemainingSupply uint64 `json:"remaining_supply"`
}

type VenueResponse struct {
	Identifier    string         `json:"identifier"`
	Address       string         `json:"address"`
	Owner         string         `json:"owner"`
	PaymentMint   string         `json:"payment_mint"`
	PayoutAccount string         `json:"payout_account"`
	Tiers         []TierResponse `json:"tiers"`
	CreatedAt     int64          `json:"created_at"`
	UpdatedAt     int64          `json:"updated_at"`
}

func VenueToResponse(venue *entity.VenueRecord, addr address.Address) *VenueResponse {
	tiers := make([]TierResponse, len(venue.Tiers))
	for i, tier := range venue.Tiers {
		tiers[i] = TierResponse{
			Name:            tier.Name,
			UnitPrice:       tier.UnitPrice,
			TotalSupply:     tier.TotalSupply,
			RemainingSupply: tier.RemainingSupply,
		}
	}

	return &VenueResponse{
		Identifier:    venue.Identifier,
		Address:       addr.String(),
		Owner:         venue.Owner.String(),
		PaymentMint:   venue.PaymentMint.String(),
		PayoutAccount: venue.PayoutAccount.String(),
		Tiers:         tiers,
		CreatedAt:     venue.CreatedAt,
		UpdatedAt:     venue.UpdatedAt,
	}
}
