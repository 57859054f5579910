package request

type CreateVenueRequest struct {
	Identifier    string `json:"identifier" validate:"required,min=1,max=128"`
	PaymentMint   string `json:"payment_mint" validate:"required"`
	PayoutAccount string `json:"payout_account" validate:"required"`
}

type AddTierRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=64"`
	UnitPrice   uint64 `json:"unit_price"`
	TotalSupply uint64 `json:"total_supply"`
	// InitialRemaining defaults to TotalSupply when omitted.
	InitialRemaining *uint64 `json:"initial_remaining,omitempty"`
}
