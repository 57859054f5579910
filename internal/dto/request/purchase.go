package request

type PurchaseRequest struct {
	VenueID  string `json:"venue_id" validate:"required,min=1,max=128"`
	TierName string `json:"tier_name" validate:"required,min=1,max=64"`
	Quantity uint64 `json:"quantity" validate:"required,min=1"`
}
