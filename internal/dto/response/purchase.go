package response

import (
	"ticket-ledger/internal/data/entity"
)

type ReceiptResponse struct {
	Venue          string            `json:"venue"`
	Buyer          string            `json:"buyer"`
	Holdings       map[string]uint64 `json:"holdings"`
	LastPurchaseAt int64             `json:"last_purchase_at,omitempty"`
}

type PurchaseResponse struct {
	TransferRef string          `json:"transfer_ref"`
	TierName    string          `json:"tier_name"`
	Quantity    uint64          `json:"quantity"`
	TotalCost   uint64          `json:"total_cost"`
	Remaining   uint64          `json:"remaining_supply"`
	Receipt     ReceiptResponse `json:"receipt"`
}

func ReceiptToResponse(receipt *entity.ReceiptRecord) ReceiptResponse {
	holdings := make(map[string]uint64, len(receipt.Holdings))
	for tier, qty := range receipt.Holdings {
		holdings[tier] = qty
	}

	return ReceiptResponse{
		Venue:          receipt.Venue.String(),
		Buyer:          receipt.Buyer.String(),
		Holdings:       holdings,
		LastPurchaseAt: receipt.LastPurchaseAt,
	}
}
