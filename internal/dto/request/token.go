package request

type CreateTokenAccountRequest struct {
	Mint   string `json:"mint" validate:"required"`
	Holder string `json:"holder" validate:"required"`
}

type MintTokenRequest struct {
	Mint   string `json:"mint" validate:"required"`
	Holder string `json:"holder" validate:"required"`
	Amount uint64 `json:"amount" validate:"required,min=1"`
}
