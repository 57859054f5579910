package response

type TokenAccountResponse struct {
	Mint    string `json:"mint"`
	Holder  string `json:"holder"`
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
}
