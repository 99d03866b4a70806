package request

type WipeRequest struct {
	Account       string `json:"account"`
	IgnoreNetwork bool   `json:"ignoreNetwork"`
	ChainID       string `json:"chainId"`
} // @name WipeRequest
