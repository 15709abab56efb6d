package dto

// AccountResponse represents the game view of an address
type AccountResponse struct {
	Address    string `json:"address"`
	BalanceWei string `json:"balance_wei"`
	Authorized bool   `json:"authorized"`
	TokenCount int    `json:"token_count"`
}

// MinterListResponse lists the authorized addresses
type MinterListResponse struct {
	Minters []string `json:"minters"`
}

// MinterResponse represents the authorization flag of one address
type MinterResponse struct {
	Address    string `json:"address"`
	Authorized bool   `json:"authorized"`
}
