package constants

const (
	MAX_TOKEN_IDS_PER_REQUEST = 16
	DEFAULT_PURCHASES_LIMIT   = 50
	MAX_PURCHASES_LIMIT       = 200
	DEFAULT_LISTINGS_LIMIT    = 50
	MAX_LISTINGS_LIMIT        = 200
)
