package domain

import "errors"

var (
	// ErrUnauthorized is returned when the caller lacks the required privilege
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotTokenOwner is returned when the caller is not the current owner of the token
	ErrNotTokenOwner = errors.New("not token owner")

	// ErrNotOwnerOrAuthorized is returned when a burn is attempted by neither the owner nor an authorized address
	ErrNotOwnerOrAuthorized = errors.New("not owner or authorized")

	// ErrNonexistentToken is returned when an operation targets a burned or never-minted token
	ErrNonexistentToken = errors.New("nonexistent token")

	// ErrInsufficientPayment is returned when the attached value is below the required amount
	ErrInsufficientPayment = errors.New("insufficient payment")

	// ErrInsufficientFunds is returned when an account balance cannot cover the attached value
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidLevel is returned for a target level that is not above the current level or exceeds the cap
	ErrInvalidLevel = errors.New("invalid level")

	// ErrInvalidPrice is returned when a listing price is not positive
	ErrInvalidPrice = errors.New("invalid price")

	// ErrInvalidRecipe is returned when a burn set does not match any upgrade recipe
	ErrInvalidRecipe = errors.New("invalid recipe")

	// ErrNotListed is returned when no active listing exists for the token
	ErrNotListed = errors.New("not listed")

	// ErrNotSeller is returned when the caller is not the seller of the listing
	ErrNotSeller = errors.New("not seller")

	// ErrListingConflict is returned when a listing for the token is held by a different seller
	ErrListingConflict = errors.New("listing held by another seller")

	// ErrSelfPurchase is returned when a seller tries to buy their own listing
	ErrSelfPurchase = errors.New("cannot buy own listing")

	// ErrUnknownPurchase is returned when a purchase id does not reference an unresolved purchase
	ErrUnknownPurchase = errors.New("unknown purchase")

	// ErrPurchaseNotReady is returned when the reveal height of a purchase is not sealed yet
	ErrPurchaseNotReady = errors.New("purchase not ready to open")

	// ErrUnknownCaseType is returned for a case type missing from the catalogue
	ErrUnknownCaseType = errors.New("unknown case type")

	// ErrInvalidAddress is returned when the zero address is used as owner or recipient
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidAmount is returned for a negative or malformed amount
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidAttributes is returned when a mint carries an unknown meme type, rarity or colour variant
	ErrInvalidAttributes = errors.New("invalid token attributes")
)
