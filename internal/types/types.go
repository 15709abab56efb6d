package types

import (
	"regexp"

	"github.com/ethereum/go-ethereum/common"
)

var positiveNumericRegex = regexp.MustCompile(`^[1-9][0-9]*$`)

// StringPtr converts a string to a pointer to a string
func StringPtr(s string) *string {
	return &s
}

// Uint64Ptr converts a uint64 to a pointer to a uint64
func Uint64Ptr(u uint64) *uint64 {
	return &u
}

// SafeString returns a safe string from a pointer to a string
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// IsPositiveNumeric checks if a string is a valid positive numeric value
func IsPositiveNumeric(s string) bool {
	return positiveNumericRegex.MatchString(s)
}

// IsEthereumAddress checks if a string is a valid Ethereum address
func IsEthereumAddress(s string) bool {
	return common.IsHexAddress(s)
}

// AddressKey returns the canonical EIP-55 form used as storage key for an address
func AddressKey(addr common.Address) string {
	return addr.Hex()
}
