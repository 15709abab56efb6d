package domain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// Token constants
	FIRST_TOKEN_ID       uint64 = 1
	INITIAL_TOKEN_LEVEL  uint32 = 1
	COLOR_VARIANT_COUNT         = 5
	DEFAULT_MAX_LEVEL    uint32 = 100
	DEFAULT_RECIPE_INPUT        = 3

	// Blockchain constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"
)

// Wei denominations
var (
	Gwei  = big.NewInt(1_000_000_000)
	Ether = new(big.Int).Mul(Gwei, Gwei)
)

// ZeroAddress is the zero address; it never owns a token
var ZeroAddress = common.HexToAddress(ETHEREUM_ZERO_ADDRESS)

// IsZeroAddress checks whether addr is the zero address
func IsZeroAddress(addr common.Address) bool {
	return addr == ZeroAddress
}

// ParseAddress parses a hex address, rejecting malformed input
func ParseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return common.HexToAddress(s), nil
}

// ParseAmount parses a non-negative decimal wei amount
func ParseAmount(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return new(big.Int), nil
	}
	amount, ok := new(big.Int).SetString(s, 10)
	if !ok || amount.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return amount, nil
}

// MilliEther returns n thousandths of an ether expressed in wei
func MilliEther(n int64) *big.Int {
	return new(big.Int).Div(new(big.Int).Mul(big.NewInt(n), Ether), big.NewInt(1000))
}
