package logger

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// Address returns a zap field holding an EIP-55 address
func Address(key string, addr common.Address) zap.Field {
	return zap.String(key, addr.Hex())
}

// Wei returns a zap field holding a wei amount in decimal
func Wei(key string, amount *big.Int) zap.Field {
	if amount == nil {
		return zap.String(key, "0")
	}
	return zap.String(key, amount.String())
}

// TokenID returns a zap field holding a token id
func TokenID(id uint64) zap.Field {
	return zap.Uint64("token_id", id)
}
