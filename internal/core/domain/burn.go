package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// BurnEvidence is the decoded burn event pulled from an on-chain receipt.
// Read-only: it either exactly matches the authorization or the purchase
// is rejected before any funds or prizes move.
type BurnEvidence struct {
	TxHash    common.Hash
	Payer     common.Address
	Amount    *big.Int
	Timestamp int64
}

// Matches reports whether the evidence corresponds to the given
// authorization triple. Address comparison is byte-wise on the parsed
// address, which makes it case-insensitive with respect to hex input.
func (e BurnEvidence) Matches(wallet common.Address, amount *big.Int, timestamp int64) bool {
	return e.Payer == wallet &&
		e.Amount != nil && amount != nil && e.Amount.Cmp(amount) == 0 &&
		e.Timestamp == timestamp
}
