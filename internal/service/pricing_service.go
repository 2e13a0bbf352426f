package service

import (
	"context"
	"fmt"
	"math/big"
)

// StaticPriceOracle implements ports.PriceOracle from configuration.
// Production deployments point this at a price feed; the interface is
// the only contract the pipeline depends on.
type StaticPriceOracle struct {
	priceUSD float64
}

// NewStaticPriceOracle creates a fixed-quote oracle.
func NewStaticPriceOracle(priceUSD float64) *StaticPriceOracle {
	return &StaticPriceOracle{priceUSD: priceUSD}
}

// TokenPriceUSD returns the configured quote.
func (o *StaticPriceOracle) TokenPriceUSD(_ context.Context) (float64, error) {
	if o.priceUSD <= 0 {
		return 0, fmt.Errorf("token price not configured")
	}
	return o.priceUSD, nil
}

// ComputeBurnAmount converts a USD box price into token base units:
// (priceUSD / tokenPriceUSD) whole tokens scaled by 10^decimals.
// Computed in big.Float so large decimal counts do not overflow.
func ComputeBurnAmount(priceUSD, tokenPriceUSD float64, decimals int) *big.Int {
	tokens := new(big.Float).Quo(big.NewFloat(priceUSD), big.NewFloat(tokenPriceUSD))
	scale := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))

	amount, _ := new(big.Float).Mul(tokens, scale).Int(nil)
	return amount
}
