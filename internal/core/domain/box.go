package domain

import (
	"fmt"
	"math/big"
)

// Box is a purchasable mystery box variant with its fixed USD price and
// weighted prize table.
type Box struct {
	Type     int
	Name     string
	PriceUSD float64
	Table    []Prize
}

// StockKey returns the inventory counter key for the box itself.
func (b Box) StockKey() string {
	return fmt.Sprintf("box:%d", b.Type)
}

func gwei(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1_000_000_000))
}

// Catalog returns the static box catalog keyed by box type.
//
// Probabilities within a table intentionally do not sum to exactly 1 for
// every box; the resolver treats the residual mass as a redraw.
func Catalog() map[int]Box {
	return map[int]Box{
		1: {
			Type:     1,
			Name:     "crypto",
			PriceUSD: 17.5,
			Table: []Prize{
				{ID: "cash_small", Name: "0.002 ETH", Type: PrizeCurrency, Probability: 0.55, PayoutWei: gwei(2_000_000)},
				{ID: "cash_medium", Name: "0.01 ETH", Type: PrizeCurrency, Probability: 0.30, PayoutWei: gwei(10_000_000)},
				{ID: "cash_large", Name: "0.05 ETH", Type: PrizeCurrency, Probability: 0.10, PayoutWei: gwei(50_000_000)},
				{ID: "cash_jackpot", Name: "0.5 ETH", Type: PrizeCurrency, Probability: 0.05, PayoutWei: gwei(500_000_000)},
			},
		},
		2: {
			Type:     2,
			Name:     "collector",
			PriceUSD: 35,
			Table: []Prize{
				{ID: "cash_consolation", Name: "0.005 ETH", Type: PrizeCurrency, Probability: 0.60, PayoutWei: gwei(5_000_000)},
				{ID: "nft_common", Name: "Common Collectible", Type: PrizeCollectible, Probability: 0.25, StockRequired: true, MetadataURI: "ipfs://mysterybox/collectibles/common.json"},
				{ID: "nft_rare", Name: "Rare Collectible", Type: PrizeCollectible, Probability: 0.10, StockRequired: true, MetadataURI: "ipfs://mysterybox/collectibles/rare.json"},
				{ID: "nft_legendary", Name: "Legendary Collectible", Type: PrizeCollectible, Probability: 0.04, StockRequired: true, MetadataURI: "ipfs://mysterybox/collectibles/legendary.json"},
			},
		},
		3: {
			Type:     3,
			Name:     "grail",
			PriceUSD: 70,
			Table: []Prize{
				{ID: "cash_floor", Name: "0.01 ETH", Type: PrizeCurrency, Probability: 0.50, PayoutWei: gwei(10_000_000)},
				{ID: "nft_grail", Name: "Grail Collectible", Type: PrizeCollectible, Probability: 0.30, StockRequired: true, MetadataURI: "ipfs://mysterybox/collectibles/grail.json"},
				{ID: "merch_hoodie", Name: "Limited Hoodie", Type: PrizeSpecial, Probability: 0.15, StockRequired: true},
				{ID: "cash_grail_jackpot", Name: "1 ETH", Type: PrizeCurrency, Probability: 0.05, PayoutWei: gwei(1_000_000_000)},
			},
		},
	}
}
