package domain

import "math/big"

// PrizeType classifies how a prize is settled.
type PrizeType string

const (
	// PrizeCurrency pays out native currency. Never stock-constrained.
	PrizeCurrency PrizeType = "CURRENCY"
	// PrizeCollectible mints an NFT from the prize contract.
	PrizeCollectible PrizeType = "COLLECTIBLE"
	// PrizeSpecial is a physically fulfilled prize (merch, event access).
	PrizeSpecial PrizeType = "SPECIAL"
)

// Prize is one entry of a box's weighted prize table. Tables are static
// per box variant; stock lives in the inventory ledger, not here.
type Prize struct {
	ID            string
	Name          string
	Type          PrizeType
	Probability   float64
	StockRequired bool
	PayoutWei     *big.Int // settlement amount for CURRENCY prizes
	MetadataURI   string   // token metadata for COLLECTIBLE prizes
}

// StockKey returns the inventory counter key for this prize.
func (p Prize) StockKey() string {
	return "prize:" + p.ID
}

// FallbackPrize picks the guaranteed prize used when resolution exhausts
// its retry ceiling: the first entry of an unconstrained currency class,
// or failing that the table's first entry. Total over any non-empty table.
func FallbackPrize(table []Prize) Prize {
	for _, p := range table {
		if p.Type == PrizeCurrency && !p.StockRequired {
			return p
		}
	}
	return table[0]
}
