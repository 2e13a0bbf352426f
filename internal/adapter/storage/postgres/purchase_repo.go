package postgres

import (
	"context"
	"fmt"

	"mystery-box-service/internal/core/domain"
)

// PurchaseRepo implements ports.PurchaseRepository. Purchase records
// are append-only: the table carries no UPDATE path at all.
type PurchaseRepo struct {
	pool Pool
}

// NewPurchaseRepo creates a new PurchaseRepo.
func NewPurchaseRepo(pool Pool) *PurchaseRepo {
	return &PurchaseRepo{pool: pool}
}

// Create inserts the purchase record. Amounts are stored as NUMERIC
// text so 18-decimal token amounts never lose precision.
func (r *PurchaseRepo) Create(ctx context.Context, rec *domain.PurchaseRecord) error {
	query := `INSERT INTO purchases (
			id, box_type, wallet, amount, auth_timestamp, signature, burn_tx_hash,
			prize_id, prize_name, prize_type,
			client_seed, server_seed, nonce, draw_hash, draw_value,
			settlement_status, settlement_tx_hash, minted_token_id, metadata_uri,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`

	var mintedTokenID *string
	if rec.Settlement.MintedTokenID != nil {
		s := rec.Settlement.MintedTokenID.String()
		mintedTokenID = &s
	}

	_, err := r.pool.Exec(ctx, query,
		rec.ID, rec.BoxType, rec.Wallet, rec.Amount.String(), rec.Timestamp,
		rec.Signature, rec.BurnTxHash,
		rec.PrizeID, rec.PrizeName, string(rec.PrizeType),
		rec.Random.ClientSeed, rec.Random.ServerSeed, rec.Random.Nonce,
		rec.Random.Hash, rec.Random.Value,
		string(rec.Settlement.Status), rec.Settlement.TxHash, mintedTokenID,
		rec.Settlement.MetadataURI,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase record: %w", err)
	}
	return nil
}
