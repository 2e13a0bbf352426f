package domain

import (
	"math/big"
	"time"

	"github.com/google/uuid"
)

// SettlementStatus is the terminal state of the dispatch state machine
// (RESOLVED -> DISPATCHING -> SETTLED | FAILED).
type SettlementStatus string

const (
	SettlementSettled SettlementStatus = "SETTLED"
	SettlementFailed  SettlementStatus = "FAILED"
	// SettlementSkipped marks prizes with no on-chain leg (SPECIAL).
	SettlementSkipped SettlementStatus = "SKIPPED"
)

// SettlementResult is the outcome of dispatching a resolved prize.
// An empty TxHash with status FAILED means the payout/mint did not land;
// the purchase record still carries it so nothing is unaccounted for.
type SettlementResult struct {
	Status        SettlementStatus `json:"status"`
	TxHash        string           `json:"tx_hash,omitempty"`
	MintedTokenID *big.Int         `json:"minted_token_id,omitempty"`
	MetadataURI   string           `json:"metadata_uri,omitempty"`
}

// RandomData is the auditable draw material revealed to the client.
// Given ClientSeed, ServerSeed and Nonce anyone can recompute Hash and
// Value and confirm the prize was not steered.
type RandomData struct {
	ClientSeed string  `json:"client_seed"`
	ServerSeed string  `json:"server_seed"`
	Nonce      uint64  `json:"nonce"`
	Hash       string  `json:"hash"`
	Value      float64 `json:"value"`
}

// PurchaseRecord is the immutable audit entity written once at the end
// of a pipeline run.
type PurchaseRecord struct {
	ID         uuid.UUID
	BoxType    int
	Wallet     string // lowercase hex
	Amount     *big.Int
	Timestamp  int64
	Signature  string // authorization signature presented at settlement
	BurnTxHash string

	PrizeID   string
	PrizeName string
	PrizeType PrizeType

	Random     RandomData
	Settlement SettlementResult

	CreatedAt time.Time
}
