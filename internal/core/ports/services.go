package ports

import (
	"context"
	"math/big"

	"mystery-box-service/internal/core/domain"

	"github.com/ethereum/go-ethereum/common"
)

// AuthoritySigner builds and signs burn authorizations with the service
// authority key, and recovers signer addresses for verification.
type AuthoritySigner interface {
	// Address is the known authority address clients and contracts trust.
	Address() common.Address

	// MessageHash packs (wallet, amount, timestamp) into the canonical
	// byte layout and returns its Keccak-256 hash. Pure and byte-stable.
	MessageHash(wallet common.Address, amount *big.Int, timestamp int64) common.Hash

	// SignAuthorization signs the message hash under the personal-message
	// convention and self-checks that the signature recovers to the
	// authority address. Fails closed on any disagreement.
	SignAuthorization(wallet common.Address, amount *big.Int, timestamp int64) (*domain.AuthorizationGrant, error)

	// RecoverSigner returns the address that produced sig over hash.
	RecoverSigner(hash common.Hash, sig []byte) (common.Address, error)
}

// ReplayGuard enforces the validity window and single consumption of an
// authorization triple per phase.
type ReplayGuard interface {
	// Validate enforces the timestamp window and the phase's replay
	// rules. The issue phase consumes the triple; the settle phase is
	// a read-only precheck, so a settlement rejected later for a
	// transient reason stays redeemable.
	Validate(ctx context.Context, req domain.AuthorizationRequest, phase domain.ReplayPhase) error

	// ConsumeSettlement durably consumes the settle-phase record. It is
	// the serialization point for racing settlements and must only be
	// called once the burn is verified: everything before it is
	// reversible from the caller's perspective.
	ConsumeSettlement(ctx context.Context, req domain.AuthorizationRequest) error
}

// DrawResult is one output of the fair-randomness engine.
type DrawResult struct {
	Nonce uint64
	Hash  string // hex SHA-256 of clientSeed:serverSeed:nonce
	Value float64
}

// FairnessEngine produces verifiable uniform draws from a client seed,
// a per-purchase server seed and a nonce.
type FairnessEngine interface {
	// GenerateServerSeed returns a fresh CSPRNG seed, never reused.
	GenerateServerSeed() (string, error)

	// Draw is deterministic: identical inputs yield identical results
	// on every platform.
	Draw(clientSeed, serverSeed string, nonce uint64) DrawResult
}

// PrizeResolver walks a weighted table under live inventory constraints.
// Total over any non-empty table: it falls back rather than fail.
type PrizeResolver interface {
	// Resolve returns the awarded prize and the draw that selected it.
	// fellBack reports that the retry ceiling was exhausted and the
	// guaranteed fallback entry was used.
	Resolve(ctx context.Context, table []domain.Prize, clientSeed, serverSeed string) (prize domain.Prize, winning DrawResult, fellBack bool, err error)
}

// BurnVerifier confirms that the referenced transaction burned the
// expected amount from the expected wallet at the expected timestamp.
type BurnVerifier interface {
	VerifyBurn(ctx context.Context, txHash common.Hash, wallet common.Address, amount *big.Int, timestamp int64) (*domain.BurnEvidence, error)
}

// SettlementDispatcher executes the on-chain leg of a resolved prize:
// a native transfer for currency prizes, a mint for collectibles.
type SettlementDispatcher interface {
	Dispatch(ctx context.Context, prize domain.Prize, recipient common.Address) (domain.SettlementResult, error)
}

// PriceOracle quotes the burn token's USD price used to size the burn.
type PriceOracle interface {
	TokenPriceUSD(ctx context.Context) (float64, error)
}

// --- Service Ports (Business Logic) ---

// PurchaseService is the two-call purchase pipeline.
type PurchaseService interface {
	IssueAuthorization(ctx context.Context, req IssueRequest) (*IssueResult, error)
	SettlePurchase(ctx context.Context, req SettleRequest) (*SettleResult, error)
}

// IssueRequest holds validated input for the authorization call.
type IssueRequest struct {
	BoxType    int
	Wallet     common.Address
	ClientSeed string
}

// IssueResult is the signed payload the client submits on-chain.
type IssueResult struct {
	BoxType      int
	AmountToBurn *big.Int
	Timestamp    int64
	MessageHash  common.Hash
	Signature    string // 0x-prefixed hex
}

// SettleRequest holds validated input for the settlement call.
type SettleRequest struct {
	BoxType    int
	Wallet     common.Address
	Amount     *big.Int
	Timestamp  int64
	TxHash     common.Hash
	Signature  []byte
	ClientSeed string
}

// SettleResult is the public purchase summary, including the seed pair
// and nonce so the client can audit the draw.
type SettleResult struct {
	PurchaseID   string
	PrizeID      string
	PrizeName    string
	PrizeType    domain.PrizeType
	AmountWei    *big.Int // payout for currency prizes
	Settlement   domain.SettlementResult
	Random       domain.RandomData
	UsedFallback bool
}
