package integration

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"mystery-box-service/internal/core/domain"
	"mystery-box-service/internal/core/ports"
	"mystery-box-service/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
)

// --- In-Memory Replay Store ---

type inMemoryReplayStore struct {
	mu   sync.Mutex
	seen map[string]time.Time // "key|phase" -> first seen
}

func newInMemoryReplayStore() *inMemoryReplayStore {
	return &inMemoryReplayStore{seen: make(map[string]time.Time)}
}

func replayEntry(key domain.ReplayKey, phase domain.ReplayPhase) string {
	return string(key) + "|" + string(phase)
}

func (s *inMemoryReplayStore) CheckAndInsert(ctx context.Context, key domain.ReplayKey, phase domain.ReplayPhase) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := replayEntry(key, phase)
	if _, ok := s.seen[entry]; ok {
		return false, nil
	}
	s.seen[entry] = time.Now()
	return true, nil
}

func (s *inMemoryReplayStore) CheckForSettlement(ctx context.Context, key domain.ReplayKey) (ports.SettlementConsume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[replayEntry(key, domain.PhaseIssue)]; !ok {
		return ports.SettlementConsumeNoIssue, nil
	}
	if _, ok := s.seen[replayEntry(key, domain.PhaseSettle)]; ok {
		return ports.SettlementConsumeReplayed, nil
	}
	return ports.SettlementConsumeOK, nil
}

func (s *inMemoryReplayStore) ConsumeForSettlement(ctx context.Context, key domain.ReplayKey) (ports.SettlementConsume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[replayEntry(key, domain.PhaseIssue)]; !ok {
		return ports.SettlementConsumeNoIssue, nil
	}
	settleEntry := replayEntry(key, domain.PhaseSettle)
	if _, ok := s.seen[settleEntry]; ok {
		return ports.SettlementConsumeReplayed, nil
	}
	s.seen[settleEntry] = time.Now()
	return ports.SettlementConsumeOK, nil
}

func (s *inMemoryReplayStore) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var purged int64
	for entry, at := range s.seen {
		if at.Before(cutoff) {
			delete(s.seen, entry)
			purged++
		}
	}
	return purged, nil
}

// --- In-Memory Stock Repository ---

type inMemoryStockRepo struct {
	mu       sync.Mutex
	counters map[string]int64
}

func newInMemoryStockRepo() *inMemoryStockRepo {
	return &inMemoryStockRepo{counters: make(map[string]int64)}
}

func (r *inMemoryStockRepo) seed(key string, stock int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters[key] = stock
}

func (r *inMemoryStockRepo) remaining(key string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counters[key]
}

func (r *inMemoryStockRepo) DecrementIfPositive(ctx context.Context, key string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.counters[key]
	if !ok {
		return 0, fmt.Errorf("stock counter %q does not exist: %w", key, domain.ErrOutOfStock)
	}
	if current <= 0 {
		return 0, domain.ErrOutOfStock
	}
	r.counters[key] = current - 1
	return current - 1, nil
}

func (r *inMemoryStockRepo) Available(ctx context.Context, key string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counters[key] > 0, nil
}

// --- In-Memory Purchase Repository ---

type inMemoryPurchaseRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]*domain.PurchaseRecord
}

func newInMemoryPurchaseRepo() *inMemoryPurchaseRepo {
	return &inMemoryPurchaseRepo{records: make(map[uuid.UUID]*domain.PurchaseRecord)}
}

func (r *inMemoryPurchaseRepo) Create(ctx context.Context, record *domain.PurchaseRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[record.ID]; ok {
		return fmt.Errorf("duplicate purchase id %s", record.ID)
	}
	clone := *record
	r.records[record.ID] = &clone
	return nil
}

func (r *inMemoryPurchaseRepo) all() []*domain.PurchaseRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.PurchaseRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec)
	}
	return out
}

// --- Fake Burn Verifier ---

// fakeBurnVerifier simulates the receipt lookup against a ledger of
// registered burns. Unknown hashes map to CHN_001 exactly like a
// receipt miss on the real chain.
type fakeBurnVerifier struct {
	mu    sync.Mutex
	burns map[string]domain.BurnEvidence // tx hash (lowercase) -> evidence
}

func newFakeBurnVerifier() *fakeBurnVerifier {
	return &fakeBurnVerifier{burns: make(map[string]domain.BurnEvidence)}
}

// registerBurn records a confirmed burn and returns its tx hash.
func (v *fakeBurnVerifier) registerBurn(wallet common.Address, amount *big.Int, timestamp int64) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	txHash := crypto.Keccak256Hash([]byte(fmt.Sprintf("burn-%s-%d-%d", wallet.Hex(), amount, timestamp)))
	v.burns[txHash.Hex()] = domain.BurnEvidence{
		TxHash:    txHash,
		Payer:     wallet,
		Amount:    new(big.Int).Set(amount),
		Timestamp: timestamp,
	}
	return txHash.Hex()
}

func (v *fakeBurnVerifier) VerifyBurn(ctx context.Context, txHash common.Hash, wallet common.Address, amount *big.Int, timestamp int64) (*domain.BurnEvidence, error) {
	v.mu.Lock()
	evidence, ok := v.burns[txHash.Hex()]
	v.mu.Unlock()
	if !ok {
		return nil, apperror.ErrTransactionNotFound(txHash.Hex())
	}
	if !evidence.Matches(wallet, amount, timestamp) {
		return nil, apperror.ErrBurnEventNotFound()
	}
	return &evidence, nil
}

// --- Fake Settlement Dispatcher ---

type dispatchedPrize struct {
	Prize     domain.Prize
	Recipient common.Address
}

type fakeSettlementDispatcher struct {
	mu         sync.Mutex
	dispatched []dispatchedPrize
	nextToken  int64
}

func newFakeSettlementDispatcher() *fakeSettlementDispatcher {
	return &fakeSettlementDispatcher{}
}

func (d *fakeSettlementDispatcher) Dispatch(ctx context.Context, prize domain.Prize, recipient common.Address) (domain.SettlementResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dispatched = append(d.dispatched, dispatchedPrize{Prize: prize, Recipient: recipient})

	switch prize.Type {
	case domain.PrizeCurrency:
		txHash := common.BytesToHash([]byte(fmt.Sprintf("payout-%d", len(d.dispatched))))
		return domain.SettlementResult{Status: domain.SettlementSettled, TxHash: txHash.Hex()}, nil
	case domain.PrizeCollectible:
		d.nextToken++
		txHash := common.BytesToHash([]byte(fmt.Sprintf("mint-%d", len(d.dispatched))))
		return domain.SettlementResult{
			Status:        domain.SettlementSettled,
			TxHash:        txHash.Hex(),
			MintedTokenID: big.NewInt(d.nextToken),
			MetadataURI:   prize.MetadataURI,
		}, nil
	default:
		return domain.SettlementResult{Status: domain.SettlementSkipped}, nil
	}
}

func (d *fakeSettlementDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.dispatched)
}
