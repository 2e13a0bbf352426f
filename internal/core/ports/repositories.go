package ports

import (
	"context"
	"time"

	"mystery-box-service/internal/core/domain"
)

// ReplayStore is the durable record of consumed authorization triples.
// It survives process restarts for the validity window, keeping the
// pipeline itself stateless.
type ReplayStore interface {
	// CheckAndInsert atomically records (key, phase) if unseen.
	// Returns false if the pair was already consumed.
	CheckAndInsert(ctx context.Context, key domain.ReplayKey, phase domain.ReplayPhase) (bool, error)

	// CheckForSettlement reports the settlement state of the key without
	// consuming anything. Read-only counterpart of ConsumeForSettlement,
	// used before burn verification so transient verification failures
	// leave the triple redeemable.
	CheckForSettlement(ctx context.Context, key domain.ReplayKey) (SettlementConsume, error)

	// ConsumeForSettlement atomically verifies the key was registered at
	// issuance and records its settlement consumption. The two checks
	// and the insert happen in one transaction so concurrent callers
	// serialize on the settlement record.
	ConsumeForSettlement(ctx context.Context, key domain.ReplayKey) (SettlementConsume, error)

	// PurgeOlderThan removes records past the validity window.
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// SettlementConsume is the outcome of ReplayStore.ConsumeForSettlement.
type SettlementConsume int

const (
	// SettlementConsumeOK: issuance record found, settlement recorded.
	SettlementConsumeOK SettlementConsume = iota
	// SettlementConsumeNoIssue: the triple was never signed by us.
	SettlementConsumeNoIssue
	// SettlementConsumeReplayed: the triple was already settled.
	SettlementConsumeReplayed
)

// ReplayCache is the Redis fast path in front of the durable store.
// Best effort: cache errors degrade to the durable check, never reject.
type ReplayCache interface {
	// CheckAndSet returns true if (key, phase) is new within ttl.
	CheckAndSet(ctx context.Context, key domain.ReplayKey, phase domain.ReplayPhase, ttl time.Duration) (bool, error)
}

// StockRepository exposes the inventory ledger counters. Decrements are
// single atomic conditional updates; two concurrent callers can never
// both take the last unit.
type StockRepository interface {
	// DecrementIfPositive decrements the counter and returns the new
	// stock. Returns domain.ErrOutOfStock when the counter is at zero.
	DecrementIfPositive(ctx context.Context, key string) (int64, error)

	// Available reports whether the counter holds at least one unit.
	Available(ctx context.Context, key string) (bool, error)
}

// PurchaseRepository persists the immutable audit record, one insert per
// completed pipeline run.
type PurchaseRepository interface {
	Create(ctx context.Context, rec *domain.PurchaseRecord) error
}
