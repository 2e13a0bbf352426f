package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mystery-box-service/internal/core/domain"
	"mystery-box-service/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

// ReplayRepo implements ports.ReplayStore on the replay_records table.
// The (key, phase) primary key makes every consumption a single
// conflict-checked insert, so two racing requests can never both pass.
type ReplayRepo struct {
	pool Pool
}

// NewReplayRepo creates a new ReplayRepo.
func NewReplayRepo(pool Pool) *ReplayRepo {
	return &ReplayRepo{pool: pool}
}

// CheckAndInsert records (key, phase) if unseen. The insert itself is
// the check: a conflict means the pair was already consumed.
func (r *ReplayRepo) CheckAndInsert(ctx context.Context, key domain.ReplayKey, phase domain.ReplayPhase) (bool, error) {
	query := `INSERT INTO replay_records (key, phase, seen_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key, phase) DO NOTHING`

	tag, err := r.pool.Exec(ctx, query, string(key), string(phase))
	if err != nil {
		return false, fmt.Errorf("insert replay record: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// CheckForSettlement reports the settlement state of the key without
// writing anything. One aggregate scan over both phase rows.
func (r *ReplayRepo) CheckForSettlement(ctx context.Context, key domain.ReplayKey) (ports.SettlementConsume, error) {
	var issued, settled bool
	err := r.pool.QueryRow(ctx,
		`SELECT
			COALESCE(bool_or(phase = $2), false),
			COALESCE(bool_or(phase = $3), false)
		FROM replay_records WHERE key = $1`,
		string(key), string(domain.PhaseIssue), string(domain.PhaseSettle),
	).Scan(&issued, &settled)
	if err != nil {
		return 0, fmt.Errorf("check settlement state: %w", err)
	}

	switch {
	case !issued:
		return ports.SettlementConsumeNoIssue, nil
	case settled:
		return ports.SettlementConsumeReplayed, nil
	}
	return ports.SettlementConsumeOK, nil
}

// ConsumeForSettlement verifies the issuance record exists and inserts
// the settlement record, atomically. Both reads happen inside one
// transaction so a purge between them cannot produce a half-consumed
// triple.
func (r *ReplayRepo) ConsumeForSettlement(ctx context.Context, key domain.ReplayKey) (ports.SettlementConsume, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin settlement consume: %w", err)
	}
	defer tx.Rollback(ctx)

	var one int
	err = tx.QueryRow(ctx,
		`SELECT 1 FROM replay_records WHERE key = $1 AND phase = $2`,
		string(key), string(domain.PhaseIssue),
	).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return ports.SettlementConsumeNoIssue, nil
	}
	if err != nil {
		return 0, fmt.Errorf("lookup issuance record: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`INSERT INTO replay_records (key, phase, seen_at)
			VALUES ($1, $2, now())
			ON CONFLICT (key, phase) DO NOTHING`,
		string(key), string(domain.PhaseSettle),
	)
	if err != nil {
		return 0, fmt.Errorf("insert settlement record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ports.SettlementConsumeReplayed, nil
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit settlement consume: %w", err)
	}
	return ports.SettlementConsumeOK, nil
}

// PurgeOlderThan deletes records seen before cutoff. Expired records
// are unreachable anyway: the timestamp window rejects their triples
// before the store is consulted.
func (r *ReplayRepo) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM replay_records WHERE seen_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge replay records: %w", err)
	}
	return tag.RowsAffected(), nil
}
