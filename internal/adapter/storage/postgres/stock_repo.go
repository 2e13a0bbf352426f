package postgres

import (
	"context"
	"errors"
	"fmt"

	"mystery-box-service/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// StockRepo implements ports.StockRepository on the stock_counters
// table. The decrement is a single conditional UPDATE: the database
// serializes concurrent purchases on the row, so the last unit can only
// be taken once.
type StockRepo struct {
	pool Pool
}

// NewStockRepo creates a new StockRepo.
func NewStockRepo(pool Pool) *StockRepo {
	return &StockRepo{pool: pool}
}

// DecrementIfPositive decrements the counter, guarded by current_stock > 0,
// and returns the remaining stock. Never reads then writes: the
// condition and the update are one statement.
func (r *StockRepo) DecrementIfPositive(ctx context.Context, key string) (int64, error) {
	query := `UPDATE stock_counters
		SET current_stock = current_stock - 1, updated_at = now()
		WHERE key = $1 AND current_stock > 0
		RETURNING current_stock`

	var remaining int64
	err := r.pool.QueryRow(ctx, query, key).Scan(&remaining)
	if err == nil {
		return remaining, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("decrement stock %s: %w", key, err)
	}

	// No row updated: either the counter is at zero or it does not
	// exist at all. The caller treats both as exhaustion, but an absent
	// counter is worth distinguishing in the error chain.
	var current int64
	err = r.pool.QueryRow(ctx, `SELECT current_stock FROM stock_counters WHERE key = $1`, key).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("stock counter %s does not exist: %w", key, domain.ErrOutOfStock)
	}
	if err != nil {
		return 0, fmt.Errorf("inspect stock %s: %w", key, err)
	}
	return 0, domain.ErrOutOfStock
}

// Available reports whether the counter holds at least one unit. An
// absent counter reads as unavailable: a constrained prize without a
// counter must never be awarded.
func (r *StockRepo) Available(ctx context.Context, key string) (bool, error) {
	var available bool
	err := r.pool.QueryRow(ctx,
		`SELECT current_stock > 0 FROM stock_counters WHERE key = $1`, key).Scan(&available)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check stock %s: %w", key, err)
	}
	return available, nil
}
