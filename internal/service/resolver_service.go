package service

import (
	"context"
	"fmt"

	"mystery-box-service/internal/core/domain"
	"mystery-box-service/internal/core/ports"
	"mystery-box-service/pkg/metrics"

	"github.com/rs/zerolog"
)

// resolveMaxAttempts bounds how many draws a single resolution may use
// before taking the guaranteed fallback.
const resolveMaxAttempts = 10

// PrizeResolverImpl implements ports.PrizeResolver. Every attempt draws
// from the same auditable (clientSeed, serverSeed) pair with an
// incrementing nonce, so the full retry sequence can be replayed by the
// client; attempt 0 is the draw the client committed to.
type PrizeResolverImpl struct {
	fairness ports.FairnessEngine
	stock    ports.StockRepository
	met      *metrics.Metrics
	log      zerolog.Logger
}

// NewPrizeResolver creates a PrizeResolverImpl.
func NewPrizeResolver(fairness ports.FairnessEngine, stock ports.StockRepository, met *metrics.Metrics, log zerolog.Logger) *PrizeResolverImpl {
	return &PrizeResolverImpl{fairness: fairness, stock: stock, met: met, log: log}
}

// Resolve walks the table per draw. An unavailable stock-constrained
// candidate aborts the pass and the next nonce is drawn; a draw past
// the table's cumulative mass behaves the same way. After the ceiling
// the fallback entry is awarded unconditionally, so resolution is total
// over any non-empty table.
func (r *PrizeResolverImpl) Resolve(ctx context.Context, table []domain.Prize, clientSeed, serverSeed string) (domain.Prize, ports.DrawResult, bool, error) {
	if len(table) == 0 {
		return domain.Prize{}, ports.DrawResult{}, false, fmt.Errorf("empty prize table")
	}

	var last ports.DrawResult
	for nonce := uint64(0); nonce < resolveMaxAttempts; nonce++ {
		draw := r.fairness.Draw(clientSeed, serverSeed, nonce)
		last = draw

		candidate, found := pickByMass(table, draw.Value)
		if !found {
			// Under-subscribed cumulative mass: treated as unavailable.
			continue
		}

		if candidate.StockRequired {
			available, err := r.stock.Available(ctx, candidate.StockKey())
			if err != nil {
				return domain.Prize{}, ports.DrawResult{}, false, fmt.Errorf("stock check for %s: %w", candidate.ID, err)
			}
			if !available {
				r.log.Debug().Str("prize_id", candidate.ID).Uint64("nonce", nonce).
					Msg("candidate out of stock, redrawing")
				continue
			}
		}

		return candidate, draw, false, nil
	}

	if r.met != nil {
		r.met.ResolverFallbacks.Inc()
	}
	fb := domain.FallbackPrize(table)
	r.log.Warn().Str("prize_id", fb.ID).Int("attempts", resolveMaxAttempts).
		Msg("resolution exhausted retry ceiling, awarding fallback prize")
	return fb, last, true, nil
}

// pickByMass returns the first entry whose cumulative probability mass
// exceeds the draw.
func pickByMass(table []domain.Prize, v float64) (domain.Prize, bool) {
	var cum float64
	for _, p := range table {
		cum += p.Probability
		if v < cum {
			return p, true
		}
	}
	return domain.Prize{}, false
}
