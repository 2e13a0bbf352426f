package service

import (
	"context"
	"time"

	"mystery-box-service/internal/core/domain"
	"mystery-box-service/internal/core/ports"
	"mystery-box-service/pkg/apperror"
	"mystery-box-service/pkg/metrics"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// ReplayGuardImpl implements ports.ReplayGuard with a Redis fast path
// layered over the durable Postgres store. Only the durable store is
// authoritative; cache failures degrade, they never reject.
type ReplayGuardImpl struct {
	store         ports.ReplayStore
	cache         ports.ReplayCache // nil = fast path disabled
	clock         clockwork.Clock
	maxAge        time.Duration
	maxFutureSkew time.Duration
	met           *metrics.Metrics
	log           zerolog.Logger
}

// NewReplayGuard creates a ReplayGuardImpl.
func NewReplayGuard(
	store ports.ReplayStore,
	cache ports.ReplayCache,
	clock clockwork.Clock,
	maxAge, maxFutureSkew time.Duration,
	met *metrics.Metrics,
	log zerolog.Logger,
) *ReplayGuardImpl {
	return &ReplayGuardImpl{
		store:         store,
		cache:         cache,
		clock:         clock,
		maxAge:        maxAge,
		maxFutureSkew: maxFutureSkew,
		met:           met,
		log:           log,
	}
}

// Validate enforces the timestamp window and the phase's replay rules.
// The issue phase consumes the triple on the spot. The settle phase
// only reads: a triple prechecked here is consumed later through
// ConsumeSettlement, after the burn is verified, so rejections in
// between never lock out a paid authorization.
func (g *ReplayGuardImpl) Validate(ctx context.Context, req domain.AuthorizationRequest, phase domain.ReplayPhase) error {
	now := g.clock.Now().Unix()
	age := now - req.Timestamp
	if age > int64(g.maxAge.Seconds()) || -age > int64(g.maxFutureSkew.Seconds()) {
		return apperror.ErrTimestampOutOfWindow()
	}

	key := domain.NewReplayKey(req.Wallet, req.Amount, req.Timestamp)

	switch phase {
	case domain.PhaseIssue:
		if g.cache != nil {
			fresh, err := g.cache.CheckAndSet(ctx, key, phase, g.cacheTTL())
			if err != nil {
				g.log.Warn().Err(err).Str("phase", string(phase)).
					Msg("replay cache unavailable, deferring to durable store")
			} else if !fresh {
				g.reject(phase)
				return apperror.ErrReplay()
			}
		}
		inserted, err := g.store.CheckAndInsert(ctx, key, phase)
		if err != nil {
			return apperror.ErrDatabaseError(err)
		}
		if !inserted {
			g.reject(phase)
			return apperror.ErrReplay()
		}

	case domain.PhaseSettle:
		outcome, err := g.store.CheckForSettlement(ctx, key)
		if err != nil {
			return apperror.ErrDatabaseError(err)
		}
		if err := g.mapSettlementOutcome(outcome); err != nil {
			return err
		}
	}

	return nil
}

// ConsumeSettlement records the settle-phase consumption of the triple.
// The durable insert is the serialization point: of any number of
// racing settlements exactly one passes.
func (g *ReplayGuardImpl) ConsumeSettlement(ctx context.Context, req domain.AuthorizationRequest) error {
	key := domain.NewReplayKey(req.Wallet, req.Amount, req.Timestamp)

	if g.cache != nil {
		fresh, err := g.cache.CheckAndSet(ctx, key, domain.PhaseSettle, g.cacheTTL())
		if err != nil {
			g.log.Warn().Err(err).Str("phase", string(domain.PhaseSettle)).
				Msg("replay cache unavailable, deferring to durable store")
		} else if !fresh {
			g.reject(domain.PhaseSettle)
			return apperror.ErrReplay()
		}
	}

	outcome, err := g.store.ConsumeForSettlement(ctx, key)
	if err != nil {
		return apperror.ErrDatabaseError(err)
	}
	return g.mapSettlementOutcome(outcome)
}

func (g *ReplayGuardImpl) mapSettlementOutcome(outcome ports.SettlementConsume) error {
	switch outcome {
	case ports.SettlementConsumeNoIssue:
		return apperror.ErrUnknownAuthorization()
	case ports.SettlementConsumeReplayed:
		g.reject(domain.PhaseSettle)
		return apperror.ErrReplay()
	}
	return nil
}

func (g *ReplayGuardImpl) cacheTTL() time.Duration {
	return g.maxAge + g.maxFutureSkew
}

func (g *ReplayGuardImpl) reject(phase domain.ReplayPhase) {
	if g.met != nil {
		g.met.ReplaysRejected.Inc()
	}
	g.log.Warn().Str("phase", string(phase)).Msg("replayed authorization rejected")
}
