package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mystery-box-service/internal/core/domain"
	"mystery-box-service/internal/core/ports"
	"mystery-box-service/pkg/apperror"
	"mystery-box-service/pkg/metrics"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// prizeStockRetries bounds re-resolution when the prize counter is
// emptied between resolution and settlement by a concurrent purchase.
const prizeStockRetries = 2

// PurchaseServiceImpl implements ports.PurchaseService: the two-call
// purchase pipeline (authorization issuance, then burn settlement).
type PurchaseServiceImpl struct {
	signer     ports.AuthoritySigner
	guard      ports.ReplayGuard
	verifier   ports.BurnVerifier
	fairness   ports.FairnessEngine
	resolver   ports.PrizeResolver
	stock      ports.StockRepository
	dispatcher ports.SettlementDispatcher
	purchases  ports.PurchaseRepository
	oracle     ports.PriceOracle
	catalog    map[int]domain.Box
	decimals   int
	clock      clockwork.Clock
	met        *metrics.Metrics
	log        zerolog.Logger
}

// NewPurchaseService creates a PurchaseServiceImpl.
func NewPurchaseService(
	signer ports.AuthoritySigner,
	guard ports.ReplayGuard,
	verifier ports.BurnVerifier,
	fairness ports.FairnessEngine,
	resolver ports.PrizeResolver,
	stock ports.StockRepository,
	dispatcher ports.SettlementDispatcher,
	purchases ports.PurchaseRepository,
	oracle ports.PriceOracle,
	catalog map[int]domain.Box,
	decimals int,
	clock clockwork.Clock,
	met *metrics.Metrics,
	log zerolog.Logger,
) *PurchaseServiceImpl {
	return &PurchaseServiceImpl{
		signer:     signer,
		guard:      guard,
		verifier:   verifier,
		fairness:   fairness,
		resolver:   resolver,
		stock:      stock,
		dispatcher: dispatcher,
		purchases:  purchases,
		oracle:     oracle,
		catalog:    catalog,
		decimals:   decimals,
		clock:      clock,
		met:        met,
		log:        log,
	}
}

// IssueAuthorization computes the burn amount for the box, registers
// the triple with the replay guard and returns the signed grant.
func (s *PurchaseServiceImpl) IssueAuthorization(ctx context.Context, req ports.IssueRequest) (*ports.IssueResult, error) {
	box, ok := s.catalog[req.BoxType]
	if !ok {
		return nil, apperror.ErrUnknownBoxType(req.BoxType)
	}

	// No point signing a burn for a box with nothing left to open.
	available, err := s.stock.Available(ctx, box.StockKey())
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if !available {
		return nil, apperror.ErrOutOfStock(box.StockKey())
	}

	tokenPrice, err := s.oracle.TokenPriceUSD(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("token price quote: %w", err))
	}

	amount := ComputeBurnAmount(box.PriceUSD, tokenPrice, s.decimals)
	timestamp := s.clock.Now().Unix()

	auth := domain.AuthorizationRequest{Wallet: req.Wallet, Amount: amount, Timestamp: timestamp}
	if err := s.guard.Validate(ctx, auth, domain.PhaseIssue); err != nil {
		return nil, err
	}

	grant, err := s.signer.SignAuthorization(req.Wallet, amount, timestamp)
	if err != nil {
		return nil, err
	}

	if s.met != nil {
		s.met.AuthorizationsIssued.Inc()
	}
	s.log.Info().
		Int("box_type", req.BoxType).
		Str("wallet", req.Wallet.Hex()).
		Str("amount", amount.String()).
		Int64("timestamp", timestamp).
		Msg("burn authorization issued")

	return &ports.IssueResult{
		BoxType:      req.BoxType,
		AmountToBurn: grant.Amount,
		Timestamp:    grant.Timestamp,
		MessageHash:  grant.MessageHash,
		Signature:    grant.SignatureHex(),
	}, nil
}

// SettlePurchase runs the settlement half of the pipeline: replay check,
// burn verification, prize resolution, inventory reservation, prize
// dispatch and the final audit record.
//
// Settlement dispatch failures do NOT fail the call: the burn is already
// irreversible, so the purchase is recorded with a FAILED settlement and
// returned to the caller. Only a failed audit-record insert is a hard
// error at that point.
func (s *PurchaseServiceImpl) SettlePurchase(ctx context.Context, req ports.SettleRequest) (*ports.SettleResult, error) {
	box, ok := s.catalog[req.BoxType]
	if !ok {
		return nil, apperror.ErrUnknownBoxType(req.BoxType)
	}
	if req.Amount == nil || req.Amount.Sign() <= 0 {
		return nil, apperror.Validation("amount must be positive")
	}

	// The presented signature must be one we issued for exactly this triple.
	hash := s.signer.MessageHash(req.Wallet, req.Amount, req.Timestamp)
	recovered, err := s.signer.RecoverSigner(hash, req.Signature)
	if err != nil || recovered != s.signer.Address() {
		return nil, apperror.ErrInvalidSignature()
	}

	auth := domain.AuthorizationRequest{Wallet: req.Wallet, Amount: req.Amount, Timestamp: req.Timestamp}
	if err := s.guard.Validate(ctx, auth, domain.PhaseSettle); err != nil {
		return nil, err
	}

	evidence, err := s.verifier.VerifyBurn(ctx, req.TxHash, req.Wallet, req.Amount, req.Timestamp)
	if err != nil {
		// Nothing consumed yet: an unmined tx or an RPC outage leaves
		// the authorization redeemable on retry.
		return nil, err
	}

	// The burn is proven; consuming the triple now is the serialization
	// point for racing settlements of the same authorization.
	if err := s.guard.ConsumeSettlement(ctx, auth); err != nil {
		return nil, err
	}

	serverSeed, err := s.fairness.GenerateServerSeed()
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	prize, winning, fellBack, err := s.resolveWithStock(ctx, box, req.ClientSeed, serverSeed)
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	// Box counter: one decrement per purchase. Exhaustion here is a
	// catalog bookkeeping gap, not grounds to refuse a verified burn.
	if _, err := s.stock.DecrementIfPositive(ctx, box.StockKey()); err != nil {
		s.log.Warn().Err(err).Str("key", box.StockKey()).Msg("box stock decrement failed")
	}

	result := s.dispatch(ctx, prize, req.Wallet)

	record := &domain.PurchaseRecord{
		ID:         uuid.New(),
		BoxType:    req.BoxType,
		Wallet:     domainWallet(req.Wallet),
		Amount:     req.Amount,
		Timestamp:  req.Timestamp,
		Signature:  fmt.Sprintf("0x%x", req.Signature),
		BurnTxHash: evidence.TxHash.Hex(),
		PrizeID:    prize.ID,
		PrizeName:  prize.Name,
		PrizeType:  prize.Type,
		Random: domain.RandomData{
			ClientSeed: req.ClientSeed,
			ServerSeed: serverSeed,
			Nonce:      winning.Nonce,
			Hash:       winning.Hash,
			Value:      winning.Value,
		},
		Settlement: result,
		CreatedAt:  s.clock.Now().UTC(),
	}

	if err := s.purchases.Create(ctx, record); err != nil {
		// Funds have moved; losing the audit trail is the one failure
		// that must surface loudly and distinctly.
		s.log.Error().Err(err).
			Str("burn_tx", evidence.TxHash.Hex()).
			Str("prize_id", prize.ID).
			Str("settlement_tx", result.TxHash).
			Msg("purchase record insert failed after settlement")
		return nil, apperror.ErrRecordFailed(err)
	}

	if s.met != nil {
		s.met.PurchasesSettled.WithLabelValues(string(result.Status)).Inc()
	}
	s.log.Info().
		Str("purchase_id", record.ID.String()).
		Str("prize_id", prize.ID).
		Str("status", string(result.Status)).
		Bool("fallback", fellBack).
		Msg("purchase settled")

	return &ports.SettleResult{
		PurchaseID:   record.ID.String(),
		PrizeID:      prize.ID,
		PrizeName:    prize.Name,
		PrizeType:    prize.Type,
		AmountWei:    prize.PayoutWei,
		Settlement:   result,
		Random:       record.Random,
		UsedFallback: fellBack,
	}, nil
}

// resolveWithStock resolves a prize and reserves its inventory. When the
// counter empties between the resolver's availability check and our
// decrement (a concurrent purchase won the race), resolution is retried
// against the updated stock before taking the fallback.
func (s *PurchaseServiceImpl) resolveWithStock(ctx context.Context, box domain.Box, clientSeed, serverSeed string) (domain.Prize, ports.DrawResult, bool, error) {
	var (
		prize    domain.Prize
		winning  ports.DrawResult
		fellBack bool
		err      error
	)

	for attempt := 0; attempt <= prizeStockRetries; attempt++ {
		prize, winning, fellBack, err = s.resolver.Resolve(ctx, box.Table, clientSeed, serverSeed)
		if err != nil {
			return domain.Prize{}, ports.DrawResult{}, false, err
		}
		if !prize.StockRequired {
			return prize, winning, fellBack, nil
		}

		_, derr := s.stock.DecrementIfPositive(ctx, prize.StockKey())
		if derr == nil {
			return prize, winning, fellBack, nil
		}
		if !errors.Is(derr, domain.ErrOutOfStock) {
			// Storage outage mid-pipeline: award anyway, the burn is
			// irreversible. The gap is reconciled from purchase records.
			s.log.Error().Err(derr).Str("key", prize.StockKey()).
				Msg("prize stock decrement failed, awarding without reservation")
			return prize, winning, fellBack, nil
		}
		s.log.Warn().Str("prize_id", prize.ID).Int("attempt", attempt).
			Msg("prize emptied since resolution, re-resolving")
	}

	fb := domain.FallbackPrize(box.Table)
	return fb, winning, true, nil
}

// dispatch runs the RESOLVED -> DISPATCHING -> {SETTLED|FAILED} machine.
func (s *PurchaseServiceImpl) dispatch(ctx context.Context, prize domain.Prize, recipient common.Address) domain.SettlementResult {
	result, err := s.dispatcher.Dispatch(ctx, prize, recipient)
	if err != nil {
		if s.met != nil {
			s.met.SettlementFailures.Inc()
		}
		s.log.Error().Err(err).
			Str("prize_id", prize.ID).
			Str("prize_type", string(prize.Type)).
			Msg("prize settlement failed")
		return domain.SettlementResult{Status: domain.SettlementFailed}
	}
	return result
}

func domainWallet(addr common.Address) string {
	return strings.ToLower(addr.Hex())
}

// PurgeReplayRecords removes replay records older than the validity
// window. Intended to run periodically from main.
func PurgeReplayRecords(ctx context.Context, store ports.ReplayStore, clock clockwork.Clock, ttl time.Duration, log zerolog.Logger) {
	n, err := store.PurgeOlderThan(ctx, clock.Now().Add(-ttl))
	if err != nil {
		log.Warn().Err(err).Msg("replay record purge failed")
		return
	}
	if n > 0 {
		log.Debug().Int64("purged", n).Msg("replay records purged")
	}
}
