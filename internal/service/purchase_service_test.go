package service

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"mystery-box-service/internal/core/domain"
	"mystery-box-service/internal/core/ports"
	"mystery-box-service/internal/core/ports/mocks"
	"mystery-box-service/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type purchaseTestDeps struct {
	svc        *PurchaseServiceImpl
	signer     *ECDSAAuthoritySigner
	guard      *mocks.MockReplayGuard
	verifier   *mocks.MockBurnVerifier
	fairness   *mocks.MockFairnessEngine
	resolver   *mocks.MockPrizeResolver
	stock      *mocks.MockStockRepository
	dispatcher *mocks.MockSettlementDispatcher
	purchases  *mocks.MockPurchaseRepository
	oracle     *mocks.MockPriceOracle
	clock      *clockwork.FakeClock
	ctrl       *gomock.Controller
}

func setupPurchaseService(t *testing.T) *purchaseTestDeps {
	ctrl := gomock.NewController(t)
	signer, err := NewECDSAAuthoritySigner(testAuthorityKey)
	require.NoError(t, err)

	d := &purchaseTestDeps{
		signer:     signer,
		guard:      mocks.NewMockReplayGuard(ctrl),
		verifier:   mocks.NewMockBurnVerifier(ctrl),
		fairness:   mocks.NewMockFairnessEngine(ctrl),
		resolver:   mocks.NewMockPrizeResolver(ctrl),
		stock:      mocks.NewMockStockRepository(ctrl),
		dispatcher: mocks.NewMockSettlementDispatcher(ctrl),
		purchases:  mocks.NewMockPurchaseRepository(ctrl),
		oracle:     mocks.NewMockPriceOracle(ctrl),
		clock:      clockwork.NewFakeClockAt(time.Unix(1700000000, 0)),
		ctrl:       ctrl,
	}
	d.svc = NewPurchaseService(
		d.signer, d.guard, d.verifier, d.fairness, d.resolver,
		d.stock, d.dispatcher, d.purchases, d.oracle,
		domain.Catalog(), 18, d.clock, nil, zerolog.Nop(),
	)
	return d
}

var testWallet = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")

func tokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
}

// ==================== IssueAuthorization ====================

func TestIssueAuthorization_Success(t *testing.T) {
	d := setupPurchaseService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	wantAmount := tokens(8750) // 17.50 USD at 0.002 USD per token
	wantTS := d.clock.Now().Unix()

	d.stock.EXPECT().Available(ctx, "box:1").Return(true, nil)
	d.oracle.EXPECT().TokenPriceUSD(ctx).Return(0.002, nil)
	d.guard.EXPECT().Validate(ctx, domain.AuthorizationRequest{
		Wallet: testWallet, Amount: wantAmount, Timestamp: wantTS,
	}, domain.PhaseIssue).Return(nil)

	res, err := d.svc.IssueAuthorization(ctx, ports.IssueRequest{BoxType: 1, Wallet: testWallet, ClientSeed: "cs"})
	require.NoError(t, err)

	assert.Equal(t, 1, res.BoxType)
	assert.Equal(t, 0, wantAmount.Cmp(res.AmountToBurn))
	assert.Equal(t, wantTS, res.Timestamp)
	assert.Equal(t, d.signer.MessageHash(testWallet, wantAmount, wantTS), res.MessageHash)

	// The returned signature must verify against the authority address.
	sig := common.FromHex(res.Signature)
	recovered, err := d.signer.RecoverSigner(res.MessageHash, sig)
	require.NoError(t, err)
	assert.Equal(t, d.signer.Address(), recovered)
}

func TestIssueAuthorization_UnknownBox(t *testing.T) {
	d := setupPurchaseService(t)
	defer d.ctrl.Finish()

	_, err := d.svc.IssueAuthorization(context.Background(), ports.IssueRequest{BoxType: 99, Wallet: testWallet})
	assertCode(t, err, "VAL_002")
}

func TestIssueAuthorization_GuardRejection(t *testing.T) {
	d := setupPurchaseService(t)
	defer d.ctrl.Finish()

	d.stock.EXPECT().Available(gomock.Any(), "box:1").Return(true, nil)
	d.oracle.EXPECT().TokenPriceUSD(gomock.Any()).Return(0.002, nil)
	d.guard.EXPECT().Validate(gomock.Any(), gomock.Any(), domain.PhaseIssue).Return(apperror.ErrReplay())

	_, err := d.svc.IssueAuthorization(context.Background(), ports.IssueRequest{BoxType: 1, Wallet: testWallet})
	assertCode(t, err, "SEC_002")
}

func TestIssueAuthorization_BoxSoldOut(t *testing.T) {
	d := setupPurchaseService(t)
	defer d.ctrl.Finish()

	// An exhausted box counter refuses the authorization before any
	// amount is computed or signed.
	d.stock.EXPECT().Available(gomock.Any(), "box:1").Return(false, nil)

	_, err := d.svc.IssueAuthorization(context.Background(), ports.IssueRequest{BoxType: 1, Wallet: testWallet})
	assertCode(t, err, "STK_001")
}

func TestIssueAuthorization_StockLookupFailure(t *testing.T) {
	d := setupPurchaseService(t)
	defer d.ctrl.Finish()

	d.stock.EXPECT().Available(gomock.Any(), "box:1").Return(false, errors.New("connection refused"))

	_, err := d.svc.IssueAuthorization(context.Background(), ports.IssueRequest{BoxType: 1, Wallet: testWallet})
	assertCode(t, err, "SYS_001")
}

func TestIssueAuthorization_OracleFailure(t *testing.T) {
	d := setupPurchaseService(t)
	defer d.ctrl.Finish()

	d.stock.EXPECT().Available(gomock.Any(), "box:1").Return(true, nil)
	d.oracle.EXPECT().TokenPriceUSD(gomock.Any()).Return(0.0, errors.New("feed offline"))

	_, err := d.svc.IssueAuthorization(context.Background(), ports.IssueRequest{BoxType: 1, Wallet: testWallet})
	assertCode(t, err, "SYS_001")
}

// ==================== SettlePurchase ====================

// settleFixture builds a settlement request whose signature was really
// issued by the test authority.
func settleFixture(t *testing.T, d *purchaseTestDeps) ports.SettleRequest {
	t.Helper()
	amount := tokens(8750)
	ts := d.clock.Now().Unix()
	grant, err := d.signer.SignAuthorization(testWallet, amount, ts)
	require.NoError(t, err)

	return ports.SettleRequest{
		BoxType:    1,
		Wallet:     testWallet,
		Amount:     amount,
		Timestamp:  ts,
		TxHash:     common.HexToHash("0xabc123"),
		Signature:  grant.Signature,
		ClientSeed: "client-seed",
	}
}

func TestSettlePurchase_Success(t *testing.T) {
	d := setupPurchaseService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	req := settleFixture(t, d)

	prize := domain.Catalog()[1].Table[1] // cash_medium
	winning := ports.DrawResult{Nonce: 0, Hash: "deadbeef", Value: 0.6}
	settlement := domain.SettlementResult{Status: domain.SettlementSettled, TxHash: "0xpayout"}

	auth := domain.AuthorizationRequest{Wallet: req.Wallet, Amount: req.Amount, Timestamp: req.Timestamp}
	// Consumption happens only after the burn is proven.
	gomock.InOrder(
		d.guard.EXPECT().Validate(ctx, auth, domain.PhaseSettle).Return(nil),
		d.verifier.EXPECT().VerifyBurn(ctx, req.TxHash, req.Wallet, req.Amount, req.Timestamp).
			Return(&domain.BurnEvidence{TxHash: req.TxHash, Payer: req.Wallet, Amount: req.Amount, Timestamp: req.Timestamp}, nil),
		d.guard.EXPECT().ConsumeSettlement(ctx, auth).Return(nil),
	)
	d.fairness.EXPECT().GenerateServerSeed().Return("server-seed", nil)
	d.resolver.EXPECT().Resolve(ctx, gomock.Any(), "client-seed", "server-seed").
		Return(prize, winning, false, nil)
	d.stock.EXPECT().DecrementIfPositive(ctx, "box:1").Return(int64(41), nil)
	d.dispatcher.EXPECT().Dispatch(ctx, prize, req.Wallet).Return(settlement, nil)

	var saved *domain.PurchaseRecord
	d.purchases.EXPECT().Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, rec *domain.PurchaseRecord) error {
			saved = rec
			return nil
		})

	res, err := d.svc.SettlePurchase(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, "cash_medium", res.PrizeID)
	assert.Equal(t, domain.PrizeCurrency, res.PrizeType)
	assert.Equal(t, settlement, res.Settlement)
	assert.False(t, res.UsedFallback)
	assert.Equal(t, "client-seed", res.Random.ClientSeed)
	assert.Equal(t, "server-seed", res.Random.ServerSeed)
	assert.Equal(t, uint64(0), res.Random.Nonce)

	require.NotNil(t, saved)
	assert.Equal(t, res.PurchaseID, saved.ID.String())
	assert.Equal(t, "0x70997970c51812dc3a010c7d01b50e0d17dc79c8", saved.Wallet)
	assert.Equal(t, req.TxHash.Hex(), saved.BurnTxHash)
	assert.Equal(t, settlement, saved.Settlement)
}

func TestSettlePurchase_ValidationFailures(t *testing.T) {
	d := setupPurchaseService(t)
	defer d.ctrl.Finish()

	t.Run("unknown box", func(t *testing.T) {
		req := settleFixture(t, d)
		req.BoxType = 42
		_, err := d.svc.SettlePurchase(context.Background(), req)
		assertCode(t, err, "VAL_002")
	})

	t.Run("non-positive amount", func(t *testing.T) {
		req := settleFixture(t, d)
		req.Amount = big.NewInt(0)
		_, err := d.svc.SettlePurchase(context.Background(), req)
		assertCode(t, err, "VAL_001")
	})
}

func TestSettlePurchase_ForeignSignatureRejected(t *testing.T) {
	d := setupPurchaseService(t)
	defer d.ctrl.Finish()

	// Signed by a different key over the same triple.
	other, err := NewECDSAAuthoritySigner("59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d")
	require.NoError(t, err)

	req := settleFixture(t, d)
	grant, err := other.SignAuthorization(req.Wallet, req.Amount, req.Timestamp)
	require.NoError(t, err)
	req.Signature = grant.Signature

	_, err = d.svc.SettlePurchase(context.Background(), req)
	assertCode(t, err, "SEC_004")
}

func TestSettlePurchase_TamperedTripleRejected(t *testing.T) {
	d := setupPurchaseService(t)
	defer d.ctrl.Finish()

	// Valid signature, but the amount presented differs from the signed one.
	req := settleFixture(t, d)
	req.Amount = tokens(1)

	_, err := d.svc.SettlePurchase(context.Background(), req)
	assertCode(t, err, "SEC_004")
}

func TestSettlePurchase_BurnVerificationFailure(t *testing.T) {
	d := setupPurchaseService(t)
	defer d.ctrl.Finish()

	req := settleFixture(t, d)
	d.guard.EXPECT().Validate(gomock.Any(), gomock.Any(), domain.PhaseSettle).Return(nil)
	d.verifier.EXPECT().VerifyBurn(gomock.Any(), req.TxHash, req.Wallet, req.Amount, req.Timestamp).
		Return(nil, apperror.ErrBurnEventNotFound())
	// No ConsumeSettlement expectation: a failed verification must not
	// consume the authorization.

	_, err := d.svc.SettlePurchase(context.Background(), req)
	assertCode(t, err, "CHN_002")
}

// TestSettlePurchase_RetryAfterTransientChainFailure covers the unmined
// burn tx case: the first attempt fails with TransactionNotFound, and
// because nothing was consumed the identical retry settles normally.
func TestSettlePurchase_RetryAfterTransientChainFailure(t *testing.T) {
	d := setupPurchaseService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	req := settleFixture(t, d)
	auth := domain.AuthorizationRequest{Wallet: req.Wallet, Amount: req.Amount, Timestamp: req.Timestamp}
	prize := domain.Catalog()[1].Table[0]

	// First attempt: receipt not found yet. Nothing may be consumed.
	d.guard.EXPECT().Validate(ctx, auth, domain.PhaseSettle).Return(nil)
	d.verifier.EXPECT().VerifyBurn(ctx, req.TxHash, req.Wallet, req.Amount, req.Timestamp).
		Return(nil, apperror.ErrTransactionNotFound(req.TxHash.Hex()))

	_, err := d.svc.SettlePurchase(ctx, req)
	assertCode(t, err, "CHN_001")

	// Retry with the same triple: the burn is mined now.
	d.guard.EXPECT().Validate(ctx, auth, domain.PhaseSettle).Return(nil)
	d.verifier.EXPECT().VerifyBurn(ctx, req.TxHash, req.Wallet, req.Amount, req.Timestamp).
		Return(&domain.BurnEvidence{TxHash: req.TxHash, Payer: req.Wallet, Amount: req.Amount, Timestamp: req.Timestamp}, nil)
	d.guard.EXPECT().ConsumeSettlement(ctx, auth).Return(nil)
	d.fairness.EXPECT().GenerateServerSeed().Return("server-seed", nil)
	d.resolver.EXPECT().Resolve(ctx, gomock.Any(), req.ClientSeed, "server-seed").
		Return(prize, ports.DrawResult{Nonce: 0, Value: 0.1}, false, nil)
	d.stock.EXPECT().DecrementIfPositive(ctx, "box:1").Return(int64(5), nil)
	d.dispatcher.EXPECT().Dispatch(ctx, prize, req.Wallet).
		Return(domain.SettlementResult{Status: domain.SettlementSettled, TxHash: "0xpayout"}, nil)
	d.purchases.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	res, err := d.svc.SettlePurchase(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, prize.ID, res.PrizeID)
}

func TestSettlePurchase_DispatchFailureStillRecords(t *testing.T) {
	d := setupPurchaseService(t)
	defer d.ctrl.Finish()

	req := settleFixture(t, d)
	prize := domain.Catalog()[1].Table[0]

	d.guard.EXPECT().Validate(gomock.Any(), gomock.Any(), domain.PhaseSettle).Return(nil)
	d.verifier.EXPECT().VerifyBurn(gomock.Any(), req.TxHash, req.Wallet, req.Amount, req.Timestamp).
		Return(&domain.BurnEvidence{TxHash: req.TxHash, Payer: req.Wallet, Amount: req.Amount, Timestamp: req.Timestamp}, nil)
	d.guard.EXPECT().ConsumeSettlement(gomock.Any(), gomock.Any()).Return(nil)
	d.fairness.EXPECT().GenerateServerSeed().Return("server-seed", nil)
	d.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), req.ClientSeed, "server-seed").
		Return(prize, ports.DrawResult{Nonce: 0, Value: 0.1}, false, nil)
	d.stock.EXPECT().DecrementIfPositive(gomock.Any(), "box:1").Return(int64(3), nil)
	d.dispatcher.EXPECT().Dispatch(gomock.Any(), prize, req.Wallet).
		Return(domain.SettlementResult{}, errors.New("rpc timeout"))

	var saved *domain.PurchaseRecord
	d.purchases.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec *domain.PurchaseRecord) error {
			saved = rec
			return nil
		})

	// The burn already happened: the call succeeds with a FAILED
	// settlement rather than erroring.
	res, err := d.svc.SettlePurchase(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.SettlementFailed, res.Settlement.Status)
	assert.Empty(t, res.Settlement.TxHash)
	require.NotNil(t, saved)
	assert.Equal(t, domain.SettlementFailed, saved.Settlement.Status)
}

func TestSettlePurchase_RecordInsertFailureIsHard(t *testing.T) {
	d := setupPurchaseService(t)
	defer d.ctrl.Finish()

	req := settleFixture(t, d)
	prize := domain.Catalog()[1].Table[0]

	d.guard.EXPECT().Validate(gomock.Any(), gomock.Any(), domain.PhaseSettle).Return(nil)
	d.verifier.EXPECT().VerifyBurn(gomock.Any(), req.TxHash, req.Wallet, req.Amount, req.Timestamp).
		Return(&domain.BurnEvidence{TxHash: req.TxHash, Payer: req.Wallet, Amount: req.Amount, Timestamp: req.Timestamp}, nil)
	d.guard.EXPECT().ConsumeSettlement(gomock.Any(), gomock.Any()).Return(nil)
	d.fairness.EXPECT().GenerateServerSeed().Return("server-seed", nil)
	d.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), req.ClientSeed, "server-seed").
		Return(prize, ports.DrawResult{}, false, nil)
	d.stock.EXPECT().DecrementIfPositive(gomock.Any(), "box:1").Return(int64(3), nil)
	d.dispatcher.EXPECT().Dispatch(gomock.Any(), prize, req.Wallet).
		Return(domain.SettlementResult{Status: domain.SettlementSettled, TxHash: "0xpayout"}, nil)
	d.purchases.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))

	_, err := d.svc.SettlePurchase(context.Background(), req)
	assertCode(t, err, "STO_001")
}

func TestSettlePurchase_PrizeStockRace(t *testing.T) {
	d := setupPurchaseService(t)
	defer d.ctrl.Finish()

	req := settleFixture(t, d)
	req.BoxType = 2
	// Re-sign for the collector box amount.
	amount := tokens(17500)
	grant, err := d.signer.SignAuthorization(req.Wallet, amount, req.Timestamp)
	require.NoError(t, err)
	req.Amount = amount
	req.Signature = grant.Signature

	table := domain.Catalog()[2].Table
	constrained := table[1] // nft_common, stock-constrained
	fallback := table[0]    // cash_consolation

	d.guard.EXPECT().Validate(gomock.Any(), gomock.Any(), domain.PhaseSettle).Return(nil)
	d.verifier.EXPECT().VerifyBurn(gomock.Any(), req.TxHash, req.Wallet, req.Amount, req.Timestamp).
		Return(&domain.BurnEvidence{TxHash: req.TxHash, Payer: req.Wallet, Amount: req.Amount, Timestamp: req.Timestamp}, nil)
	d.guard.EXPECT().ConsumeSettlement(gomock.Any(), gomock.Any()).Return(nil)
	d.fairness.EXPECT().GenerateServerSeed().Return("server-seed", nil)

	// First resolution picks the constrained prize, but a concurrent
	// purchase takes the last unit before our decrement lands.
	gomock.InOrder(
		d.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), req.ClientSeed, "server-seed").
			Return(constrained, ports.DrawResult{Nonce: 0, Value: 0.7}, false, nil),
		d.stock.EXPECT().DecrementIfPositive(gomock.Any(), "prize:nft_common").
			Return(int64(0), domain.ErrOutOfStock),
		d.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), req.ClientSeed, "server-seed").
			Return(fallback, ports.DrawResult{Nonce: 1, Value: 0.2}, false, nil),
	)
	d.stock.EXPECT().DecrementIfPositive(gomock.Any(), "box:2").Return(int64(9), nil)
	d.dispatcher.EXPECT().Dispatch(gomock.Any(), fallback, req.Wallet).
		Return(domain.SettlementResult{Status: domain.SettlementSettled, TxHash: "0xpayout"}, nil)
	d.purchases.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	res, err := d.svc.SettlePurchase(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "cash_consolation", res.PrizeID)
}

func TestSettlePurchase_BoxCounterExhaustionIsNotFatal(t *testing.T) {
	d := setupPurchaseService(t)
	defer d.ctrl.Finish()

	req := settleFixture(t, d)
	prize := domain.Catalog()[1].Table[0]

	d.guard.EXPECT().Validate(gomock.Any(), gomock.Any(), domain.PhaseSettle).Return(nil)
	d.verifier.EXPECT().VerifyBurn(gomock.Any(), req.TxHash, req.Wallet, req.Amount, req.Timestamp).
		Return(&domain.BurnEvidence{TxHash: req.TxHash, Payer: req.Wallet, Amount: req.Amount, Timestamp: req.Timestamp}, nil)
	d.guard.EXPECT().ConsumeSettlement(gomock.Any(), gomock.Any()).Return(nil)
	d.fairness.EXPECT().GenerateServerSeed().Return("server-seed", nil)
	d.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), req.ClientSeed, "server-seed").
		Return(prize, ports.DrawResult{}, false, nil)
	d.stock.EXPECT().DecrementIfPositive(gomock.Any(), "box:1").Return(int64(0), domain.ErrOutOfStock)
	d.dispatcher.EXPECT().Dispatch(gomock.Any(), prize, req.Wallet).
		Return(domain.SettlementResult{Status: domain.SettlementSettled, TxHash: "0xpayout"}, nil)
	d.purchases.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	_, err := d.svc.SettlePurchase(context.Background(), req)
	require.NoError(t, err)
}
