package chain

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"mystery-box-service/config"
	"mystery-box-service/internal/core/domain"
	"mystery-box-service/pkg/apperror"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTreasuryKey = "59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"

var testPrizeContract = common.HexToAddress("0x3000000000000000000000000000000000000003")

func newTestDispatcher(t *testing.T, backend Backend) *TxSettlementDispatcher {
	t.Helper()
	d, err := NewTxSettlementDispatcher(backend, config.ChainConfig{
		TreasuryKey:    testTreasuryKey,
		PrizeContract:  testPrizeContract.Hex(),
		ChainID:        31337,
		MintGasLimit:   300_000,
		CallTimeout:    time.Second,
		ConfirmTimeout: time.Second,
	}, clockwork.NewRealClock(), zerolog.Nop())
	require.NoError(t, err)
	d.pollEvery = time.Millisecond
	return d
}

func currencyPrize() domain.Prize {
	return domain.Prize{
		ID:        "cash_medium",
		Type:      domain.PrizeCurrency,
		PayoutWei: big.NewInt(10_000_000_000_000_000),
	}
}

func collectiblePrize() domain.Prize {
	return domain.Prize{
		ID:          "nft_rare",
		Type:        domain.PrizeCollectible,
		MetadataURI: "ipfs://mysterybox/collectibles/rare.json",
	}
}

// minedBackend confirms every sent transaction with the given receipt
// builder on the first poll.
func minedBackend(build func(tx *types.Transaction) *types.Receipt) *fakeBackend {
	b := &fakeBackend{}
	b.receipt = func(_ context.Context, txHash common.Hash) (*types.Receipt, error) {
		for _, tx := range b.sentTxs {
			if tx.Hash() == txHash {
				r := build(tx)
				r.TxHash = txHash
				return r, nil
			}
		}
		return nil, ethereum.NotFound
	}
	return b
}

func TestDispatch_CurrencyTransfer(t *testing.T) {
	backend := minedBackend(func(_ *types.Transaction) *types.Receipt {
		return &types.Receipt{Status: types.ReceiptStatusSuccessful}
	})
	d := newTestDispatcher(t, backend)

	result, err := d.Dispatch(context.Background(), currencyPrize(), testPayer)
	require.NoError(t, err)

	assert.Equal(t, domain.SettlementSettled, result.Status)
	require.Len(t, backend.sentTxs, 1)
	tx := backend.sentTxs[0]
	assert.Equal(t, tx.Hash().Hex(), result.TxHash)
	assert.Equal(t, uint64(nativeTransferGas), tx.Gas())
	assert.Equal(t, testPayer, *tx.To())
	assert.Equal(t, 0, currencyPrize().PayoutWei.Cmp(tx.Value()))
	assert.Empty(t, tx.Data())
}

func TestDispatch_CurrencyWithoutPayoutAmount(t *testing.T) {
	d := newTestDispatcher(t, &fakeBackend{})
	_, err := d.Dispatch(context.Background(), domain.Prize{ID: "bad", Type: domain.PrizeCurrency}, testPayer)
	assert.Error(t, err)
}

func TestDispatch_CollectibleMint(t *testing.T) {
	tokenID := big.NewInt(123)
	backend := minedBackend(func(tx *types.Transaction) *types.Receipt {
		return &types.Receipt{
			Status: types.ReceiptStatusSuccessful,
			Logs: []*types.Log{{
				Address: testPrizeContract,
				Topics: []common.Hash{
					transferID,
					common.Hash{}, // mint from the zero address
					common.BytesToHash(testPayer.Bytes()),
					common.BigToHash(tokenID),
				},
			}},
		}
	})
	d := newTestDispatcher(t, backend)

	result, err := d.Dispatch(context.Background(), collectiblePrize(), testPayer)
	require.NoError(t, err)

	assert.Equal(t, domain.SettlementSettled, result.Status)
	require.NotNil(t, result.MintedTokenID)
	assert.Equal(t, 0, tokenID.Cmp(result.MintedTokenID))
	assert.Equal(t, "ipfs://mysterybox/collectibles/rare.json", result.MetadataURI)

	require.Len(t, backend.sentTxs, 1)
	tx := backend.sentTxs[0]
	assert.Equal(t, testPrizeContract, *tx.To())
	assert.Equal(t, uint64(300_000), tx.Gas())

	wantData, err := packMintCall(testPayer, "ipfs://mysterybox/collectibles/rare.json")
	require.NoError(t, err)
	assert.Equal(t, wantData, tx.Data())
}

func TestDispatch_CollectibleMintWithoutTransferLog(t *testing.T) {
	backend := minedBackend(func(_ *types.Transaction) *types.Receipt {
		return &types.Receipt{Status: types.ReceiptStatusSuccessful}
	})
	d := newTestDispatcher(t, backend)

	result, err := d.Dispatch(context.Background(), collectiblePrize(), testPayer)
	require.NoError(t, err)
	assert.Equal(t, domain.SettlementSettled, result.Status)
	assert.Nil(t, result.MintedTokenID)
}

func TestDispatch_SpecialPrizeSkipsChain(t *testing.T) {
	backend := &fakeBackend{}
	d := newTestDispatcher(t, backend)

	result, err := d.Dispatch(context.Background(), domain.Prize{ID: "merch_hoodie", Type: domain.PrizeSpecial}, testPayer)
	require.NoError(t, err)
	assert.Equal(t, domain.SettlementSkipped, result.Status)
	assert.Empty(t, backend.sentTxs)
	assert.Zero(t, backend.receiptCnt)
}

func TestDispatch_Failures(t *testing.T) {
	t.Run("send rejected", func(t *testing.T) {
		backend := &fakeBackend{sendTx: func(_ context.Context, _ *types.Transaction) error {
			return errors.New("insufficient funds")
		}}
		d := newTestDispatcher(t, backend)

		_, err := d.Dispatch(context.Background(), currencyPrize(), testPayer)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "SET_001", appErr.Code)
	})

	t.Run("transaction reverted", func(t *testing.T) {
		backend := minedBackend(func(_ *types.Transaction) *types.Receipt {
			return &types.Receipt{Status: types.ReceiptStatusFailed}
		})
		d := newTestDispatcher(t, backend)

		_, err := d.Dispatch(context.Background(), currencyPrize(), testPayer)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "SET_001", appErr.Code)
	})

	t.Run("never mined", func(t *testing.T) {
		backend := &fakeBackend{receipt: func(_ context.Context, _ common.Hash) (*types.Receipt, error) {
			return nil, ethereum.NotFound
		}}
		d := newTestDispatcher(t, backend)
		d.confirmTimeout = 10 * time.Millisecond

		_, err := d.Dispatch(context.Background(), currencyPrize(), testPayer)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "SET_001", appErr.Code)
	})
}
