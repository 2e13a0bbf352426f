package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"mystery-box-service/config"
	"mystery-box-service/internal/core/domain"
	"mystery-box-service/pkg/apperror"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

const (
	nativeTransferGas       = 21000
	defaultReceiptPollEvery = 2 * time.Second
)

// TxSettlementDispatcher executes the on-chain leg of a resolved prize
// from the treasury account: a native transfer for currency prizes, a
// mintTo call on the prize contract for collectibles. SPECIAL prizes
// have no on-chain leg and are skipped.
type TxSettlementDispatcher struct {
	backend        Backend
	key            *ecdsa.PrivateKey
	treasury       common.Address
	prizeContract  common.Address
	chainID        *big.Int
	mintGasLimit   uint64
	callTimeout    time.Duration
	confirmTimeout time.Duration
	pollEvery      time.Duration
	clock          clockwork.Clock
	log            zerolog.Logger
}

// NewTxSettlementDispatcher parses the treasury key and creates the
// dispatcher.
func NewTxSettlementDispatcher(backend Backend, cfg config.ChainConfig, clock clockwork.Clock, log zerolog.Logger) (*TxSettlementDispatcher, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.TreasuryKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("parsing treasury key: %w", err)
	}

	return &TxSettlementDispatcher{
		backend:        backend,
		key:            key,
		treasury:       crypto.PubkeyToAddress(key.PublicKey),
		prizeContract:  common.HexToAddress(cfg.PrizeContract),
		chainID:        big.NewInt(cfg.ChainID),
		mintGasLimit:   cfg.MintGasLimit,
		callTimeout:    cfg.CallTimeout,
		confirmTimeout: cfg.ConfirmTimeout,
		pollEvery:      defaultReceiptPollEvery,
		clock:          clock,
		log:            log,
	}, nil
}

// Dispatch runs the prize's settlement transaction and waits for it to
// be mined. Errors leave the caller holding a FAILED settlement; the
// dispatcher never retries on its own because the treasury nonce would
// make a duplicate payout possible.
func (d *TxSettlementDispatcher) Dispatch(ctx context.Context, prize domain.Prize, recipient common.Address) (domain.SettlementResult, error) {
	switch prize.Type {
	case domain.PrizeCurrency:
		return d.dispatchTransfer(ctx, prize, recipient)
	case domain.PrizeCollectible:
		return d.dispatchMint(ctx, prize, recipient)
	case domain.PrizeSpecial:
		// Fulfilled off-chain from the purchase record.
		return domain.SettlementResult{Status: domain.SettlementSkipped}, nil
	default:
		return domain.SettlementResult{}, fmt.Errorf("unknown prize type %q", prize.Type)
	}
}

func (d *TxSettlementDispatcher) dispatchTransfer(ctx context.Context, prize domain.Prize, recipient common.Address) (domain.SettlementResult, error) {
	if prize.PayoutWei == nil || prize.PayoutWei.Sign() <= 0 {
		return domain.SettlementResult{}, fmt.Errorf("currency prize %s has no payout amount", prize.ID)
	}

	receipt, err := d.sendAndConfirm(ctx, &recipient, prize.PayoutWei, nativeTransferGas, nil)
	if err != nil {
		return domain.SettlementResult{}, err
	}

	d.log.Info().
		Str("prize_id", prize.ID).
		Str("recipient", recipient.Hex()).
		Str("amount_wei", prize.PayoutWei.String()).
		Str("tx_hash", receipt.TxHash.Hex()).
		Msg("currency prize paid out")

	return domain.SettlementResult{
		Status: domain.SettlementSettled,
		TxHash: receipt.TxHash.Hex(),
	}, nil
}

func (d *TxSettlementDispatcher) dispatchMint(ctx context.Context, prize domain.Prize, recipient common.Address) (domain.SettlementResult, error) {
	data, err := packMintCall(recipient, prize.MetadataURI)
	if err != nil {
		return domain.SettlementResult{}, fmt.Errorf("encoding mint call: %w", err)
	}

	receipt, err := d.sendAndConfirm(ctx, &d.prizeContract, nil, d.mintGasLimit, data)
	if err != nil {
		return domain.SettlementResult{}, err
	}

	result := domain.SettlementResult{
		Status:      domain.SettlementSettled,
		TxHash:      receipt.TxHash.Hex(),
		MetadataURI: prize.MetadataURI,
	}

	// The minted token id rides in the ERC-721 Transfer event. Its
	// absence is a contract quirk, not a failed mint: the receipt
	// already confirmed success.
	if tokenID := mintedTokenID(receipt, d.prizeContract, recipient); tokenID != nil {
		result.MintedTokenID = tokenID
	} else {
		d.log.Warn().Str("tx_hash", receipt.TxHash.Hex()).
			Msg("mint succeeded but no Transfer event found in receipt")
	}

	d.log.Info().
		Str("prize_id", prize.ID).
		Str("recipient", recipient.Hex()).
		Str("tx_hash", receipt.TxHash.Hex()).
		Msg("collectible prize minted")

	return result, nil
}

// sendAndConfirm builds, signs and sends a treasury transaction, then
// waits for its receipt.
func (d *TxSettlementDispatcher) sendAndConfirm(ctx context.Context, to *common.Address, value *big.Int, gasLimit uint64, data []byte) (*types.Receipt, error) {
	callCtx, cancel := context.WithTimeout(ctx, d.callTimeout)
	defer cancel()

	nonce, err := d.backend.PendingNonceAt(callCtx, d.treasury)
	if err != nil {
		return nil, apperror.ErrSettlementFailed(fmt.Errorf("fetching treasury nonce: %w", err))
	}
	gasPrice, err := d.backend.SuggestGasPrice(callCtx)
	if err != nil {
		return nil, apperror.ErrSettlementFailed(fmt.Errorf("fetching gas price: %w", err))
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       to,
		Value:    value,
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(d.chainID), d.key)
	if err != nil {
		return nil, apperror.ErrSettlementFailed(fmt.Errorf("signing transaction: %w", err))
	}

	if err := d.backend.SendTransaction(callCtx, signed); err != nil {
		return nil, apperror.ErrSettlementFailed(fmt.Errorf("sending transaction: %w", err))
	}

	receipt, err := d.waitMined(ctx, signed.Hash())
	if err != nil {
		return nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, apperror.ErrSettlementFailed(fmt.Errorf("transaction %s reverted", signed.Hash().Hex()))
	}
	return receipt, nil
}

// waitMined polls for the receipt until confirmTimeout elapses.
func (d *TxSettlementDispatcher) waitMined(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	deadline := d.clock.Now().Add(d.confirmTimeout)

	for {
		receipt, err := d.backend.TransactionReceipt(ctx, txHash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, apperror.ErrSettlementFailed(fmt.Errorf("polling receipt: %w", err))
		}

		if d.clock.Now().After(deadline) {
			return nil, apperror.ErrSettlementFailed(fmt.Errorf("transaction %s not mined within %s", txHash.Hex(), d.confirmTimeout))
		}
		select {
		case <-ctx.Done():
			return nil, apperror.ErrSettlementFailed(ctx.Err())
		case <-d.clock.After(d.pollEvery):
		}
	}
}

// mintedTokenID extracts the token id from the ERC-721 Transfer event
// to the recipient, if present.
func mintedTokenID(receipt *types.Receipt, contract, recipient common.Address) *big.Int {
	for _, lg := range receipt.Logs {
		if lg.Address != contract || len(lg.Topics) != 4 || lg.Topics[0] != transferID {
			continue
		}
		if common.BytesToAddress(lg.Topics[2].Bytes()) != recipient {
			continue
		}
		return new(big.Int).SetBytes(lg.Topics[3].Bytes())
	}
	return nil
}
