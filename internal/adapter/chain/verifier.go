package chain

import (
	"context"
	"errors"
	"math/big"
	"time"

	"mystery-box-service/internal/core/domain"
	"mystery-box-service/pkg/apperror"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog"
)

// ReceiptBurnVerifier confirms burns by reading the transaction receipt
// and matching a TokensBurned event against the authorization triple.
// The chain is the source of truth: no amount of request forgery can
// fabricate a receipt log on the token contract.
type ReceiptBurnVerifier struct {
	backend     Backend
	token       common.Address
	callTimeout time.Duration
	log         zerolog.Logger
}

// NewReceiptBurnVerifier creates a ReceiptBurnVerifier for the given
// burn token contract.
func NewReceiptBurnVerifier(backend Backend, token common.Address, callTimeout time.Duration, log zerolog.Logger) *ReceiptBurnVerifier {
	return &ReceiptBurnVerifier{
		backend:     backend,
		token:       token,
		callTimeout: callTimeout,
		log:         log,
	}
}

// VerifyBurn fetches the receipt for txHash and scans its logs for a
// TokensBurned event emitted by the burn token contract that matches
// the wallet, amount and timestamp exactly. Logs that fail to decode
// are skipped, not fatal: other contracts in the same transaction may
// emit arbitrary events.
func (v *ReceiptBurnVerifier) VerifyBurn(ctx context.Context, txHash common.Hash, wallet common.Address, amount *big.Int, timestamp int64) (*domain.BurnEvidence, error) {
	callCtx, cancel := context.WithTimeout(ctx, v.callTimeout)
	defer cancel()

	receipt, err := v.backend.TransactionReceipt(callCtx, txHash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, apperror.ErrTransactionNotFound(txHash.Hex())
		}
		return nil, apperror.ErrChainUnavailable(err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, apperror.ErrBurnReverted()
	}

	for _, lg := range receipt.Logs {
		evidence, ok := v.decodeBurnLog(lg)
		if !ok {
			continue
		}
		if evidence.Matches(wallet, amount, timestamp) {
			v.log.Debug().
				Str("tx_hash", txHash.Hex()).
				Str("payer", evidence.Payer.Hex()).
				Str("amount", evidence.Amount.String()).
				Msg("burn event verified")
			return evidence, nil
		}
		v.log.Warn().
			Str("tx_hash", txHash.Hex()).
			Str("payer", evidence.Payer.Hex()).
			Msg("burn event present but does not match the authorization")
	}

	return nil, apperror.ErrBurnEventNotFound()
}

// decodeBurnLog decodes a single receipt log as a TokensBurned event.
// Returns false for logs from other contracts or with other signatures.
func (v *ReceiptBurnVerifier) decodeBurnLog(lg *types.Log) (*domain.BurnEvidence, bool) {
	if lg.Address != v.token {
		return nil, false
	}
	if len(lg.Topics) != 2 || lg.Topics[0] != tokensBurnedID {
		return nil, false
	}

	values, err := burnTokenABI.Unpack("TokensBurned", lg.Data)
	if err != nil || len(values) != 2 {
		v.log.Warn().Err(err).Str("tx_hash", lg.TxHash.Hex()).Msg("undecodable burn log skipped")
		return nil, false
	}
	amount, ok := values[0].(*big.Int)
	if !ok {
		return nil, false
	}
	ts, ok := values[1].(*big.Int)
	if !ok {
		return nil, false
	}

	return &domain.BurnEvidence{
		TxHash:    lg.TxHash,
		Payer:     common.BytesToAddress(lg.Topics[1].Bytes()),
		Amount:    amount,
		Timestamp: ts.Int64(),
	}, true
}
