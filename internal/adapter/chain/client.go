package chain

import (
	"context"
	"fmt"
	"math/big"

	"mystery-box-service/config"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog"
)

// Backend is the slice of the Ethereum RPC surface the adapters use.
// *ethclient.Client satisfies it; tests substitute a fake.
type Backend interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
}

// Dial connects to the configured RPC endpoint and verifies it serves
// the expected chain. A node on the wrong network would make every
// burn verification silently wrong, so this fails fast at startup.
func Dial(ctx context.Context, cfg config.ChainConfig, log zerolog.Logger) (*ethclient.Client, error) {
	dialCtx, cancel := context.WithTimeout(ctx, cfg.CallTimeout)
	defer cancel()

	client, err := ethclient.DialContext(dialCtx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dialing chain rpc: %w", err)
	}

	chainID, err := client.ChainID(dialCtx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("querying chain id: %w", err)
	}
	if chainID.Int64() != cfg.ChainID {
		client.Close()
		return nil, fmt.Errorf("rpc serves chain %d, configured for %d", chainID.Int64(), cfg.ChainID)
	}

	log.Info().
		Str("rpc_url", cfg.RPCURL).
		Int64("chain_id", cfg.ChainID).
		Msg("chain RPC connection established")

	return client, nil
}
