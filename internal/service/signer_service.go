package service

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"mystery-box-service/internal/core/domain"
	"mystery-box-service/pkg/apperror"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ECDSAAuthoritySigner implements ports.AuthoritySigner with the service
// authority key on secp256k1. Hashing is Keccak-256 over the fixed-width
// packing and signing follows the EIP-191 personal-message convention,
// so contracts can verify grants with ecrecover.
type ECDSAAuthoritySigner struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewECDSAAuthoritySigner parses the hex-encoded authority private key.
func NewECDSAAuthoritySigner(hexKey string) (*ECDSAAuthoritySigner, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("parsing authority key: %w", err)
	}
	return &ECDSAAuthoritySigner{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// Address returns the authority address.
func (s *ECDSAAuthoritySigner) Address() common.Address {
	return s.address
}

// MessageHash packs wallet (20 bytes), amount and timestamp (32-byte
// big-endian each) and hashes with Keccak-256. Byte-exact and stable:
// the burn contract recomputes the same hash on-chain.
func (s *ECDSAAuthoritySigner) MessageHash(wallet common.Address, amount *big.Int, timestamp int64) common.Hash {
	packed := make([]byte, 0, 84)
	packed = append(packed, wallet.Bytes()...)
	packed = append(packed, common.LeftPadBytes(amount.Bytes(), 32)...)
	packed = append(packed, common.LeftPadBytes(big.NewInt(timestamp).Bytes(), 32)...)
	return crypto.Keccak256Hash(packed)
}

// SignAuthorization signs the message hash and self-checks the result:
// if the signature does not recover to the authority address the grant
// is withheld entirely. A misconfigured key must never produce
// authorizations that look valid but fail on-chain.
func (s *ECDSAAuthoritySigner) SignAuthorization(wallet common.Address, amount *big.Int, timestamp int64) (*domain.AuthorizationGrant, error) {
	hash := s.MessageHash(wallet, amount, timestamp)

	sig, err := crypto.Sign(accounts.TextHash(hash.Bytes()), s.key)
	if err != nil {
		return nil, apperror.ErrSignatureSelfCheck(fmt.Errorf("sign: %w", err))
	}
	sig[64] += 27 // legacy V for on-chain ecrecover

	recovered, err := s.RecoverSigner(hash, sig)
	if err != nil {
		return nil, apperror.ErrSignatureSelfCheck(fmt.Errorf("recover: %w", err))
	}
	if recovered != s.address {
		return nil, apperror.ErrSignatureSelfCheck(
			fmt.Errorf("recovered %s, authority is %s", recovered.Hex(), s.address.Hex()))
	}

	return &domain.AuthorizationGrant{
		MessageHash: hash,
		Signature:   sig,
		Amount:      new(big.Int).Set(amount),
		Timestamp:   timestamp,
	}, nil
}

// RecoverSigner returns the address that signed hash under the
// personal-message convention. Accepts V in {0, 1} or {27, 28}.
func (s *ECDSAAuthoritySigner) RecoverSigner(hash common.Hash, sig []byte) (common.Address, error) {
	if len(sig) != 65 {
		return common.Address{}, fmt.Errorf("signature must be 65 bytes, got %d", len(sig))
	}
	normalized := make([]byte, 65)
	copy(normalized, sig)
	if normalized[64] >= 27 {
		normalized[64] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash(hash.Bytes()), normalized)
	if err != nil {
		return common.Address{}, fmt.Errorf("recovering signer: %w", err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}
