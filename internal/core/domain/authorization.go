package domain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// AuthorizationRequest is the triple a client asks the service to sign
// before burning tokens. It is consumed exactly once per phase by the
// replay guard.
type AuthorizationRequest struct {
	Wallet    common.Address
	Amount    *big.Int // token base units to burn
	Timestamp int64    // unix seconds, set by the service at issuance
}

// AuthorizationGrant is the signed permission returned to the client.
// It is fully derived from the request: recomputing with the same inputs
// and key yields the same hash and signature.
type AuthorizationGrant struct {
	MessageHash common.Hash
	Signature   []byte // 65-byte [R || S || V] with V in {27, 28}
	Amount      *big.Int
	Timestamp   int64
}

// SignatureHex returns the grant signature as a 0x-prefixed hex string.
func (g AuthorizationGrant) SignatureHex() string {
	return "0x" + fmt.Sprintf("%x", g.Signature)
}

// ReplayPhase distinguishes the two consumptions of a triple: once when
// the authorization is signed, once when the burn is settled.
type ReplayPhase string

const (
	PhaseIssue  ReplayPhase = "ISSUE"
	PhaseSettle ReplayPhase = "SETTLE"
)

// ReplayKey is the canonical identity of an authorization triple.
type ReplayKey string

// NewReplayKey builds the canonical wallet:amount:timestamp key. The
// wallet is lowercased so mixed-case client input maps to one record.
func NewReplayKey(wallet common.Address, amount *big.Int, timestamp int64) ReplayKey {
	return ReplayKey(fmt.Sprintf("%s:%s:%d",
		strings.ToLower(wallet.Hex()), amount.String(), timestamp))
}
