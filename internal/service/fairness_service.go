package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"

	"mystery-box-service/internal/core/ports"
)

const (
	drawSeparator = ":"
	serverSeedLen = 32
)

// SHA256FairnessEngine implements ports.FairnessEngine.
//
// draw = BE_uint32(SHA-256(clientSeed:serverSeed:nonce)[0:4]) / 0xFFFFFFFF
//
// The reduction is part of the public audit contract: clients recompute
// it from the revealed seeds, so it must never change shape.
type SHA256FairnessEngine struct{}

// NewSHA256FairnessEngine creates the fairness engine.
func NewSHA256FairnessEngine() *SHA256FairnessEngine {
	return &SHA256FairnessEngine{}
}

// GenerateServerSeed returns a fresh 32-byte hex seed from the CSPRNG.
// One seed per purchase; it is revealed in the purchase record.
func (e *SHA256FairnessEngine) GenerateServerSeed() (string, error) {
	buf := make([]byte, serverSeedLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating server seed: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Draw is a pure function of its inputs.
func (e *SHA256FairnessEngine) Draw(clientSeed, serverSeed string, nonce uint64) ports.DrawResult {
	payload := clientSeed + drawSeparator + serverSeed + drawSeparator + strconv.FormatUint(nonce, 10)
	sum := sha256.Sum256([]byte(payload))

	v := binary.BigEndian.Uint32(sum[:4])
	return ports.DrawResult{
		Nonce: nonce,
		Hash:  hex.EncodeToString(sum[:]),
		Value: float64(v) / float64(0xFFFFFFFF),
	}
}
