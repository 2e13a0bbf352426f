package dto

import (
	"regexp"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	txHashRe  = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)
	sigRe     = regexp.MustCompile(`^0x[0-9a-fA-F]{130}$`)
	seedRe    = regexp.MustCompile(`^[a-zA-Z0-9_\-\.]+$`)
	numericRe = regexp.MustCompile(`^[1-9][0-9]*$`)
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("eth_addr", validateEthAddr)
		_ = v.RegisterValidation("eth_hash", validateEthHash)
		_ = v.RegisterValidation("eth_sig", validateEthSig)
		_ = v.RegisterValidation("seed", validateSeed)
		_ = v.RegisterValidation("numeric_string", validateNumericString)
	}
}

// validateEthAddr accepts a 0x-prefixed 20-byte hex address.
func validateEthAddr(fl validator.FieldLevel) bool {
	return common.IsHexAddress(fl.Field().String())
}

// validateEthHash accepts a 0x-prefixed 32-byte hex hash.
func validateEthHash(fl validator.FieldLevel) bool {
	return txHashRe.MatchString(fl.Field().String())
}

// validateEthSig accepts a 0x-prefixed 65-byte [R || S || V] signature.
func validateEthSig(fl validator.FieldLevel) bool {
	return sigRe.MatchString(fl.Field().String())
}

// validateSeed restricts client seeds to a safe charset. The seed is
// echoed back in responses and hashed verbatim, so whitespace or
// control characters would make audits needlessly fragile.
func validateSeed(fl validator.FieldLevel) bool {
	return seedRe.MatchString(fl.Field().String())
}

// validateNumericString accepts a positive base-10 integer with no
// leading zeros, as produced by big.Int.String.
func validateNumericString(fl validator.FieldLevel) bool {
	return numericRe.MatchString(fl.Field().String())
}
