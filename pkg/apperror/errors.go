package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Validation (VAL) ----

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

func ErrUnknownBoxType(boxType int) *AppError {
	return New("VAL_002", fmt.Sprintf("Unknown box type %d", boxType), http.StatusBadRequest)
}

// ---- Authorization & Replay (SEC) ----

func ErrTimestampOutOfWindow() *AppError {
	return New("SEC_001", "Authorization timestamp outside the accepted window", http.StatusForbidden)
}

func ErrReplay() *AppError {
	return New("SEC_002", "Authorization has already been consumed", http.StatusConflict)
}

func ErrUnknownAuthorization() *AppError {
	return New("SEC_003", "No matching authorization was issued", http.StatusForbidden)
}

func ErrInvalidSignature() *AppError {
	return New("SEC_004", "Signature does not match the authority", http.StatusUnauthorized)
}

// ---- Signature issuance self-check (SIG) ----

// ErrSignatureSelfCheck indicates the freshly produced signature did not
// recover to the authority address. Fatal misconfiguration: no signature
// is returned to the caller.
func ErrSignatureSelfCheck(err error) *AppError {
	return Wrap("SIG_001", "Authority signature self-check failed", http.StatusInternalServerError, err)
}

// ---- Chain verification (CHN) ----

func ErrTransactionNotFound(txHash string) *AppError {
	return New("CHN_001", fmt.Sprintf("Transaction %s not found on chain", txHash), http.StatusNotFound)
}

func ErrBurnEventNotFound() *AppError {
	return New("CHN_002", "No matching burn event in transaction receipt", http.StatusUnprocessableEntity)
}

func ErrBurnReverted() *AppError {
	return New("CHN_003", "Burn transaction reverted on chain", http.StatusUnprocessableEntity)
}

func ErrChainUnavailable(err error) *AppError {
	return Wrap("CHN_004", "Chain RPC unavailable", http.StatusBadGateway, err)
}

// ---- Inventory (STK) ----

func ErrOutOfStock(key string) *AppError {
	return New("STK_001", fmt.Sprintf("Stock exhausted for %s", key), http.StatusConflict)
}

// ---- Settlement (SET) ----

// ErrSettlementFailed marks a payout/mint failure after the burn was
// verified. The purchase is still recorded; this error is carried inside
// the record, never returned in place of it.
func ErrSettlementFailed(err error) *AppError {
	return Wrap("SET_001", "Prize settlement failed", http.StatusBadGateway, err)
}

// ---- Storage (STO) ----

// ErrRecordFailed marks an audit-record insert failure. Funds have already
// moved at this point, so the pipeline surfaces it as a hard error.
func ErrRecordFailed(err error) *AppError {
	return Wrap("STO_001", "Failed to persist purchase record", http.StatusInternalServerError, err)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}
