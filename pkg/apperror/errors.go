package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
// Compliance rejections and business failures are expected outcomes and
// always travel as AppErrors; callers branch on Code, never on Message.
type AppError struct {
	Code       string         `json:"error_code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"` // diagnostics (e.g. available/requested)
	Err        error          `json:"-"`                 // Wrapped internal error (not exposed to client)
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

// WithDetails attaches diagnostic fields to the error.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

// ---- Compliance Gating (CMP) ----

// ErrComplianceDenied carries the verdict reason for a denied operation.
func ErrComplianceDenied(reason string) *AppError {
	return New("CMP_001", reason, http.StatusForbidden)
}

func ErrMinorOperationNotPermitted() *AppError {
	return New("CMP_002", "Operation not permitted for minors", http.StatusForbidden)
}

func ErrKYCRequired() *AppError {
	return New("CMP_003", "Verified KYC status required for this operation", http.StatusForbidden)
}

func ErrRegionRestricted(assetType string) *AppError {
	return New("CMP_004", fmt.Sprintf("Asset type %s is restricted in this region", assetType), http.StatusForbidden)
}

// ---- Rewards (RWD) ----

func ErrInsufficientPoints(available, requested string) *AppError {
	return New("RWD_001", "Insufficient reward points", http.StatusUnprocessableEntity).
		WithDetails(map[string]any{"available": available, "requested": requested})
}

func ErrInvalidAmount() *AppError {
	return New("RWD_002", "Invalid amount", http.StatusBadRequest)
}

// ---- Staking (STK) ----

func ErrInsufficientBalance(assetType string) *AppError {
	return New("STK_001", fmt.Sprintf("Insufficient %s balance", assetType), http.StatusUnprocessableEntity)
}

func ErrContractNotFound() *AppError {
	return New("STK_002", "Staking contract not found", http.StatusNotFound)
}

func ErrContractNotOwned() *AppError {
	return New("STK_003", "Staking contract belongs to another user", http.StatusForbidden)
}

func ErrContractNotActive() *AppError {
	return New("STK_004", "Staking contract is already completed", http.StatusConflict)
}

func ErrInvalidDuration() *AppError {
	return New("STK_005", "Staking duration must be a positive number of days", http.StatusBadRequest)
}

// ---- Assets & Locking (AST) ----

func ErrAssetNotFound() *AppError {
	return New("AST_001", "Asset not found", http.StatusNotFound)
}

func ErrNotAssetOwner() *AppError {
	return New("AST_002", "Asset belongs to another user", http.StatusForbidden)
}

func ErrAssetNotTransferable() *AppError {
	return New("AST_003", "Asset cannot be transferred in its current state", http.StatusConflict)
}

// ErrVerificationRequired is a precondition error: unlocking always needs
// externally supplied proof of age/KYC.
func ErrVerificationRequired() *AppError {
	return New("AST_004", "Verification data is required to unlock an asset", http.StatusBadRequest)
}

func ErrAssetNotLocked() *AppError {
	return New("AST_005", "Asset is not locked", http.StatusConflict)
}

func ErrAssetStateConflict() *AppError {
	return New("AST_006", "Asset was modified concurrently, operation not applied", http.StatusConflict)
}

func ErrContentRejected(reason string) *AppError {
	return New("AST_007", fmt.Sprintf("Content rejected by moderation: %s", reason), http.StatusUnprocessableEntity)
}

func ErrModerationUnavailable(err error) *AppError {
	return Wrap("AST_008", "Content moderation is unavailable, minting with content rejected", http.StatusServiceUnavailable, err)
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrUsernameExists() *AppError {
	return New("AUTH_002", "Username already exists", http.StatusConflict)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a VAL_001 request-validation error.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}
