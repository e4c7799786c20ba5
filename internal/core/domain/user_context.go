package domain

import "github.com/google/uuid"

// KYCStatus represents a user's identity verification level.
// Verification itself happens upstream; this core only reads the status.
type KYCStatus string

const (
	KYCStatusUnverified KYCStatus = "unverified"
	KYCStatusBasic      KYCStatus = "basic"
	KYCStatusVerified   KYCStatus = "verified"
)

// The age of majority used for minor protections and asset locking.
const AdultAge = 18

// RegionGlobal is the fallback region when the caller supplies none.
const RegionGlobal = "global"

// UserContext carries the identity attributes every compliance decision
// depends on. It is supplied by the auth edge on each call and never stored.
type UserContext struct {
	UserID    uuid.UUID `json:"user_id"`
	Age       int       `json:"age"`
	KYCStatus KYCStatus `json:"kyc_status"`
	Region    string    `json:"region"`
}

// IsMinor reports whether the user is below the age of majority.
func (u UserContext) IsMinor() bool {
	return u.Age < AdultAge
}

// HasVerifiedKYC reports whether the user passed full identity verification.
func (u UserContext) HasVerifiedKYC() bool {
	return u.KYCStatus == KYCStatusVerified
}

// EffectiveRegion returns the user's region, defaulting to the global
// rule set when none was supplied.
func (u UserContext) EffectiveRegion() string {
	if u.Region == "" {
		return RegionGlobal
	}
	return u.Region
}
