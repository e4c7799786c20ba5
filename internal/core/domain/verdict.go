package domain

// AgeCheck is the result of validating a feature's minimum-age rule.
type AgeCheck struct {
	RequiredAge              int    `json:"required_age"`
	IsCompliant              bool   `json:"is_compliant"`
	RequiresCOPPA            bool   `json:"requires_coppa_compliance"`
	RequiresMinorProtections bool   `json:"requires_minor_protections"`
	Reason                   string `json:"reason"`
}

// MinorProtectionCheck is the result of validating an asset operation
// against minor-protection rules. A minor's earn-type operations are
// compliant but flagged for locking.
type MinorProtectionCheck struct {
	IsCompliant        bool   `json:"is_compliant"`
	AssetLockRequired  bool   `json:"asset_lock_required"`
	AssetAccessAllowed bool   `json:"asset_access_allowed"`
	Reason             string `json:"reason"`
}

// KYCCheck is the result of validating an operation's identity
// requirements. TransactionLimitExceeded is a soft signal only: it never
// flips IsCompliant on its own.
type KYCCheck struct {
	RequiresKYC              bool   `json:"requires_kyc"`
	HasValidKYC              bool   `json:"has_valid_kyc"`
	IsCompliant              bool   `json:"is_compliant"`
	TransactionLimitExceeded bool   `json:"transaction_limit_exceeded"`
	Reason                   string `json:"reason"`
}

// ComplianceVerdict is the aggregate allow/deny decision for an asset
// operation. It is pure and derived; callers branch on IsCompliant and
// must never string-match on Reason.
type ComplianceVerdict struct {
	IsCompliant        bool   `json:"is_compliant"`
	ShouldLockAssets   bool   `json:"should_lock_assets"`
	AssetAccessAllowed bool   `json:"asset_access_allowed"`
	Reason             string `json:"reason"`

	Age      MinorProtectionCheck `json:"age"`
	KYC      KYCCheck             `json:"kyc"`
	Regional RegionalCheck        `json:"regional"`
}

// RegionalCheck is the result of the region restricted-asset-type lookup.
type RegionalCheck struct {
	IsCompliant bool   `json:"is_compliant"`
	Region      string `json:"region"`
	Reason      string `json:"reason"`
}
