package service

import (
	"fmt"

	"digital-asset-gateway/internal/core/domain"
	"digital-asset-gateway/internal/metrics"

	"github.com/shopspring/decimal"
)

// defaultNonKYCTransactionLimit is the flat per-transaction ceiling applied
// to users without verified KYC. Exceeding it raises a soft flag only; it
// never flips the compliance verdict on its own.
var defaultNonKYCTransactionLimit = decimal.NewFromInt(1000)

// featureMinimumAges is the fixed per-feature minimum age table.
// Unknown features fall back to 0 (least restrictive): callers must supply
// complete context to get meaningful gating.
var featureMinimumAges = map[domain.Feature]int{
	domain.FeatureGeneral:                0,
	domain.FeatureSocial:                 13,
	domain.FeatureGaming:                 13,
	domain.FeatureEcommercePurchase:      18,
	domain.FeatureDigitalAssetManagement: 18,
	domain.FeatureFinancialServices:      18,
	domain.FeatureAdultContent:           18,
}

// minorLockOperations are permitted for minors but force the resulting
// assets into a lock until the age of majority.
var minorLockOperations = map[domain.OperationKind]bool{
	domain.OpEarn:       true,
	domain.OpReceive:    true,
	domain.OpMint:       true,
	domain.OpStake:      true,
	domain.OpAddRewards: true,
}

// minorAllowedOperations are read-only/learning operations minors may
// perform without locking.
var minorAllowedOperations = map[domain.OperationKind]bool{
	domain.OpView:     true,
	domain.OpLearn:    true,
	domain.OpSimulate: true,
}

// kycRequiredOperations must be performed by a user with verified KYC.
var kycRequiredOperations = map[domain.OperationKind]bool{
	domain.OpWithdrawFunds:        true,
	domain.OpHighValueTransaction: true,
	domain.OpDigitalAssetTransfer: true,
	domain.OpBusinessAccount:      true,
	domain.OpFinancialService:     true,
}

// restrictedAssetTypes maps a region to asset types that may not be
// operated on there. The global entry applies everywhere.
var restrictedAssetTypes = map[string][]domain.AssetType{
	domain.RegionGlobal: {},
	"CN":                {domain.AssetTypeToken, domain.AssetTypeNFT},
	"IN":                {domain.AssetTypeToken},
}

// ComplianceServiceImpl implements ports.ComplianceService. All methods
// are pure decision functions over the static regulation tables above.
type ComplianceServiceImpl struct {
	nonKYCLimit decimal.Decimal
	metrics     *metrics.Metrics
}

// NewComplianceService creates a new ComplianceServiceImpl. A zero
// nonKYCLimit selects the default (1000 units). metrics may be nil.
func NewComplianceService(nonKYCLimit decimal.Decimal, m *metrics.Metrics) *ComplianceServiceImpl {
	if nonKYCLimit.IsZero() {
		nonKYCLimit = defaultNonKYCTransactionLimit
	}
	return &ComplianceServiceImpl{nonKYCLimit: nonKYCLimit, metrics: m}
}

// ValidateAgeRequirements checks a feature's minimum-age rule.
func (s *ComplianceServiceImpl) ValidateAgeRequirements(userCtx domain.UserContext, feature domain.Feature) domain.AgeCheck {
	requiredAge := featureMinimumAges[feature]

	check := domain.AgeCheck{
		RequiredAge:              requiredAge,
		IsCompliant:              userCtx.Age >= requiredAge,
		RequiresCOPPA:            userCtx.Age > 0 && userCtx.Age < 13,
		RequiresMinorProtections: userCtx.Age >= 13 && userCtx.Age < domain.AdultAge,
	}
	if check.IsCompliant {
		check.Reason = fmt.Sprintf("Age requirement satisfied for %s", feature)
	} else {
		check.Reason = fmt.Sprintf("Minimum age %d required for %s, user is %d", requiredAge, feature, userCtx.Age)
	}
	return check
}

// ValidateMinorAssetProtection decides whether an operation is permitted
// for a minor and whether the resulting assets must be locked.
func (s *ComplianceServiceImpl) ValidateMinorAssetProtection(userCtx domain.UserContext, op domain.AssetOperation) domain.MinorProtectionCheck {
	if !userCtx.IsMinor() {
		return domain.MinorProtectionCheck{
			IsCompliant:        true,
			AssetLockRequired:  false,
			AssetAccessAllowed: true,
			Reason:             "Adult user, no minor protections apply",
		}
	}

	switch {
	case minorLockOperations[op.Kind]:
		return domain.MinorProtectionCheck{
			IsCompliant:        true,
			AssetLockRequired:  true,
			AssetAccessAllowed: false,
			Reason:             fmt.Sprintf("Operation %s permitted for minors, assets locked until age %d", op.Kind, domain.AdultAge),
		}
	case minorAllowedOperations[op.Kind]:
		return domain.MinorProtectionCheck{
			IsCompliant:        true,
			AssetLockRequired:  false,
			AssetAccessAllowed: true,
			Reason:             fmt.Sprintf("Operation %s permitted for minors", op.Kind),
		}
	default:
		return domain.MinorProtectionCheck{
			IsCompliant:        false,
			AssetLockRequired:  false,
			AssetAccessAllowed: false,
			Reason:             fmt.Sprintf("Operation %s not permitted for minors", op.Kind),
		}
	}
}

// ValidateKYCRequirements checks an operation's identity requirements.
// The non-KYC transaction limit is reported as a soft signal only.
func (s *ComplianceServiceImpl) ValidateKYCRequirements(userCtx domain.UserContext, op domain.AssetOperation) domain.KYCCheck {
	requiresKYC := kycRequiredOperations[op.Kind]
	hasValidKYC := userCtx.HasVerifiedKYC()

	check := domain.KYCCheck{
		RequiresKYC: requiresKYC,
		HasValidKYC: hasValidKYC,
		IsCompliant: !requiresKYC || hasValidKYC,
	}
	if !hasValidKYC && op.Amount.IsPositive() {
		check.TransactionLimitExceeded = op.Amount.GreaterThan(s.nonKYCLimit)
	}

	switch {
	case !check.IsCompliant:
		check.Reason = fmt.Sprintf("Verified KYC status required for %s", op.Kind)
	case check.TransactionLimitExceeded:
		check.Reason = fmt.Sprintf("Amount exceeds the non-KYC transaction limit of %s", s.nonKYCLimit)
	default:
		check.Reason = "KYC requirements satisfied"
	}
	return check
}

// ValidateAssetOperation combines the minor-protection, KYC and regional
// checks into the aggregate verdict. Reason reporting follows strict
// priority: age, then KYC, then regional, then the success/lock message.
func (s *ComplianceServiceImpl) ValidateAssetOperation(userCtx domain.UserContext, op domain.AssetOperation, region string) domain.ComplianceVerdict {
	if region == "" {
		region = userCtx.EffectiveRegion()
	}

	ageCheck := s.ValidateMinorAssetProtection(userCtx, op)
	kycCheck := s.ValidateKYCRequirements(userCtx, op)
	regionalCheck := s.validateRegion(op, region)

	verdict := domain.ComplianceVerdict{
		IsCompliant:        ageCheck.IsCompliant && kycCheck.IsCompliant && regionalCheck.IsCompliant,
		ShouldLockAssets:   ageCheck.AssetLockRequired,
		AssetAccessAllowed: ageCheck.AssetAccessAllowed,
		Age:                ageCheck,
		KYC:                kycCheck,
		Regional:           regionalCheck,
	}

	switch {
	case !ageCheck.IsCompliant:
		verdict.Reason = ageCheck.Reason
	case !kycCheck.IsCompliant:
		verdict.Reason = kycCheck.Reason
	case !regionalCheck.IsCompliant:
		verdict.Reason = regionalCheck.Reason
	case verdict.ShouldLockAssets:
		verdict.Reason = ageCheck.Reason
	default:
		verdict.Reason = fmt.Sprintf("Operation %s permitted", op.Kind)
	}

	s.metrics.IncrementVerdict(string(op.Kind), verdict.IsCompliant)
	return verdict
}

// validateRegion looks up the restricted asset types for the region plus
// the global list. Operations without an asset type are never restricted.
func (s *ComplianceServiceImpl) validateRegion(op domain.AssetOperation, region string) domain.RegionalCheck {
	check := domain.RegionalCheck{IsCompliant: true, Region: region, Reason: "No regional restrictions apply"}
	if op.AssetType == "" {
		return check
	}

	restricted := append([]domain.AssetType{}, restrictedAssetTypes[domain.RegionGlobal]...)
	restricted = append(restricted, restrictedAssetTypes[region]...)
	for _, t := range restricted {
		if t == op.AssetType {
			check.IsCompliant = false
			check.Reason = fmt.Sprintf("Asset type %s is restricted in region %s", op.AssetType, region)
			return check
		}
	}
	return check
}
