package domain

import "github.com/shopspring/decimal"

// OperationKind is the closed set of asset operations the compliance
// validator can be asked about. Keeping this a fixed enum (rather than
// free-form strings) lets the rule tables be checked exhaustively.
type OperationKind string

const (
	OpEarn                 OperationKind = "earn"
	OpReceive              OperationKind = "receive"
	OpMint                 OperationKind = "mint"
	OpStake                OperationKind = "stake"
	OpView                 OperationKind = "view"
	OpLearn                OperationKind = "learn"
	OpSimulate             OperationKind = "simulate"
	OpAddRewards           OperationKind = "add_rewards"
	OpUseRewards           OperationKind = "use_rewards"
	OpWithdrawFunds        OperationKind = "withdraw_funds"
	OpHighValueTransaction OperationKind = "high_value_transaction"
	OpDigitalAssetTransfer OperationKind = "digital_asset_transfer"
	OpBusinessAccount      OperationKind = "business_account"
	OpFinancialService     OperationKind = "financial_service"
	OpUnlock               OperationKind = "unlock"
)

// AssetOperation is the payload handed to the compliance validator:
// what the caller intends to do, with how much, on which asset type.
type AssetOperation struct {
	Kind      OperationKind   `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	AssetType AssetType       `json:"asset_type,omitempty"`
}

// Feature identifies a platform area with its own minimum-age rule.
type Feature string

const (
	FeatureGeneral                Feature = "general"
	FeatureSocial                 Feature = "social"
	FeatureGaming                 Feature = "gaming"
	FeatureEcommercePurchase      Feature = "ecommerce_purchase"
	FeatureDigitalAssetManagement Feature = "digital_asset_management"
	FeatureFinancialServices      Feature = "financial_services"
	FeatureAdultContent           Feature = "adult_content"
)
