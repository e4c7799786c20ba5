package dto

// RegisterRequest is the request body for account registration.
type RegisterRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=50,safe_id"`
	Password    string `json:"password" binding:"required,min=8,max=128"`
	DateOfBirth string `json:"date_of_birth" binding:"required"` // YYYY-MM-DD
	Region      string `json:"region" binding:"omitempty,max=16"`
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterResponse is the response body for successful registration.
type RegisterResponse struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	KYCStatus string `json:"kyc_status"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// CreditRewardsRequest is the request body for crediting reward points.
// Amounts travel as decimal strings so no precision is lost in transit.
type CreditRewardsRequest struct {
	Amount    string `json:"amount" binding:"required"`
	Reason    string `json:"reason" binding:"omitempty,max=200"`
	Reference string `json:"reference" binding:"required,max=100,safe_id"`
}

// RedeemRewardsRequest is the request body for redeeming reward points.
type RedeemRewardsRequest struct {
	Amount  string `json:"amount" binding:"required"`
	Purpose string `json:"purpose" binding:"omitempty,max=200"`
}

// StakeRequest is the request body for creating a staking contract.
type StakeRequest struct {
	Amount       string `json:"amount" binding:"required"`
	DurationDays int    `json:"duration_days" binding:"required,gt=0"`
	AssetType    string `json:"asset_type" binding:"required"`
	Reference    string `json:"reference" binding:"required,max=100,safe_id"`
}

// MintRequest is the request body for minting an asset.
type MintRequest struct {
	AssetType string            `json:"asset_type" binding:"required"`
	Value     string            `json:"value" binding:"required"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// RestrictionsRequest mirrors domain restrictions on asset creation.
type RestrictionsRequest struct {
	MinAge       int  `json:"min_age" binding:"gte=0"`
	RequiresKYC  bool `json:"requires_kyc"`
	Transferable bool `json:"transferable"`
	Stakeable    bool `json:"stakeable"`
}

// CreateAssetRequest is the request body for direct asset creation.
type CreateAssetRequest struct {
	AssetType    string               `json:"asset_type" binding:"required"`
	Value        string               `json:"value" binding:"required"`
	Restrictions *RestrictionsRequest `json:"restrictions,omitempty"`
	ExpiresAt    *string              `json:"expires_at,omitempty"` // RFC 3339
}

// TransferRequest is the request body for transferring an asset.
type TransferRequest struct {
	ToUserID string `json:"to_user_id" binding:"required,uuid"`
}

// LockRequest is the request body for locking an asset. Zero duration
// selects the default lock window.
type LockRequest struct {
	DurationDays int    `json:"duration_days" binding:"gte=0"`
	Reason       string `json:"reason" binding:"omitempty,max=50"`
}

// VerificationRequest is the caller's assertion that age/KYC
// verification happened upstream.
type VerificationRequest struct {
	Method      string `json:"method" binding:"required,max=50"`
	DocumentRef string `json:"document_ref" binding:"omitempty,max=100,safe_id"`
	VerifiedAt  string `json:"verified_at" binding:"required"` // RFC 3339
}

// UnlockRequest is the request body for unlocking an asset.
type UnlockRequest struct {
	Verification *VerificationRequest `json:"verification,omitempty"`
}

// CompoundRequest is the request body for compounding an asset's value.
type CompoundRequest struct {
	Rate string `json:"rate" binding:"required"`
}

// ComplianceCheckRequest is the request body for verdict inspection.
type ComplianceCheckRequest struct {
	Operation string `json:"operation" binding:"required,max=50"`
	AssetType string `json:"asset_type" binding:"omitempty,max=30"`
	Amount    string `json:"amount" binding:"omitempty"`
	Region    string `json:"region" binding:"omitempty,max=16"`
}
