package handler

import (
	"time"

	"digital-asset-gateway/internal/adapter/http/dto"
	"digital-asset-gateway/internal/adapter/http/middleware"
	"digital-asset-gateway/internal/core/domain"
	"digital-asset-gateway/internal/core/ports"
	"digital-asset-gateway/pkg/apperror"
	"digital-asset-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AssetHandler handles digital-asset endpoints, including the locking
// subsystem. Transfers resolve the recipient's account so the receiver
// side of the compliance gate runs against their real attributes.
type AssetHandler struct {
	assetSvc    ports.AssetService
	accountRepo ports.AccountRepository
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetSvc ports.AssetService, accountRepo ports.AccountRepository) *AssetHandler {
	return &AssetHandler{assetSvc: assetSvc, accountRepo: accountRepo}
}

// Mint handles POST /api/v1/assets/mint.
func (h *AssetHandler) Mint(c *gin.Context) {
	userCtx, ok := middleware.UserContextFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.MintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	value, err := parseAmount("value", req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}

	asset, err := h.assetSvc.MintAsset(c.Request.Context(), ports.MintRequest{
		UserContext: userCtx,
		AssetType:   domain.AssetType(req.AssetType),
		Value:       value,
		Metadata:    req.Metadata,
		ClientIP:    c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, asset)
}

// Create handles POST /api/v1/assets.
func (h *AssetHandler) Create(c *gin.Context) {
	userCtx, ok := middleware.UserContextFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	value, err := parseAmount("value", req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}

	svcReq := ports.CreateAssetRequest{
		UserContext: userCtx,
		AssetType:   domain.AssetType(req.AssetType),
		Value:       value,
	}
	if req.Restrictions != nil {
		svcReq.Restrictions = &domain.Restrictions{
			MinAge:       req.Restrictions.MinAge,
			RequiresKYC:  req.Restrictions.RequiresKYC,
			Transferable: req.Restrictions.Transferable,
			Stakeable:    req.Restrictions.Stakeable,
		}
	}
	if req.ExpiresAt != nil {
		expiresAt, err := time.Parse(time.RFC3339, *req.ExpiresAt)
		if err != nil {
			response.Error(c, apperror.Validation("expires_at must be RFC 3339"))
			return
		}
		svcReq.ExpiresAt = &expiresAt
	}

	asset, err := h.assetSvc.CreateAsset(c.Request.Context(), svcReq)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, asset)
}

// Get handles GET /api/v1/assets/:id.
func (h *AssetHandler) Get(c *gin.Context) {
	userCtx, ok := middleware.UserContextFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("id must be a UUID"))
		return
	}

	asset, err := h.assetSvc.GetAsset(c.Request.Context(), assetID, userCtx)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, asset)
}

// Transfer handles POST /api/v1/assets/:id/transfer.
func (h *AssetHandler) Transfer(c *gin.Context) {
	userCtx, ok := middleware.UserContextFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("id must be a UUID"))
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	toUserID, err := uuid.Parse(req.ToUserID)
	if err != nil {
		response.Error(c, apperror.Validation("to_user_id must be a UUID"))
		return
	}

	recipient, err := h.accountRepo.GetByID(c.Request.Context(), toUserID)
	if err != nil {
		response.Error(c, apperror.ErrDatabaseError(err))
		return
	}
	if recipient == nil {
		response.Error(c, apperror.Validation("recipient account not found"))
		return
	}

	asset, err := h.assetSvc.TransferAsset(c.Request.Context(), ports.TransferRequest{
		AssetID:  assetID,
		From:     userCtx,
		To:       recipient.Context(time.Now().UTC()),
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, asset)
}

// Lock handles POST /api/v1/assets/:id/lock.
func (h *AssetHandler) Lock(c *gin.Context) {
	userCtx, ok := middleware.UserContextFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("id must be a UUID"))
		return
	}

	var req dto.LockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	asset, err := h.assetSvc.LockAsset(c.Request.Context(), ports.LockRequest{
		UserContext:  userCtx,
		AssetID:      assetID,
		DurationDays: req.DurationDays,
		Reason:       domain.LockReason(req.Reason),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, asset)
}

// Unlock handles POST /api/v1/assets/:id/unlock.
func (h *AssetHandler) Unlock(c *gin.Context) {
	userCtx, ok := middleware.UserContextFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("id must be a UUID"))
		return
	}

	var req dto.UnlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	svcReq := ports.UnlockRequest{
		UserContext: userCtx,
		AssetID:     assetID,
	}
	if req.Verification != nil {
		verifiedAt, err := time.Parse(time.RFC3339, req.Verification.VerifiedAt)
		if err != nil {
			response.Error(c, apperror.Validation("verified_at must be RFC 3339"))
			return
		}
		svcReq.VerificationData = &ports.VerificationData{
			Method:      req.Verification.Method,
			DocumentRef: req.Verification.DocumentRef,
			VerifiedAt:  verifiedAt,
		}
	}

	asset, err := h.assetSvc.UnlockAsset(c.Request.Context(), svcReq)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, asset)
}

// Compound handles POST /api/v1/assets/:id/compound.
func (h *AssetHandler) Compound(c *gin.Context) {
	userCtx, ok := middleware.UserContextFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("id must be a UUID"))
		return
	}

	var req dto.CompoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	rate, err := parseAmount("rate", req.Rate)
	if err != nil {
		response.Error(c, err)
		return
	}

	asset, err := h.assetSvc.CompoundAsset(c.Request.Context(), ports.CompoundRequest{
		UserContext: userCtx,
		AssetID:     assetID,
		Rate:        rate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, asset)
}

// Projection handles GET /api/v1/assets/projection.
// Query: value (decimal), rate (annual decimal, e.g. 0.05).
func (h *AssetHandler) Projection(c *gin.Context) {
	userCtx, ok := middleware.UserContextFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	value, err := parseAmount("value", c.Query("value"))
	if err != nil {
		response.Error(c, err)
		return
	}
	rate, err := parseAmount("rate", c.Query("rate"))
	if err != nil {
		response.Error(c, err)
		return
	}

	result := h.assetSvc.ProjectLockedValue(ports.ProjectionRequest{
		CurrentValue: value,
		UserAge:      userCtx.Age,
		AnnualRate:   rate,
	})

	response.OK(c, result)
}
