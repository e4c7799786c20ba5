package handler

import (
	"digital-asset-gateway/internal/adapter/http/dto"
	"digital-asset-gateway/internal/adapter/http/middleware"
	"digital-asset-gateway/internal/core/domain"
	"digital-asset-gateway/internal/core/ports"
	"digital-asset-gateway/pkg/apperror"
	"digital-asset-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StakingHandler handles staking endpoints.
type StakingHandler struct {
	stakingSvc ports.StakingService
}

// NewStakingHandler creates a new StakingHandler.
func NewStakingHandler(stakingSvc ports.StakingService) *StakingHandler {
	return &StakingHandler{stakingSvc: stakingSvc}
}

// Stake handles POST /api/v1/staking.
func (h *StakingHandler) Stake(c *gin.Context) {
	userCtx, ok := middleware.UserContextFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.StakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	contract, err := h.stakingSvc.StakeAsset(c.Request.Context(), ports.StakeRequest{
		UserContext:  userCtx,
		Amount:       amount,
		DurationDays: req.DurationDays,
		AssetType:    domain.AssetType(req.AssetType),
		Reference:    req.Reference,
		ClientIP:     c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, contract)
}

// Unstake handles POST /api/v1/staking/:id/unstake.
func (h *StakingHandler) Unstake(c *gin.Context) {
	userCtx, ok := middleware.UserContextFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	stakingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("id must be a UUID"))
		return
	}

	result, err := h.stakingSvc.UnstakeAssets(c.Request.Context(), ports.UnstakeRequest{
		UserContext: userCtx,
		StakingID:   stakingID,
		ClientIP:    c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, result)
}

// ListActive handles GET /api/v1/staking/active.
func (h *StakingHandler) ListActive(c *gin.Context) {
	userCtx, ok := middleware.UserContextFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	contracts, err := h.stakingSvc.GetActiveStakingContracts(c.Request.Context(), userCtx.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"contracts": contracts, "count": len(contracts)})
}
