package handler

import (
	"digital-asset-gateway/internal/adapter/http/dto"
	"digital-asset-gateway/internal/adapter/http/middleware"
	"digital-asset-gateway/internal/core/ports"
	"digital-asset-gateway/pkg/apperror"
	"digital-asset-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RewardHandler handles reward-point endpoints.
type RewardHandler struct {
	rewardSvc ports.RewardService
}

// NewRewardHandler creates a new RewardHandler.
func NewRewardHandler(rewardSvc ports.RewardService) *RewardHandler {
	return &RewardHandler{rewardSvc: rewardSvc}
}

// parseAmount parses a decimal string from a request body.
func parseAmount(field, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, apperror.Validation(field + " must be a decimal number")
	}
	return d, nil
}

// Credit handles POST /api/v1/rewards/credit.
func (h *RewardHandler) Credit(c *gin.Context) {
	userCtx, ok := middleware.UserContextFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.CreditRewardsRequest
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

	result, err := h.rewardSvc.AddRewardPoints(c.Request.Context(), ports.AddRewardsRequest{
		UserContext: userCtx,
		Amount:      amount,
		Reason:      req.Reason,
		Reference:   req.Reference,
		ClientIP:    c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// Redeem handles POST /api/v1/rewards/redeem.
func (h *RewardHandler) Redeem(c *gin.Context) {
	userCtx, ok := middleware.UserContextFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.RedeemRewardsRequest
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

	result, err := h.rewardSvc.UseRewardPoints(c.Request.Context(), ports.UseRewardsRequest{
		UserContext: userCtx,
		Amount:      amount,
		Purpose:     req.Purpose,
		ClientIP:    c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, result)
}

// GetBalance handles GET /api/v1/rewards/balance.
func (h *RewardHandler) GetBalance(c *gin.Context) {
	userCtx, ok := middleware.UserContextFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	result, err := h.rewardSvc.GetRewardBalance(c.Request.Context(), userCtx)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, result)
}
