package handler

import (
	"digital-asset-gateway/internal/adapter/http/dto"
	"digital-asset-gateway/internal/adapter/http/middleware"
	"digital-asset-gateway/internal/core/domain"
	"digital-asset-gateway/internal/core/ports"
	"digital-asset-gateway/pkg/apperror"
	"digital-asset-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ComplianceHandler exposes the compliance verdict for inspection, so
// clients can explain to a user why an operation would be denied before
// they attempt it.
type ComplianceHandler struct {
	complianceSvc ports.ComplianceService
}

// NewComplianceHandler creates a new ComplianceHandler.
func NewComplianceHandler(complianceSvc ports.ComplianceService) *ComplianceHandler {
	return &ComplianceHandler{complianceSvc: complianceSvc}
}

// Check handles POST /api/v1/compliance/check.
func (h *ComplianceHandler) Check(c *gin.Context) {
	userCtx, ok := middleware.UserContextFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.ComplianceCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	amount := decimal.Zero
	if req.Amount != "" {
		var err error
		if amount, err = parseAmount("amount", req.Amount); err != nil {
			response.Error(c, err)
			return
		}
	}

	verdict := h.complianceSvc.ValidateAssetOperation(userCtx, domain.AssetOperation{
		Kind:      domain.OperationKind(req.Operation),
		AssetType: domain.AssetType(req.AssetType),
		Amount:    amount,
	}, req.Region)

	response.OK(c, verdict)
}
