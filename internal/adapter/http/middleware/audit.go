package middleware

import (
	"encoding/json"
	"strings"
	"time"

	"digital-asset-gateway/internal/core/domain"
	"digital-asset-gateway/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditLog creates an audit middleware that logs successful write
// operations. Denied operations are audited by the services themselves,
// which know the compliance reason; this layer only sees status codes.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Only audit successful write operations (status 2xx)
		if c.Writer.Status() < 200 || c.Writer.Status() >= 300 {
			return
		}
		if c.Request.Method == "GET" || c.Request.Method == "HEAD" || c.Request.Method == "OPTIONS" {
			return
		}

		action, resourceType := mapPathToAction(c.Request.URL.Path)
		if action == "" {
			return
		}

		var userID *uuid.UUID
		if userCtx, ok := UserContextFrom(c); ok {
			id := userCtx.UserID
			userID = &id
		}

		details, _ := json.Marshal(map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": c.Writer.Status(),
		})

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:           uuid.New(),
			UserID:       userID,
			Action:       action,
			ResourceType: resourceType,
			IPAddress:    c.ClientIP(),
			Details:      string(details),
			CreatedAt:    time.Now(),
		})
	}
}

func mapPathToAction(path string) (domain.AuditAction, string) {
	switch {
	case path == "/api/v1/auth/register":
		return domain.AuditActionRegister, "account"
	case path == "/api/v1/auth/login":
		return domain.AuditActionLogin, "session"
	case path == "/api/v1/rewards/credit":
		return domain.AuditActionRewardCredit, "reward_balance"
	case path == "/api/v1/rewards/redeem":
		return domain.AuditActionRewardDebit, "reward_balance"
	case path == "/api/v1/staking":
		return domain.AuditActionStake, "staking_contract"
	case strings.HasSuffix(path, "/unstake"):
		return domain.AuditActionUnstake, "staking_contract"
	case path == "/api/v1/assets/mint", path == "/api/v1/assets":
		return domain.AuditActionMint, "asset"
	case strings.HasSuffix(path, "/transfer"):
		return domain.AuditActionTransfer, "asset"
	case strings.HasSuffix(path, "/lock"):
		return domain.AuditActionLock, "asset"
	case strings.HasSuffix(path, "/unlock"):
		return domain.AuditActionUnlock, "asset"
	}
	return "", ""
}
