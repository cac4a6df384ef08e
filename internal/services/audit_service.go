package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/epicsistemas10/meubolso/internal/logger"
	"github.com/epicsistemas10/meubolso/internal/models"
)

// auditService records user-visible mutations. Audit writes are best-effort:
// a failure is logged but never fails the request that triggered it.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log records a mutation in the audit trail.
func (s *auditService) Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{}) {
	var changesJSON string
	if changes != nil {
		if data, err := json.Marshal(changes); err == nil {
			changesJSON = string(data)
		}
	}

	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      changesJSON,
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Get().Errorw("failed to write audit log",
			"user_id", userID,
			"action", action,
			"resource_type", resourceType,
			"error", err,
		)
	}
}
