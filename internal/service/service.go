package service

import (
	"github.com/agriempower/backend/internal/domain"
)

// AuditRepository is re-exported from domain for convenience
type AuditRepository = domain.AuditRepository
