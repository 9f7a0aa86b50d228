package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByOrganizationId filters by owning organization.
type ByOrganizationId struct {
	OrganizationId uuid.UUID
}

func (s ByOrganizationId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("organization_id = ?", s.OrganizationId)
}

// ActiveOnly keeps operational locations only.
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", "active")
}
