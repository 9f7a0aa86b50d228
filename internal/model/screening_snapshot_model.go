package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ScreeningSnapshot is the audit record of one completed screening run.
// Payload holds the full serialized result including the profile snapshot.
type ScreeningSnapshot struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationId uuid.UUID      `gorm:"type:uuid;not null;index:idx_snapshots_org_created,priority:1"`
	Tier           string         `gorm:"type:varchar(20);not null"`
	Method         string         `gorm:"type:varchar(20);not null"`
	Confidence     string         `gorm:"type:varchar(10);not null"`
	LawCount       int64          `gorm:""`
	Payload        datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt      time.Time      `gorm:"autoCreateTime;index:idx_snapshots_org_created,priority:2"`
}

func (ScreeningSnapshot) TableName() string {
	return "screening_snapshots"
}
