package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Location struct {
	Id             uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationId uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Name           string                      `gorm:"type:varchar(255);not null"`
	Region         string                      `gorm:"type:varchar(100)"`
	EmployeeCount  *int                        `gorm:""`
	Activities     datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Status         string                      `gorm:"type:varchar(20);default:'active';index"`
	IsPrimary      bool                        `gorm:"default:false"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Location) TableName() string {
	return "locations"
}
