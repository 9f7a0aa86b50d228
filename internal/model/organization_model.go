package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Organization struct {
	Id                  uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name                string                      `gorm:"type:varchar(255);not null"`
	ContactEmail        string                      `gorm:"type:varchar(255)"`
	IndustrySector      string                      `gorm:"type:varchar(100);index"`
	HeadquartersRegion  string                      `gorm:"type:varchar(100)"`
	EntityType          string                      `gorm:"type:varchar(50)"`
	EmployeeCount       *int                        `gorm:""`
	AnnualTurnover      *float64                    `gorm:""`
	OperationalRegions  datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	BusinessActivities  datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	YearEstablished     *int                        `gorm:""`
	HandlesPersonalData *bool                       `gorm:""`

	ComplianceRequirements datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Certifications         datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	RegulatoryHistory      string                      `gorm:"type:text"`
	RiskProfile            string                      `gorm:"type:varchar(20)"`
	SpecialCircumstances   string                      `gorm:"type:text"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Organization) TableName() string {
	return "organizations"
}
