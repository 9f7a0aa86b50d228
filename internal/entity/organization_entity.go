package entity

import (
	"time"

	"github.com/google/uuid"
)

type Organization struct {
	Id                 uuid.UUID
	Name               string
	ContactEmail       string
	IndustrySector     string
	HeadquartersRegion string
	EntityType         string
	EmployeeCount      *int
	AnnualTurnover     *float64
	OperationalRegions []string
	BusinessActivities []string
	YearEstablished    *int
	HandlesPersonalData *bool

	ComplianceRequirements []string
	Certifications         []string
	RegulatoryHistory      string
	RiskProfile            string
	SpecialCircumstances   string

	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
