package mapper

import (
	"time"

	"compliance-screening-be/internal/entity"
	"compliance-screening-be/internal/model"
	"compliance-screening-be/pkg/screening"
)

type OrganizationMapper struct{}

func NewOrganizationMapper() *OrganizationMapper {
	return &OrganizationMapper{}
}

func (m *OrganizationMapper) ToEntity(o *model.Organization) *entity.Organization {
	if o == nil {
		return nil
	}

	var deletedAt *time.Time
	if o.DeletedAt.Valid {
		t := o.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !o.UpdatedAt.IsZero() {
		t := o.UpdatedAt
		updatedAt = &t
	}

	return &entity.Organization{
		Id:                  o.Id,
		Name:                o.Name,
		ContactEmail:        o.ContactEmail,
		IndustrySector:      o.IndustrySector,
		HeadquartersRegion:  o.HeadquartersRegion,
		EntityType:          o.EntityType,
		EmployeeCount:       o.EmployeeCount,
		AnnualTurnover:      o.AnnualTurnover,
		OperationalRegions:  o.OperationalRegions,
		BusinessActivities:  o.BusinessActivities,
		YearEstablished:     o.YearEstablished,
		HandlesPersonalData: o.HandlesPersonalData,

		ComplianceRequirements: o.ComplianceRequirements,
		Certifications:         o.Certifications,
		RegulatoryHistory:      o.RegulatoryHistory,
		RiskProfile:            o.RiskProfile,
		SpecialCircumstances:   o.SpecialCircumstances,

		CreatedAt: o.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: o.DeletedAt.Valid,
	}
}

func (m *OrganizationMapper) ToEntities(models []*model.Organization) []*entity.Organization {
	entities := make([]*entity.Organization, 0, len(models))
	for _, mo := range models {
		entities = append(entities, m.ToEntity(mo))
	}
	return entities
}

// ToProfile projects the entity into the immutable view the screening
// engine consumes. The engine never sees the gorm model.
func (m *OrganizationMapper) ToProfile(o *entity.Organization) *screening.OrganizationProfile {
	if o == nil {
		return &screening.OrganizationProfile{}
	}
	return &screening.OrganizationProfile{
		IndustrySector:      o.IndustrySector,
		HeadquartersRegion:  o.HeadquartersRegion,
		EntityType:          o.EntityType,
		EmployeeCount:       o.EmployeeCount,
		AnnualTurnover:      o.AnnualTurnover,
		OperationalRegions:  o.OperationalRegions,
		BusinessActivities:  o.BusinessActivities,
		YearEstablished:     o.YearEstablished,
		HandlesPersonalData: o.HandlesPersonalData,

		ComplianceRequirements: o.ComplianceRequirements,
		Certifications:         o.Certifications,
		RegulatoryHistory:      o.RegulatoryHistory,
		RiskProfile:            o.RiskProfile,
		SpecialCircumstances:   o.SpecialCircumstances,
	}
}
