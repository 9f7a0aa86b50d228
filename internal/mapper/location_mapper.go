package mapper

import (
	"time"

	"compliance-screening-be/internal/entity"
	"compliance-screening-be/internal/model"
	"compliance-screening-be/pkg/screening/aggregate"
)

type LocationMapper struct{}

func NewLocationMapper() *LocationMapper {
	return &LocationMapper{}
}

func (m *LocationMapper) ToEntity(l *model.Location) *entity.Location {
	if l == nil {
		return nil
	}

	var deletedAt *time.Time
	if l.DeletedAt.Valid {
		t := l.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !l.UpdatedAt.IsZero() {
		t := l.UpdatedAt
		updatedAt = &t
	}

	return &entity.Location{
		Id:             l.Id,
		OrganizationId: l.OrganizationId,
		Name:           l.Name,
		Region:         l.Region,
		EmployeeCount:  l.EmployeeCount,
		Activities:     l.Activities,
		Status:         l.Status,
		IsPrimary:      l.IsPrimary,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      l.DeletedAt.Valid,
	}
}

func (m *LocationMapper) ToEntities(models []*model.Location) []*entity.Location {
	entities := make([]*entity.Location, 0, len(models))
	for _, mo := range models {
		entities = append(entities, m.ToEntity(mo))
	}
	return entities
}

// ToAggregateLocation projects the entity into the aggregator's view.
func (m *LocationMapper) ToAggregateLocation(l *entity.Location) aggregate.Location {
	return aggregate.Location{
		ID:            l.Id,
		Region:        l.Region,
		EmployeeCount: l.EmployeeCount,
		Activities:    l.Activities,
		Status:        l.Status,
		Primary:       l.IsPrimary,
	}
}
