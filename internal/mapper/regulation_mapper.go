package mapper

import (
	"compliance-screening-be/internal/entity"
	"compliance-screening-be/internal/model"
	"compliance-screening-be/pkg/screening"
)

type RegulationMapper struct{}

func NewRegulationMapper() *RegulationMapper {
	return &RegulationMapper{}
}

func (m *RegulationMapper) ToEntity(r *model.Regulation) *entity.Regulation {
	if r == nil {
		return nil
	}
	return &entity.Regulation{
		Id:              r.Id,
		Name:            r.Name,
		Title:           r.Title,
		Classification:  r.Classification,
		GeoExtent:       r.GeoExtent,
		Status:          r.Status,
		Year:            r.Year,
		PrimaryFunction: r.PrimaryFunction,
		Description:     r.Description,
		DutyHolders:     r.DutyHolders,
		CreatedAt:       r.CreatedAt,
	}
}

func (m *RegulationMapper) ToEntities(models []*model.Regulation) []*entity.Regulation {
	entities := make([]*entity.Regulation, 0, len(models))
	for _, mo := range models {
		entities = append(entities, m.ToEntity(mo))
	}
	return entities
}

func (m *RegulationMapper) ToModel(r *entity.Regulation) *model.Regulation {
	return &model.Regulation{
		Id:              r.Id,
		Name:            r.Name,
		Title:           r.Title,
		Classification:  r.Classification,
		GeoExtent:       r.GeoExtent,
		Status:          r.Status,
		Year:            r.Year,
		PrimaryFunction: r.PrimaryFunction,
		Description:     r.Description,
		DutyHolders:     r.DutyHolders,
		CreatedAt:       r.CreatedAt,
	}
}

func (m *RegulationMapper) ToModels(entities []*entity.Regulation) []*model.Regulation {
	models := make([]*model.Regulation, 0, len(entities))
	for _, e := range entities {
		models = append(models, m.ToModel(e))
	}
	return models
}

// ToRecord projects a corpus model into the engine's preview record.
func (m *RegulationMapper) ToRecord(r *model.Regulation) screening.Regulation {
	return screening.Regulation{
		ID:             r.Id,
		Name:           r.Name,
		Title:          r.Title,
		Classification: r.Classification,
		GeoExtent:      r.GeoExtent,
		Status:         r.Status,
		Year:           r.Year,
		Description:    r.Description,
		DutyHolders:    r.DutyHolders,
	}
}

func (m *RegulationMapper) ToRecords(models []*model.Regulation) []screening.Regulation {
	records := make([]screening.Regulation, 0, len(models))
	for _, mo := range models {
		records = append(records, m.ToRecord(mo))
	}
	return records
}
