package implementation

import (
	"context"

	"compliance-screening-be/internal/mapper"
	"compliance-screening-be/internal/model"
	"compliance-screening-be/internal/repository/specification"
	"compliance-screening-be/pkg/screening"

	"gorm.io/gorm"
)

// GormRegulationStore adapts the corpus table to the screening engine's
// store port. Only the coarse tier parameters are pushed down to SQL;
// the finer refinements are applied in-memory by the matcher over an
// oversampled candidate set.
type GormRegulationStore struct {
	db     *gorm.DB
	mapper *mapper.RegulationMapper
}

func NewGormRegulationStore(db *gorm.DB) screening.RegulationStore {
	return &GormRegulationStore{
		db:     db,
		mapper: mapper.NewRegulationMapper(),
	}
}

func (s *GormRegulationStore) specsFor(params screening.QueryParams) []specification.Specification {
	specs := []specification.Specification{specification.DutyCreatingOnly{}}
	if params.Classification != "" {
		specs = append(specs, specification.ByClassification{Classification: params.Classification})
	}
	if params.GeoExtent != "" {
		specs = append(specs, specification.ByGeoExtent{Extent: params.GeoExtent})
	}
	if params.Status != "" {
		specs = append(specs, specification.ByStatus{Status: params.Status})
	}
	return specs
}

func (s *GormRegulationStore) apply(db *gorm.DB, params screening.QueryParams) *gorm.DB {
	for _, spec := range s.specsFor(params) {
		db = spec.Apply(db)
	}
	return db
}

func (s *GormRegulationStore) Count(ctx context.Context, params screening.QueryParams) (int64, error) {
	var count int64
	query := s.apply(s.db.WithContext(ctx).Model(&model.Regulation{}), params)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *GormRegulationStore) Preview(ctx context.Context, params screening.QueryParams, limit int) ([]screening.Regulation, error) {
	var models []*model.Regulation
	query := s.apply(s.db.WithContext(ctx), params).
		Order("year DESC, id ASC").
		Limit(limit)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return s.mapper.ToRecords(models), nil
}
