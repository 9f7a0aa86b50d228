package implementation

import (
	"context"
	"errors"

	"compliance-screening-be/internal/entity"
	"compliance-screening-be/internal/mapper"
	"compliance-screening-be/internal/model"
	"compliance-screening-be/internal/repository/contract"
	"compliance-screening-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RegulationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RegulationMapper
}

func NewRegulationRepository(db *gorm.DB) contract.RegulationRepository {
	return &RegulationRepositoryImpl{
		db:     db,
		mapper: mapper.NewRegulationMapper(),
	}
}

func (r *RegulationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// CreateBulk upserts corpus records, so re-running the seeder is safe.
func (r *RegulationRepositoryImpl) CreateBulk(ctx context.Context, regulations []*entity.Regulation) error {
	if len(regulations) == 0 {
		return nil
	}
	models := r.mapper.ToModels(regulations)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		CreateInBatches(models, 100).Error
}

func (r *RegulationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Regulation, error) {
	var m model.Regulation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *RegulationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Regulation, error) {
	var models []*model.Regulation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *RegulationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Regulation{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
