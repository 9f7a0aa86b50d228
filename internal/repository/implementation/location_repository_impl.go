package implementation

import (
	"context"
	"errors"

	"compliance-screening-be/internal/entity"
	"compliance-screening-be/internal/mapper"
	"compliance-screening-be/internal/model"
	"compliance-screening-be/internal/repository/contract"
	"compliance-screening-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LocationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LocationMapper
}

func NewLocationRepository(db *gorm.DB) contract.LocationRepository {
	return &LocationRepositoryImpl{
		db:     db,
		mapper: mapper.NewLocationMapper(),
	}
}

func (r *LocationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *LocationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Location, error) {
	var m model.Location
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *LocationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Location, error) {
	var models []*model.Location
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *LocationRepositoryImpl) FindByOrganizationId(ctx context.Context, orgId uuid.UUID) ([]*entity.Location, error) {
	return r.FindAll(ctx, specification.ByOrganizationId{OrganizationId: orgId})
}

func (r *LocationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Location{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
