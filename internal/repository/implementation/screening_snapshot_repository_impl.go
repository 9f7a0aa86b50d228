package implementation

import (
	"context"
	"errors"

	"compliance-screening-be/internal/model"
	"compliance-screening-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScreeningSnapshotRepositoryImpl struct {
	db *gorm.DB
}

func NewScreeningSnapshotRepository(db *gorm.DB) contract.ScreeningSnapshotRepository {
	return &ScreeningSnapshotRepositoryImpl{db: db}
}

func (r *ScreeningSnapshotRepositoryImpl) Create(ctx context.Context, snapshot *model.ScreeningSnapshot) error {
	return r.db.WithContext(ctx).Create(snapshot).Error
}

func (r *ScreeningSnapshotRepositoryImpl) FindLatestByOrganizationId(ctx context.Context, orgId uuid.UUID) (*model.ScreeningSnapshot, error) {
	var m model.ScreeningSnapshot
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgId).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *ScreeningSnapshotRepositoryImpl) FindByOrganizationId(ctx context.Context, orgId uuid.UUID, limit, offset int) ([]*model.ScreeningSnapshot, error) {
	var models []*model.ScreeningSnapshot
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgId).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return models, nil
}
