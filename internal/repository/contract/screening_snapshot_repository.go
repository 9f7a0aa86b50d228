package contract

import (
	"context"

	"compliance-screening-be/internal/model"

	"github.com/google/uuid"
)

type ScreeningSnapshotRepository interface {
	Create(ctx context.Context, snapshot *model.ScreeningSnapshot) error
	FindLatestByOrganizationId(ctx context.Context, orgId uuid.UUID) (*model.ScreeningSnapshot, error)
	FindByOrganizationId(ctx context.Context, orgId uuid.UUID, limit, offset int) ([]*model.ScreeningSnapshot, error)
}
