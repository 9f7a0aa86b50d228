package contract

import (
	"context"

	"compliance-screening-be/internal/entity"
	"compliance-screening-be/internal/repository/specification"

	"github.com/google/uuid"
)

// LocationRepository is read-only for the engine.
type LocationRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Location, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Location, error)
	FindByOrganizationId(ctx context.Context, orgId uuid.UUID) ([]*entity.Location, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
