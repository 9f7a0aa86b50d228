package contract

import (
	"context"

	"compliance-screening-be/internal/entity"
	"compliance-screening-be/internal/repository/specification"
)

// OrganizationRepository is read-only: the screening engine never mutates
// organization records, it only consumes them.
type OrganizationRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Organization, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Organization, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
