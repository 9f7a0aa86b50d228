package contract

import (
	"context"

	"compliance-screening-be/internal/entity"
	"compliance-screening-be/internal/repository/specification"
)

// RegulationRepository queries the legal corpus projection. Writes exist
// only for seeding; the engine itself never mutates the corpus.
type RegulationRepository interface {
	CreateBulk(ctx context.Context, regulations []*entity.Regulation) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Regulation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Regulation, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
