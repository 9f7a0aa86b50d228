package unitofwork

import (
	"context"

	"compliance-screening-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	OrganizationRepository() contract.OrganizationRepository
	LocationRepository() contract.LocationRepository
	RegulationRepository() contract.RegulationRepository
	ScreeningSnapshotRepository() contract.ScreeningSnapshotRepository
}
