package unitofwork

import "context"

// RepositoryFactory hands out a request-scoped UnitOfWork. Services create
// one per operation and release it when the operation ends.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
