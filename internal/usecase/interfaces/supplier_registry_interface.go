package interfaces

import (
	"context"
	"pei_compras/internal/domain/entities"
)

// ISupplierRegistry abstracts the local supplier registry.
//
// GetByID returns a zero SupplierCandidate when the id is unknown.

type ISupplierRegistry interface {
	ListAll(ctx context.Context) ([]entities.SupplierCandidate, error)
	GetByID(ctx context.Context, id int64) (entities.SupplierCandidate, error)
	Save(ctx context.Context, s entities.SupplierCandidate) (entities.SupplierCandidate, error)
}
