package interfaces

import (
	"context"
	"pei_compras/internal/domain/entities"
)

// IPurchaseRequestRepository abstracts DynamoDB persistence for PurchaseRequest.
//
// The pipeline must be able to:
//   - create a request once extraction succeeds
//   - move it between states only from the state it is known to be in
//   - read it back for the status view

type IPurchaseRequestRepository interface {
	Create(ctx context.Context, pr entities.PurchaseRequest) (entities.PurchaseRequest, error)
	GetByID(ctx context.Context, id string) (entities.PurchaseRequest, error)
	TransitionStatus(ctx context.Context, id string, from, to entities.PurchaseRequestStatus, failureReason, failedStage string) (entities.PurchaseRequest, error)
}
