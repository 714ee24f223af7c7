package interfaces

import (
	"context"
	"pei_compras/internal/domain/entities"
	"time"
)

// IRFQRepository abstracts DynamoDB persistence for RFQ.
//
// NextSequence must be an atomic increment-and-read of the yearly counter.
// Update methods return a zero RFQ when the id is unknown.

type IRFQRepository interface {
	NextSequence(ctx context.Context, year int) (int, error)
	Create(ctx context.Context, r entities.RFQ) (entities.RFQ, error)
	GetByID(ctx context.Context, id string) (entities.RFQ, error)
	ListByPurchaseRequestID(ctx context.Context, purchaseRequestID string) ([]entities.RFQ, error)
	UpdateContent(ctx context.Context, id, content string) (entities.RFQ, error)
	MarkSent(ctx context.Context, id string, sentAt time.Time) (entities.RFQ, error)
}
