package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseRequestStatus represents the lifecycle of a solicitud de compra.
//
// Domain notes:
//   - The pipeline only drives pendiente -> en_proceso -> (rfqs_enviados | cancelada).
//   - cotizaciones_recibidas, aprobada and completada are reached by the quoting
//     and approval flows outside this service.
//   - cancelada is also the failure state; FailureReason and FailedStage say why.

type PurchaseRequestStatus string

const (
	PurchaseRequestStatusPendiente             PurchaseRequestStatus = "pendiente"
	PurchaseRequestStatusEnProceso             PurchaseRequestStatus = "en_proceso"
	PurchaseRequestStatusRFQsEnviados          PurchaseRequestStatus = "rfqs_enviados"
	PurchaseRequestStatusCotizacionesRecibidas PurchaseRequestStatus = "cotizaciones_recibidas"
	PurchaseRequestStatusAprobada              PurchaseRequestStatus = "aprobada"
	PurchaseRequestStatusCompletada            PurchaseRequestStatus = "completada"
	PurchaseRequestStatusCancelada             PurchaseRequestStatus = "cancelada"
)

// ParsePurchaseRequestStatus rejects unknown values instead of coercing them.
func ParsePurchaseRequestStatus(s string) (PurchaseRequestStatus, error) {
	switch st := PurchaseRequestStatus(s); st {
	case PurchaseRequestStatusPendiente,
		PurchaseRequestStatusEnProceso,
		PurchaseRequestStatusRFQsEnviados,
		PurchaseRequestStatusCotizacionesRecibidas,
		PurchaseRequestStatusAprobada,
		PurchaseRequestStatusCompletada,
		PurchaseRequestStatusCancelada:
		return st, nil
	default:
		return "", fmt.Errorf("unknown purchase request status %q", s)
	}
}

// IsTerminal reports whether no further transition is possible.
func (s PurchaseRequestStatus) IsTerminal() bool {
	return s == PurchaseRequestStatusCompletada || s == PurchaseRequestStatusCancelada
}

// CanTransitionTo reports whether s -> next is a legal move.
func (s PurchaseRequestStatus) CanTransitionTo(next PurchaseRequestStatus) bool {
	if next == PurchaseRequestStatusCancelada {
		return !s.IsTerminal()
	}
	switch s {
	case PurchaseRequestStatusPendiente:
		return next == PurchaseRequestStatusEnProceso
	case PurchaseRequestStatusEnProceso:
		return next == PurchaseRequestStatusRFQsEnviados
	case PurchaseRequestStatusRFQsEnviados:
		return next == PurchaseRequestStatusCotizacionesRecibidas
	case PurchaseRequestStatusCotizacionesRecibidas:
		return next == PurchaseRequestStatusAprobada
	case PurchaseRequestStatusAprobada:
		return next == PurchaseRequestStatusCompletada
	case PurchaseRequestStatusCompletada, PurchaseRequestStatusCancelada:
		return false
	default:
		return false
	}
}

// PurchaseRequest is the solicitud de compra persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//   - items are embedded; they are never stored on their own.
type PurchaseRequest struct {
	ID               string                `json:"id"`
	RequesterName    string                `json:"requester_name"`
	RequesterContact string                `json:"requester_contact"`
	Description      string                `json:"description"`
	Category         Category              `json:"category"`
	Quantity         *int                  `json:"quantity,omitempty"`
	Budget           *decimal.Decimal      `json:"budget,omitempty"`
	Deadline         *time.Time            `json:"deadline,omitempty"`
	Urgency          Urgency               `json:"urgency"`
	Priority         int                   `json:"priority"`
	Status           PurchaseRequestStatus `json:"status"`
	FailureReason    string                `json:"failure_reason,omitempty"`
	FailedStage      string                `json:"failed_stage,omitempty"`
	Origin           Origin                `json:"origin"`
	Items            []LineItem            `json:"items"`
	InternalNotes    string                `json:"internal_notes,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}
