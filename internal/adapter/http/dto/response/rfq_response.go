package response

import (
	"time"

	"pei_compras/internal/domain/entities"
	"pei_compras/internal/usecase"
)

type RFQResponse struct {
	ID                string     `json:"id"`
	Number            string     `json:"number"`
	PurchaseRequestID string     `json:"purchase_request_id"`
	SupplierID        int64      `json:"supplier_id,omitempty"`
	SupplierName      string     `json:"supplier_name"`
	SupplierEmail     string     `json:"supplier_email,omitempty"`
	SupplierSource    string     `json:"supplier_source"`
	Subject           string     `json:"subject"`
	Content           string     `json:"content"`
	Status            string     `json:"status"`
	Deadline          time.Time  `json:"deadline"`
	SentAt            *time.Time `json:"sent_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func FromRFQ(r entities.RFQ) RFQResponse {
	return RFQResponse{
		ID:                r.ID,
		Number:            r.Number,
		PurchaseRequestID: r.PurchaseRequestID,
		SupplierID:        r.SupplierID,
		SupplierName:      r.SupplierName,
		SupplierEmail:     r.SupplierEmail,
		SupplierSource:    string(r.SupplierSource),
		Subject:           r.Subject,
		Content:           r.Content,
		Status:            string(r.Status),
		Deadline:          r.Deadline,
		SentAt:            r.SentAt,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func FromRFQs(rs []entities.RFQ) []RFQResponse {
	out := make([]RFQResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, FromRFQ(r))
	}
	return out
}

// DraftListResponse lists the drafts still waiting for review.
type DraftListResponse struct {
	RequestID string        `json:"request_id"`
	Total     int           `json:"total"`
	Drafts    []RFQResponse `json:"drafts"`
}

func FromDrafts(requestID string, drafts []entities.RFQ) DraftListResponse {
	return DraftListResponse{
		RequestID: requestID,
		Total:     len(drafts),
		Drafts:    FromRFQs(drafts),
	}
}

// SendResponse reports the outcome of sending one RFQ.
type SendResponse struct {
	RFQID         string     `json:"rfq_id"`
	RFQNumber     string     `json:"rfq_number"`
	SupplierName  string     `json:"supplier_name"`
	SupplierEmail string     `json:"supplier_email,omitempty"`
	Success       bool       `json:"success"`
	Status        string     `json:"status"`
	SentAt        *time.Time `json:"sent_at,omitempty"`
	Error         string     `json:"error,omitempty"`
	Warnings      []string   `json:"warnings,omitempty"`
}

func FromDispatchOutcome(o usecase.DispatchOutcome) SendResponse {
	return SendResponse{
		RFQID:         o.RFQID,
		RFQNumber:     o.RFQNumber,
		SupplierName:  o.SupplierName,
		SupplierEmail: o.SupplierEmail,
		Success:       o.Success,
		Status:        string(o.Status),
		SentAt:        o.SentAt,
		Error:         o.Error,
		Warnings:      o.Warnings,
	}
}
