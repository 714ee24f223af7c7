package entities

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RFQStatus represents the lifecycle of a solicitud de cotización.

type RFQStatus string

const (
	RFQStatusBorrador   RFQStatus = "borrador"
	RFQStatusEnviado    RFQStatus = "enviado"
	RFQStatusRespondido RFQStatus = "respondido"
	RFQStatusIgnorado   RFQStatus = "ignorado"
	RFQStatusExpirado   RFQStatus = "expirado"
)

// ParseRFQStatus rejects unknown values instead of coercing them.
func ParseRFQStatus(s string) (RFQStatus, error) {
	switch st := RFQStatus(s); st {
	case RFQStatusBorrador, RFQStatusEnviado, RFQStatusRespondido, RFQStatusIgnorado, RFQStatusExpirado:
		return st, nil
	default:
		return "", fmt.Errorf("unknown rfq status %q", s)
	}
}

func (s RFQStatus) IsTerminal() bool {
	switch s {
	case RFQStatusRespondido, RFQStatusIgnorado, RFQStatusExpirado:
		return true
	}
	return false
}

// CanTransitionTo reports whether s -> next is a legal move.
func (s RFQStatus) CanTransitionTo(next RFQStatus) bool {
	switch s {
	case RFQStatusBorrador:
		return next == RFQStatusEnviado
	case RFQStatusEnviado:
		return next == RFQStatusRespondido || next == RFQStatusIgnorado || next == RFQStatusExpirado
	case RFQStatusRespondido, RFQStatusIgnorado, RFQStatusExpirado:
		return false
	default:
		return false
	}
}

// CountsAsSent is true for RFQs that reached the supplier.
func (s RFQStatus) CountsAsSent() bool {
	return s == RFQStatusEnviado || s == RFQStatusRespondido
}

// RFQ is a quote request addressed to one supplier.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (purchase_request_id-index): purchase_request_id
//
// Number is assigned once at creation from the yearly counter and never reused.
type RFQ struct {
	ID                string     `json:"id"`
	PurchaseRequestID string     `json:"purchase_request_id"`
	SupplierID        int64      `json:"supplier_id,omitempty"`
	SupplierName      string     `json:"supplier_name"`
	SupplierEmail     string     `json:"supplier_email"`
	SupplierSource    Source     `json:"supplier_source"`
	Number            string     `json:"number"`
	Subject           string     `json:"subject"`
	Content           string     `json:"content"`
	Status            RFQStatus  `json:"status"`
	Deadline          time.Time  `json:"deadline"`
	SentAt            *time.Time `json:"sent_at,omitempty"`
	RespondedAt       *time.Time `json:"responded_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// FormatRFQNumber renders RFQ-<year>-<seq> with a four digit zero padded sequence.
func FormatRFQNumber(year, seq int) string {
	return fmt.Sprintf("RFQ-%04d-%04d", year, seq)
}

// ParseRFQNumber splits an RFQ-YYYY-NNNN number into its year and sequence.
func ParseRFQNumber(number string) (year, seq int, ok bool) {
	parts := strings.Split(number, "-")
	if len(parts) != 3 || parts[0] != "RFQ" {
		return 0, 0, false
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	seq, err = strconv.Atoi(parts[2])
	if err != nil || seq <= 0 {
		return 0, 0, false
	}
	return year, seq, true
}

// RFQSubject is the email subject used for an RFQ number.
func RFQSubject(number string) string {
	return "Solicitud de Cotización - " + number
}

// DeadlineFor computes the supplier response deadline for a draft created at now.
func DeadlineFor(now time.Time, u Urgency) time.Time {
	return now.Add(u.ResponseWindow())
}
