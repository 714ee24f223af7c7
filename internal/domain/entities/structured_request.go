package entities

import "github.com/shopspring/decimal"

// LineItem is one product or service extracted from a purchase request.
type LineItem struct {
	Name           string   `json:"name" validate:"required"`
	Quantity       int      `json:"quantity" validate:"gte=1"`
	Category       Category `json:"category" validate:"required"`
	Specifications string   `json:"specifications,omitempty"`
}

// StructuredRequest is the extraction output consumed by discovery and dispatch.
type StructuredRequest struct {
	Items           []LineItem       `json:"items" validate:"required,min=1,dive"`
	Urgency         Urgency          `json:"urgency" validate:"required,urgency"`
	EstimatedBudget *decimal.Decimal `json:"estimated_budget,omitempty" validate:"omitempty,nonnegative"`
	Notes           string           `json:"notes,omitempty"`
	Warnings        []string         `json:"warnings,omitempty"`
}

// ItemNames lists item names in order.
func (s StructuredRequest) ItemNames() []string {
	names := make([]string, 0, len(s.Items))
	for _, it := range s.Items {
		names = append(names, it.Name)
	}
	return names
}
