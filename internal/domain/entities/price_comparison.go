package entities

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PurchaseAction is the buying strategy recommended by a price comparison.
type PurchaseAction string

const (
	// PurchaseActionQuote asks suppliers for a formal quote.
	PurchaseActionQuote PurchaseAction = "cotizar"
	// PurchaseActionBuyDirect buys from an online listing right away.
	PurchaseActionBuyDirect PurchaseAction = "comprar_directo"
	// PurchaseActionBoth quotes and keeps the direct purchase as a fallback.
	PurchaseActionBoth PurchaseAction = "ambas"
)

func ParsePurchaseAction(s string) (PurchaseAction, bool) {
	switch a := PurchaseAction(strings.ToLower(strings.TrimSpace(s))); a {
	case PurchaseActionQuote, PurchaseActionBuyDirect, PurchaseActionBoth:
		return a, true
	default:
		return "", false
	}
}

// PriceRecommendation is the headline decision of a comparison.
type PriceRecommendation struct {
	Action            PurchaseAction   `json:"action"`
	RecommendedSource Source           `json:"recommended_source,omitempty"`
	Justification     string           `json:"justification"`
	EstimatedSavings  *decimal.Decimal `json:"estimated_savings,omitempty"`
	EstimatedTime     string           `json:"estimated_time,omitempty"`
}

// SourcePriceEstimate summarises one supplier source.
type SourcePriceEstimate struct {
	Source         Source           `json:"source"`
	EstimatedPrice *decimal.Decimal `json:"estimated_price,omitempty"`
	Advantages     []string         `json:"advantages"`
	Disadvantages  []string         `json:"disadvantages"`
}

// PriceComparison weighs the registry, web and marketplace options for a set
// of line items. It is advisory and never changes a request's status.
type PriceComparison struct {
	Recommendation PriceRecommendation   `json:"recommendation"`
	Sources        []SourcePriceEstimate `json:"sources"`
	Alerts         []string              `json:"alerts"`
	NextStep       string                `json:"next_step,omitempty"`
	Warnings       []string              `json:"warnings,omitempty"`
}
