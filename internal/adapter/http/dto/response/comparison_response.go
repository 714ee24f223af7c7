package response

import (
	"pei_compras/internal/usecase"

	"github.com/shopspring/decimal"
)

type SourcePriceResponse struct {
	Source         string   `json:"source"`
	EstimatedPrice *string  `json:"estimated_price,omitempty"`
	Advantages     []string `json:"advantages"`
	Disadvantages  []string `json:"disadvantages"`
}

type RecommendationResponse struct {
	Action            string  `json:"action"`
	RecommendedSource string  `json:"recommended_source,omitempty"`
	Justification     string  `json:"justification"`
	EstimatedSavings  *string `json:"estimated_savings,omitempty"`
	EstimatedTime     string  `json:"estimated_time,omitempty"`
}

// PriceComparisonResponse is the recommendation across the three supplier
// sources for one purchase request.
type PriceComparisonResponse struct {
	RequestID      string                     `json:"request_id"`
	Recommendation RecommendationResponse     `json:"recommendation"`
	Sources        []SourcePriceResponse      `json:"sources"`
	Alerts         []string                   `json:"alerts"`
	NextStep       string                     `json:"next_step,omitempty"`
	Warnings       []string                   `json:"warnings,omitempty"`
	Summary        usecase.AggregationSummary `json:"summary"`
}

func FromPriceComparison(r usecase.PriceComparisonReport) PriceComparisonResponse {
	c := r.Comparison
	sources := make([]SourcePriceResponse, 0, len(c.Sources))
	for _, s := range c.Sources {
		sources = append(sources, SourcePriceResponse{
			Source:         string(s.Source),
			EstimatedPrice: decimalString(s.EstimatedPrice),
			Advantages:     s.Advantages,
			Disadvantages:  s.Disadvantages,
		})
	}
	return PriceComparisonResponse{
		RequestID: r.RequestID,
		Recommendation: RecommendationResponse{
			Action:            string(c.Recommendation.Action),
			RecommendedSource: string(c.Recommendation.RecommendedSource),
			Justification:     c.Recommendation.Justification,
			EstimatedSavings:  decimalString(c.Recommendation.EstimatedSavings),
			EstimatedTime:     c.Recommendation.EstimatedTime,
		},
		Sources:  sources,
		Alerts:   c.Alerts,
		NextStep: c.NextStep,
		Warnings: c.Warnings,
		Summary:  r.Summary,
	}
}

func decimalString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}
