package interfaces

import "context"

type SearchQuery struct {
	Query      string
	Locale     string
	MaxResults int
}

// SearchResult is one hit returned by a web or marketplace search.
type SearchResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Price   string `json:"price,omitempty"`
	Seller  string `json:"seller,omitempty"`
}

// ISupplierSearch abstracts an external search provider.
//
// Available must be checked before Search; an unconfigured provider reports false.

type ISupplierSearch interface {
	Available() bool
	Search(ctx context.Context, q SearchQuery) ([]SearchResult, error)
}
