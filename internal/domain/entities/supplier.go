package entities

import "strings"

// Source tags where a supplier candidate was found.
type Source string

const (
	SourceRegistry    Source = "registry"
	SourceWeb         Source = "web"
	SourceMarketplace Source = "marketplace"
)

// ParseSource accepts the canonical tags plus the Spanish labels a ranking
// model tends to echo back.
func ParseSource(s string) (Source, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "registry", "bd", "base_datos", "database", "proveedores_bd":
		return SourceRegistry, true
	case "web":
		return SourceWeb, true
	case "marketplace", "ecommerce":
		return SourceMarketplace, true
	default:
		return "", false
	}
}

// SupplierCandidate is a supplier found during discovery. Only the registry
// ones carry a RegistryID; the rest are ephemeral.
type SupplierCandidate struct {
	RegistryID  int64    `json:"registry_id,omitempty"`
	Name        string   `json:"name"`
	Category    Category `json:"category,omitempty"`
	Email       string   `json:"email,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	URL         string   `json:"url,omitempty"`
	City        string   `json:"city,omitempty"`
	Description string   `json:"description,omitempty"`
	Price       string   `json:"price,omitempty"`
	Source      Source   `json:"source"`
	Rating      *float64 `json:"rating,omitempty"`
	Score       *float64 `json:"score,omitempty"`
	Verified    bool     `json:"verified"`
	Notes       string   `json:"notes,omitempty"`
}

// RankedSupplier is one entry of the ranked recommendation list.
type RankedSupplier struct {
	Supplier        SupplierCandidate `json:"supplier"`
	Source          Source            `json:"source"`
	Priority        int               `json:"priority"`
	ContactStrategy string            `json:"contact_strategy"`
	AssignedItems   []string          `json:"assigned_items,omitempty"`
	Score           float64           `json:"score,omitempty"`
	Reason          string            `json:"reason,omitempty"`
}
