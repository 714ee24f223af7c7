package request

import "strings"

// DraftRFQRequest asks for a draft addressed to a registry supplier.
type DraftRFQRequest struct {
	SupplierID int64 `json:"supplier_id" binding:"required,gt=0" example:"1"`
}

// SendRFQRequest optionally replaces the draft body before sending.
type SendRFQRequest struct {
	Content string `json:"content"`
}

func (r SendRFQRequest) ResolveContent() string {
	return strings.TrimSpace(r.Content)
}
