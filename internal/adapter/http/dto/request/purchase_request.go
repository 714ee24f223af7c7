package request

import (
	"errors"
	"strings"

	"pei_compras/internal/domain/entities"
)

var (
	ErrInvalidOrigin = errors.New("invalid origin")
)

// ProcessRequest is the body of POST /v1/requests/process-complete.
type ProcessRequest struct {
	Text   string `json:"text" example:"Necesito 5 laptops HP con 16GB RAM, es urgente"`
	Origin string `json:"origin" example:"api"`
}

// ResolveText returns the trimmed request text. Blank text is left to the
// pipeline, which rejects it at the extract stage.
func (r ProcessRequest) ResolveText() string {
	return strings.TrimSpace(r.Text)
}

// ResolveOrigin maps the origin channel, defaulting to api when omitted.
func (r ProcessRequest) ResolveOrigin() (entities.Origin, error) {
	if strings.TrimSpace(r.Origin) == "" {
		return entities.OriginAPI, nil
	}
	o, ok := entities.ParseOrigin(r.Origin)
	if !ok {
		return "", ErrInvalidOrigin
	}
	return o, nil
}
