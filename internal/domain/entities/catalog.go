package entities

import (
	"strings"
	"time"
)

// Category is the closed set of purchase categories handled by the area de compras.
type Category string

const (
	CategoryTecnologia   Category = "tecnologia"
	CategoryMobiliario   Category = "mobiliario"
	CategoryInsumos      Category = "insumos"
	CategoryServicios    Category = "servicios"
	CategoryEquipamiento Category = "equipamiento"
	CategoryOtros        Category = "otros"
)

var categories = []Category{
	CategoryTecnologia,
	CategoryMobiliario,
	CategoryInsumos,
	CategoryServicios,
	CategoryEquipamiento,
	CategoryOtros,
}

// Categories returns the accepted category values in a stable order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory normalizes s. Unknown values map to CategoryOtros and ok is false.
func ParseCategory(s string) (c Category, ok bool) {
	v := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range categories {
		if v == known {
			return known, true
		}
	}
	return CategoryOtros, false
}

// Urgency drives priority and the RFQ response window.
type Urgency string

const (
	UrgencyNormal  Urgency = "normal"
	UrgencyAlta    Urgency = "alta"
	UrgencyUrgente Urgency = "urgente"
)

// ParseUrgency normalizes s. Unknown values map to UrgencyNormal and ok is false.
func ParseUrgency(s string) (u Urgency, ok bool) {
	switch Urgency(strings.ToLower(strings.TrimSpace(s))) {
	case UrgencyNormal:
		return UrgencyNormal, true
	case UrgencyAlta:
		return UrgencyAlta, true
	case UrgencyUrgente:
		return UrgencyUrgente, true
	default:
		return UrgencyNormal, false
	}
}

func (u Urgency) IsValid() bool {
	switch u {
	case UrgencyNormal, UrgencyAlta, UrgencyUrgente:
		return true
	}
	return false
}

// Priority maps urgency 1:1 to the numeric request priority.
func (u Urgency) Priority() int {
	switch u {
	case UrgencyUrgente:
		return 5
	case UrgencyAlta:
		return 4
	default:
		return 3
	}
}

// ResponseWindow is how long a supplier has to answer an RFQ.
func (u Urgency) ResponseWindow() time.Duration {
	day := 24 * time.Hour
	switch u {
	case UrgencyUrgente:
		return day
	case UrgencyAlta:
		return 3 * day
	default:
		return 5 * day
	}
}

// Origin is the channel a purchase request arrived through.
type Origin string

const (
	OriginForm      Origin = "form"
	OriginMessaging Origin = "messaging"
	OriginEmail     Origin = "email"
	OriginAPI       Origin = "api"
)

// ParseOrigin accepts the canonical values plus the channel names used by the
// intake tools (formulario, whatsapp).
func ParseOrigin(s string) (Origin, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "form", "formulario", "web":
		return OriginForm, true
	case "messaging", "whatsapp":
		return OriginMessaging, true
	case "email", "correo":
		return OriginEmail, true
	case "api":
		return OriginAPI, true
	default:
		return "", false
	}
}

// Label is the Spanish channel name used in prompts and internal notes.
func (o Origin) Label() string {
	switch o {
	case OriginForm:
		return "formulario"
	case OriginMessaging:
		return "whatsapp"
	case OriginEmail:
		return "email"
	default:
		return string(o)
	}
}
