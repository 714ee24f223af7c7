package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"pei_compras/internal/domain/entities"
	"pei_compras/internal/infrastructure/metrics"
	"pei_compras/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	extractionTemperature = 0.3

	extractionSystemPrompt = `Eres el asistente del área de compras de PEI. Tu tarea es leer una solicitud de compra escrita en lenguaje natural y convertirla en datos estructurados.

Responde SOLO con un objeto JSON con esta forma:
{
  "productos": [
    {"nombre": "string", "cantidad": 1, "categoria": "tecnologia|mobiliario|insumos|servicios|equipamiento|otros", "especificaciones": "string"}
  ],
  "urgencia": "normal|alta|urgente",
  "presupuesto_estimado": null,
  "notas": "string"
}

Reglas:
- Un elemento en "productos" por cada producto o servicio distinto.
- Si no se indica la cantidad usa 1.
- "urgencia" es "urgente" si piden algo para hoy o mañana, "alta" si es para esta semana, "normal" en otro caso.
- "presupuesto_estimado" es un número sin símbolos ni separadores de miles, o null si no se menciona.
- No inventes productos que no estén en el texto.`
)

// IExtractionUseCase turns a free-text purchase request into a StructuredRequest.

type IExtractionUseCase interface {
	Extract(ctx context.Context, text string, origin entities.Origin) (entities.StructuredRequest, error)
	Validate(req entities.StructuredRequest) (bool, string)
}

type ExtractionUseCase struct {
	llm      interfaces.ICompletionClient
	timeouts Timeouts
	log      *zap.Logger
}

var _ IExtractionUseCase = (*ExtractionUseCase)(nil)

func NewExtractionUseCase(llm interfaces.ICompletionClient, timeouts Timeouts, logger *zap.Logger) *ExtractionUseCase {
	return &ExtractionUseCase{
		llm:      llm,
		timeouts: timeouts.withDefaults(),
		log:      nopIfNil(logger).Named("extraction"),
	}
}

type extractedItem struct {
	Name           string      `json:"nombre"`
	Quantity       json.Number `json:"cantidad"`
	Category       string      `json:"categoria"`
	Specifications string      `json:"especificaciones"`
}

type extractionPayload struct {
	Items   []extractedItem `json:"productos"`
	Urgency string          `json:"urgencia"`
	Budget  json.Number     `json:"presupuesto_estimado"`
	Notes   string          `json:"notas"`
}

func (u *ExtractionUseCase) Extract(ctx context.Context, text string, origin entities.Origin) (entities.StructuredRequest, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return entities.StructuredRequest{}, ErrEmptyInput
	}
	u.log.Info("extract start", zap.String("origin", string(origin)), zap.Int("text_len", len(text)))

	start := time.Now()
	raw, err := callWithTimeout(ctx, u.timeouts.LLM, func(cctx context.Context) (string, error) {
		return u.llm.Complete(cctx, interfaces.CompletionRequest{
			SystemPrompt: extractionSystemPrompt,
			UserPrompt:   fmt.Sprintf("Origen de la solicitud: %s\n\nSolicitud:\n%s", origin.Label(), text),
			Tier:         interfaces.ModelTierMini,
			Temperature:  extractionTemperature,
			JSONMode:     true,
		})
	})
	metrics.ExternalCallDuration.WithLabelValues("llm_extract", metrics.OutcomeOf(err == nil)).Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, interfaces.ErrMalformedCompletion) {
			u.log.Warn("extract malformed completion", zap.Error(err))
			return entities.StructuredRequest{}, fmt.Errorf("%w: %v", ErrExtractionParse, err)
		}
		u.log.Error("extract completion failed", zap.Error(err))
		return entities.StructuredRequest{}, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	res, err := parseExtraction(raw)
	if err != nil {
		u.log.Warn("extract parse failed", zap.Error(err))
		return entities.StructuredRequest{}, err
	}
	for _, w := range res.Warnings {
		u.log.Warn("extract coerced value", zap.String("warning", w))
	}
	u.log.Info("extract success", zap.Int("items", len(res.Items)), zap.String("urgency", string(res.Urgency)))
	return res, nil
}

func parseExtraction(raw string) (entities.StructuredRequest, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	var p extractionPayload
	if err := dec.Decode(&p); err != nil {
		return entities.StructuredRequest{}, fmt.Errorf("%w: %v", ErrExtractionParse, err)
	}
	if len(p.Items) == 0 {
		return entities.StructuredRequest{}, fmt.Errorf("%w: no line items", ErrExtractionParse)
	}

	var out entities.StructuredRequest
	for i, it := range p.Items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			return entities.StructuredRequest{}, fmt.Errorf("%w: item #%d has no name", ErrExtractionParse, i+1)
		}
		qty, err := parseQuantity(it.Quantity)
		if err != nil {
			return entities.StructuredRequest{}, fmt.Errorf("%w: item #%d: %v", ErrExtractionParse, i+1, err)
		}
		cat, ok := entities.ParseCategory(it.Category)
		if !ok {
			out.Warnings = append(out.Warnings, fmt.Sprintf("categoría desconocida %q en %q, se usa %q", it.Category, name, cat))
		}
		out.Items = append(out.Items, entities.LineItem{
			Name:           name,
			Quantity:       qty,
			Category:       cat,
			Specifications: strings.TrimSpace(it.Specifications),
		})
	}

	urgency, ok := entities.ParseUrgency(p.Urgency)
	if !ok {
		out.Warnings = append(out.Warnings, fmt.Sprintf("urgencia desconocida %q, se usa %q", p.Urgency, urgency))
	}
	out.Urgency = urgency

	if p.Budget != "" {
		b, err := decimal.NewFromString(p.Budget.String())
		if err != nil {
			return entities.StructuredRequest{}, fmt.Errorf("%w: budget: %v", ErrExtractionParse, err)
		}
		if b.IsNegative() {
			return entities.StructuredRequest{}, fmt.Errorf("%w: negative budget", ErrExtractionParse)
		}
		out.EstimatedBudget = &b
	}
	out.Notes = strings.TrimSpace(p.Notes)
	return out, nil
}

// parseQuantity defaults a missing quantity to 1 and rejects anything below 1.
func parseQuantity(n json.Number) (int, error) {
	if n == "" {
		return 1, nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, fmt.Errorf("quantity %q is not a number", n.String())
	}
	if f != math.Trunc(f) || f < 1 || f > math.MaxInt32 {
		return 0, fmt.Errorf("quantity %s is out of range", n.String())
	}
	return int(f), nil
}

func (u *ExtractionUseCase) Validate(req entities.StructuredRequest) (bool, string) {
	return ValidateStructuredRequest(req)
}
