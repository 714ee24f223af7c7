package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"pei_compras/internal/domain/entities"
	"pei_compras/internal/infrastructure/metrics"
	"pei_compras/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	comparisonTemperature = 0.3

	comparisonSystemPrompt = `Eres un experto en análisis de precios y estrategias de compra del área de compras de PEI.

Compara las opciones de la base de datos de proveedores ("proveedores_bd"), de la búsqueda web ("web") y de las tiendas en línea ("ecommerce") y recomienda la mejor decisión de compra.

Considera precio unitario y total, descuentos por volumen, envío e impuestos; tiempos de cotización y de entrega frente a la urgencia; confiabilidad del proveedor (rating, verificación, garantías, devoluciones); y condiciones de pago y soporte post-venta.

Decide si conviene solicitar cotización formal, comprar directo o ambas, si vale la pena esperar cotizaciones habiendo una opción inmediata y si el ahorro justifica el riesgo de un proveedor nuevo.

Responde SOLO con un objeto JSON con esta forma:
{
  "recomendacion_principal": {
    "accion": "cotizar|comprar_directo|ambas",
    "fuente_recomendada": "proveedores_bd|web|ecommerce",
    "justificacion": "string",
    "ahorro_estimado": 0.0,
    "tiempo_estimado": "string"
  },
  "comparativa_precios": [
    {
      "fuente": "proveedores_bd|web|ecommerce",
      "precio_estimado": 0.0,
      "ventajas": ["string"],
      "desventajas": ["string"]
    }
  ],
  "alertas": ["string"],
  "siguiente_paso": "string"
}`
)

// PriceComparisonReport is a comparison for a stored purchase request together
// with the supplier counts it was based on.
type PriceComparisonReport struct {
	RequestID  string                   `json:"request_id"`
	Comparison entities.PriceComparison `json:"comparison"`
	Summary    AggregationSummary       `json:"summary"`
}

// IPriceComparisonUseCase recommends whether to quote or buy directly.

type IPriceComparisonUseCase interface {
	Compare(ctx context.Context, items []entities.LineItem, sources AggregationResult, urgency entities.Urgency, budget *decimal.Decimal) (entities.PriceComparison, error)
	CompareForRequest(ctx context.Context, requestID string) (PriceComparisonReport, error)
}

type PriceComparisonUseCase struct {
	llm       interfaces.ICompletionClient
	requests  interfaces.IPurchaseRequestRepository
	discovery IDiscoveryUseCase
	timeouts  Timeouts
	log       *zap.Logger
}

var _ IPriceComparisonUseCase = (*PriceComparisonUseCase)(nil)

func NewPriceComparisonUseCase(
	llm interfaces.ICompletionClient,
	requests interfaces.IPurchaseRequestRepository,
	discovery IDiscoveryUseCase,
	timeouts Timeouts,
	logger *zap.Logger,
) *PriceComparisonUseCase {
	return &PriceComparisonUseCase{
		llm:       llm,
		requests:  requests,
		discovery: discovery,
		timeouts:  timeouts.withDefaults(),
		log:       nopIfNil(logger).Named("comparison"),
	}
}

// Compare asks the full model to weigh the three supplier sources. Transport
// failures wrap ErrComparison and unusable output wraps ErrComparisonParse.
func (u *PriceComparisonUseCase) Compare(
	ctx context.Context,
	items []entities.LineItem,
	sources AggregationResult,
	urgency entities.Urgency,
	budget *decimal.Decimal,
) (entities.PriceComparison, error) {
	if len(items) == 0 {
		return entities.PriceComparison{}, fmt.Errorf("%w: no line items", ErrValidation)
	}
	if !urgency.IsValid() {
		urgency = entities.UrgencyNormal
	}
	prompt, err := buildComparisonPrompt(items, sources, urgency, budget)
	if err != nil {
		return entities.PriceComparison{}, fmt.Errorf("%w: %v", ErrComparison, err)
	}

	start := time.Now()
	raw, err := callWithTimeout(ctx, u.timeouts.LLM, func(cctx context.Context) (string, error) {
		return u.llm.Complete(cctx, interfaces.CompletionRequest{
			SystemPrompt: comparisonSystemPrompt,
			UserPrompt:   prompt,
			Tier:         interfaces.ModelTierFull,
			Temperature:  comparisonTemperature,
			JSONMode:     true,
		})
	})
	metrics.ExternalCallDuration.WithLabelValues("llm_compare", metrics.OutcomeOf(err == nil)).Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, interfaces.ErrMalformedCompletion) {
			u.log.Warn("compare malformed completion", zap.Error(err))
			return entities.PriceComparison{}, fmt.Errorf("%w: %v", ErrComparisonParse, err)
		}
		u.log.Error("compare completion failed", zap.Error(err))
		return entities.PriceComparison{}, fmt.Errorf("%w: %v", ErrComparison, err)
	}

	cmp, err := parseComparison(raw)
	if err != nil {
		u.log.Warn("compare parse failed", zap.Error(err))
		return entities.PriceComparison{}, err
	}
	u.log.Info("compare success",
		zap.String("action", string(cmp.Recommendation.Action)),
		zap.String("source", string(cmp.Recommendation.RecommendedSource)),
		zap.Int("warnings", len(cmp.Warnings)),
	)
	return cmp, nil
}

// CompareForRequest runs discovery again for a stored request and compares the
// raw supplier lists. A failed ranking does not matter here, only the lists do.
func (u *PriceComparisonUseCase) CompareForRequest(ctx context.Context, requestID string) (PriceComparisonReport, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return PriceComparisonReport{}, ErrInvalidRequestID
	}
	pr, err := u.requests.GetByID(ctx, requestID)
	if err != nil {
		return PriceComparisonReport{}, err
	}
	if pr.ID == "" {
		return PriceComparisonReport{}, ErrNotFound
	}
	log := u.log.With(zap.String("request_id", pr.ID))

	sources, err := u.discovery.Discover(ctx, pr.Items, true)
	found := len(sources.Registry) + len(sources.Web) + len(sources.Marketplace)
	if found == 0 {
		if err == nil {
			err = fmt.Errorf("%w: no suppliers found", ErrDiscovery)
		}
		log.Warn("compare without suppliers", zap.Error(err))
		return PriceComparisonReport{}, err
	}
	if err != nil {
		log.Warn("compare continues with unranked suppliers", zap.Error(err))
	}

	cmp, err := u.Compare(ctx, pr.Items, sources, pr.Urgency, pr.Budget)
	if err != nil {
		return PriceComparisonReport{}, err
	}
	return PriceComparisonReport{RequestID: pr.ID, Comparison: cmp, Summary: sources.Summary}, nil
}

func buildComparisonPrompt(items []entities.LineItem, res AggregationResult, urgency entities.Urgency, budget *decimal.Decimal) (string, error) {
	registry := make([]promptCandidate, 0, len(res.Registry))
	for _, c := range res.Registry {
		registry = append(registry, promptCandidate{
			ID: c.RegistryID, Name: c.Name, Category: string(c.Category),
			Rating: c.Rating, Verified: c.Verified, Notes: c.Notes,
		})
	}
	web := make([]promptCandidate, 0, len(res.Web))
	for _, c := range res.Web {
		web = append(web, promptCandidate{Name: c.Name, URL: c.URL, Snippet: c.Description})
	}
	mkt := make([]promptCandidate, 0, len(res.Marketplace))
	for _, c := range res.Marketplace {
		mkt = append(mkt, promptCandidate{Name: c.Name, URL: c.URL, Price: c.Price, Snippet: c.Description})
	}

	doc := map[string]any{
		"productos":      items,
		"proveedores_bd": registry,
		"web":            web,
		"ecommerce":      mkt,
		"urgencia":       urgency,
	}
	if budget != nil {
		doc["presupuesto_estimado"] = budget.String()
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	header := fmt.Sprintf("Proveedores en BD: %d, web: %d, ecommerce: %d. Analiza todas las opciones y recomienda la mejor estrategia de compra.\n",
		len(registry), len(web), len(mkt))
	return header + string(b), nil
}

type comparisonRecommendation struct {
	Action        string      `json:"accion"`
	Source        string      `json:"fuente_recomendada"`
	Justification string      `json:"justificacion"`
	Savings       json.Number `json:"ahorro_estimado"`
	Time          string      `json:"tiempo_estimado"`
}

type comparisonEntry struct {
	Source        string      `json:"fuente"`
	Price         json.Number `json:"precio_estimado"`
	Advantages    []string    `json:"ventajas"`
	Disadvantages []string    `json:"desventajas"`
}

type comparisonPayload struct {
	Recommendation *comparisonRecommendation `json:"recomendacion_principal"`
	Prices         []comparisonEntry         `json:"comparativa_precios"`
	Alerts         []string                  `json:"alertas"`
	NextStep       string                    `json:"siguiente_paso"`
}

func parseComparison(raw string) (entities.PriceComparison, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	var p comparisonPayload
	if err := dec.Decode(&p); err != nil {
		return entities.PriceComparison{}, fmt.Errorf("%w: %v", ErrComparisonParse, err)
	}
	if p.Recommendation == nil {
		return entities.PriceComparison{}, fmt.Errorf("%w: missing recomendacion_principal", ErrComparisonParse)
	}
	action, ok := entities.ParsePurchaseAction(p.Recommendation.Action)
	if !ok {
		return entities.PriceComparison{}, fmt.Errorf("%w: unknown action %q", ErrComparisonParse, p.Recommendation.Action)
	}

	out := entities.PriceComparison{
		Recommendation: entities.PriceRecommendation{
			Action:        action,
			Justification: strings.TrimSpace(p.Recommendation.Justification),
			EstimatedTime: strings.TrimSpace(p.Recommendation.Time),
		},
		Sources:  make([]entities.SourcePriceEstimate, 0, len(p.Prices)),
		Alerts:   nonNil(p.Alerts),
		NextStep: strings.TrimSpace(p.NextStep),
	}
	if s := strings.TrimSpace(p.Recommendation.Source); s != "" {
		if src, ok := entities.ParseSource(s); ok {
			out.Recommendation.RecommendedSource = src
		} else {
			out.Warnings = append(out.Warnings, fmt.Sprintf("fuente recomendada desconocida %q", s))
		}
	}
	if p.Recommendation.Savings != "" {
		d, err := decimal.NewFromString(p.Recommendation.Savings.String())
		if err != nil {
			return entities.PriceComparison{}, fmt.Errorf("%w: ahorro_estimado: %v", ErrComparisonParse, err)
		}
		out.Recommendation.EstimatedSavings = &d
	}

	for _, e := range p.Prices {
		src, ok := entities.ParseSource(e.Source)
		if !ok {
			out.Warnings = append(out.Warnings, fmt.Sprintf("comparativa con fuente desconocida %q, omitida", e.Source))
			continue
		}
		est := entities.SourcePriceEstimate{
			Source:        src,
			Advantages:    nonNil(e.Advantages),
			Disadvantages: nonNil(e.Disadvantages),
		}
		if e.Price != "" {
			d, err := decimal.NewFromString(e.Price.String())
			switch {
			case err != nil:
				return entities.PriceComparison{}, fmt.Errorf("%w: precio_estimado: %v", ErrComparisonParse, err)
			case d.IsNegative():
				out.Warnings = append(out.Warnings, fmt.Sprintf("precio negativo para %q, omitido", src))
			default:
				est.EstimatedPrice = &d
			}
		}
		out.Sources = append(out.Sources, est)
	}
	return out, nil
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
