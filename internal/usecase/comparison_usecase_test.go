package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"pei_compras/internal/domain/entities"
	"pei_compras/internal/usecase/interfaces"
	mock_interfaces "pei_compras/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type stubDiscovery struct {
	res   AggregationResult
	err   error
	calls int
}

func (s *stubDiscovery) Discover(context.Context, []entities.LineItem, bool) (AggregationResult, error) {
	s.calls++
	return s.res, s.err
}

type comparisonMocks struct {
	llm       *mock_interfaces.MockICompletionClient
	requests  *requestStore
	discovery *stubDiscovery
}

func newComparisonUseCase(t *testing.T) (*PriceComparisonUseCase, comparisonMocks) {
	ctrl := gomock.NewController(t)
	repo := mock_interfaces.NewMockIPurchaseRequestRepository(ctrl)
	m := comparisonMocks{
		llm:       mock_interfaces.NewMockICompletionClient(ctrl),
		requests:  newRequestStore(repo),
		discovery: &stubDiscovery{},
	}
	uc := NewPriceComparisonUseCase(m.llm, repo, m.discovery, Timeouts{}, nil)
	return uc, m
}

func comparisonSources() AggregationResult {
	return AggregationResult{
		Registry: registrySuppliers()[:1],
		Marketplace: []entities.SupplierCandidate{
			{Name: "Laptop HP 15 en tienda", URL: "https://tienda.example/hp15", Price: "$12,999", Source: entities.SourceMarketplace},
		},
		Summary: AggregationSummary{RegistryCount: 1, MarketplaceCount: 1},
	}
}

const comparisonReply = `{
  "recomendacion_principal": {
    "accion": "ambas",
    "fuente_recomendada": "proveedores_bd",
    "justificacion": "Proveedor verificado con mejor precio por volumen",
    "ahorro_estimado": 4500.50,
    "tiempo_estimado": "3-5 días"
  },
  "comparativa_precios": [
    {"fuente": "proveedores_bd", "precio_estimado": 60000, "ventajas": ["verificado"], "desventajas": ["requiere cotización"]},
    {"fuente": "ecommerce", "precio_estimado": 64995, "ventajas": ["entrega inmediata"]}
  ],
  "alertas": ["precio de tienda sin IVA"],
  "siguiente_paso": "Enviar RFQ a Tech Solutions Chile"
}`

func TestPriceComparisonUseCase_Compare(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		uc, m := newComparisonUseCase(t)
		budget := decimal.RequireFromString("70000")
		m.llm.EXPECT().Complete(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req interfaces.CompletionRequest) (string, error) {
				assert.Equal(t, interfaces.ModelTierFull, req.Tier)
				assert.True(t, req.JSONMode)
				assert.InDelta(t, 0.3, req.Temperature, 1e-6)
				assert.Contains(t, req.UserPrompt, "Tech Solutions Chile")
				assert.Contains(t, req.UserPrompt, "$12,999")
				assert.Contains(t, req.UserPrompt, `"presupuesto_estimado": "70000"`)
				assert.Contains(t, req.UserPrompt, `"urgencia": "alta"`)
				return comparisonReply, nil
			},
		)

		out, err := uc.Compare(context.Background(), laptopItems, comparisonSources(), entities.UrgencyAlta, &budget)
		require.NoError(t, err)
		assert.Equal(t, entities.PurchaseActionBoth, out.Recommendation.Action)
		assert.Equal(t, entities.SourceRegistry, out.Recommendation.RecommendedSource)
		require.NotNil(t, out.Recommendation.EstimatedSavings)
		assert.Equal(t, "4500.5", out.Recommendation.EstimatedSavings.String())
		require.Len(t, out.Sources, 2)
		assert.Equal(t, entities.SourceMarketplace, out.Sources[1].Source)
		assert.Equal(t, "64995", out.Sources[1].EstimatedPrice.String())
		assert.Equal(t, []string{}, out.Sources[1].Disadvantages)
		assert.Equal(t, []string{"precio de tienda sin IVA"}, out.Alerts)
		assert.Equal(t, "Enviar RFQ a Tech Solutions Chile", out.NextStep)
		assert.Empty(t, out.Warnings)
	})

	t.Run("no items", func(t *testing.T) {
		uc, _ := newComparisonUseCase(t)
		_, err := uc.Compare(context.Background(), nil, comparisonSources(), entities.UrgencyNormal, nil)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("transport failure", func(t *testing.T) {
		uc, m := newComparisonUseCase(t)
		m.llm.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("", errors.New("rate limited"))

		_, err := uc.Compare(context.Background(), laptopItems, comparisonSources(), entities.UrgencyNormal, nil)
		assert.ErrorIs(t, err, ErrComparison)
	})

	t.Run("malformed completion", func(t *testing.T) {
		uc, m := newComparisonUseCase(t)
		m.llm.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("", fmt.Errorf("%w: truncated", interfaces.ErrMalformedCompletion))

		_, err := uc.Compare(context.Background(), laptopItems, comparisonSources(), entities.UrgencyNormal, nil)
		assert.ErrorIs(t, err, ErrComparisonParse)
	})

	t.Run("invalid output", func(t *testing.T) {
		cases := map[string]string{
			"not json":               "la mejor opción es cotizar",
			"missing recommendation": `{"comparativa_precios":[]}`,
			"unknown action":         `{"recomendacion_principal":{"accion":"esperar"}}`,
			"bad price":              `{"recomendacion_principal":{"accion":"cotizar"},"comparativa_precios":[{"fuente":"web","precio_estimado":"mucho"}]}`,
		}
		for name, reply := range cases {
			t.Run(name, func(t *testing.T) {
				uc, m := newComparisonUseCase(t)
				m.llm.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(reply, nil)

				_, err := uc.Compare(context.Background(), laptopItems, comparisonSources(), entities.UrgencyNormal, nil)
				assert.ErrorIs(t, err, ErrComparisonParse)
			})
		}
	})

	t.Run("unknown sources and negative prices become warnings", func(t *testing.T) {
		uc, m := newComparisonUseCase(t)
		m.llm.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(`{
			"recomendacion_principal": {"accion": "COMPRAR_DIRECTO", "fuente_recomendada": "catalogo"},
			"comparativa_precios": [
				{"fuente": "catalogo", "precio_estimado": 10},
				{"fuente": "web", "precio_estimado": -5}
			]
		}`, nil)

		out, err := uc.Compare(context.Background(), laptopItems, comparisonSources(), entities.UrgencyNormal, nil)
		require.NoError(t, err)
		assert.Equal(t, entities.PurchaseActionBuyDirect, out.Recommendation.Action)
		assert.Empty(t, out.Recommendation.RecommendedSource)
		assert.Nil(t, out.Recommendation.EstimatedSavings)
		require.Len(t, out.Sources, 1)
		assert.Equal(t, entities.SourceWeb, out.Sources[0].Source)
		assert.Nil(t, out.Sources[0].EstimatedPrice)
		assert.Len(t, out.Warnings, 3)
		assert.Equal(t, []string{}, out.Alerts)
	})
}

func TestPriceComparisonUseCase_CompareForRequest(t *testing.T) {
	stored := entities.PurchaseRequest{
		ID:      "pr-1",
		Status:  entities.PurchaseRequestStatusRFQsEnviados,
		Urgency: entities.UrgencyUrgente,
		Items:   laptopItems,
	}

	t.Run("blank id", func(t *testing.T) {
		uc, _ := newComparisonUseCase(t)
		_, err := uc.CompareForRequest(context.Background(), "  ")
		assert.ErrorIs(t, err, ErrInvalidRequestID)
	})

	t.Run("unknown request", func(t *testing.T) {
		uc, m := newComparisonUseCase(t)
		_, err := uc.CompareForRequest(context.Background(), "pr-missing")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Zero(t, m.discovery.calls)
	})

	t.Run("no suppliers", func(t *testing.T) {
		uc, m := newComparisonUseCase(t)
		m.requests.byID[stored.ID] = stored

		_, err := uc.CompareForRequest(context.Background(), stored.ID)
		assert.ErrorIs(t, err, ErrDiscovery)
	})

	t.Run("discovery failure before any list", func(t *testing.T) {
		uc, m := newComparisonUseCase(t)
		m.requests.byID[stored.ID] = stored
		m.discovery.err = fmt.Errorf("%w: registry: throttled", ErrDiscovery)

		_, err := uc.CompareForRequest(context.Background(), stored.ID)
		assert.ErrorIs(t, err, ErrDiscovery)
	})

	t.Run("ranking failure still compares", func(t *testing.T) {
		uc, m := newComparisonUseCase(t)
		m.requests.byID[stored.ID] = stored
		m.discovery.res = comparisonSources()
		m.discovery.err = fmt.Errorf("%w: ranking", ErrRankingParse)
		m.llm.EXPECT().Complete(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req interfaces.CompletionRequest) (string, error) {
				assert.Contains(t, req.UserPrompt, `"urgencia": "urgente"`)
				assert.False(t, strings.Contains(req.UserPrompt, "presupuesto_estimado"))
				return comparisonReply, nil
			},
		)

		out, err := uc.CompareForRequest(context.Background(), " pr-1 ")
		require.NoError(t, err)
		assert.Equal(t, "pr-1", out.RequestID)
		assert.Equal(t, 1, out.Summary.MarketplaceCount)
		assert.Equal(t, entities.PurchaseActionBoth, out.Comparison.Recommendation.Action)
		assert.Equal(t, 1, m.discovery.calls)
	})
}
