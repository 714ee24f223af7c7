package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"pei_compras/internal/domain/entities"
	"pei_compras/internal/usecase/interfaces"
	mock_interfaces "pei_compras/internal/usecase/interfaces/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type discoveryMocks struct {
	registry    *mock_interfaces.MockISupplierRegistry
	web         *mock_interfaces.MockISupplierSearch
	marketplace *mock_interfaces.MockISupplierSearch
	llm         *mock_interfaces.MockICompletionClient
}

func newDiscoveryUseCase(t *testing.T) (*DiscoveryUseCase, discoveryMocks) {
	ctrl := gomock.NewController(t)
	m := discoveryMocks{
		registry:    mock_interfaces.NewMockISupplierRegistry(ctrl),
		web:         mock_interfaces.NewMockISupplierSearch(ctrl),
		marketplace: mock_interfaces.NewMockISupplierSearch(ctrl),
		llm:         mock_interfaces.NewMockICompletionClient(ctrl),
	}
	uc := NewDiscoveryUseCase(m.registry, m.web, m.marketplace, m.llm, DiscoveryConfig{Region: "México"}, Timeouts{}, nil)
	return uc, m
}

func rating(v float64) *float64 { return &v }

func registrySuppliers() []entities.SupplierCandidate {
	return []entities.SupplierCandidate{
		{RegistryID: 1, Name: "Tech Solutions Chile", Category: entities.CategoryTecnologia, Email: "ventas@techsolutions.cl", Phone: "+56 2 2345 6789", Rating: rating(4.5), Verified: true},
		{RegistryID: 4, Name: "Muebles Corporativos SA", Category: entities.CategoryMobiliario, Email: "ventas@mueblescorp.cl", Rating: rating(4.7), Verified: true},
	}
}

var laptopItems = []entities.LineItem{
	{Name: "Laptop HP", Quantity: 5, Category: entities.CategoryTecnologia},
	{Name: "Monitor 24", Quantity: 5, Category: entities.CategoryTecnologia},
}

func TestDiscoveryUseCase_Discover(t *testing.T) {
	t.Run("registry failure", func(t *testing.T) {
		uc, m := newDiscoveryUseCase(t)
		m.registry.EXPECT().ListAll(gomock.Any()).Return(nil, errors.New("dynamo down"))

		_, err := uc.Discover(context.Background(), laptopItems, true)
		assert.ErrorIs(t, err, ErrDiscovery)
	})

	t.Run("web disabled by caller", func(t *testing.T) {
		uc, m := newDiscoveryUseCase(t)
		m.registry.EXPECT().ListAll(gomock.Any()).Return(registrySuppliers(), nil)
		m.llm.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(`{"proveedores_recomendados":[{"fuente":"registry","id":1,"prioridad":1}]}`, nil)

		res, err := uc.Discover(context.Background(), laptopItems, false)
		require.NoError(t, err)
		assert.False(t, res.Summary.WebSearchActive)
		assert.Empty(t, res.Web)
		assert.Equal(t, 2, res.Summary.RegistryCount)
		assert.Equal(t, 1, res.Summary.RankedCount)
	})

	t.Run("web requested but unavailable", func(t *testing.T) {
		uc, m := newDiscoveryUseCase(t)
		m.registry.EXPECT().ListAll(gomock.Any()).Return(registrySuppliers(), nil)
		m.web.EXPECT().Available().Return(false)
		m.llm.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(`{"proveedores_recomendados":[{"fuente":"registry","id":1,"prioridad":1}]}`, nil)

		res, err := uc.Discover(context.Background(), laptopItems, true)
		require.NoError(t, err)
		assert.False(t, res.Summary.WebSearchActive)
		assert.Equal(t, 0, res.Summary.WebCount)
	})

	t.Run("merges sources and rehydrates registry entries", func(t *testing.T) {
		uc, m := newDiscoveryUseCase(t)
		m.registry.EXPECT().ListAll(gomock.Any()).Return(registrySuppliers(), nil)
		m.web.EXPECT().Available().Return(true).AnyTimes()
		m.marketplace.EXPECT().Available().Return(true).AnyTimes()
		m.web.EXPECT().Search(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q interfaces.SearchQuery) ([]interfaces.SearchResult, error) {
				assert.Equal(t, 5, q.MaxResults)
				assert.Contains(t, q.Query, "en México")
				if strings.Contains(q.Query, "Monitor") {
					return nil, errors.New("rate limited")
				}
				return []interfaces.SearchResult{{Title: "Distribuidora HP", Link: "https://dist-hp.example", Email: "info@dist-hp.example"}}, nil
			},
		).Times(2)
		m.marketplace.EXPECT().Search(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q interfaces.SearchQuery) ([]interfaces.SearchResult, error) {
				return []interfaces.SearchResult{{Title: q.Query + " oferta", Link: "https://shop.example/" + strings.ReplaceAll(q.Query, " ", "-"), Price: "$100", Seller: "Shop"}}, nil
			},
		).Times(2)
		m.llm.EXPECT().Complete(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req interfaces.CompletionRequest) (string, error) {
				assert.Equal(t, interfaces.ModelTierMini, req.Tier)
				assert.Equal(t, float32(0.4), req.Temperature)
				assert.True(t, req.JSONMode)
				assert.Contains(t, req.UserPrompt, "Tech Solutions Chile")
				assert.Contains(t, req.UserPrompt, "web-1")
				return `{"proveedores_recomendados":[
					{"fuente":"web","ref":"web-1","nombre":"Distribuidora","prioridad":2,"estrategia_contacto":"email"},
					{"fuente":"registry","id":1,"nombre":"Tech Solutions","email":"inventado@x.com","prioridad":1,"productos_asignados":["Laptop HP"]},
					{"fuente":"registry","id":99,"nombre":"Fantasma","prioridad":3},
					{"fuente":"registry","id":"1","prioridad":4}
				]}`, nil
			},
		)

		res, err := uc.Discover(context.Background(), laptopItems, true)
		require.NoError(t, err)

		assert.True(t, res.Summary.WebSearchActive)
		assert.Equal(t, 1, res.Summary.WebCount)
		assert.Equal(t, 2, res.Summary.MarketplaceCount)
		require.Len(t, res.Ranked, 2)

		first := res.Ranked[0]
		assert.Equal(t, entities.SourceRegistry, first.Source)
		assert.Equal(t, "ventas@techsolutions.cl", first.Supplier.Email)
		assert.Equal(t, "Tech Solutions Chile", first.Supplier.Name)
		assert.Equal(t, []string{"Laptop HP"}, first.AssignedItems)

		second := res.Ranked[1]
		assert.Equal(t, entities.SourceWeb, second.Source)
		assert.Equal(t, "info@dist-hp.example", second.Supplier.Email)
		assert.Equal(t, "https://dist-hp.example", second.Supplier.URL)

		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "99")
	})

	t.Run("malformed ranking keeps raw lists", func(t *testing.T) {
		uc, m := newDiscoveryUseCase(t)
		m.registry.EXPECT().ListAll(gomock.Any()).Return(registrySuppliers(), nil)
		m.llm.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(`{"otra_cosa": true}`, nil)

		res, err := uc.Discover(context.Background(), laptopItems, false)
		assert.ErrorIs(t, err, ErrDiscovery)
		assert.ErrorIs(t, err, ErrRankingParse)
		assert.Len(t, res.Registry, 2)
		assert.Empty(t, res.Ranked)
	})

	t.Run("ranking transport failure returns empty ranking", func(t *testing.T) {
		uc, m := newDiscoveryUseCase(t)
		m.registry.EXPECT().ListAll(gomock.Any()).Return(registrySuppliers(), nil)
		m.llm.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("", errors.New("503 service unavailable"))

		res, err := uc.Discover(context.Background(), laptopItems, false)
		require.NoError(t, err)
		assert.NotNil(t, res.Ranked)
		assert.Empty(t, res.Ranked)
		assert.Contains(t, res.RankingError, "503")
		assert.Len(t, res.Registry, 2)
	})

	t.Run("no candidates skips ranking", func(t *testing.T) {
		uc, m := newDiscoveryUseCase(t)
		m.registry.EXPECT().ListAll(gomock.Any()).Return([]entities.SupplierCandidate{}, nil)

		res, err := uc.Discover(context.Background(), laptopItems, false)
		require.NoError(t, err)
		assert.Empty(t, res.Ranked)
	})
}

func TestItemsForSupplier(t *testing.T) {
	items := []entities.LineItem{{Name: "Laptop HP"}, {Name: "Mouse"}, {Name: "Silla"}}

	got, warning := itemsForSupplier(nil, items)
	assert.Equal(t, items, got)
	assert.Empty(t, warning)

	got, warning = itemsForSupplier([]string{" laptop  hp", "Mouse"}, items)
	assert.Equal(t, items[:2], got)
	assert.Empty(t, warning)

	got, warning = itemsForSupplier([]string{"Impresora"}, items)
	assert.Equal(t, items, got)
	assert.Contains(t, warning, "match no requested item")

	got, warning = itemsForSupplier([]string{"Silla", "Escritorio"}, items)
	assert.Equal(t, items[2:], got)
	assert.Contains(t, warning, "Escritorio")
}
