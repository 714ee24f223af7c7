package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"pei_compras/internal/domain/entities"
	"pei_compras/internal/infrastructure/metrics"
	"pei_compras/internal/usecase/interfaces"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	rankingTemperature = 0.4

	rankingSystemPrompt = `Eres un experto en abastecimiento del área de compras de PEI. Recibes los productos solicitados y tres listas de proveedores candidatos: la base de datos interna ("registry"), resultados de búsqueda web ("web") y tiendas en línea ("marketplace").

Selecciona los proveedores más adecuados para cotizar, sin duplicados, priorizando proveedores verificados de la base de datos con buen rating y categoría compatible.

Responde SOLO con un objeto JSON con esta forma:
{
  "proveedores_recomendados": [
    {
      "fuente": "registry|web|marketplace",
      "id": 0,
      "ref": "string",
      "nombre": "string",
      "email": "string",
      "telefono": "string",
      "url": "string",
      "prioridad": 1,
      "estrategia_contacto": "string",
      "productos_asignados": ["nombre exacto del producto"],
      "puntuacion": 0,
      "razon": "string"
    }
  ]
}

Reglas:
- Para fuente "registry" copia el "id" numérico exacto del candidato.
- Para fuente "web" o "marketplace" copia el "ref" exacto del candidato.
- "prioridad" 1 es la más alta.
- "productos_asignados" usa los nombres exactos de los productos solicitados.`
)

// AggregationSummary counts candidates per source. WebSearchActive is true only
// when web discovery was requested and the search provider was available.
type AggregationSummary struct {
	RegistryCount    int  `json:"registry_count"`
	WebCount         int  `json:"web_count"`
	MarketplaceCount int  `json:"marketplace_count"`
	RankedCount      int  `json:"ranked_count"`
	WebSearchActive  bool `json:"web_search_active"`
}

// AggregationResult keeps the raw per-source lists next to the ranking so a
// failed ranking can be retried or reviewed by hand.
type AggregationResult struct {
	Registry     []entities.SupplierCandidate `json:"registry"`
	Web          []entities.SupplierCandidate `json:"web"`
	Marketplace  []entities.SupplierCandidate `json:"marketplace"`
	Ranked       []entities.RankedSupplier    `json:"ranked"`
	Summary      AggregationSummary           `json:"summary"`
	RankingError string                       `json:"ranking_error,omitempty"`
	Warnings     []string                     `json:"warnings,omitempty"`
}

// IDiscoveryUseCase finds and ranks suppliers for a set of line items.

type IDiscoveryUseCase interface {
	Discover(ctx context.Context, items []entities.LineItem, useWeb bool) (AggregationResult, error)
}

// DiscoveryConfig tunes the external searches.
type DiscoveryConfig struct {
	Locale     string
	Region     string
	MaxResults int
	Workers    int
}

type DiscoveryUseCase struct {
	registry    interfaces.ISupplierRegistry
	web         interfaces.ISupplierSearch
	marketplace interfaces.ISupplierSearch
	llm         interfaces.ICompletionClient
	cfg         DiscoveryConfig
	timeouts    Timeouts
	log         *zap.Logger
}

var _ IDiscoveryUseCase = (*DiscoveryUseCase)(nil)

func NewDiscoveryUseCase(
	registry interfaces.ISupplierRegistry,
	web interfaces.ISupplierSearch,
	marketplace interfaces.ISupplierSearch,
	llm interfaces.ICompletionClient,
	cfg DiscoveryConfig,
	timeouts Timeouts,
	logger *zap.Logger,
) *DiscoveryUseCase {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 5
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.Locale == "" {
		cfg.Locale = "es-MX"
	}
	return &DiscoveryUseCase{
		registry:    registry,
		web:         web,
		marketplace: marketplace,
		llm:         llm,
		cfg:         cfg,
		timeouts:    timeouts.withDefaults(),
		log:         nopIfNil(logger).Named("discovery"),
	}
}

func (u *DiscoveryUseCase) Discover(ctx context.Context, items []entities.LineItem, useWeb bool) (AggregationResult, error) {
	u.log.Info("discover start", zap.Int("items", len(items)), zap.Bool("use_web", useWeb))

	registry, err := u.registry.ListAll(ctx)
	if err != nil {
		u.log.Error("registry list failed", zap.Error(err))
		return AggregationResult{}, fmt.Errorf("%w: registry: %v", ErrDiscovery, err)
	}
	for i := range registry {
		registry[i].Source = entities.SourceRegistry
	}

	res := AggregationResult{Registry: registry}
	webActive := useWeb && u.web != nil && u.web.Available()
	if webActive {
		res.Web, res.Marketplace = u.searchAll(ctx, items)
	} else if useWeb {
		u.log.Info("web search requested but not available")
	}
	res.Summary = AggregationSummary{
		RegistryCount:    len(res.Registry),
		WebCount:         len(res.Web),
		MarketplaceCount: len(res.Marketplace),
		WebSearchActive:  webActive,
	}

	if len(res.Registry)+len(res.Web)+len(res.Marketplace) == 0 {
		u.log.Warn("no supplier candidates found")
		return res, nil
	}

	ranked, warnings, err := u.rank(ctx, items, res)
	res.Warnings = append(res.Warnings, warnings...)
	if err != nil {
		if errors.Is(err, ErrRankingParse) {
			u.log.Warn("ranking output malformed", zap.Error(err))
			return res, fmt.Errorf("%w: %w", ErrDiscovery, err)
		}
		u.log.Error("ranking call failed", zap.Error(err))
		res.RankingError = err.Error()
		res.Ranked = []entities.RankedSupplier{}
		return res, nil
	}
	res.Ranked = ranked
	res.Summary.RankedCount = len(ranked)
	u.log.Info("discover success",
		zap.Int("registry", res.Summary.RegistryCount),
		zap.Int("web", res.Summary.WebCount),
		zap.Int("marketplace", res.Summary.MarketplaceCount),
		zap.Int("ranked", res.Summary.RankedCount),
	)
	return res, nil
}

// searchAll runs the web and marketplace lookups for every item concurrently.
// A failing lookup only loses its own results.
func (u *DiscoveryUseCase) searchAll(ctx context.Context, items []entities.LineItem) (web, marketplace []entities.SupplierCandidate) {
	webByItem := make([][]entities.SupplierCandidate, len(items))
	mktByItem := make([][]entities.SupplierCandidate, len(items))

	var g errgroup.Group
	g.SetLimit(u.cfg.Workers)
	for i, item := range items {
		g.Go(func() error {
			webByItem[i] = u.searchOne(ctx, u.web, "web", webQuery(item, u.cfg.Region), entities.SourceWeb, item)
			return nil
		})
		if u.marketplace != nil && u.marketplace.Available() {
			g.Go(func() error {
				mktByItem[i] = u.searchOne(ctx, u.marketplace, "marketplace", marketplaceQuery(item), entities.SourceMarketplace, item)
				return nil
			})
		}
	}
	_ = g.Wait()

	return dedupeByURL(flatten(webByItem)), dedupeByURL(flatten(mktByItem))
}

func (u *DiscoveryUseCase) searchOne(ctx context.Context, s interfaces.ISupplierSearch, kind, query string, source entities.Source, item entities.LineItem) []entities.SupplierCandidate {
	start := time.Now()
	results, err := callWithTimeout(ctx, u.timeouts.Search, func(cctx context.Context) ([]interfaces.SearchResult, error) {
		return s.Search(cctx, interfaces.SearchQuery{Query: query, Locale: u.cfg.Locale, MaxResults: u.cfg.MaxResults})
	})
	metrics.ExternalCallDuration.WithLabelValues("search_"+kind, metrics.OutcomeOf(err == nil)).Observe(time.Since(start).Seconds())
	if err != nil {
		u.log.Warn("search failed for item", zap.String("kind", kind), zap.String("item", item.Name), zap.Error(err))
		return nil
	}
	out := make([]entities.SupplierCandidate, 0, len(results))
	for _, r := range results {
		out = append(out, candidateFromResult(r, source, item.Category))
	}
	return out
}

func webQuery(item entities.LineItem, region string) string {
	q := "proveedores de " + item.Name
	if region != "" {
		q += " en " + region
	}
	return q
}

func marketplaceQuery(item entities.LineItem) string {
	if item.Specifications == "" {
		return item.Name
	}
	return item.Name + " " + item.Specifications
}

func candidateFromResult(r interfaces.SearchResult, source entities.Source, category entities.Category) entities.SupplierCandidate {
	name := strings.TrimSpace(r.Seller)
	if name == "" {
		name = strings.TrimSpace(r.Title)
	}
	return entities.SupplierCandidate{
		Name:        name,
		Category:    category,
		Email:       r.Email,
		Phone:       r.Phone,
		URL:         r.Link,
		Description: r.Snippet,
		Price:       r.Price,
		Source:      source,
	}
}

func flatten(in [][]entities.SupplierCandidate) []entities.SupplierCandidate {
	out := []entities.SupplierCandidate{}
	for _, group := range in {
		out = append(out, group...)
	}
	return out
}

func dedupeByURL(in []entities.SupplierCandidate) []entities.SupplierCandidate {
	seen := make(map[string]bool, len(in))
	out := make([]entities.SupplierCandidate, 0, len(in))
	for _, c := range in {
		key := strings.ToLower(strings.TrimSpace(c.URL))
		if key != "" {
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		out = append(out, c)
	}
	return out
}

type rankingEntry struct {
	Source          string      `json:"fuente"`
	ID              json.Number `json:"id"`
	Ref             string      `json:"ref"`
	Name            string      `json:"nombre"`
	Email           string      `json:"email"`
	Phone           string      `json:"telefono"`
	URL             string      `json:"url"`
	Priority        int         `json:"prioridad"`
	ContactStrategy string      `json:"estrategia_contacto"`
	AssignedItems   []string    `json:"productos_asignados"`
	Score           float64     `json:"puntuacion"`
	Reason          string      `json:"razon"`
}

type rankingPayload struct {
	Recommended *[]rankingEntry `json:"proveedores_recomendados"`
}

type promptCandidate struct {
	ID       int64    `json:"id,omitempty"`
	Ref      string   `json:"ref,omitempty"`
	Name     string   `json:"nombre"`
	Category string   `json:"categoria,omitempty"`
	Email    string   `json:"email,omitempty"`
	Phone    string   `json:"telefono,omitempty"`
	URL      string   `json:"url,omitempty"`
	Rating   *float64 `json:"rating,omitempty"`
	Verified bool     `json:"verificado,omitempty"`
	Price    string   `json:"precio,omitempty"`
	Snippet  string   `json:"descripcion,omitempty"`
	Notes    string   `json:"notas,omitempty"`
}

func webRef(i int) string { return "web-" + strconv.Itoa(i+1) }
func mktRef(i int) string { return "mkt-" + strconv.Itoa(i+1) }

func buildRankingPrompt(items []entities.LineItem, res AggregationResult) (string, error) {
	registry := make([]promptCandidate, 0, len(res.Registry))
	for _, c := range res.Registry {
		registry = append(registry, promptCandidate{
			ID: c.RegistryID, Name: c.Name, Category: string(c.Category), Email: c.Email,
			Phone: c.Phone, Rating: c.Rating, Verified: c.Verified, Notes: c.Notes,
		})
	}
	web := make([]promptCandidate, 0, len(res.Web))
	for i, c := range res.Web {
		web = append(web, promptCandidate{Ref: webRef(i), Name: c.Name, Email: c.Email, Phone: c.Phone, URL: c.URL, Snippet: c.Description})
	}
	mkt := make([]promptCandidate, 0, len(res.Marketplace))
	for i, c := range res.Marketplace {
		mkt = append(mkt, promptCandidate{Ref: mktRef(i), Name: c.Name, URL: c.URL, Price: c.Price, Snippet: c.Description})
	}

	b, err := json.MarshalIndent(map[string]any{
		"productos":   items,
		"registry":    registry,
		"web":         web,
		"marketplace": mkt,
	}, "", "  ")
	if err != nil {
		return "", err
	}
	return "Productos solicitados y proveedores candidatos:\n" + string(b), nil
}

func (u *DiscoveryUseCase) rank(ctx context.Context, items []entities.LineItem, res AggregationResult) ([]entities.RankedSupplier, []string, error) {
	prompt, err := buildRankingPrompt(items, res)
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	raw, err := callWithTimeout(ctx, u.timeouts.LLM, func(cctx context.Context) (string, error) {
		return u.llm.Complete(cctx, interfaces.CompletionRequest{
			SystemPrompt: rankingSystemPrompt,
			UserPrompt:   prompt,
			Tier:         interfaces.ModelTierMini,
			Temperature:  rankingTemperature,
			JSONMode:     true,
		})
	})
	metrics.ExternalCallDuration.WithLabelValues("llm_rank", metrics.OutcomeOf(err == nil)).Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, interfaces.ErrMalformedCompletion) {
			return nil, nil, fmt.Errorf("%w: %v", ErrRankingParse, err)
		}
		return nil, nil, err
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	var payload rankingPayload
	if err := dec.Decode(&payload); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrRankingParse, err)
	}
	if payload.Recommended == nil {
		return nil, nil, fmt.Errorf("%w: missing proveedores_recomendados", ErrRankingParse)
	}
	ranked, warnings := rehydrate(*payload.Recommended, res)
	return ranked, warnings, nil
}

// rehydrate replaces whatever contact data the model transcribed with the
// candidate it refers to. Registry entries are resolved by numeric id only.
func rehydrate(entries []rankingEntry, res AggregationResult) ([]entities.RankedSupplier, []string) {
	byID := make(map[int64]entities.SupplierCandidate, len(res.Registry))
	for _, c := range res.Registry {
		byID[c.RegistryID] = c
	}
	byRef := make(map[string]entities.SupplierCandidate, len(res.Web)+len(res.Marketplace))
	for i, c := range res.Web {
		byRef[webRef(i)] = c
	}
	for i, c := range res.Marketplace {
		byRef[mktRef(i)] = c
	}

	var warnings []string
	seen := map[string]bool{}
	out := make([]entities.RankedSupplier, 0, len(entries))
	for pos, e := range entries {
		src, ok := entities.ParseSource(e.Source)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("ranking entry %q has unknown source %q, skipped", e.Name, e.Source))
			continue
		}

		var supplier entities.SupplierCandidate
		var key string
		switch src {
		case entities.SourceRegistry:
			id, err := e.ID.Int64()
			if err != nil || id <= 0 {
				warnings = append(warnings, fmt.Sprintf("registry entry %q has no valid id, skipped", e.Name))
				continue
			}
			c, found := byID[id]
			if !found {
				warnings = append(warnings, fmt.Sprintf("registry id %d is unknown, skipped", id))
				continue
			}
			supplier = c
			key = "registry:" + strconv.FormatInt(id, 10)
		default:
			if c, found := byRef[strings.TrimSpace(e.Ref)]; found && c.Source == src {
				supplier = c
				key = string(src) + ":" + e.Ref
			} else {
				supplier = entities.SupplierCandidate{
					Name:   strings.TrimSpace(e.Name),
					Email:  strings.TrimSpace(e.Email),
					Phone:  strings.TrimSpace(e.Phone),
					URL:    strings.TrimSpace(e.URL),
					Source: src,
				}
				key = string(src) + ":" + strings.ToLower(supplier.Name)
			}
		}
		if seen[key] {
			continue
		}
		seen[key] = true

		priority := e.Priority
		if priority <= 0 {
			priority = pos + 1
		}
		out = append(out, entities.RankedSupplier{
			Supplier:        supplier,
			Source:          src,
			Priority:        priority,
			ContactStrategy: strings.TrimSpace(e.ContactStrategy),
			AssignedItems:   e.AssignedItems,
			Score:           e.Score,
			Reason:          strings.TrimSpace(e.Reason),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out, warnings
}
