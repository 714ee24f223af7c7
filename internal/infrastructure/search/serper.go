package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"pei_compras/internal/usecase/interfaces"

	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://google.serper.dev"

	maxResponseSize = 2 * 1024 * 1024
	maxResults      = 100
)

// Kind selects the Serper endpoint: organic web results or shopping offers.
type Kind string

const (
	KindWeb      Kind = "search"
	KindShopping Kind = "shopping"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?\d{1,3}[-\s]?\(?\d{1,4}\)?[-\s]?\d{1,4}[-\s]?\d{1,9}`)
)

// Config holds the Serper credentials and result localisation.
type Config struct {
	APIKey  string
	BaseURL string
	Country string // gl
	Timeout time.Duration
}

// SerperClient implements ISupplierSearch over the Serper Google API.
type SerperClient struct {
	kind   Kind
	cfg    Config
	client *http.Client
	log    *zap.Logger
}

var _ interfaces.ISupplierSearch = (*SerperClient)(nil)

func NewSerperClient(kind Kind, cfg Config, logger *zap.Logger) *SerperClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &SerperClient{
		kind:   kind,
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    logger.Named("serper").With(zap.String("kind", string(kind))),
	}
}

func (c *SerperClient) Name() string { return "serper_" + string(c.kind) }

// Available is true when an API key is configured.
func (c *SerperClient) Available() bool {
	return strings.TrimSpace(c.cfg.APIKey) != ""
}

type serperRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num,omitempty"`
	GL  string `json:"gl,omitempty"`
	HL  string `json:"hl,omitempty"`
}

type serperOrganic struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

type serperShopping struct {
	Title  string `json:"title"`
	Link   string `json:"link"`
	Price  string `json:"price"`
	Source string `json:"source"`
}

type serperResponse struct {
	Organic  []serperOrganic  `json:"organic"`
	Shopping []serperShopping `json:"shopping"`
}

func (c *SerperClient) Search(ctx context.Context, q interfaces.SearchQuery) ([]interfaces.SearchResult, error) {
	if !c.Available() {
		return nil, fmt.Errorf("serper: api key not configured")
	}
	num := q.MaxResults
	if num <= 0 || num > maxResults {
		num = 10
	}
	body, err := json.Marshal(serperRequest{Q: q.Query, Num: num, GL: c.cfg.Country, HL: q.Locale})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.cfg.BaseURL, "/")+"/"+string(c.kind), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-KEY", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serper: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("serper: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Warn("search rejected", zap.Int("status", resp.StatusCode), zap.String("body", truncate(string(raw), 200)))
		return nil, fmt.Errorf("serper: status %d", resp.StatusCode)
	}

	var parsed serperResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("serper: decode: %w", err)
	}

	out := c.toResults(parsed, num)
	c.log.Debug("search done", zap.String("query", q.Query), zap.Int("results", len(out)), zap.Duration("took", time.Since(start)))
	return out, nil
}

func (c *SerperClient) toResults(r serperResponse, limit int) []interfaces.SearchResult {
	out := make([]interfaces.SearchResult, 0, limit)
	if c.kind == KindShopping {
		for _, s := range r.Shopping {
			if len(out) == limit {
				break
			}
			out = append(out, interfaces.SearchResult{Title: s.Title, Link: s.Link, Price: s.Price, Seller: s.Source})
		}
		return out
	}
	for _, o := range r.Organic {
		if len(out) == limit {
			break
		}
		out = append(out, interfaces.SearchResult{
			Title:   o.Title,
			Link:    o.Link,
			Snippet: o.Snippet,
			Email:   emailPattern.FindString(o.Snippet),
			Phone:   strings.TrimSpace(phonePattern.FindString(o.Snippet)),
		})
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
