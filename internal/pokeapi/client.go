// Package pokeapi is a thin typed client for the public PokeAPI service. It
// does not cache or retry; upstream failures reach the caller unchanged apart
// from wrapping.
package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://pokeapi.co/api/v2"
	// DefaultListLimit covers the first generation.
	DefaultListLimit = 151

	defaultTimeout     = 10 * time.Second
	defaultRate        = 10 // requests per second
	defaultBurst       = 5
	listDetailWorkers  = 8
	userAgent          = "trainerdex/1.0"
	maxErrorBodyLength = 512
)

// NotFoundError reports a 404 from the API.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("pokeapi: %s not found", e.Resource)
}

// APIError reports any other non-2xx response.
type APIError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("pokeapi: %s returned HTTP %d: %s", e.URL, e.StatusCode, e.Body)
}

// Client talks to PokeAPI with client-side rate limiting.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	listLimit   int
	logger      *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another deployment, e.g. an httptest server.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithRateLimit sets requests per second and burst. A non-positive rps
// disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if burst < 1 {
			burst = 1
		}
		if rps <= 0 {
			c.rateLimiter = rate.NewLimiter(rate.Inf, burst)
			return
		}
		c.rateLimiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithListLimit sets how many Pokémon FetchPokemonList requests.
func WithListLimit(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.listLimit = n
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a client for DefaultBaseURL unless overridden.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:     DefaultBaseURL,
		httpClient:  &http.Client{Timeout: defaultTimeout},
		rateLimiter: rate.NewLimiter(rate.Limit(defaultRate), defaultBurst),
		listLimit:   DefaultListLimit,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchPokemonList fetches the first listLimit Pokémon and their full
// records. Details are fetched concurrently; the result keeps list order and
// the first failure aborts the call.
func (c *Client) FetchPokemonList(ctx context.Context) ([]Pokemon, error) {
	var page PokemonListPage
	listURL := fmt.Sprintf("%s/pokemon?limit=%d", c.baseURL, c.listLimit)
	if err := c.doRequest(ctx, listURL, "pokemon list", &page); err != nil {
		return nil, fmt.Errorf("fetch pokemon list: %w", err)
	}

	out := make([]Pokemon, len(page.Results))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(listDetailWorkers)
	for i, ref := range page.Results {
		g.Go(func() error {
			p, err := c.FetchPokemonDetails(gctx, ref.Name)
			if err != nil {
				return err
			}
			out[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch pokemon list: %w", err)
	}
	return out, nil
}

// FetchPokemonDetails fetches one Pokémon by name or numeric id. Names are
// lower-cased.
func (c *Client) FetchPokemonDetails(ctx context.Context, nameOrID string) (Pokemon, error) {
	key := normalizeKey(nameOrID)
	var p Pokemon
	if err := c.doRequest(ctx, c.baseURL+"/pokemon/"+url.PathEscape(key), "pokemon "+key, &p); err != nil {
		return Pokemon{}, fmt.Errorf("fetch pokemon %s: %w", key, err)
	}
	return p, nil
}

// FetchPokemonByID is FetchPokemonDetails for a numeric id.
func (c *Client) FetchPokemonByID(ctx context.Context, id int) (Pokemon, error) {
	return c.FetchPokemonDetails(ctx, strconv.Itoa(id))
}

// FetchPokemonSpecies fetches species data, including the evolution chain URL.
func (c *Client) FetchPokemonSpecies(ctx context.Context, nameOrID string) (PokemonSpecies, error) {
	key := normalizeKey(nameOrID)
	var s PokemonSpecies
	if err := c.doRequest(ctx, c.baseURL+"/pokemon-species/"+url.PathEscape(key), "pokemon species "+key, &s); err != nil {
		return PokemonSpecies{}, fmt.Errorf("fetch species %s: %w", key, err)
	}
	return s, nil
}

// FetchEvolutionChain fetches the chain at chainURL, normally taken from
// PokemonSpecies.EvolutionChain.URL.
func (c *Client) FetchEvolutionChain(ctx context.Context, chainURL string) (EvolutionChain, error) {
	var chain EvolutionChain
	if err := c.doRequest(ctx, chainURL, "evolution chain", &chain); err != nil {
		return EvolutionChain{}, fmt.Errorf("fetch evolution chain %s: %w", chainURL, err)
	}
	return chain, nil
}

func normalizeKey(nameOrID string) string {
	return strings.ToLower(strings.TrimSpace(nameOrID))
}

// doRequest waits for the limiter, issues a GET and decodes a 200 body into result.
func (c *Client) doRequest(ctx context.Context, reqURL, resource string, result any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	c.logger.Debug("pokeapi request",
		zap.String("url", reqURL),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	switch {
	case resp.StatusCode == http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return &NotFoundError{Resource: resource}
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLength))
		return &APIError{StatusCode: resp.StatusCode, URL: reqURL, Body: strings.TrimSpace(string(body))}
	}
}
