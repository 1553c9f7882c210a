package pokeapi

import (
	"net/http"

	"go.uber.org/zap"

	"trainerdex/internal/config"
)

// NewFromConfig builds a client from the [pokeapi] config section.
func NewFromConfig(cfg config.PokeAPIConfig, logger *zap.Logger) *Client {
	opts := []Option{
		WithBaseURL(cfg.BaseURL),
		WithRateLimit(cfg.RequestsPerSecond, cfg.Burst),
		WithListLimit(cfg.ListLimit),
		WithLogger(logger),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	}
	return NewClient(opts...)
}
