package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/bobby-s-dev/weather-lookup/internal/config"
	"github.com/bobby-s-dev/weather-lookup/internal/models"
	"github.com/bobby-s-dev/weather-lookup/pkg/client"
)

// ErrDemoMode is returned by Probe when no upstream credential is configured.
var ErrDemoMode = errors.New("no upstream credential configured")

type WeatherClient interface {
	GetCurrentWeather(ctx context.Context, city string) (*client.CurrentWeather, error)
}

type UVSource interface {
	Name() string
	GetUVIndex(ctx context.Context, coord models.Coord) (float64, error)
}

// Gateway answers current-weather lookups from the upstream provider, or from
// the demo generator when no credential is configured. It keeps no
// per-request state.
type Gateway struct {
	upstream         WeatherClient
	uvSources        []UVSource
	uvSourcesSet     bool
	demo             *DemoGenerator
	logger           *zap.Logger
	apiKeyConfigured bool
	timeout          time.Duration
}

type Option func(*Gateway)

func WithUpstream(upstream WeatherClient) Option {
	return func(g *Gateway) { g.upstream = upstream }
}

func WithUVSources(sources ...UVSource) Option {
	return func(g *Gateway) {
		g.uvSources = sources
		g.uvSourcesSet = true
	}
}

func WithDemoGenerator(demo *DemoGenerator) Option {
	return func(g *Gateway) { g.demo = demo }
}

func NewGateway(cfg *config.Config, logger *zap.Logger, opts ...Option) *Gateway {
	g := &Gateway{
		logger:           logger,
		apiKeyConfigured: cfg.APIKeyConfigured(),
		timeout:          cfg.WeatherAPI.Timeout,
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.timeout <= 0 {
		g.timeout = 10 * time.Second
	}
	if g.demo == nil {
		g.demo = NewDemoGenerator(nil, nil)
	}

	if !g.apiKeyConfigured {
		logger.Warn("No API key configured, serving demo data")
		return g
	}

	clientConfig := client.ClientConfig{
		Timeout:        g.timeout,
		MaxRetries:     cfg.Retry.MaxRetries,
		RetryDelay:     cfg.Retry.Delay,
		Multiplier:     cfg.Retry.Multiplier,
		Threshold:      cfg.CircuitBreaker.Threshold,
		BreakerTimeout: cfg.CircuitBreaker.Timeout,
		RateLimit:      cfg.RateLimit.RPS,
		Burst:          cfg.RateLimit.Burst,
	}

	if g.upstream == nil {
		g.upstream = client.NewOpenWeatherClient(cfg.WeatherAPI.APIKey, cfg.WeatherAPI.OpenWeatherURL, clientConfig, logger)
		logger.Info("OpenWeatherMap client initialized")
	}
	// UV sources never share a breaker or limiter with the current-weather client.
	if !g.uvSourcesSet {
		g.uvSources = []UVSource{
			client.NewOpenWeatherUVClient(cfg.WeatherAPI.APIKey, cfg.WeatherAPI.OpenWeatherURL, clientConfig, logger),
		}
		if cfg.WeatherAPI.OpenMeteoURL != "" {
			g.uvSources = append(g.uvSources, client.NewOpenMeteoClient(cfg.WeatherAPI.OpenMeteoURL, clientConfig, logger))
		}
		logger.Info("UV sources initialized", zap.Int("uv_sources", len(g.uvSources)))
	}

	return g
}

func (g *Gateway) APIKeyConfigured() bool {
	return g.apiKeyConfigured
}

// Lookup returns the current weather for city. With a credential configured
// the result is the raw upstream object with "uvi" merged in; otherwise it is
// a synthetic *models.WeatherReport. Failures are *Error values.
func (g *Gateway) Lookup(ctx context.Context, city string) (interface{}, error) {
	requested := city
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, newError(KindValidation, MsgCityRequired, nil)
	}

	if !g.apiKeyConfigured {
		g.logger.Debug("No API key configured, returning demo data", zap.String("city", city))
		// The demo sky is keyed on the name exactly as requested.
		return g.demo.Report(requested), nil
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	current, err := g.upstream.GetCurrentWeather(callCtx, city)
	cancel()
	if err != nil {
		mapped := g.mapUpstreamError(err)
		g.logger.Error("Failed to fetch current weather",
			zap.String("city", city),
			zap.String("kind", mapped.Kind.String()),
			zap.Error(err))
		return nil, mapped
	}

	uvi := g.fetchUVIndex(ctx, city, current.Report.Coord)

	raw := current.Raw
	if raw == nil {
		raw = make(map[string]json.RawMessage)
	}
	encoded, err := json.Marshal(uvi)
	if err != nil {
		return nil, newError(KindInternal, MsgInternal, err)
	}
	raw["uvi"] = encoded

	g.logger.Info("Fetched weather data", zap.String("city", city), zap.Bool("uvi", uvi != nil))
	return raw, nil
}

// fetchUVIndex asks each UV source in order and returns the first answer.
// A nil result means every source failed.
func (g *Gateway) fetchUVIndex(ctx context.Context, city string, coord models.Coord) *float64 {
	for _, source := range g.uvSources {
		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		value, err := source.GetUVIndex(callCtx, coord)
		cancel()
		if err == nil {
			return models.Float(value)
		}
		g.logger.Warn("Could not fetch UV index",
			zap.String("source", source.Name()),
			zap.String("city", city),
			zap.Error(err))
	}
	return nil
}

// Probe checks that the upstream provider answers for city.
func (g *Gateway) Probe(ctx context.Context, city string) error {
	if !g.apiKeyConfigured {
		return ErrDemoMode
	}
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	if _, err := g.upstream.GetCurrentWeather(callCtx, city); err != nil {
		return g.mapUpstreamError(err)
	}
	return nil
}

func (g *Gateway) mapUpstreamError(err error) *Error {
	var statusErr *client.StatusError
	if !errors.As(err, &statusErr) {
		return newError(KindUpstreamUnavailable, MsgUpstreamUnreachable, err)
	}

	switch statusErr.StatusCode {
	case 404:
		return newError(KindNotFound, MsgCityNotFound, err)
	case 401:
		return newError(KindUpstreamAuth, MsgInvalidAPIKey, err)
	default:
		return newError(KindUpstreamUnavailable, MsgServiceUnavailable, err)
	}
}
