package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/bobby-s-dev/weather-lookup/internal/models"
)

const DefaultOpenWeatherURL = "https://api.openweathermap.org/data/2.5"

type OpenWeatherClient struct {
	*BaseClient
	apiKey  string
	baseURL string
}

// CurrentWeather is an upstream current-conditions answer in two forms: the
// typed report, and the raw JSON object so unknown fields survive a re-encode.
type CurrentWeather struct {
	Report models.WeatherReport
	Raw    map[string]json.RawMessage
}

type openWeatherUVResponse struct {
	Lat   float64  `json:"lat"`
	Lon   float64  `json:"lon"`
	Value *float64 `json:"value"`
}

func NewOpenWeatherClient(apiKey, baseURL string, config ClientConfig, logger *zap.Logger) *OpenWeatherClient {
	return newOpenWeatherClient("openweather", apiKey, baseURL, config, logger)
}

// NewOpenWeatherUVClient returns a client meant for UV lookups only. It has
// its own breaker and limiter, so UV failures never block current weather.
func NewOpenWeatherUVClient(apiKey, baseURL string, config ClientConfig, logger *zap.Logger) *OpenWeatherClient {
	return newOpenWeatherClient("openweather-uv", apiKey, baseURL, config, logger)
}

func newOpenWeatherClient(name, apiKey, baseURL string, config ClientConfig, logger *zap.Logger) *OpenWeatherClient {
	if baseURL == "" {
		baseURL = DefaultOpenWeatherURL
	}
	baseClient := NewBaseClient(name, config, logger)
	return &OpenWeatherClient{
		BaseClient: baseClient,
		apiKey:     apiKey,
		baseURL:    baseURL,
	}
}

func (c *OpenWeatherClient) Name() string {
	return "openweathermap"
}

// GetCurrentWeather fetches current conditions for a city in metric units.
func (c *OpenWeatherClient) GetCurrentWeather(ctx context.Context, city string) (*CurrentWeather, error) {
	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	data, err := c.GetWithRetry(ctx, c.baseURL+"/weather", params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current weather: %w", err)
	}

	current := &CurrentWeather{}
	if err := json.Unmarshal(data, &current.Raw); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if err := json.Unmarshal(data, &current.Report); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return current, nil
}

// GetUVIndex fetches the UV index at the given coordinates.
func (c *OpenWeatherClient) GetUVIndex(ctx context.Context, coord models.Coord) (float64, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(coord.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(coord.Lon, 'f', -1, 64))
	params.Set("appid", c.apiKey)

	data, err := c.GetWithRetry(ctx, c.baseURL+"/uvi", params)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch uv index: %w", err)
	}

	var response openWeatherUVResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return 0, fmt.Errorf("failed to parse uv response: %w", err)
	}
	if response.Value == nil {
		return 0, fmt.Errorf("uv response has no value")
	}

	return *response.Value, nil
}
