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

const DefaultOpenMeteoURL = "https://api.open-meteo.com/v1"

// OpenMeteoClient reads the UV index from Open-Meteo, which needs no API key.
type OpenMeteoClient struct {
	*BaseClient
	baseURL string
}

type OpenMeteoUVResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Current   struct {
		Time     string   `json:"time"`
		Interval int      `json:"interval"`
		UVIndex  *float64 `json:"uv_index"`
	} `json:"current"`
}

func NewOpenMeteoClient(baseURL string, config ClientConfig, logger *zap.Logger) *OpenMeteoClient {
	if baseURL == "" {
		baseURL = DefaultOpenMeteoURL
	}
	baseClient := NewBaseClient("openmeteo", config, logger)
	return &OpenMeteoClient{
		BaseClient: baseClient,
		baseURL:    baseURL,
	}
}

func (c *OpenMeteoClient) Name() string {
	return "open-meteo"
}

func (c *OpenMeteoClient) GetUVIndex(ctx context.Context, coord models.Coord) (float64, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(coord.Lat, 'f', 4, 64))
	params.Set("longitude", strconv.FormatFloat(coord.Lon, 'f', 4, 64))
	params.Set("current", "uv_index")

	data, err := c.GetWithRetry(ctx, c.baseURL+"/forecast", params)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch uv index: %w", err)
	}

	var response OpenMeteoUVResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return 0, fmt.Errorf("failed to parse response: %w", err)
	}
	if response.Current.UVIndex == nil {
		return 0, fmt.Errorf("uv_index missing from response")
	}

	return *response.Current.UVIndex, nil
}
