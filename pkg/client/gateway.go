package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bobby-s-dev/weather-lookup/internal/models"
)

const DefaultGatewayURL = "http://localhost:3000/api/weather"

// ConnectionError means the gateway could not be reached at all.
type ConnectionError struct {
	Endpoint string
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("gateway %s unreachable: %v", e.Endpoint, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// HTTPStatusError means the gateway answered with a non-2xx status.
type HTTPStatusError struct {
	StatusCode int
	Message    string
}

func (e *HTTPStatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gateway returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("gateway returned HTTP %d: %s", e.StatusCode, e.Message)
}

// GatewayClient is the lookup transport used by the client controller.
type GatewayClient struct {
	httpClient HTTPClient
	endpoint   string
	logger     *zap.Logger
}

func NewGatewayClient(endpoint string, timeout time.Duration, logger *zap.Logger) *GatewayClient {
	if endpoint == "" {
		endpoint = DefaultGatewayURL
	}
	return &GatewayClient{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		logger:     logger,
	}
}

// FetchWeather performs exactly one GET endpoint?city=<city>.
func (c *GatewayClient) FetchWeather(ctx context.Context, city string) (*models.WeatherReport, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	q := u.Query()
	q.Set("city", city)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Debug("Gateway request failed",
			zap.String("request_id", requestID),
			zap.String("city", city),
			zap.Error(err))
		return nil, &ConnectionError{Endpoint: c.endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &ConnectionError{Endpoint: c.endpoint, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &HTTPStatusError{StatusCode: resp.StatusCode}
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &payload) == nil {
			statusErr.Message = payload.Error
		}
		c.logger.Debug("Gateway returned error status",
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode),
			zap.String("message", statusErr.Message))
		return nil, statusErr
	}

	var report models.WeatherReport
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &report, nil
}
