package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bobby-s-dev/weather-lookup/internal/config"
	"github.com/bobby-s-dev/weather-lookup/internal/models"
	"github.com/bobby-s-dev/weather-lookup/internal/scheduler"
	"github.com/bobby-s-dev/weather-lookup/internal/services"
)

type stubService struct {
	result     interface{}
	err        error
	configured bool
	cities     []string
	panics     bool
}

func (s *stubService) Lookup(ctx context.Context, city string) (interface{}, error) {
	if s.panics {
		panic("unexpected")
	}
	s.cities = append(s.cities, city)
	return s.result, s.err
}

func (s *stubService) APIKeyConfigured() bool { return s.configured }

type stubStatus struct{}

func (stubStatus) GetStatus() scheduler.Status {
	return scheduler.Status{State: scheduler.StateReachable}
}

func newTestApp(svc WeatherService) *fiber.App {
	cfg := &config.Config{}
	cfg.Server.ReadTimeout = time.Second
	cfg.Server.WriteTimeout = time.Second
	return NewApp(cfg, NewHandler(svc, stubStatus{}, zap.NewNop()))
}

func do(t *testing.T, app *fiber.App, target string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return resp.StatusCode, out
}

func TestGetWeatherSuccess(t *testing.T) {
	svc := &stubService{result: &models.WeatherReport{Name: "Kyiv", Main: models.MainReadings{Temp: models.Float(3)}}}
	app := newTestApp(svc)

	for _, path := range []string{"/weather?city=Kyiv", "/api/weather?city=Kyiv"} {
		status, body := do(t, app, path)
		assert.Equal(t, http.StatusOK, status, path)
		assert.Equal(t, "Kyiv", body["name"])
		assert.Contains(t, body, "uvi")
	}
	assert.Equal(t, []string{"Kyiv", "Kyiv"}, svc.cities)
}

func TestGetWeatherMappedErrors(t *testing.T) {
	tests := []struct {
		kind    services.ErrorKind
		message string
		status  int
	}{
		{services.KindValidation, services.MsgCityRequired, http.StatusBadRequest},
		{services.KindNotFound, services.MsgCityNotFound, http.StatusNotFound},
		{services.KindUpstreamAuth, services.MsgInvalidAPIKey, http.StatusInternalServerError},
		{services.KindUpstreamUnavailable, services.MsgServiceUnavailable, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		app := newTestApp(&stubService{err: &services.Error{Kind: tt.kind, Message: tt.message}})
		status, body := do(t, app, "/api/weather?city=x")
		assert.Equal(t, tt.status, status)
		assert.Equal(t, tt.message, body["error"])
	}
}

func TestGetWeatherInternalErrorHidesDetails(t *testing.T) {
	app := newTestApp(&stubService{err: assert.AnError})
	status, body := do(t, app, "/weather?city=x")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", body["error"])
}

func TestGetWeatherPanicIsRecovered(t *testing.T) {
	app := newTestApp(&stubService{panics: true})
	status, body := do(t, app, "/weather?city=x")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", body["error"])
}

func TestGetWeatherDemoGateway(t *testing.T) {
	gw := services.NewGateway(&config.Config{}, zap.NewNop())
	app := newTestApp(gw)

	status, body := do(t, app, "/api/weather")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "City parameter is required", body["error"])

	status, first := do(t, app, "/api/weather?city=Lisbon")
	require.Equal(t, http.StatusOK, status)
	_, second := do(t, app, "/api/weather?city=Lisbon")
	assert.Equal(t, first["weather"], second["weather"])
	assert.Equal(t, "Lisbon", first["name"])
}

func TestGetHealth(t *testing.T) {
	for _, configured := range []bool{true, false} {
		app := newTestApp(&stubService{configured: configured})

		for _, path := range []string{"/health", "/api/health"} {
			status, body := do(t, app, path)
			assert.Equal(t, http.StatusOK, status)
			assert.Equal(t, "OK", body["status"])
			assert.Equal(t, configured, body["apiKeyConfigured"])
			assert.NotEmpty(t, body["timestamp"])
			assert.NotEmpty(t, body["message"])
			assert.Contains(t, body, "upstream")
		}
	}
}

func TestGetSchema(t *testing.T) {
	status, body := do(t, newTestApp(&stubService{}), "/api/schema")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "$schema")
}

func TestUnknownRoute(t *testing.T) {
	status, body := do(t, newTestApp(&stubService{}), "/nope")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Endpoint not found", body["error"])
}
