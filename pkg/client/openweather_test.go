package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bobby-s-dev/weather-lookup/internal/models"
)

const testAPIKey = "test-key"

const londonPayload = `{
	"coord": {"lon": -0.1257, "lat": 51.5085},
	"weather": [{"id": 803, "main": "Clouds", "description": "broken clouds", "icon": "04d"}],
	"base": "stations",
	"main": {"temp": 14.2, "feels_like": 13.5, "pressure": 1012, "humidity": 71},
	"visibility": 10000,
	"wind": {"speed": 4.6, "deg": 250},
	"clouds": {"all": 75},
	"dt": 1700000000,
	"sys": {"country": "GB", "sunrise": 1699989000, "sunset": 1700021000},
	"timezone": 0,
	"id": 2643743,
	"name": "London",
	"cod": 200,
	"rain": {"1h": 0.2}
}`

func TestOpenWeatherGetCurrentWeather(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "London", q.Get("q"))
		assert.Equal(t, testAPIKey, q.Get("appid"))
		assert.Equal(t, "metric", q.Get("units"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(londonPayload))
	}))
	defer srv.Close()

	c := NewOpenWeatherClient(testAPIKey, srv.URL, testClientConfig(), zap.NewNop())
	got, err := c.GetCurrentWeather(context.Background(), "London")
	require.NoError(t, err)

	assert.Equal(t, "London", got.Report.Name)
	assert.Equal(t, models.Coord{Lon: -0.1257, Lat: 51.5085}, got.Report.Coord)
	require.NotNil(t, got.Report.Main.Temp)
	assert.Equal(t, 14.2, *got.Report.Main.Temp)
	assert.Contains(t, got.Raw, "rain", "unknown upstream fields are kept")
}

func TestOpenWeatherNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	}))
	defer srv.Close()

	c := NewOpenWeatherClient(testAPIKey, srv.URL, testClientConfig(), zap.NewNop())
	_, err := c.GetCurrentWeather(context.Background(), "Atlantis")
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusNotFound))
}

func TestOpenWeatherGetUVIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/uvi", r.URL.Path)
		assert.Equal(t, "51.5085", r.URL.Query().Get("lat"))
		assert.Equal(t, "-0.1257", r.URL.Query().Get("lon"))
		w.Write([]byte(`{"lat":51.5085,"lon":-0.1257,"date_iso":"2023-11-14T12:00:00Z","value":1.83}`))
	}))
	defer srv.Close()

	c := NewOpenWeatherClient(testAPIKey, srv.URL, testClientConfig(), zap.NewNop())
	uvi, err := c.GetUVIndex(context.Background(), models.Coord{Lon: -0.1257, Lat: 51.5085})
	require.NoError(t, err)
	assert.Equal(t, 1.83, uvi)
}

func TestOpenMeteoGetUVIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		assert.Equal(t, "uv_index", r.URL.Query().Get("current"))
		w.Write([]byte(`{"latitude":51.5,"longitude":-0.12,"current":{"time":"2023-11-14T12:00","interval":900,"uv_index":2.4}}`))
	}))
	defer srv.Close()

	c := NewOpenMeteoClient(srv.URL, testClientConfig(), zap.NewNop())
	uvi, err := c.GetUVIndex(context.Background(), models.Coord{Lon: -0.1257, Lat: 51.5085})
	require.NoError(t, err)
	assert.Equal(t, 2.4, uvi)
}

func TestOpenMeteoMissingUVIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"current":{"time":"2023-11-14T12:00"}}`))
	}))
	defer srv.Close()

	c := NewOpenMeteoClient(srv.URL, testClientConfig(), zap.NewNop())
	_, err := c.GetUVIndex(context.Background(), models.Coord{})
	require.Error(t, err)
}

func TestUVClientFailuresDoNotOpenWeatherBreaker(t *testing.T) {
	var weatherCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/weather":
			if weatherCalls.Add(1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.Write([]byte(londonPayload))
		case "/uvi":
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	weather := NewOpenWeatherClient(testAPIKey, srv.URL, testClientConfig(), zap.NewNop())
	uv := NewOpenWeatherUVClient(testAPIKey, srv.URL, testClientConfig(), zap.NewNop())
	ctx := context.Background()

	_, err := weather.GetCurrentWeather(ctx, "London")
	require.True(t, IsStatus(err, http.StatusServiceUnavailable))

	for i := 0; i < 4; i++ {
		current, err := weather.GetCurrentWeather(ctx, "London")
		require.NoError(t, err, "lookup %d", i)

		_, err = uv.GetUVIndex(ctx, current.Report.Coord)
		require.Error(t, err)
	}

	assert.EqualValues(t, 5, weatherCalls.Load())

	_, err = uv.GetUVIndex(ctx, models.Coord{})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState, "only the UV breaker opens")
}
