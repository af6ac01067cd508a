package ui

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bobby-s-dev/weather-lookup/internal/models"
	"github.com/bobby-s-dev/weather-lookup/pkg/client"
)

const (
	DefaultCity          = "London"
	DefaultErrorDuration = 5 * time.Second

	MsgEmptyCity    = "Please enter a city name"
	MsgCityNotFound = "City not found. Please check the spelling and try again."
	MsgServerError  = "Server error. Please try again later."
	MsgFetchFailed  = "Unable to fetch weather data. Please try again."
	MsgDemoAdvisory = "Demo Mode: Backend server not running. This is sample data."
)

type WeatherFetcher interface {
	FetchWeather(ctx context.Context, city string) (*models.WeatherReport, error)
}

// View is the set of rendering targets the controller drives. Calls may come
// from the error auto-clear timer, so implementations must be safe for
// concurrent use.
type View interface {
	SetDate(text string)
	SetLoading(loading bool)
	ShowResults(d Display)
	HideResults()
	ShowError(message string)
	HideError()
}

type Controller struct {
	fetcher       WeatherFetcher
	view          View
	logger        *zap.Logger
	defaultCity   string
	errorDuration time.Duration
	now           func() time.Time
	loc           *time.Location

	mu         sync.Mutex
	errorTimer *time.Timer
	errorSeq   uint64
}

type Option func(*Controller)

func WithDefaultCity(city string) Option {
	return func(c *Controller) { c.defaultCity = city }
}

func WithErrorDuration(d time.Duration) Option {
	return func(c *Controller) { c.errorDuration = d }
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func WithLocation(loc *time.Location) Option {
	return func(c *Controller) { c.loc = loc }
}

func NewController(fetcher WeatherFetcher, view View, logger *zap.Logger, opts ...Option) *Controller {
	c := &Controller{
		fetcher:       fetcher,
		view:          view,
		logger:        logger,
		defaultCity:   DefaultCity,
		errorDuration: DefaultErrorDuration,
		now:           time.Now,
		loc:           time.Local,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize shows the current date and loads the default city.
func (c *Controller) Initialize(ctx context.Context) {
	c.view.SetDate(FormatDate(c.now(), c.loc))
	c.Fetch(ctx, c.defaultCity)
}

// Search looks up the trimmed input, or reports a validation error when it
// is blank.
func (c *Controller) Search(ctx context.Context, cityText string) {
	city := strings.TrimSpace(cityText)
	if city == "" {
		c.ShowError(MsgEmptyCity)
		return
	}
	c.Fetch(ctx, city)
}

// Fetch performs one gateway lookup and renders the outcome. An unreachable
// gateway is masked with demo data plus an advisory.
func (c *Controller) Fetch(ctx context.Context, city string) {
	c.view.SetLoading(true)
	defer c.view.SetLoading(false)

	c.ClearError()
	c.view.HideResults()

	report, err := c.fetcher.FetchWeather(ctx, city)
	if err == nil {
		c.Render(report)
		return
	}

	var connErr *client.ConnectionError
	var statusErr *client.HTTPStatusError

	switch {
	case errors.As(err, &connErr):
		c.logger.Info("Backend not available, showing demo data", zap.String("city", city), zap.Error(err))
		c.Render(DemoReport(city))
		c.ShowError(MsgDemoAdvisory)
	case errors.As(err, &statusErr):
		c.logger.Debug("Lookup rejected", zap.String("city", city), zap.Int("status", statusErr.StatusCode))
		c.ShowError(messageForStatus(statusErr.StatusCode))
	default:
		c.logger.Error("Error fetching weather data", zap.String("city", city), zap.Error(err))
		c.ShowError(MsgFetchFailed)
	}
}

// Render formats report and reveals the results panel.
func (c *Controller) Render(report *models.WeatherReport) {
	c.view.ShowResults(NewDisplay(report, c.loc))
}

// ShowError displays message until the error duration elapses or the error
// is cleared. A newer error replaces the pending auto-clear.
func (c *Controller) ShowError(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.errorSeq++
	seq := c.errorSeq
	c.stopTimerLocked()
	c.errorTimer = time.AfterFunc(c.errorDuration, func() { c.expireError(seq) })
	c.view.ShowError(message)
}

func (c *Controller) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.errorSeq++
	c.stopTimerLocked()
	c.view.HideError()
}

// Close cancels a pending error auto-clear.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopTimerLocked()
}

func (c *Controller) expireError(seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.errorSeq {
		return
	}
	c.errorTimer = nil
	c.view.HideError()
}

func (c *Controller) stopTimerLocked() {
	if c.errorTimer != nil {
		c.errorTimer.Stop()
		c.errorTimer = nil
	}
}

func messageForStatus(code int) string {
	switch code {
	case http.StatusNotFound:
		return MsgCityNotFound
	case http.StatusInternalServerError:
		return MsgServerError
	default:
		return MsgFetchFailed
	}
}
