package ui

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/bobby-s-dev/weather-lookup/internal/models"
)

const (
	NotAvailable = "N/A"

	DateLayout = "Monday, January 2, 2006 at 03:04 PM"
	TimeLayout = "03:04 PM"

	defaultIcon = "fas fa-cloud"
)

var iconClasses = map[string]string{
	"Clear":        "fas fa-sun",
	"Clouds":       "fas fa-cloud",
	"Rain":         "fas fa-cloud-rain",
	"Drizzle":      "fas fa-cloud-drizzle",
	"Thunderstorm": "fas fa-bolt",
	"Snow":         "fas fa-snowflake",
	"Mist":         "fas fa-smog",
	"Smoke":        "fas fa-smog",
	"Haze":         "fas fa-smog",
	"Dust":         "fas fa-smog",
	"Fog":          "fas fa-smog",
	"Sand":         "fas fa-smog",
	"Ash":          "fas fa-smog",
	"Squall":       "fas fa-wind",
	"Tornado":      "fas fa-tornado",
}

// IconClass maps a condition category to its icon class.
func IconClass(conditionMain string) string {
	if class, ok := iconClasses[conditionMain]; ok {
		return class
	}
	return defaultIcon
}

// Display holds every rendered field as text.
type Display struct {
	City        string
	Temperature string
	Description string
	FeelsLike   string
	Icon        string
	Visibility  string
	Humidity    string
	WindSpeed   string
	Pressure    string
	UVIndex     string
	Cloudiness  string
	Sunrise     string
	Sunset      string
}

// NewDisplay formats r for rendering. Missing readings become "N/A".
func NewDisplay(r *models.WeatherReport, loc *time.Location) Display {
	if r == nil {
		r = &models.WeatherReport{}
	}
	if loc == nil {
		loc = time.Local
	}

	d := Display{
		City:        orNA(r.Name),
		Temperature: NotAvailable,
		Description: NotAvailable,
		FeelsLike:   NotAvailable,
		Icon:        defaultIcon,
		Visibility:  formatWith(r.Visibility, func(v float64) string { return fmt.Sprintf("%.1f km", v/1000) }),
		Humidity:    withUnit(r.Main.Humidity, "%"),
		WindSpeed:   withUnit(r.Wind.Speed, " m/s"),
		Pressure:    withUnit(r.Main.Pressure, " hPa"),
		UVIndex:     formatWith(r.UVI, func(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) }),
		Cloudiness:  withUnit(r.Clouds.All, "%"),
		Sunrise:     formatClock(r.Sys.Sunrise, loc),
		Sunset:      formatClock(r.Sys.Sunset, loc),
	}

	if r.Main.Temp != nil {
		d.Temperature = fmt.Sprintf("%d°C", roundHalfUp(*r.Main.Temp))
	}
	if r.Main.FeelsLike != nil {
		d.FeelsLike = fmt.Sprintf("Feels like %d°C", roundHalfUp(*r.Main.FeelsLike))
	}
	if cond, ok := r.PrimaryCondition(); ok {
		d.Description = orNA(cond.Description)
		d.Icon = IconClass(cond.Main)
	}

	return d
}

// FormatDate renders the page header date.
func FormatDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateLayout)
}

// roundHalfUp rounds .5 towards positive infinity, so -2.5 becomes -2.
func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func withUnit(v *float64, unit string) string {
	return formatWith(v, func(f float64) string { return formatNumber(f) + unit })
}

func formatWith(v *float64, format func(float64) string) string {
	if v == nil {
		return NotAvailable
	}
	return format(*v)
}

func formatClock(epoch *int64, loc *time.Location) string {
	if epoch == nil {
		return NotAvailable
	}
	return time.Unix(*epoch, 0).In(loc).Format(TimeLayout)
}

func orNA(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}
