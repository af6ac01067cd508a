package ui

import (
	"fmt"
	"io"
	"sync"
	"text/tabwriter"
)

var terminalGlyphs = map[string]string{
	"fas fa-sun":           "☀️",
	"fas fa-cloud":         "☁️",
	"fas fa-cloud-rain":    "🌧️",
	"fas fa-cloud-drizzle": "🌦️",
	"fas fa-bolt":          "⛈️",
	"fas fa-snowflake":     "❄️",
	"fas fa-smog":          "🌫️",
	"fas fa-wind":          "🌬️",
	"fas fa-tornado":       "🌪️",
}

// TerminalView renders the controller's output as text. Hiding is a no-op
// because printed output cannot be retracted; the state is still tracked.
type TerminalView struct {
	mu           sync.Mutex
	out          io.Writer
	loading      bool
	errorVisible bool
}

func NewTerminalView(out io.Writer) *TerminalView {
	return &TerminalView{out: out}
}

func (v *TerminalView) SetDate(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out, "%s\n\n", text)
}

func (v *TerminalView) SetLoading(loading bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if loading && !v.loading {
		fmt.Fprintln(v.out, "Loading weather data...")
	}
	v.loading = loading
}

func (v *TerminalView) ShowResults(d Display) {
	v.mu.Lock()
	defer v.mu.Unlock()

	glyph, ok := terminalGlyphs[d.Icon]
	if !ok {
		glyph = terminalGlyphs[defaultIcon]
	}

	fmt.Fprintf(v.out, "\n%s  %s  %s, %s\n", glyph, d.City, d.Temperature, d.Description)
	fmt.Fprintln(v.out, "─────────────────────────────────")

	tw := tabwriter.NewWriter(v.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Feels like:\t%s\n", d.FeelsLike)
	fmt.Fprintf(tw, "Visibility:\t%s\n", d.Visibility)
	fmt.Fprintf(tw, "Humidity:\t%s\n", d.Humidity)
	fmt.Fprintf(tw, "Wind:\t%s\n", d.WindSpeed)
	fmt.Fprintf(tw, "Pressure:\t%s\n", d.Pressure)
	fmt.Fprintf(tw, "UV index:\t%s\n", d.UVIndex)
	fmt.Fprintf(tw, "Cloudiness:\t%s\n", d.Cloudiness)
	fmt.Fprintf(tw, "Sunrise:\t%s\n", d.Sunrise)
	fmt.Fprintf(tw, "Sunset:\t%s\n", d.Sunset)
	tw.Flush()

	fmt.Fprintln(v.out)
}

func (v *TerminalView) HideResults() {}

func (v *TerminalView) ShowError(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errorVisible = true
	fmt.Fprintf(v.out, "! %s\n", message)
}

func (v *TerminalView) HideError() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errorVisible = false
}

// ErrorVisible reports whether an error is currently on display.
func (v *TerminalView) ErrorVisible() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errorVisible
}
