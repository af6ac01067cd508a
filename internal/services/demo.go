package services

import (
	"math/rand/v2"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/bobby-s-dev/weather-lookup/internal/models"
)

const (
	demoCityName  = "Demo City"
	sunOffsetSecs = 7 * 60 * 60
)

// demoConditions is indexed by city name length so a given city always shows
// the same sky.
var demoConditions = []models.Condition{
	{ID: 800, Main: "Clear", Description: "clear sky", Icon: "01d"},
	{ID: 801, Main: "Clouds", Description: "few clouds", Icon: "02d"},
	{ID: 802, Main: "Clouds", Description: "scattered clouds", Icon: "03d"},
	{ID: 803, Main: "Clouds", Description: "broken clouds", Icon: "04d"},
	{ID: 500, Main: "Rain", Description: "light rain", Icon: "10d"},
	{ID: 501, Main: "Rain", Description: "moderate rain", Icon: "10d"},
}

// DemoGenerator produces plausible synthetic reports for the zero-config path.
type DemoGenerator struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

func NewDemoGenerator(rnd *rand.Rand, now func() time.Time) *DemoGenerator {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if now == nil {
		now = time.Now
	}
	return &DemoGenerator{rnd: rnd, now: now}
}

// DemoCondition returns the catalog entry used for city.
func DemoCondition(city string) models.Condition {
	if city == "" {
		return demoConditions[0]
	}
	return demoConditions[utf8.RuneCountInString(city)%len(demoConditions)]
}

func (g *DemoGenerator) Report(city string) *models.WeatherReport {
	g.mu.Lock()
	defer g.mu.Unlock()

	name := city
	if name == "" {
		name = demoCityName
	}
	now := g.now().Unix()

	return &models.WeatherReport{
		Coord:   models.Coord{Lon: -0.1257, Lat: 51.5085},
		Weather: []models.Condition{DemoCondition(city)},
		Base:    "stations",
		Main: models.MainReadings{
			Temp:      g.between(5, 30),
			FeelsLike: g.between(5, 30),
			TempMin:   g.between(2, 25),
			TempMax:   g.between(10, 35),
			Pressure:  g.between(1000, 50),
			Humidity:  g.between(20, 60),
		},
		Visibility: g.between(5000, 15000),
		Wind: models.Wind{
			Speed: g.between(1, 10),
			Deg:   g.between(0, 360),
		},
		Clouds: models.Clouds{All: g.between(0, 100)},
		Dt:     now,
		Sys: models.Sys{
			Type:    1,
			ID:      1414,
			Country: "GB",
			Sunrise: models.Int64(now - sunOffsetSecs),
			Sunset:  models.Int64(now + sunOffsetSecs),
		},
		Timezone: 0,
		ID:       2643743,
		Name:     name,
		Cod:      200,
		UVI:      g.between(1, 10),
	}
}

// between returns an integer in [base, base+span).
func (g *DemoGenerator) between(base, span int) *float64 {
	return models.Float(float64(base + g.rnd.IntN(span)))
}
