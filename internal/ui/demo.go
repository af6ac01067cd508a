package ui

import "github.com/bobby-s-dev/weather-lookup/internal/models"

// DemoReport is the fixed sample shown when the gateway cannot be reached.
func DemoReport(city string) *models.WeatherReport {
	name := city
	if name == "" {
		name = "Demo City"
	}
	return &models.WeatherReport{
		Name: name,
		Main: models.MainReadings{
			Temp:      models.Float(22),
			FeelsLike: models.Float(25),
			Humidity:  models.Float(65),
			Pressure:  models.Float(1013),
		},
		Weather: []models.Condition{
			{Main: "Clear", Description: "clear sky", Icon: "01d"},
		},
		Wind:       models.Wind{Speed: models.Float(3.5)},
		Visibility: models.Float(10000),
		Clouds:     models.Clouds{All: models.Float(20)},
		Sys: models.Sys{
			Sunrise: models.Int64(1629872400),
			Sunset:  models.Int64(1629919200),
		},
		UVI: models.Float(5.2),
	}
}
