package models

// WeatherReport is the current-conditions payload exchanged between the
// gateway and its clients. It follows the OpenWeatherMap layout so upstream
// responses can be passed through unchanged.
//
// Readings the client renders are pointers: nil means the gateway did not
// send them.
type WeatherReport struct {
	Coord      Coord        `json:"coord"`
	Weather    []Condition  `json:"weather"`
	Base       string       `json:"base,omitempty"`
	Main       MainReadings `json:"main"`
	Visibility *float64     `json:"visibility,omitempty"`
	Wind       Wind         `json:"wind"`
	Clouds     Clouds       `json:"clouds"`
	Dt         int64        `json:"dt,omitempty"`
	Sys        Sys          `json:"sys"`
	Timezone   int          `json:"timezone"`
	ID         int          `json:"id,omitempty"`
	Name       string       `json:"name"`
	Cod        int          `json:"cod,omitempty"`
	UVI        *float64     `json:"uvi"`
}

type Coord struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

type Condition struct {
	ID          int    `json:"id,omitempty"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type MainReadings struct {
	Temp      *float64 `json:"temp,omitempty"`
	FeelsLike *float64 `json:"feels_like,omitempty"`
	TempMin   *float64 `json:"temp_min,omitempty"`
	TempMax   *float64 `json:"temp_max,omitempty"`
	Pressure  *float64 `json:"pressure,omitempty"`
	Humidity  *float64 `json:"humidity,omitempty"`
}

type Wind struct {
	Speed *float64 `json:"speed,omitempty"`
	Deg   *float64 `json:"deg,omitempty"`
}

type Clouds struct {
	All *float64 `json:"all,omitempty"`
}

type Sys struct {
	Type    int    `json:"type,omitempty"`
	ID      int    `json:"id,omitempty"`
	Country string `json:"country,omitempty"`
	Sunrise *int64 `json:"sunrise,omitempty"`
	Sunset  *int64 `json:"sunset,omitempty"`
}

// PrimaryCondition returns the first reported condition, if any.
func (r *WeatherReport) PrimaryCondition() (Condition, bool) {
	if r == nil || len(r.Weather) == 0 {
		return Condition{}, false
	}
	return r.Weather[0], true
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return &v }
