// Package weather provides a client for the HERE Destination Weather API.
package weather

import (
	"strconv"
	"time"
)

// Product selects which report the service returns. Exactly one product is
// requested per call and exactly one product group is populated in the
// resulting Report.
type Product string

const (
	// ProductObservation reports current conditions.
	ProductObservation Product = "observation"
	// ProductForecast7Days reports a detailed 7 day forecast.
	ProductForecast7Days Product = "forecast_7days"
	// ProductForecast7DaysSimple reports a simplified 7 day forecast.
	ProductForecast7DaysSimple Product = "forecast_7days_simple"
	// ProductForecastHourly reports an hourly forecast.
	ProductForecastHourly Product = "forecast_hourly"
	// ProductForecastAstronomy reports sunrise, sunset and moon phases.
	ProductForecastAstronomy Product = "forecast_astronomy"
	// ProductAlerts reports active weather alerts.
	ProductAlerts Product = "alerts"
	// ProductNWSAlerts reports US National Weather Service watches and
	// warnings.
	ProductNWSAlerts Product = "nws_alerts"
)

// Report is the parsed result of a successful weather call. The group
// matching the requested Product is populated; the others are empty.
type Report struct {
	Product Product

	// Location describes where the report applies. Not populated for
	// ProductNWSAlerts, whose payload carries no location block.
	Location Location

	// Observations holds current conditions for ProductObservation.
	Observations []Observation

	// Forecasts holds daily or hourly entries for ProductForecast7Days,
	// ProductForecast7DaysSimple and ProductForecastHourly.
	Forecasts []Forecast

	// Astronomy holds per-day entries for ProductForecastAstronomy.
	Astronomy []Astronomy

	// Alerts holds active alerts for ProductAlerts.
	Alerts []Alert

	// NWSWatches and NWSWarnings hold entries for ProductNWSAlerts.
	NWSWatches  []NWSAlert
	NWSWarnings []NWSAlert

	FeedCreation string
	Metric       bool
	FetchedAt    time.Time
}

// Location identifies the place a report was matched to.
type Location struct {
	Country   string
	State     string
	City      string
	Latitude  float64
	Longitude float64
	Distance  float64
	Timezone  float64
}

// Observation is a single current-conditions reading.
type Observation struct {
	Daylight          string
	Description       string
	SkyDescription    string
	Temperature       float64
	TemperatureDesc   string
	Comfort           float64
	HighTemperature   float64
	LowTemperature    float64
	Humidity          float64
	DewPoint          float64
	Precipitation1H   float64
	WindSpeed         float64
	WindDirection     float64
	WindDesc          string
	BarometerPressure float64
	Visibility        float64
	Icon              string
	IconName          string
	City              string
	State             string
	Country           string
	Latitude          float64
	Longitude         float64
	Elevation         float64
	UTCTime           string
}

// Forecast is a single daily or hourly forecast entry. Daily products fill
// the high/low temperatures; the hourly product fills Temperature.
type Forecast struct {
	Daylight                 string
	Description              string
	SkyDescription           string
	Temperature              float64
	TemperatureDesc          string
	Comfort                  float64
	HighTemperature          float64
	LowTemperature           float64
	Humidity                 float64
	DewPoint                 float64
	PrecipitationProbability float64
	PrecipitationDesc        string
	RainFall                 float64
	SnowFall                 float64
	WindSpeed                float64
	WindDirection            float64
	WindDesc                 string
	UVIndex                  float64
	UVDesc                   string
	BarometerPressure        float64
	Icon                     string
	IconName                 string
	IconLink                 string
	DayOfWeek                string
	Weekday                  string
	UTCTime                  string
}

// Astronomy is a single per-day astronomy entry.
type Astronomy struct {
	Sunrise       string
	Sunset        string
	Moonrise      string
	Moonset       string
	MoonPhase     float64
	MoonPhaseDesc string
	IconName      string
	City          string
	UTCTime       string
}

// Alert is an active weather alert with the periods it covers.
type Alert struct {
	Type         int
	Description  string
	TimeSegments []AlertTimeSegment
}

// AlertTimeSegment is one period an alert applies to.
type AlertTimeSegment struct {
	Value     string
	Segment   string
	DayOfWeek string
}

// NWSAlert is a US National Weather Service watch or warning.
type NWSAlert struct {
	Type                int
	Description         string
	Severity            int
	Message             string
	County              string
	State               string
	Country             string
	ValidFromTimeLocal  string
	ValidUntilTimeLocal string
	Latitude            float64
	Longitude           float64
}

// parseFloat reads the service's string-encoded numbers. Unavailable values
// arrive as "*" and parse to 0.
func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
